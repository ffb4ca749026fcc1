package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"demotimer/internal/segment"
)

// editor is the segment-editor window. Rows are edited locally and
// reconciled into the engine's live list on Apply; Save writes the
// current rows to the segments file.
type editor struct {
	owner  *Window
	window fyne.Window
	rows   []*editorRow
	list   *fyne.Container
	status *widget.Label
}

type editorRow struct {
	name     *widget.Entry
	duration *widget.Entry
}

func newEditor(owner *Window, segments []segment.Segment) *editor {
	window := owner.app.NewWindow("Edit Segments")

	ed := &editor{
		owner:  owner,
		window: window,
		list:   container.NewVBox(),
		status: widget.NewLabel(""),
	}

	for _, seg := range segments {
		ed.rows = append(ed.rows, makeRow(seg))
	}
	ed.rebuildList()

	addButton := widget.NewButton("Add", func() {
		ed.rows = append(ed.rows, makeRow(segment.Segment{Name: "New Segment", Duration: 60 * time.Second}))
		ed.rebuildList()
	})
	applyButton := widget.NewButton("Apply", ed.handleApply)
	saveButton := widget.NewButton("Save", ed.handleSave)
	closeButton := widget.NewButton("Close", func() {
		owner.closeEditor()
	})
	buttons := container.NewHBox(addButton, applyButton, saveButton, layout.NewSpacer(), closeButton)

	header := container.NewGridWithColumns(2,
		widget.NewLabelWithStyle("Segment", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Duration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	content := container.NewBorder(header, container.NewVBox(ed.status, buttons), nil, nil,
		container.NewVScroll(ed.list))
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(func() {
		owner.closeEditor()
	})

	return ed
}

func makeRow(seg segment.Segment) *editorRow {
	name := widget.NewEntry()
	name.SetText(seg.Name)
	duration := widget.NewEntry()
	duration.SetText(segment.FormatClock(seg.Duration))
	return &editorRow{name: name, duration: duration}
}

func (ed *editor) rebuildList() {
	ed.list.RemoveAll()
	for i, row := range ed.rows {
		idx := i
		remove := widget.NewButton("✕", func() {
			if len(ed.rows) == 1 {
				ed.status.SetText("cannot delete the last segment")
				return
			}
			ed.rows = append(ed.rows[:idx], ed.rows[idx+1:]...)
			ed.rebuildList()
		})
		ed.list.Add(container.NewBorder(nil, nil, nil, remove,
			container.NewGridWithColumns(2, row.name, row.duration)))
	}
	ed.list.Refresh()
}

// parseRows validates every row and returns the edited list.
func (ed *editor) parseRows() ([]segment.Segment, error) {
	segments := make([]segment.Segment, 0, len(ed.rows))
	for i, row := range ed.rows {
		name := row.name.Text
		if name == "" {
			return nil, fmt.Errorf("row %d: name cannot be empty", i+1)
		}
		d, err := segment.ParseDuration(row.duration.Text)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad duration %q", i+1, row.duration.Text)
		}
		segments = append(segments, segment.Segment{Name: name, Duration: d})
	}
	return segments, nil
}

// handleApply reconciles the edited rows into the engine's live list.
func (ed *editor) handleApply() {
	segments, err := ed.parseRows()
	if err != nil {
		ed.status.SetText(err.Error())
		return
	}

	owner := ed.owner
	owner.mu.Lock()
	defer owner.mu.Unlock()

	current := owner.timer.Segments()
	for i, seg := range segments {
		if i < len(current) {
			if err := owner.timer.SetSegment(i, seg); err != nil {
				ed.status.SetText(err.Error())
				return
			}
		} else {
			owner.timer.InsertSegment(i, seg)
		}
	}
	for i := len(current) - 1; i >= len(segments); i-- {
		if err := owner.timer.DeleteSegment(i); err != nil {
			ed.status.SetText(err.Error())
			return
		}
	}
	ed.status.SetText("applied")
}

func (ed *editor) handleSave() {
	segments, err := ed.parseRows()
	if err != nil {
		ed.status.SetText(err.Error())
		return
	}
	if err := segment.Save(ed.owner.segmentsFile, segments); err != nil {
		ed.status.SetText(fmt.Sprintf("save failed: %v", err))
		return
	}
	ed.status.SetText(fmt.Sprintf("saved to %s", ed.owner.segmentsFile))
}

func (ed *editor) show() {
	ed.window.Show()
}

func (ed *editor) close() {
	ed.window.SetCloseIntercept(nil)
	ed.window.Close()
}
