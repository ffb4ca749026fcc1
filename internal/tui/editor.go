package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"demotimer/internal/engine"
	"demotimer/internal/segment"
)

type editorField int

const (
	fieldName editorField = iota
	fieldDuration
)

// editorState is the segment-editor sub-mode. The cursor selects a row
// and field; typing happens through a textinput that commits with
// enter and applies directly to the engine's live list.
type editorState struct {
	cursor int
	field  editorField
	input  textinput.Model
	typing bool
	status string
}

func newEditorState() *editorState {
	in := textinput.New()
	in.CharLimit = 64
	in.Width = 30
	return &editorState{input: in}
}

// handleKey processes a key press while the editor is open. It returns
// true when the editor should close.
func (e *editorState) handleKey(msg tea.KeyMsg, timer *engine.Timer, segmentsFile string) (bool, tea.Cmd) {
	if e.typing {
		return false, e.handleTypingKey(msg, timer)
	}

	segments := timer.Segments()

	switch msg.String() {
	case "e", "esc", "q":
		return true, nil

	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
		e.status = ""

	case "down", "j":
		if e.cursor < len(segments)-1 {
			e.cursor++
		}
		e.status = ""

	case "left", "h", "right", "l", "tab":
		if e.field == fieldName {
			e.field = fieldDuration
		} else {
			e.field = fieldName
		}
		e.status = ""

	case "enter":
		e.startTyping(segments)

	case "a":
		timer.InsertSegment(e.cursor+1, segment.Segment{Name: "New Segment", Duration: 60 * time.Second})
		e.cursor++
		e.status = ""

	case "d":
		if err := timer.DeleteSegment(e.cursor); err != nil {
			e.status = err.Error()
			return false, nil
		}
		if e.cursor > len(timer.Segments())-1 {
			e.cursor = len(timer.Segments()) - 1
		}
		e.status = ""

	case "s":
		if err := segment.Save(segmentsFile, timer.Segments()); err != nil {
			e.status = fmt.Sprintf("save failed: %v", err)
			return false, nil
		}
		e.status = fmt.Sprintf("saved to %s", segmentsFile)
	}

	return false, nil
}

func (e *editorState) startTyping(segments []segment.Segment) {
	if e.cursor >= len(segments) {
		return
	}
	seg := segments[e.cursor]
	if e.field == fieldName {
		e.input.SetValue(seg.Name)
	} else {
		e.input.SetValue(segment.FormatClock(seg.Duration))
	}
	e.input.CursorEnd()
	e.input.Focus()
	e.typing = true
	e.status = ""
}

func (e *editorState) handleTypingKey(msg tea.KeyMsg, timer *engine.Timer) tea.Cmd {
	switch msg.String() {
	case "esc":
		e.typing = false
		e.input.Blur()
		return nil

	case "enter":
		if err := e.commit(timer); err != nil {
			e.status = err.Error()
			return nil
		}
		e.typing = false
		e.input.Blur()
		return nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// commit applies the typed value to the selected row.
func (e *editorState) commit(timer *engine.Timer) error {
	segments := timer.Segments()
	if e.cursor >= len(segments) {
		return fmt.Errorf("segment no longer exists")
	}
	seg := segments[e.cursor]

	text := strings.TrimSpace(e.input.Value())
	if e.field == fieldName {
		if text == "" {
			return fmt.Errorf("name cannot be empty")
		}
		seg.Name = text
	} else {
		d, err := segment.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("bad duration %q", text)
		}
		seg.Duration = d
	}
	return timer.SetSegment(e.cursor, seg)
}

func (e *editorState) view(timer *engine.Timer, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("EDIT SEGMENTS"))
	b.WriteString("\n")

	snap := timer.Snapshot()
	for i, seg := range timer.Segments() {
		marker := "  "
		if i == snap.Index {
			marker = segmentStyle.Render("> ")
		}

		name := seg.Name
		clock := segment.FormatClock(seg.Duration)
		if i == e.cursor {
			if e.typing {
				if e.field == fieldName {
					name = e.input.View()
				} else {
					clock = e.input.View()
				}
			} else if e.field == fieldName {
				name = cursorStyle.Render("[" + name + "]")
			} else {
				clock = cursorStyle.Render("[" + clock + "]")
			}
		}

		b.WriteString(marker)
		b.WriteString(valueStyle.Render(name))
		pad := width - lipgloss.Width(marker) - lipgloss.Width(name) - lipgloss.Width(clock)
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(valueStyle.Render(clock))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Planned total: "))
	b.WriteString(valueStyle.Render(segment.FormatClock(snap.PlannedTotal)))
	b.WriteString("\n")

	if e.status != "" {
		b.WriteString(errorStyle.Render(e.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if e.typing {
		b.WriteString(helpStyle.Render("enter: apply • esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓: row • tab: field • enter: change • a: add • d: delete • s: save • e/esc: back"))
	}

	return b.String()
}
