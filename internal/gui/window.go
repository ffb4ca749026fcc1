// Package gui implements the graphical shell using fyne. It shares the
// timing engine with the terminal shell and differs only in
// presentation and the start-paused profile.
package gui

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"demotimer/internal/config"
	"demotimer/internal/debug"
	"demotimer/internal/engine"
	"demotimer/internal/segment"
)

// Window manages the main timer window. The engine is not safe for
// concurrent use, so every access goes through mu: the ticker goroutine
// and the fyne event handlers both take it.
type Window struct {
	app    fyne.App
	window fyne.Window

	mu           sync.Mutex
	timer        *engine.Timer
	segmentsFile string

	nameText     *canvas.Text
	clockText    *canvas.Text
	statusText   *canvas.Text
	progress     *widget.ProgressBar
	strip        *timeline
	indexLabel   *widget.Label
	demoLabel    *widget.Label
	nextLabel    *widget.Label
	muteLabel    *widget.Label
	hintLabel    *widget.Label
	summaryShown bool

	editor *editor
	stopCh chan struct{}
}

const controlsHint = "space: pause  n: next  p: previous  +/-: adjust  m: mute  e: edit  q: quit"

// Run loads the segment list, builds the window and blocks until it is
// closed. The graphical shell starts paused so the presenter controls
// the first un-pause.
func Run(cfg *config.Config) error {
	path := segment.FindFile(cfg.SegmentsFile)
	segments := segment.LoadOrDefault(path)
	debug.Logf("gui: loaded %d segments from %q", len(segments), path)

	fyneApp := app.NewWithID("demotimer")
	timer := engine.New(segments, engine.Options{
		HoldDuration: cfg.Hold(),
		StartPaused:  true,
		StartMuted:   cfg.Mute,
		TrackElapsed: cfg.TrackElapsed,
		Beeper:       bell{},
	})

	w := newWindow(fyneApp, timer, path)
	go w.runTicker(cfg.FrameInterval())
	w.window.ShowAndRun()
	close(w.stopCh)
	return nil
}

func newWindow(fyneApp fyne.App, timer *engine.Timer, segmentsFile string) *Window {
	window := fyneApp.NewWindow("Demo Timer")

	nameText := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	nameText.TextStyle = fyne.TextStyle{Bold: true}
	nameText.TextSize = 24
	nameText.Alignment = fyne.TextAlignCenter

	clockText := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	clockText.TextStyle = fyne.TextStyle{Bold: true}
	clockText.TextSize = 56
	clockText.Alignment = fyne.TextAlignCenter

	statusText := canvas.NewText("PAUSED", color.NRGBA{R: 230, G: 126, B: 34, A: 255})
	statusText.TextStyle = fyne.TextStyle{Bold: true}
	statusText.TextSize = 16
	statusText.Alignment = fyne.TextAlignCenter

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	indexLabel := widget.NewLabel("")
	indexLabel.Alignment = fyne.TextAlignCenter
	demoLabel := widget.NewLabel("")
	demoLabel.Alignment = fyne.TextAlignCenter
	nextLabel := widget.NewLabel("")
	nextLabel.Alignment = fyne.TextAlignCenter
	muteLabel := widget.NewLabel("")
	muteLabel.Alignment = fyne.TextAlignCenter

	hintLabel := widget.NewLabel(controlsHint)
	hintLabel.Alignment = fyne.TextAlignCenter

	strip := newTimeline()

	content := container.NewVBox(
		indexLabel,
		container.NewCenter(nameText),
		container.NewCenter(clockText),
		progress,
		container.NewCenter(statusText),
		demoLabel,
		nextLabel,
		strip,
		muteLabel,
		hintLabel,
	)
	window.SetContent(content)
	window.Resize(fyne.NewSize(520, 360))

	w := &Window{
		app:          fyneApp,
		window:       window,
		timer:        timer,
		segmentsFile: segmentsFile,
		nameText:     nameText,
		clockText:    clockText,
		statusText:   statusText,
		progress:     progress,
		strip:        strip,
		indexLabel:   indexLabel,
		demoLabel:    demoLabel,
		nextLabel:    nextLabel,
		muteLabel:    muteLabel,
		hintLabel:    hintLabel,
		stopCh:       make(chan struct{}),
	}

	window.Canvas().SetOnTypedRune(w.handleRune)
	window.Canvas().SetOnTypedKey(w.handleKey)

	w.render(timer.Snapshot(), timer.Segments())
	return w
}

func (w *Window) runTicker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-w.stopCh:
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if dt < 0 {
				dt = 0
			}
			w.mu.Lock()
			w.timer.Tick(dt)
			snap := w.timer.Snapshot()
			segments := w.timer.Segments()
			w.mu.Unlock()
			fyne.Do(func() {
				w.render(snap, segments)
			})
		}
	}
}

func (w *Window) handleRune(r rune) {
	switch r {
	case 'n', 'N':
		w.apply(engine.CmdNext)
	case 'p', 'P':
		w.apply(engine.CmdPrevious)
	case '+', '=':
		w.apply(engine.CmdIncreaseDuration)
	case '-', '_':
		w.apply(engine.CmdDecreaseDuration)
	case 'm', 'M':
		w.apply(engine.CmdMuteToggle)
	case 'e', 'E':
		w.toggleEditor()
	case 'q', 'Q':
		w.window.Close()
	}
}

func (w *Window) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace:
		w.apply(engine.CmdPauseToggle)
	case fyne.KeyEscape:
		if w.editor != nil {
			w.closeEditor()
		}
	}
}

func (w *Window) apply(cmd engine.Command) {
	w.mu.Lock()
	w.timer.Apply(cmd)
	snap := w.timer.Snapshot()
	segments := w.timer.Segments()
	w.mu.Unlock()
	w.render(snap, segments)
}

func (w *Window) render(snap engine.Snapshot, segments []segment.Segment) {
	if snap.Editing {
		return
	}
	w.strip.SetState(segments, snap)
	if snap.Done {
		w.renderSummary(snap)
		return
	}
	if w.summaryShown {
		w.summaryShown = false
		w.hintLabel.SetText(controlsHint)
	}

	w.indexLabel.SetText(fmt.Sprintf("Segment %d of %d", snap.Index+1, snap.Total))
	w.nameText.Text = snap.Name
	w.nameText.Refresh()
	w.clockText.Text = segment.FormatClock(snap.Remaining)
	w.clockText.Refresh()
	w.progress.SetValue(snap.Fraction)

	w.statusText.Text = string(snap.Status)
	switch snap.Status {
	case engine.StatusRunning:
		w.statusText.Color = color.NRGBA{R: 46, G: 204, B: 113, A: 255}
	case engine.StatusPaused:
		w.statusText.Color = color.NRGBA{R: 230, G: 126, B: 34, A: 255}
	case engine.StatusCompleted:
		w.statusText.Color = color.NRGBA{R: 231, G: 76, B: 60, A: 255}
	}
	w.statusText.Refresh()

	w.demoLabel.SetText(fmt.Sprintf("%s <- %s  |  Demo left: %s  |  Elapsed: %s",
		segment.FormatClock(snap.Remaining), segment.FormatClock(snap.Duration),
		segment.FormatClock(snap.DemoLeft), segment.FormatClock(snap.Elapsed)))

	if snap.NextName != "" {
		w.nextLabel.SetText(fmt.Sprintf("Next: %s (%s)", snap.NextName, segment.FormatClock(snap.NextDuration)))
	} else {
		w.nextLabel.SetText("Last segment")
	}

	if snap.Muted {
		w.muteLabel.SetText("muted")
	} else {
		w.muteLabel.SetText("")
	}
}

func (w *Window) renderSummary(snap engine.Snapshot) {
	if w.summaryShown {
		return
	}
	w.summaryShown = true

	w.indexLabel.SetText("")
	w.nameText.Text = "All segments complete"
	w.nameText.Refresh()
	w.clockText.Text = segment.FormatClock(snap.PlannedTotal)
	w.clockText.Refresh()
	w.progress.SetValue(1.0)
	w.statusText.Text = string(engine.StatusCompleted)
	w.statusText.Color = color.NRGBA{R: 46, G: 204, B: 113, A: 255}
	w.statusText.Refresh()

	if snap.Elapsed > 0 {
		delta := snap.Elapsed - snap.PlannedTotal
		sign := "+"
		if delta < 0 {
			sign = "-"
			delta = -delta
		}
		w.demoLabel.SetText(fmt.Sprintf("Elapsed %s (%s%s vs plan)",
			segment.FormatClock(snap.Elapsed), sign, segment.FormatClock(delta)))
	} else {
		w.demoLabel.SetText("")
	}
	w.nextLabel.SetText("")
	w.hintLabel.SetText("e: edit  q: quit")
}

func (w *Window) toggleEditor() {
	if w.editor != nil {
		w.closeEditor()
		return
	}
	w.mu.Lock()
	w.timer.Apply(engine.CmdEditToggle)
	editing := w.timer.Editing()
	segments := w.timer.Segments()
	w.mu.Unlock()
	if !editing {
		return
	}
	debug.Logf("gui: opening segment editor")
	w.editor = newEditor(w, segments)
	w.editor.show()
}

func (w *Window) closeEditor() {
	if w.editor == nil {
		return
	}
	w.editor.close()
	w.editor = nil
	w.mu.Lock()
	w.timer.Apply(engine.CmdEditToggle)
	snap := w.timer.Snapshot()
	segments := w.timer.Segments()
	w.mu.Unlock()
	w.render(snap, segments)
}
