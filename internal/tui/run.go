package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"demotimer/internal/config"
	"demotimer/internal/debug"
	"demotimer/internal/engine"
	"demotimer/internal/segment"
)

// bell plays the terminal bell. bubbletea owns stdout, so the bell goes
// to stderr.
type bell struct{}

func (bell) Beep() {
	fmt.Fprint(os.Stderr, "\a")
}

// Run loads the segment list, builds the engine and drives the terminal
// shell until the user quits.
func Run(cfg *config.Config) error {
	path := segment.FindFile(cfg.SegmentsFile)
	segments := segment.LoadOrDefault(path)
	debug.Logf("tui: loaded %d segments from %q", len(segments), path)

	timer := engine.New(segments, engine.Options{
		HoldDuration: cfg.Hold(),
		StartPaused:  cfg.StartPaused,
		StartMuted:   cfg.Mute,
		TrackElapsed: cfg.TrackElapsed,
		Beeper:       bell{},
	})

	m := NewModel(timer, path, cfg.TickInterval())
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal shell: %w", err)
	}
	return nil
}
