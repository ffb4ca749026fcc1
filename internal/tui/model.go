// Package tui implements the terminal shell using bubbletea.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"

	"demotimer/internal/engine"
)

// Model is the bubbletea model for the terminal shell.
type Model struct {
	timer        *engine.Timer
	segmentsFile string
	tickInterval time.Duration

	bar    progress.Model
	keys   keyMap
	help   help.Model
	editor *editorState

	width    int
	height   int
	lastTick time.Time
	quitting bool
}

// NewModel creates a Model around an engine Timer. segmentsFile is the
// save destination for the editor.
func NewModel(timer *engine.Timer, segmentsFile string, tickInterval time.Duration) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return Model{
		timer:        timer,
		segmentsFile: segmentsFile,
		tickInterval: tickInterval,
		bar:          bar,
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
}

// tickMsg carries the wall-clock time of a poll tick.
type tickMsg time.Time
