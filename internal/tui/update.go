package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"demotimer/internal/debug"
	"demotimer/internal/engine"
)

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tickInterval), tea.WindowSize())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(60, max(20, m.width-14))
		m.help.Width = m.width
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		var dt time.Duration
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		if dt < 0 {
			dt = 0
		}
		m.timer.Tick(dt)
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.editor != nil {
		done, cmd := m.editor.handleKey(msg, m.timer, m.segmentsFile)
		if done {
			m.timer.Apply(engine.CmdEditToggle)
			m.editor = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.timer.Apply(engine.CmdPauseToggle)

	case key.Matches(msg, m.keys.Next):
		m.timer.Apply(engine.CmdNext)

	case key.Matches(msg, m.keys.Prev):
		m.timer.Apply(engine.CmdPrevious)

	case key.Matches(msg, m.keys.Inc):
		m.timer.Apply(engine.CmdIncreaseDuration)

	case key.Matches(msg, m.keys.Dec):
		m.timer.Apply(engine.CmdDecreaseDuration)

	case key.Matches(msg, m.keys.Mute):
		m.timer.Apply(engine.CmdMuteToggle)

	case key.Matches(msg, m.keys.Edit):
		m.timer.Apply(engine.CmdEditToggle)
		if m.timer.Editing() {
			debug.Logf("tui: opening segment editor")
			m.editor = newEditorState()
		}
	}

	return m, nil
}
