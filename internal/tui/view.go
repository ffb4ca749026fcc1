package tui

import (
	"fmt"
	"strings"

	"demotimer/internal/engine"
	"demotimer/internal/segment"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	if m.editor != nil {
		return boxStyle.Render(m.editor.view(m.timer, max(40, m.bar.Width)))
	}

	snap := m.timer.Snapshot()
	if snap.Done {
		return boxStyle.Render(m.renderSummary(snap))
	}
	return boxStyle.Render(m.renderTimer(snap))
}

func (m Model) renderTimer(snap engine.Snapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DEMO TIMER"))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Segment %d of %d", snap.Index+1, snap.Total)))
	b.WriteString("\n")
	b.WriteString(segmentStyle.Render(snap.Name))
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(snap.Fraction))
	b.WriteString("\n\n")

	b.WriteString(valueStyle.Render(segment.FormatClock(snap.Remaining)))
	b.WriteString(labelStyle.Render(" <- "))
	b.WriteString(valueStyle.Render(segment.FormatClock(snap.Duration)))
	b.WriteString("  ")
	b.WriteString(statusIndicator(snap.Status))
	if snap.Muted {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render("MUTED"))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Demo left: "))
	b.WriteString(valueStyle.Render(segment.FormatClock(snap.DemoLeft)))
	b.WriteString("\n")

	if snap.NextName != "" {
		b.WriteString(labelStyle.Render("Next: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%s)", snap.NextName, segment.FormatClock(snap.NextDuration))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderSummary(snap engine.Snapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DEMO TIMER"))
	b.WriteString("\n")
	b.WriteString(runningStyle.Render("✓ All segments complete"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Planned: "))
	b.WriteString(valueStyle.Render(segment.FormatClock(snap.PlannedTotal)))
	b.WriteString("\n")

	if snap.Elapsed > 0 {
		b.WriteString(labelStyle.Render("Elapsed: "))
		b.WriteString(valueStyle.Render(segment.FormatClock(snap.Elapsed)))
		b.WriteString("\n")

		delta := snap.Elapsed - snap.PlannedTotal
		sign := "+"
		if delta < 0 {
			sign = "-"
			delta = -delta
		}
		b.WriteString(labelStyle.Render("Delta:   "))
		b.WriteString(valueStyle.Render(sign + segment.FormatClock(delta)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("e: edit • q: quit"))

	return b.String()
}

func statusIndicator(status engine.Status) string {
	switch status {
	case engine.StatusRunning:
		return runningStyle.Render("[RUNNING]")
	case engine.StatusPaused:
		return pausedStyle.Render("[PAUSED]")
	case engine.StatusCompleted:
		return completedStyle.Render("[COMPLETED]")
	default:
		return ""
	}
}
