package engine

import (
	"fmt"
	"time"

	"demotimer/internal/segment"
)

// Command is a discrete user instruction applied between ticks.
type Command int

const (
	CmdPauseToggle Command = iota
	CmdNext
	CmdPrevious
	CmdIncreaseDuration
	CmdDecreaseDuration
	CmdMuteToggle
	CmdEditToggle
	CmdQuit
)

// Apply dispatches a command. While a completion hold is pending every
// command except CmdQuit is suppressed; in the terminal state only
// CmdQuit and CmdEditToggle have effect. CmdQuit itself is a shell
// concern and leaves the engine untouched.
func (t *Timer) Apply(cmd Command) {
	if cmd == CmdQuit {
		return
	}
	if t.holdPending() && t.now().Before(t.holdUntil) {
		return
	}
	if t.index >= len(t.segments) && cmd != CmdEditToggle {
		return
	}

	switch cmd {
	case CmdPauseToggle:
		t.paused = !t.paused
		if !t.paused && t.opts.TrackElapsed && !t.demoStarted {
			t.demoStarted = true
			t.startedAt = t.now()
		}

	case CmdNext:
		// Force completion regardless of remaining time.
		t.remaining = 0
		t.armHold(t.now())

	case CmdPrevious:
		if t.index == 0 {
			return
		}
		t.index--
		// The original planned duration, discarding live adjustments.
		t.duration = t.segments[t.index].Duration
		t.remaining = t.duration
		t.paused = false
		t.holdUntil = time.Time{}
		t.beep()

	case CmdIncreaseDuration:
		t.duration += AdjustStep
		t.remaining += AdjustStep
		t.beep()

	case CmdDecreaseDuration:
		if t.duration <= MinDuration {
			return
		}
		cut := AdjustStep
		if room := t.duration - MinDuration; cut > room {
			cut = room
		}
		t.duration -= cut
		if t.remaining > t.duration {
			t.remaining = t.duration
		}
		t.beep()

	case CmdMuteToggle:
		t.muted = !t.muted

	case CmdEditToggle:
		if t.mode == ModeEditing {
			t.mode = ModeTiming
		} else {
			t.mode = ModeEditing
			t.paused = true
		}
	}
}

// SetSegment replaces the segment at i. Editing the active segment
// adopts the new planned duration and clamps remaining down to it.
func (t *Timer) SetSegment(i int, seg segment.Segment) error {
	if i < 0 || i >= len(t.segments) {
		return fmt.Errorf("segment index %d out of range", i)
	}
	t.segments[i] = seg
	if i == t.index {
		t.duration = seg.Duration
		if t.remaining > t.duration {
			t.remaining = t.duration
		}
	}
	return nil
}

// InsertSegment inserts a segment at position i (clamped to the list
// bounds). Inserting at or before the active segment shifts the active
// index so the running segment is unchanged.
func (t *Timer) InsertSegment(i int, seg segment.Segment) {
	if i < 0 {
		i = 0
	}
	if i > len(t.segments) {
		i = len(t.segments)
	}
	t.segments = append(t.segments, segment.Segment{})
	copy(t.segments[i+1:], t.segments[i:])
	t.segments[i] = seg
	if i <= t.index && t.index < len(t.segments) {
		t.index++
	}
}

// DeleteSegment removes the segment at i. It refuses to empty the
// list. Deleting the active segment reloads whichever segment lands at
// the (clamped) current position and pauses the countdown; deleting an
// earlier segment shifts the active index down.
func (t *Timer) DeleteSegment(i int) error {
	if i < 0 || i >= len(t.segments) {
		return fmt.Errorf("segment index %d out of range", i)
	}
	if len(t.segments) == 1 {
		return fmt.Errorf("cannot delete the last segment")
	}
	wasCurrent := i == t.index
	t.segments = append(t.segments[:i], t.segments[i+1:]...)
	if i < t.index {
		t.index--
	}
	if t.index > len(t.segments)-1 {
		t.index = len(t.segments) - 1
		wasCurrent = true
	}
	if wasCurrent {
		t.duration = t.segments[t.index].Duration
		t.remaining = t.duration
		t.paused = true
		t.holdUntil = time.Time{}
	}
	return nil
}
