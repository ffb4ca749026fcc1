package engine

import (
	"math"
	"time"

	"demotimer/internal/segment"
)

// Status is the engine state as presented to the shells.
type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusPaused    Status = "PAUSED"
	StatusCompleted Status = "COMPLETED"
)

// Snapshot is a renderable view of the timer. Pure data: producing one
// has no side effects, and each shell picks which fields it displays.
type Snapshot struct {
	Name      string
	Index     int
	Total     int
	Remaining time.Duration
	Duration  time.Duration

	// Fraction is the normalized progress of the active segment,
	// 1 - max(0, remaining)/duration; 1.0 when duration <= 0.
	Fraction float64

	Status  Status
	Done    bool
	Muted   bool
	Editing bool

	// DemoLeft is ceil(max(0, remaining)) plus the planned durations of
	// all strictly-later segments.
	DemoLeft time.Duration

	NextName     string
	NextDuration time.Duration
	PlannedTotal time.Duration

	// Elapsed is wall-clock time including pauses since the first
	// un-pause; zero until the demo has started.
	Elapsed time.Duration
}

// Snapshot returns the current renderable state.
func (t *Timer) Snapshot() Snapshot {
	snap := Snapshot{
		Index:        t.index,
		Total:        len(t.segments),
		Remaining:    t.remaining,
		Duration:     t.duration,
		Muted:        t.muted,
		Editing:      t.mode == ModeEditing,
		PlannedTotal: segment.Total(t.segments),
		Elapsed:      t.elapsed(),
	}

	if t.index >= len(t.segments) {
		snap.Done = true
		snap.Status = StatusCompleted
		snap.Fraction = 1.0
		return snap
	}

	snap.Name = t.segments[t.index].Name
	snap.Fraction = fraction(t.remaining, t.duration)
	snap.DemoLeft = t.demoLeft()
	switch {
	case t.holdPending():
		snap.Status = StatusCompleted
	case t.paused:
		snap.Status = StatusPaused
	default:
		snap.Status = StatusRunning
	}
	if t.index+1 < len(t.segments) {
		snap.NextName = t.segments[t.index+1].Name
		snap.NextDuration = t.segments[t.index+1].Duration
	}
	return snap
}

func fraction(remaining, duration time.Duration) float64 {
	if duration <= 0 {
		return 1.0
	}
	if remaining < 0 {
		remaining = 0
	}
	f := 1.0 - float64(remaining)/float64(duration)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// demoLeft is the total remaining time across the active and all
// subsequent segments, with the active remainder rounded up to whole
// seconds.
func (t *Timer) demoLeft() time.Duration {
	remaining := t.remaining
	if remaining < 0 {
		remaining = 0
	}
	left := time.Duration(math.Ceil(remaining.Seconds())) * time.Second
	for _, s := range t.segments[t.index+1:] {
		left += s.Duration
	}
	return left
}

func (t *Timer) elapsed() time.Duration {
	if !t.demoStarted {
		return 0
	}
	end := t.endedAt
	if end.IsZero() {
		end = t.now()
	}
	d := end.Sub(t.startedAt)
	if d < 0 {
		return 0
	}
	return d
}
