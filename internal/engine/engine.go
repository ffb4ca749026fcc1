// Package engine implements the segment-timing state machine shared by
// both presentation shells. It is driven by an external tick+command
// loop and holds no I/O references beyond the completion signal.
package engine

import (
	"time"

	"demotimer/internal/segment"
)

const (
	// MinDuration is the floor a live decrease can cut the active
	// segment's duration to.
	MinDuration = 5 * time.Second

	// AdjustStep is the amount a live increase/decrease moves the
	// active segment's duration by.
	AdjustStep = 10 * time.Second

	// DefaultHold is the window after a segment completes during which
	// the shells flash COMPLETED before the timer auto-advances.
	DefaultHold = 600 * time.Millisecond
)

// Beeper plays the completion/adjustment signal. Implementations must
// be cheap and non-blocking; the engine invokes it synchronously from
// the tick loop.
type Beeper interface {
	Beep()
}

// Options configures a Timer. The zero value is usable: hold defaults
// to DefaultHold and the clock to time.Now.
type Options struct {
	// HoldDuration is the completion hold window; 0 means DefaultHold.
	HoldDuration time.Duration

	// StartPaused starts the timer paused (graphical shell profile).
	StartPaused bool

	// StartMuted starts with the signal muted.
	StartMuted bool

	// TrackElapsed enables wall-clock elapsed-including-pauses
	// bookkeeping, stamped on the first un-pause.
	TrackElapsed bool

	// Beeper receives the completion signal; nil disables it.
	Beeper Beeper

	// Now overrides the wall clock, for tests.
	Now func() time.Time
}

// Mode distinguishes the timing loop from the segment editor sub-mode.
type Mode int

const (
	ModeTiming Mode = iota
	ModeEditing
)

// Timer is the segment-timing engine. It is not safe for concurrent
// use; one control loop owns it exclusively.
type Timer struct {
	segments  []segment.Segment
	index     int
	duration  time.Duration
	remaining time.Duration
	paused    bool
	muted     bool
	mode      Mode
	holdUntil time.Time

	demoStarted bool
	startedAt   time.Time
	endedAt     time.Time

	opts Options
	now  func() time.Time
}

// New creates a Timer positioned at the first segment.
func New(segments []segment.Segment, opts Options) *Timer {
	if opts.HoldDuration <= 0 {
		opts.HoldDuration = DefaultHold
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	t := &Timer{
		segments: append([]segment.Segment(nil), segments...),
		paused:   opts.StartPaused,
		muted:    opts.StartMuted,
		opts:     opts,
		now:      now,
	}
	if len(t.segments) > 0 {
		t.duration = t.segments[0].Duration
		t.remaining = t.duration
	}
	return t
}

// Tick advances the countdown by dt of wall-clock time. It is a no-op
// when there are no segments, in the terminal state, while editing, or
// for dt <= 0, so irregular scheduling and dt=0 re-entry are safe.
func (t *Timer) Tick(dt time.Duration) {
	if len(t.segments) == 0 || t.mode == ModeEditing {
		return
	}
	now := t.now()

	if t.holdPending() {
		if now.Before(t.holdUntil) {
			return
		}
		t.advance(now)
		return
	}

	if t.index >= len(t.segments) || dt <= 0 {
		return
	}
	if !t.paused {
		t.remaining -= dt
	}
	if t.remaining <= 0 {
		t.armHold(now)
	}
}

// advance performs the post-hold transition: either loads the next
// segment or enters the terminal all-complete state.
func (t *Timer) advance(now time.Time) {
	t.holdUntil = time.Time{}
	t.index++
	if t.index >= len(t.segments) {
		t.index = len(t.segments)
		if t.demoStarted && t.endedAt.IsZero() {
			t.endedAt = now
		}
		return
	}
	t.duration = t.segments[t.index].Duration
	t.remaining = t.duration
	t.paused = false
}

// armHold plays the completion signal and opens the hold window.
// At most one hold is pending at a time.
func (t *Timer) armHold(now time.Time) {
	if t.holdPending() {
		return
	}
	t.beep()
	t.holdUntil = now.Add(t.opts.HoldDuration)
}

func (t *Timer) holdPending() bool {
	return !t.holdUntil.IsZero()
}

func (t *Timer) beep() {
	if t.muted || t.opts.Beeper == nil {
		return
	}
	t.opts.Beeper.Beep()
}

// Segments returns a copy of the current segment list.
func (t *Timer) Segments() []segment.Segment {
	return append([]segment.Segment(nil), t.segments...)
}

// Editing reports whether the editor sub-mode is active.
func (t *Timer) Editing() bool {
	return t.mode == ModeEditing
}
