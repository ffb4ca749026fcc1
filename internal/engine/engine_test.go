package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"demotimer/internal/segment"
)

// fakeClock is an injectable wall clock advanced manually by tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type countingBeeper struct {
	beeps int
}

func (b *countingBeeper) Beep() { b.beeps++ }

func testSegments() []segment.Segment {
	return []segment.Segment{
		{Name: "A", Duration: 60 * time.Second},
		{Name: "B", Duration: 45 * time.Second},
		{Name: "C", Duration: 30 * time.Second},
	}
}

func newTestTimer(clock *fakeClock, opts Options) *Timer {
	opts.Now = clock.Now
	return New(testSegments(), opts)
}

// tickThroughHold forces the hold window to elapse and triggers the
// advance transition.
func tickThroughHold(t *Timer, clock *fakeClock) {
	clock.Advance(DefaultHold + 10*time.Millisecond)
	t.Tick(0)
}

func TestTickCountsDown(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	timer.Tick(1500 * time.Millisecond)

	snap := timer.Snapshot()
	require.Equal(t, 58500*time.Millisecond, snap.Remaining)
	require.Equal(t, StatusRunning, snap.Status)
	require.Equal(t, "A", snap.Name)
}

func TestTickWhilePausedLeavesRemainingUnchanged(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Apply(CmdPauseToggle)

	for _, dt := range []time.Duration{0, time.Millisecond, time.Second, time.Hour} {
		timer.Tick(dt)
		require.Equal(t, 60*time.Second, timer.Snapshot().Remaining)
	}
	require.Equal(t, StatusPaused, timer.Snapshot().Status)
}

func TestTickZeroIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	before := timer.Snapshot()
	for range 10 {
		timer.Tick(0)
	}
	require.Equal(t, before, timer.Snapshot())
}

func TestNaturalCompletionAdvancesAfterHold(t *testing.T) {
	clock := newFakeClock()
	beeper := &countingBeeper{}
	timer := newTestTimer(clock, Options{Beeper: beeper})

	timer.Tick(60 * time.Second)

	snap := timer.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status)
	require.Equal(t, 1, beeper.beeps)

	// Hold still active: no advance, no double beep.
	clock.Advance(100 * time.Millisecond)
	timer.Tick(100 * time.Millisecond)
	require.Equal(t, StatusCompleted, timer.Snapshot().Status)
	require.Equal(t, 0, timer.Snapshot().Index)
	require.Equal(t, 1, beeper.beeps)

	tickThroughHold(timer, clock)

	snap = timer.Snapshot()
	require.Equal(t, 1, snap.Index)
	require.Equal(t, "B", snap.Name)
	require.Equal(t, 45*time.Second, snap.Remaining)
	require.Equal(t, 45*time.Second, snap.Duration)
	require.Equal(t, StatusRunning, snap.Status)
}

func TestNextForcesCompletionAndAdvances(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	timer.Tick(10 * time.Second)
	timer.Apply(CmdNext)

	snap := timer.Snapshot()
	require.Equal(t, time.Duration(0), snap.Remaining)
	require.Equal(t, StatusCompleted, snap.Status)

	tickThroughHold(timer, clock)

	snap = timer.Snapshot()
	require.Equal(t, 1, snap.Index)
	require.Equal(t, snap.Duration, snap.Remaining)
	require.Equal(t, 45*time.Second, snap.Duration)
}

func TestNextOnLastSegmentEntersTerminalState(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	for range 3 {
		timer.Apply(CmdNext)
		tickThroughHold(timer, clock)
	}

	snap := timer.Snapshot()
	require.True(t, snap.Done)
	require.Equal(t, 3, snap.Index)
	require.Equal(t, StatusCompleted, snap.Status)

	// Terminal state: ticks and most commands are no-ops.
	timer.Tick(time.Hour)
	timer.Apply(CmdNext)
	timer.Apply(CmdPauseToggle)
	timer.Apply(CmdIncreaseDuration)
	require.Equal(t, snap, timer.Snapshot())
}

func TestCommandsSuppressedDuringHold(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Apply(CmdNext)

	timer.Apply(CmdPauseToggle)
	timer.Apply(CmdIncreaseDuration)
	timer.Apply(CmdDecreaseDuration)
	timer.Apply(CmdMuteToggle)
	timer.Apply(CmdNext)

	snap := timer.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status)
	require.Equal(t, 0, snap.Index)
	require.False(t, snap.Muted)
	require.Equal(t, 60*time.Second, snap.Duration)
}

func TestPreviousRestoresOriginalPlannedDuration(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	// Stretch segment A, then leave it.
	timer.Apply(CmdIncreaseDuration)
	require.Equal(t, 70*time.Second, timer.Snapshot().Duration)
	timer.Apply(CmdNext)
	tickThroughHold(timer, clock)
	require.Equal(t, 1, timer.Snapshot().Index)

	// Going back discards the earlier live adjustment.
	timer.Apply(CmdPrevious)

	snap := timer.Snapshot()
	require.Equal(t, 0, snap.Index)
	require.Equal(t, 60*time.Second, snap.Duration)
	require.Equal(t, 60*time.Second, snap.Remaining)
	require.Equal(t, StatusRunning, snap.Status)
}

func TestPreviousOnFirstSegmentIsNoOp(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Tick(5 * time.Second)

	timer.Apply(CmdPrevious)

	snap := timer.Snapshot()
	require.Equal(t, 0, snap.Index)
	require.Equal(t, 55*time.Second, snap.Remaining)
}

func TestPreviousCancelsPendingHold(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Apply(CmdNext)
	tickThroughHold(timer, clock)
	timer.Apply(CmdNext)

	// The hold is pending, so Previous is suppressed until it elapses;
	// after the advance, Previous jumps back and cancels nothing.
	require.Equal(t, StatusCompleted, timer.Snapshot().Status)
	tickThroughHold(timer, clock)
	timer.Apply(CmdPrevious)

	snap := timer.Snapshot()
	require.Equal(t, 1, snap.Index)
	require.Equal(t, StatusRunning, snap.Status)
	require.Equal(t, 45*time.Second, snap.Remaining)
}

func TestIncreaseDurationMovesBothBounds(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Tick(10 * time.Second)

	timer.Apply(CmdIncreaseDuration)

	snap := timer.Snapshot()
	require.Equal(t, 70*time.Second, snap.Duration)
	require.Equal(t, 60*time.Second, snap.Remaining)
}

func TestDecreaseDurationClampsCutToFloor(t *testing.T) {
	clock := newFakeClock()
	timer := New([]segment.Segment{{Name: "X", Duration: 12 * time.Second}}, Options{Now: clock.Now})

	timer.Apply(CmdDecreaseDuration)

	// The cut clamps to duration-floor = 7s, not the full 10s step.
	snap := timer.Snapshot()
	require.Equal(t, 5*time.Second, snap.Duration)
	require.LessOrEqual(t, snap.Remaining, 5*time.Second)

	// At the floor: no-op.
	timer.Apply(CmdDecreaseDuration)
	require.Equal(t, 5*time.Second, timer.Snapshot().Duration)
}

func TestDurationFloorHoldsUnderAnyAdjustmentSequence(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	cmds := []Command{
		CmdDecreaseDuration, CmdDecreaseDuration, CmdDecreaseDuration,
		CmdDecreaseDuration, CmdDecreaseDuration, CmdDecreaseDuration,
		CmdIncreaseDuration, CmdDecreaseDuration, CmdDecreaseDuration,
	}
	for _, cmd := range cmds {
		timer.Apply(cmd)
		require.GreaterOrEqual(t, timer.Snapshot().Duration, MinDuration)
	}
}

func TestDecreaseClampsRemainingDownOnly(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Tick(55 * time.Second) // remaining 5s of 60s

	timer.Apply(CmdDecreaseDuration) // duration 50s, remaining stays 5s

	snap := timer.Snapshot()
	require.Equal(t, 50*time.Second, snap.Duration)
	require.Equal(t, 5*time.Second, snap.Remaining)
}

func TestDemoLeftCeilsRemainingAndSumsLaterSegments(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	require.Equal(t, 135*time.Second, timer.Snapshot().DemoLeft)

	timer.Tick(800 * time.Millisecond) // remaining 59.2s
	require.Equal(t, 135*time.Second, timer.Snapshot().DemoLeft)

	// Move to B and run it down to 10.4s: ceil(10.4) + 30 = 41.
	timer.Apply(CmdNext)
	tickThroughHold(timer, clock)
	timer.Tick(34600 * time.Millisecond)
	require.Equal(t, 41*time.Second, timer.Snapshot().DemoLeft)
}

func TestMuteSuppressesBeepWithoutAffectingTiming(t *testing.T) {
	clock := newFakeClock()
	beeper := &countingBeeper{}
	timer := newTestTimer(clock, Options{Beeper: beeper})

	timer.Apply(CmdMuteToggle)
	timer.Tick(60 * time.Second)

	snap := timer.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status)
	require.True(t, snap.Muted)
	require.Equal(t, 0, beeper.beeps)
}

func TestEmptySegmentList(t *testing.T) {
	clock := newFakeClock()
	timer := New(nil, Options{Now: clock.Now})

	timer.Tick(time.Second)
	timer.Apply(CmdNext)
	timer.Apply(CmdPauseToggle)

	snap := timer.Snapshot()
	require.True(t, snap.Done)
	require.Equal(t, 1.0, snap.Fraction)
	require.Equal(t, time.Duration(0), snap.DemoLeft)
	require.Equal(t, 0, snap.Total)
}

func TestFractionComplete(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	require.InDelta(t, 0.0, timer.Snapshot().Fraction, 1e-9)

	timer.Tick(15 * time.Second)
	require.InDelta(t, 0.25, timer.Snapshot().Fraction, 1e-9)

	timer.Tick(46 * time.Second) // remaining negative, clamped
	require.InDelta(t, 1.0, timer.Snapshot().Fraction, 1e-9)
}

func TestWallClockElapsedIncludesPauses(t *testing.T) {
	clock := newFakeClock()
	timer := New(testSegments(), Options{
		Now:          clock.Now,
		StartPaused:  true,
		TrackElapsed: true,
	})

	require.Equal(t, time.Duration(0), timer.Snapshot().Elapsed)

	timer.Apply(CmdPauseToggle) // demo starts here
	clock.Advance(10 * time.Second)
	timer.Tick(10 * time.Second)

	timer.Apply(CmdPauseToggle) // paused, but the wall clock keeps going
	clock.Advance(5 * time.Second)
	timer.Tick(5 * time.Second)

	require.Equal(t, 15*time.Second, timer.Snapshot().Elapsed)
}

func TestElapsedFreezesAtTerminalState(t *testing.T) {
	clock := newFakeClock()
	timer := New([]segment.Segment{{Name: "only", Duration: 10 * time.Second}}, Options{
		Now:          clock.Now,
		StartPaused:  true,
		TrackElapsed: true,
	})

	timer.Apply(CmdPauseToggle)
	clock.Advance(10 * time.Second)
	timer.Tick(10 * time.Second)
	tickThroughHold(timer, clock)
	require.True(t, timer.Snapshot().Done)

	frozen := timer.Snapshot().Elapsed
	clock.Advance(time.Minute)
	require.Equal(t, frozen, timer.Snapshot().Elapsed)
}

func TestEditModeSuspendsTicking(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})

	timer.Apply(CmdEditToggle)
	require.True(t, timer.Editing())

	timer.Tick(30 * time.Second)
	require.Equal(t, 60*time.Second, timer.Snapshot().Remaining)

	timer.Apply(CmdEditToggle)
	require.False(t, timer.Editing())
	// Entering the editor paused the timer.
	require.Equal(t, StatusPaused, timer.Snapshot().Status)
}

func TestSetSegmentOnActiveClampsRemaining(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Tick(10 * time.Second) // remaining 50s

	err := timer.SetSegment(0, segment.Segment{Name: "A2", Duration: 20 * time.Second})
	require.NoError(t, err)

	snap := timer.Snapshot()
	require.Equal(t, "A2", snap.Name)
	require.Equal(t, 20*time.Second, snap.Duration)
	require.Equal(t, 20*time.Second, snap.Remaining)
}

func TestInsertSegmentBeforeActiveShiftsIndex(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Apply(CmdNext)
	tickThroughHold(timer, clock)
	require.Equal(t, 1, timer.Snapshot().Index)

	timer.InsertSegment(0, segment.Segment{Name: "Warmup", Duration: 15 * time.Second})

	snap := timer.Snapshot()
	require.Equal(t, 2, snap.Index)
	require.Equal(t, "B", snap.Name)
	require.Equal(t, 4, snap.Total)
}

func TestDeleteActiveSegmentReloadsAndPauses(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Tick(10 * time.Second)

	require.NoError(t, timer.DeleteSegment(0))

	snap := timer.Snapshot()
	require.Equal(t, 0, snap.Index)
	require.Equal(t, "B", snap.Name)
	require.Equal(t, 45*time.Second, snap.Duration)
	require.Equal(t, 45*time.Second, snap.Remaining)
	require.Equal(t, StatusPaused, snap.Status)
}

func TestDeleteEarlierSegmentShiftsIndexDown(t *testing.T) {
	clock := newFakeClock()
	timer := newTestTimer(clock, Options{})
	timer.Apply(CmdNext)
	tickThroughHold(timer, clock)
	timer.Tick(5 * time.Second)
	before := timer.Snapshot()

	require.NoError(t, timer.DeleteSegment(0))

	snap := timer.Snapshot()
	require.Equal(t, 0, snap.Index)
	require.Equal(t, "B", snap.Name)
	require.Equal(t, before.Remaining, snap.Remaining)
}

func TestDeleteLastRemainingSegmentRefused(t *testing.T) {
	clock := newFakeClock()
	timer := New([]segment.Segment{{Name: "only", Duration: 10 * time.Second}}, Options{Now: clock.Now})

	require.Error(t, timer.DeleteSegment(0))
	require.Equal(t, 1, timer.Snapshot().Total)
}
