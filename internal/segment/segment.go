// Package segment defines the named timed phases of a presentation and
// their textual list format.
package segment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Segment is a single named phase with a planned duration.
type Segment struct {
	Name     string
	Duration time.Duration
}

// Default returns the built-in segment list used when no valid
// segments file is available.
func Default() []Segment {
	return []Segment{
		{Name: "Introduction", Duration: 60 * time.Second},
		{Name: "Overview", Duration: 45 * time.Second},
		{Name: "Feature Demonstration", Duration: 90 * time.Second},
		{Name: "Technical Details", Duration: 75 * time.Second},
		{Name: "Q&A Session", Duration: 30 * time.Second},
		{Name: "Summary", Duration: 40 * time.Second},
		{Name: "Closing Remarks", Duration: 20 * time.Second},
	}
}

// Total returns the sum of planned durations.
func Total(segments []Segment) time.Duration {
	var total time.Duration
	for _, s := range segments {
		total += s.Duration
	}
	return total
}

// ParseDuration parses a duration in one of the accepted forms:
// plain integer seconds, MM:SS, or HH:MM:SS, each optionally suffixed
// with a trailing "s" or "S".
func ParseDuration(text string) (time.Duration, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(t, "s") || strings.HasSuffix(t, "S") {
		t = t[:len(t)-1]
	}
	if strings.Contains(t, ":") {
		parts := strings.Split(t, ":")
		nums := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return 0, fmt.Errorf("parse duration %q: %w", text, err)
			}
			nums = append(nums, n)
		}
		switch len(nums) {
		case 2:
			return secondsDuration(nums[0]*60 + nums[1])
		case 3:
			return secondsDuration(nums[0]*3600 + nums[1]*60 + nums[2])
		default:
			return 0, fmt.Errorf("parse duration %q: invalid time format", text)
		}
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", text, err)
	}
	return secondsDuration(n)
}

func secondsDuration(seconds int) (time.Duration, error) {
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return time.Duration(seconds) * time.Second, nil
}

// FormatClock renders a duration as MM:SS, rounding up to whole
// seconds and clamping negatives to zero. Hours spill into minutes,
// matching the on-screen countdown format.
func FormatClock(d time.Duration) string {
	seconds := int(d.Seconds())
	if d > time.Duration(seconds)*time.Second {
		seconds++ // ceil
	}
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
