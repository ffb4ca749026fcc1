package gui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"demotimer/internal/engine"
	"demotimer/internal/segment"
)

var (
	timelineBackground = color.NRGBA{R: 30, G: 30, B: 38, A: 255}
	timelineDone       = color.NRGBA{R: 96, G: 96, B: 108, A: 255}
	timelineCurrent    = color.NRGBA{R: 70, G: 92, B: 124, A: 255}
	timelineFuture     = color.NRGBA{R: 50, G: 50, B: 62, A: 255}
	timelineFill       = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	timelineMarker     = color.NRGBA{R: 255, G: 255, B: 255, A: 230}
)

const (
	timelineGap      float32 = 3
	timelineMinPxSec float32 = 4
)

// timeline is the whole-demo position strip: one proportional block per
// segment, an inner progress fill on the active one, and a position
// marker. When the strip is wider than the viewport it scrolls to keep
// the marker centered. State is only mutated on the fyne main thread.
type timeline struct {
	widget.BaseWidget

	segments []segment.Segment
	index    int
	// elapsedInCurrent is how far into the active segment the countdown
	// has progressed, against its effective (live-adjusted) duration.
	elapsedInCurrent time.Duration
}

func newTimeline() *timeline {
	t := &timeline{}
	t.ExtendBaseWidget(t)
	return t
}

// SetState feeds the timeline the current segment list and position.
func (t *timeline) SetState(segments []segment.Segment, snap engine.Snapshot) {
	t.segments = segments
	t.index = snap.Index
	t.elapsedInCurrent = 0
	if snap.Index < len(segments) {
		remaining := snap.Remaining
		if remaining < 0 {
			remaining = 0
		}
		elapsed := snap.Duration - remaining
		if elapsed < 0 {
			elapsed = 0
		}
		if elapsed > snap.Duration {
			elapsed = snap.Duration
		}
		t.elapsedInCurrent = elapsed
	}
	t.Refresh()
}

func (t *timeline) CreateRenderer() fyne.WidgetRenderer {
	r := &timelineRenderer{
		timeline:   t,
		background: canvas.NewRectangle(timelineBackground),
		fill:       canvas.NewRectangle(timelineFill),
		marker:     canvas.NewLine(timelineMarker),
	}
	r.background.CornerRadius = 6
	r.fill.CornerRadius = 4
	r.marker.StrokeWidth = 2
	r.rebuild()
	return r
}

type timelineRenderer struct {
	timeline   *timeline
	background *canvas.Rectangle
	blocks     []*canvas.Rectangle
	fill       *canvas.Rectangle
	marker     *canvas.Line
}

func (r *timelineRenderer) MinSize() fyne.Size {
	return fyne.NewSize(240, 48)
}

func (r *timelineRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.blocks)+3)
	objects = append(objects, r.background)
	for _, b := range r.blocks {
		objects = append(objects, b)
	}
	return append(objects, r.fill, r.marker)
}

func (r *timelineRenderer) Destroy() {}

func (r *timelineRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.timeline.Size())
	canvas.Refresh(r.timeline)
}

// rebuild syncs one block per segment and assigns the done/current/
// future colors.
func (r *timelineRenderer) rebuild() {
	t := r.timeline
	for len(r.blocks) < len(t.segments) {
		block := canvas.NewRectangle(timelineFuture)
		block.CornerRadius = 4
		r.blocks = append(r.blocks, block)
	}
	r.blocks = r.blocks[:min(len(r.blocks), len(t.segments))]

	for i, block := range r.blocks {
		switch {
		case i < t.index:
			block.FillColor = timelineDone
		case i == t.index:
			block.FillColor = timelineCurrent
		default:
			block.FillColor = timelineFuture
		}
	}
}

func (r *timelineRenderer) Layout(size fyne.Size) {
	r.background.Move(fyne.NewPos(0, 0))
	r.background.Resize(size)

	t := r.timeline
	totalSecs := float32(segment.Total(t.segments).Seconds())
	if len(t.segments) == 0 || totalSecs <= 0 {
		for _, b := range r.blocks {
			b.Hide()
		}
		r.fill.Hide()
		r.marker.Hide()
		return
	}

	gaps := timelineGap * float32(len(t.segments)-1)
	pxPerSec := (size.Width - gaps) / totalSecs
	if pxPerSec < timelineMinPxSec {
		pxPerSec = timelineMinPxSec
	}
	contentWidth := totalSecs*pxPerSec + gaps

	elapsedInCurrent := float32(t.elapsedInCurrent.Seconds())
	elapsedTotal := elapsedInCurrent
	for _, s := range t.segments[:min(t.index, len(t.segments))] {
		elapsedTotal += float32(s.Duration.Seconds())
	}

	// Keep the position marker centered once the strip overflows.
	scroll := elapsedTotal*pxPerSec - size.Width/2
	maxScroll := contentWidth - size.Width
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll < 0 {
		scroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}

	x := -scroll
	r.fill.Hide()
	for i, block := range r.blocks {
		segWidth := float32(t.segments[i].Duration.Seconds()) * pxPerSec
		if segWidth < 1 {
			segWidth = 1
		}
		r.placeClipped(block, x, 4, segWidth, size.Height-8, size.Width)

		if i == t.index {
			frac := elapsedInCurrent / float32(t.segments[i].Duration.Seconds())
			if frac < 0 {
				frac = 0
			}
			if frac > 1 {
				frac = 1
			}
			fillWidth := (segWidth - 4) * frac
			if fillWidth > 0 {
				r.fill.Show()
				r.placeClipped(r.fill, x+2, 6, fillWidth, size.Height-12, size.Width)
			}
		}

		x += segWidth + timelineGap
	}

	markerX := -scroll + elapsedTotal*pxPerSec
	markerX += timelineGap * float32(min(t.index, len(t.segments)-1))
	if markerX < 0 {
		markerX = 0
	}
	if markerX > size.Width {
		markerX = size.Width
	}
	r.marker.Show()
	r.marker.Position1 = fyne.NewPos(markerX, 2)
	r.marker.Position2 = fyne.NewPos(markerX, size.Height-2)
	r.marker.Refresh()
}

// placeClipped positions obj at (x, y) with the given size, truncated
// to the [0, viewWidth] horizontal viewport; fully off-screen objects
// are hidden. The canvas has no clipping, so overflow is trimmed here.
func (r *timelineRenderer) placeClipped(obj fyne.CanvasObject, x, y, width, height, viewWidth float32) {
	left := x
	right := x + width
	if left < 0 {
		left = 0
	}
	if right > viewWidth {
		right = viewWidth
	}
	if right <= left {
		obj.Hide()
		return
	}
	obj.Show()
	obj.Move(fyne.NewPos(left, y))
	obj.Resize(fyne.NewSize(right-left, height))
}
