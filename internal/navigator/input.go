package navigator

import "math"

// Target is the narrow contract every input adapter feeds. *Navigator implements it.
type Target interface {
	RequestSection(target int) bool
	RequestDelta(dir Direction) bool
	Mounted() bool
}

var _ Target = (*Navigator)(nil)

// WheelAdapter maps vertical wheel deltas to relative requests.
type WheelAdapter struct {
	Target Target
}

// HandleWheel reports whether the event is owned by the navigator, in which case the
// caller must suppress native scrolling. Every wheel event is owned while the target is
// mounted, including the ones dropped during a transition.
func (a WheelAdapter) HandleWheel(deltaY float64) bool {
	if a.Target == nil || !a.Target.Mounted() {
		return false
	}
	switch {
	case deltaY > 0:
		a.Target.RequestDelta(Next)
	case deltaY < 0:
		a.Target.RequestDelta(Previous)
	}
	return true
}

// Key names follow the terminal key names used by bubbletea.
type Key string

const (
	KeyDown     Key = "down"
	KeyPageDown Key = "pgdown"
	KeyUp       Key = "up"
	KeyPageUp   Key = "pgup"
)

// KeyAdapter maps navigation keys to relative requests.
type KeyAdapter struct {
	Target Target
}

// HandleKey reports whether key was a navigation key consumed by a mounted target.
func (a KeyAdapter) HandleKey(key Key) bool {
	if a.Target == nil || !a.Target.Mounted() {
		return false
	}
	switch key {
	case KeyDown, KeyPageDown:
		a.Target.RequestDelta(Next)
	case KeyUp, KeyPageUp:
		a.Target.RequestDelta(Previous)
	default:
		return false
	}
	return true
}

// DefaultSwipeThreshold is the minimum vertical travel of a swipe, in pixels.
const DefaultSwipeThreshold = 100

// DetectSwipe classifies a gesture by its travel. Upward travel (negative dy) advances,
// downward travel goes back. Horizontal-dominant and short gestures yield 0.
func DetectSwipe(dx, dy, threshold float64) Direction {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	if math.Abs(dx) > math.Abs(dy) {
		return 0
	}
	if math.Abs(dy) < threshold {
		return 0
	}
	if dy < 0 {
		return Next
	}
	return Previous
}

// SwipeAdapter tracks one touch gesture at a time.
type SwipeAdapter struct {
	Target    Target
	Threshold float64

	tracking bool
	startX   float64
	startY   float64
}

// Begin records the start of a gesture.
func (s *SwipeAdapter) Begin(x, y float64) {
	s.tracking = true
	s.startX, s.startY = x, y
}

// Tracking reports whether a gesture is in progress.
func (s *SwipeAdapter) Tracking() bool {
	return s.tracking
}

// End finishes the gesture and reports whether it was interpreted as a section change.
// The request itself may still be dropped by the target.
func (s *SwipeAdapter) End(x, y float64) bool {
	if !s.tracking {
		return false
	}
	s.tracking = false
	if s.Target == nil || !s.Target.Mounted() {
		return false
	}
	dir := DetectSwipe(x-s.startX, y-s.startY, s.Threshold)
	if dir == 0 {
		return false
	}
	s.Target.RequestDelta(dir)
	return true
}

// Cancel drops the gesture in progress.
func (s *SwipeAdapter) Cancel() {
	s.tracking = false
}

// DotAdapter forwards indicator clicks as absolute requests.
type DotAdapter struct {
	Target Target
}

func (a DotAdapter) Click(index int) bool {
	if a.Target == nil {
		return false
	}
	return a.Target.RequestSection(index)
}
