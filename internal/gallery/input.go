package gallery

import "math"

// Key is a keyboard key name as reported by the browser.
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyHome       Key = "Home"
	KeyEnd        Key = "End"
	KeyEscape     Key = "Escape"
)

// SwipeThreshold is the minimum horizontal travel, in pixels, for a touch
// gesture to count as a swipe.
const SwipeThreshold = 50.0

// Swipe is a horizontal touch gesture.
type Swipe struct {
	StartX float64
	EndX   float64
}

// Direction returns Next for a leftward swipe, Prev for a rightward one and
// false when the travel is within the threshold.
func (s Swipe) Direction() (Direction, bool) {
	diff := s.StartX - s.EndX
	if math.Abs(diff) <= SwipeThreshold {
		return 0, false
	}
	if diff > 0 {
		return Next, true
	}
	return Prev, true
}

// HandleKey applies a key press. The second result reports whether the
// browser's default action should be suppressed: true for the arrows, Home
// and End. Escape closes the viewer but keeps its default. Keys are ignored
// while the viewer is closed.
func (n *Navigator) HandleKey(st ViewerState, key Key) (ViewerState, bool) {
	if !st.Open {
		return st, false
	}
	switch key {
	case KeyEscape:
		return n.Close(st), false
	case KeyArrowLeft:
		return n.Navigate(st, Prev), true
	case KeyArrowRight:
		return n.Navigate(st, Next), true
	case KeyHome:
		return n.First(st), true
	case KeyEnd:
		return n.Last(st), true
	}
	return st, false
}

// HandleSwipe applies a touch gesture.
func (n *Navigator) HandleSwipe(st ViewerState, s Swipe) ViewerState {
	dir, ok := s.Direction()
	if !ok {
		return st
	}
	return n.Navigate(st, dir)
}
