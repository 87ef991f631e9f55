package reed

import "math"

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout the
// API. Scene, screen, and local positions all use it.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// IsNaN reports whether either component is NaN. Platform backends use NaN
// to mean "position unknown".
func (v Vec2) IsNaN() bool { return math.IsNaN(v.X) || math.IsNaN(v.Y) }

// NaNVec2 returns the "position unknown" sentinel.
func NaNVec2() Vec2 { return Vec2{math.NaN(), math.NaN()} }

// EventType identifies a kind of delivered event.
type EventType uint8

const (
	EventNone EventType = iota

	EventTouchPressed    // a touch point made contact
	EventTouchMoved      // a live touch point moved
	EventTouchStationary // a live touch point was reported without moving
	EventTouchReleased   // a touch point lifted

	EventMousePressed  // a mouse button went down
	EventMouseReleased // a mouse button went up
	EventMouseDragged  // the mouse moved with a button held
	EventMouseMoved    // the mouse moved with no button held
	EventMouseEntered  // the mouse entered a node
	EventMouseExited   // the mouse left a node
	EventMouseClicked  // press and release over the same node without a drag
	EventDragDetected  // a press-drag sequence was promoted to a drag gesture

	EventScrollStarted    // scroll gesture began
	EventScroll           // scroll increment
	EventScrollFinished   // scroll gesture ended
	EventZoomStarted      // zoom gesture began
	EventZoom             // zoom increment
	EventZoomFinished     // zoom gesture ended
	EventRotationStarted  // rotate gesture began
	EventRotate           // rotate increment
	EventRotationFinished // rotate gesture ended
	EventSwipeLeft        // discrete swipe towards -X
	EventSwipeRight       // discrete swipe towards +X
	EventSwipeUp          // discrete swipe towards -Y
	EventSwipeDown        // discrete swipe towards +Y

	EventDragEntered       // drag entered this exact node
	EventDragExited        // drag left this exact node
	EventDragEnteredTarget // drag entered this node or a descendant (bubbles)
	EventDragExitedTarget  // drag left this node or a descendant (bubbles)
	EventDragOver          // drag moved over a node
	EventDragDropped       // drag was released over a node
	EventDragDone          // drag-and-drop finished, delivered to the source

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EventNone:              "None",
	EventTouchPressed:      "TouchPressed",
	EventTouchMoved:        "TouchMoved",
	EventTouchStationary:   "TouchStationary",
	EventTouchReleased:     "TouchReleased",
	EventMousePressed:      "MousePressed",
	EventMouseReleased:     "MouseReleased",
	EventMouseDragged:      "MouseDragged",
	EventMouseMoved:        "MouseMoved",
	EventMouseEntered:      "MouseEntered",
	EventMouseExited:       "MouseExited",
	EventMouseClicked:      "MouseClicked",
	EventDragDetected:      "DragDetected",
	EventScrollStarted:     "ScrollStarted",
	EventScroll:            "Scroll",
	EventScrollFinished:    "ScrollFinished",
	EventZoomStarted:       "ZoomStarted",
	EventZoom:              "Zoom",
	EventZoomFinished:      "ZoomFinished",
	EventRotationStarted:   "RotationStarted",
	EventRotate:            "Rotate",
	EventRotationFinished:  "RotationFinished",
	EventSwipeLeft:         "SwipeLeft",
	EventSwipeRight:        "SwipeRight",
	EventSwipeUp:           "SwipeUp",
	EventSwipeDown:         "SwipeDown",
	EventDragEntered:       "DragEntered",
	EventDragExited:        "DragExited",
	EventDragEnteredTarget: "DragEnteredTarget",
	EventDragExitedTarget:  "DragExitedTarget",
	EventDragOver:          "DragOver",
	EventDragDropped:       "DragDropped",
	EventDragDone:          "DragDone",
}

func (t EventType) String() string {
	if t < eventTypeCount {
		return eventTypeNames[t]
	}
	return "EventType(?)"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// TouchState is the per-frame state of a touch point.
type TouchState uint8

const (
	TouchPressed    TouchState = iota // first frame of a contact
	TouchMoved                        // contact moved since the last frame
	TouchStationary                   // contact reported without moving
	TouchReleased                     // last frame of a contact
)

func (s TouchState) String() string {
	switch s {
	case TouchPressed:
		return "pressed"
	case TouchMoved:
		return "moved"
	case TouchStationary:
		return "stationary"
	case TouchReleased:
		return "released"
	}
	return "unknown"
}

func (s TouchState) eventType() EventType {
	return EventTouchPressed + EventType(s)
}

// GesturePhase is the phase of a continuous gesture sample, and the state of
// a gesture recognizer.
type GesturePhase uint8

const (
	GestureIdle     GesturePhase = iota // no gesture in progress
	GestureStarted                      // the first sample of a gesture
	GestureUpdating                     // an increment
	GestureFinished                     // contact ended
)

// GestureKind selects a continuous gesture recognizer.
type GestureKind uint8

const (
	GestureScroll GestureKind = iota
	GestureZoom
	GestureRotate
	GestureSwipe
)

func (k GestureKind) String() string {
	switch k {
	case GestureScroll:
		return "scroll"
	case GestureZoom:
		return "zoom"
	case GestureRotate:
		return "rotate"
	case GestureSwipe:
		return "swipe"
	}
	return "unknown"
}

// SwipeDirection is the dominant direction of a swipe.
type SwipeDirection uint8

const (
	SwipeLeft SwipeDirection = iota
	SwipeRight
	SwipeUp
	SwipeDown
)

func (d SwipeDirection) eventType() EventType {
	return EventSwipeLeft + EventType(d)
}
