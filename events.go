package reed

import "time"

// TouchEvent is delivered once per touch point of a frame, to that point's
// target. All events of a frame share EventSetID and Points.
type TouchEvent struct {
	eventBase

	// Point is the touch point this event is about.
	Point *TouchPoint
	// Points holds every point of the frame in ascending ID order. Handlers
	// must not modify it.
	Points []*TouchPoint

	EventSetID int
	Timestamp  time.Time
}

// TouchCount returns the number of points in the frame.
func (e *TouchEvent) TouchCount() int {
	return len(e.Points)
}

// MouseEvent carries pointer data for mouse samples and for
// EventDragDetected.
type MouseEvent struct {
	eventBase

	Button         MouseButton
	ScenePosition  Vec2
	ScreenPosition Vec2
	PickResult     PickResult

	// StillSincePress is true while the pointer has not left the drag
	// hysteresis radius around the press position.
	StillSincePress bool

	dragDetect    bool
	dragDetectSet bool
	scene         *Scene
}

// LocalPosition returns the event position in the current source's space.
func (e *MouseEvent) LocalPosition() Vec2 {
	if e.Source == nil {
		return e.PickResult.Local
	}
	return e.Source.WorldToLocal(e.ScenePosition)
}

// DragDetect returns the current drag detection decision for this sample.
func (e *MouseEvent) DragDetect() bool {
	return e.dragDetect
}

// SetDragDetect overrides the drag detection decision. The override is
// sticky: later samples of the same press keep it until another explicit
// call.
func (e *MouseEvent) SetDragDetect(detect bool) {
	e.dragDetect = detect
	e.dragDetectSet = true
}

// GestureEvent carries scroll, zoom, rotate, and swipe data. Only the fields
// for the event's kind are meaningful.
type GestureEvent struct {
	eventBase

	Kind GestureKind

	// Scroll
	Delta Vec2
	Total Vec2

	// Zoom; the neutral factor is 1.
	ZoomFactor      float64
	TotalZoomFactor float64

	// Rotate, in degrees.
	Angle      float64
	TotalAngle float64

	TouchCount int
	Direct     bool
	Inertia    bool

	ScenePosition  Vec2
	ScreenPosition Vec2
	PickResult     PickResult
}

// LocalPosition returns the event position in the current source's space.
func (e *GestureEvent) LocalPosition() Vec2 {
	if e.Source == nil {
		return e.PickResult.Local
	}
	return e.Source.WorldToLocal(e.ScenePosition)
}

// DragEvent carries drag-and-drop data. AcceptTransferModes and
// SetDropCompleted are defined next to the session that reads them.
type DragEvent struct {
	eventBase

	// GestureSource is the node that started the drag.
	GestureSource *Node
	// GestureTarget is the node that accepted the previous sample, or nil.
	GestureTarget *Node

	Dragboard *Dragboard

	// TransferMode is the proposed mode for DragOver, the mode negotiated
	// by the last DragOver for DragDropped, and the result for DragDone.
	TransferMode TransferMode

	ScenePosition  Vec2
	ScreenPosition Vec2
	PickResult     PickResult

	accepted      TransferMode
	acceptor      *Node
	available     []TransferMode
	dropCompleted bool
	session       *DragSession
}

// LocalPosition returns the event position in the current source's space.
func (e *DragEvent) LocalPosition() Vec2 {
	if e.Source == nil {
		return e.PickResult.Local
	}
	return e.Source.WorldToLocal(e.ScenePosition)
}

// AcceptedTransferMode returns the mode accepted so far on this event.
func (e *DragEvent) AcceptedTransferMode() TransferMode {
	return e.accepted
}

// AcceptingNode returns the node whose handler accepted the event, or nil.
func (e *DragEvent) AcceptingNode() *Node {
	return e.acceptor
}
