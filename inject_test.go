package reed

import (
	"errors"
	"slices"
	"testing"
)

func TestInjectClick(t *testing.T) {
	s, left, _ := touchScene()
	var clicked bool
	left.OnMouse = func(e *MouseEvent) {
		if e.Type == EventMouseClicked {
			clicked = true
		}
	}

	s.InjectClick(50, 50)
	if len(s.injectQ) != 2 {
		t.Fatalf("expected 2 queued frames, got %d", len(s.injectQ))
	}

	// Frame 1: press
	s.Advance(tick)
	if len(s.injectQ) != 1 {
		t.Fatalf("expected 1 remaining frame, got %d", len(s.injectQ))
	}
	if clicked {
		t.Error("click should not fire on the press frame")
	}

	// Frame 2: release
	s.Advance(tick)
	if len(s.injectQ) != 0 {
		t.Fatalf("expected an empty queue, got %d", len(s.injectQ))
	}
	if !clicked {
		t.Error("click should fire on the release frame")
	}
}

func TestInjectDrag(t *testing.T) {
	s, _ := padScene()
	var events []EventType
	s.OnMouse(func(e *MouseEvent) {
		switch e.Type {
		case EventMousePressed, EventMouseDragged, EventDragDetected, EventMouseReleased:
			events = append(events, e.Type)
		}
	})

	// press, three interpolated moves, release
	s.InjectDrag(10, 10, 200, 200, 5)
	if len(s.injectQ) != 5 {
		t.Fatalf("expected 5 queued frames, got %d", len(s.injectQ))
	}
	if got := s.injectQ[2].pos; got != (Vec2{105, 105}) {
		t.Errorf("middle move at %v, want (105, 105)", got)
	}
	for i := 0; i < 5; i++ {
		s.Advance(tick)
	}

	want := []EventType{
		EventMousePressed,
		EventMouseDragged, EventDragDetected,
		EventMouseDragged,
		EventMouseDragged,
		EventMouseReleased,
	}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v\nwant     %v", events, want)
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	s := NewScene()
	s.InjectDrag(0, 0, 100, 100, 1)
	if len(s.injectQ) != 2 {
		t.Fatalf("expected 2 queued frames (clamped), got %d", len(s.injectQ))
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewScene()
	s.InjectPress(10, 20)
	s.InjectMove(30, 40)
	s.InjectRelease(50, 60)
	s.InjectHover(70, 80)

	want := []struct {
		pressed bool
		x       float64
	}{{true, 10}, {true, 30}, {false, 50}, {false, 70}}
	if len(s.injectQ) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(s.injectQ))
	}
	for i, w := range want {
		in := s.injectQ[i]
		if in.kind != syntheticPointer || in.pressed != w.pressed || in.pos.X != w.x {
			t.Errorf("frame %d = %+v, want pressed=%v at x=%v", i, in, w.pressed, w.x)
		}
	}
}

func TestProcessInjectedInputEmptyQueue(t *testing.T) {
	s := NewScene()
	if s.processInjectedInput() {
		t.Error("should not consume when the queue is empty")
	}
}

func TestInjectTouch(t *testing.T) {
	s, _, _ := touchScene()
	recs := recordTouches(s)

	s.InjectTouch(SyntheticTouch{ID: 900, State: TouchPressed, X: 50, Y: 50})
	s.InjectTouch(SyntheticTouch{ID: 900, State: TouchReleased, X: 250, Y: 50})
	s.Advance(tick)
	s.Advance(tick)

	if len(*recs) != 2 {
		t.Fatalf("got %d touch events, want 2", len(*recs))
	}
	// The press grabs the point, so the release still goes to left.
	for _, r := range *recs {
		if r.id != 1 || r.target != "left" {
			t.Errorf("record = %+v, want id 1 on left", r)
		}
	}
}

func TestInjectTouchProtocolError(t *testing.T) {
	s, _, _ := touchScene()
	var got error
	s.SetErrorHandler(func(err error) { got = err })

	s.InjectTouch(SyntheticTouch{ID: 5, State: TouchMoved, X: 10, Y: 10})
	s.Advance(tick)

	if !errors.Is(got, ErrProtocol) {
		t.Errorf("error = %v, want a protocol error", got)
	}
	if len(s.Touches().Live()) != 0 {
		t.Error("aborted session left live points")
	}
}

func TestInjectScroll(t *testing.T) {
	s, _, right := touchScene()
	var delta Vec2
	right.OnScroll = func(e *GestureEvent) { delta = e.Delta }

	s.InjectScroll(250, 50, 0, -40)
	s.Advance(tick)
	if delta != (Vec2{0, -40}) {
		t.Errorf("delta = %v, want (0, -40)", delta)
	}
}

func TestInjectModifiers(t *testing.T) {
	s, left, _ := touchScene()
	var mods KeyModifiers
	left.OnMouse = func(e *MouseEvent) {
		if e.Type == EventMousePressed {
			mods = e.Modifiers
		}
	}
	s.InjectModifiers(ModCtrl | ModShift)
	s.InjectPress(10, 10)
	s.Advance(tick)
	if mods != ModCtrl|ModShift {
		t.Errorf("modifiers = %b, want ctrl|shift", mods)
	}
}
