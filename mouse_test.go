package reed

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func pointer(s *Scene, x, y float64, pressed bool) {
	s.ProcessPointer(Vec2{x, y}, Vec2{x, y}, pressed, MouseButtonLeft, 0)
}

// recordMouse logs "Type@source" for every mouse event reaching nodes.
func recordMouse(nodes ...*Node) *[]string {
	var log []string
	for _, n := range nodes {
		n.OnMouse = func(e *MouseEvent) {
			log = append(log, fmt.Sprintf("%s@%s", e.Type, e.Source.Name))
		}
	}
	return &log
}

func TestMouseEnterExit(t *testing.T) {
	s, left, right := touchScene()
	log := recordMouse(left, right)

	pointer(s, 50, 50, false)
	pointer(s, 60, 50, false)
	pointer(s, 250, 50, false)

	want := []string{
		"MouseEntered@left",
		"MouseMoved@left",
		"MouseMoved@left",
		"MouseExited@left",
		"MouseEntered@right",
		"MouseMoved@right",
	}
	if !slices.Equal(*log, want) {
		t.Errorf("log = %v\nwant  %v", *log, want)
	}
}

func TestMouseClick(t *testing.T) {
	tests := []struct {
		name      string
		path      []Vec2
		wantClick bool
	}{
		{"in place", []Vec2{{10, 10}, {10, 10}}, true},
		{"within hysteresis", []Vec2{{10, 10}, {13, 10}, {13, 10}}, true},
		{"after a drag", []Vec2{{10, 10}, {40, 10}, {40, 10}}, false},
		{"released over another node", []Vec2{{10, 10}, {250, 10}, {250, 10}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, left, _ := touchScene()
			var clicks, releases int
			left.OnMouse = func(e *MouseEvent) {
				switch e.Type {
				case EventMouseClicked:
					clicks++
				case EventMouseReleased:
					releases++
				}
			}
			last := len(tt.path) - 1
			for i, p := range tt.path {
				pointer(s, p.X, p.Y, i < last)
			}
			if releases != 1 {
				t.Errorf("press target got %d releases, want 1", releases)
			}
			if got := clicks == 1; got != tt.wantClick {
				t.Errorf("clicked = %v, want %v", got, tt.wantClick)
			}
		})
	}
}

func TestMouseDraggedGoesToPressTarget(t *testing.T) {
	s, left, right := touchScene()
	log := recordMouse(left, right)

	pointer(s, 50, 50, true)
	pointer(s, 250, 50, true)
	pointer(s, 250, 50, false)

	var dragged []string
	for _, l := range *log {
		if l == "MouseDragged@left" || l == "MouseDragged@right" {
			dragged = append(dragged, l)
		}
	}
	if !slices.Equal(dragged, []string{"MouseDragged@left"}) {
		t.Errorf("dragged = %v", dragged)
	}
	if !slices.Contains(*log, "MouseReleased@left") {
		t.Errorf("release missing from press target: %v", *log)
	}
}

func TestMouseStillSincePress(t *testing.T) {
	s, left, _ := touchScene()
	var still []bool
	left.OnMouse = func(e *MouseEvent) {
		if e.Type == EventMouseDragged || e.Type == EventMouseReleased {
			still = append(still, e.StillSincePress)
		}
	}
	pointer(s, 10, 10, true)
	pointer(s, 12, 10, true)
	pointer(s, 30, 10, true)
	pointer(s, 12, 10, true)
	pointer(s, 12, 10, false)

	want := []bool{true, false, false, false}
	if !slices.Equal(still, want) {
		t.Errorf("StillSincePress = %v, want %v", still, want)
	}
}

func TestCapturePointer(t *testing.T) {
	s, left, right := touchScene()
	log := recordMouse(left, right)

	s.CapturePointer(right)
	pointer(s, 50, 50, true)
	pointer(s, 50, 50, false)

	for _, l := range *log {
		if strings.HasSuffix(l, "@left") {
			t.Errorf("captured pointer reached left: %v", *log)
			break
		}
	}
	if !slices.Contains(*log, "MouseClicked@right") {
		t.Errorf("captured node missed the click: %v", *log)
	}
	if s.captured != nil {
		t.Error("capture should end with the release")
	}
}

func TestSceneMouseHandlerRemove(t *testing.T) {
	s, _, _ := touchScene()
	var n int
	h := s.OnMouse(func(e *MouseEvent) { n++ })
	pointer(s, 50, 50, false)
	if n == 0 {
		t.Fatal("scene handler not called")
	}
	h.Remove()
	got := n
	pointer(s, 60, 50, false)
	if n != got {
		t.Error("removed handler still called")
	}
	h.Remove()
}

func TestMouseEventLocalPosition(t *testing.T) {
	s, _, right := touchScene()
	var local Vec2
	right.OnMouse = func(e *MouseEvent) {
		if e.Type == EventMousePressed {
			local = e.LocalPosition()
		}
	}
	pointer(s, 230, 40, true)
	if local != (Vec2{30, 40}) {
		t.Errorf("local = %v, want (30, 40)", local)
	}
}

func TestMousePressCancelsInertia(t *testing.T) {
	s, _ := padScene()
	flingScroll(t, s)
	if !s.inertia.active() {
		t.Fatal("expected inertia")
	}
	pointer(s, 10, 10, true)
	if s.inertia.active() {
		t.Error("mouse press should cancel inertia")
	}
}
