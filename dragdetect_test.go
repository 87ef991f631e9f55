package reed

import "testing"

func countDetected(s *Scene) *int {
	var n int
	s.OnMouse(func(e *MouseEvent) {
		if e.Type == EventDragDetected {
			n++
		}
	})
	return &n
}

func TestDragDetectedByHysteresis(t *testing.T) {
	s, left, _ := touchScene()
	n := countDetected(s)
	var detectedAt Vec2
	var source string
	left.OnMouse = func(e *MouseEvent) {
		if e.Type == EventDragDetected {
			detectedAt = e.ScenePosition
			source = e.Source.Name
		}
	}

	pointer(s, 10, 10, true)
	pointer(s, 13, 10, true)
	if *n != 0 {
		t.Fatal("detected inside the hysteresis radius")
	}
	pointer(s, 20, 10, true)
	pointer(s, 30, 10, true)
	pointer(s, 30, 10, false)

	if *n != 1 {
		t.Fatalf("DragDetected fired %d times, want 1", *n)
	}
	if detectedAt != (Vec2{20, 10}) || source != "left" {
		t.Errorf("detected at %v on %q", detectedAt, source)
	}
}

func TestDragDetectHysteresisSetting(t *testing.T) {
	s, _, _ := touchScene()
	s.SetDragHysteresis(50)
	n := countDetected(s)

	pointer(s, 10, 10, true)
	pointer(s, 40, 10, true)
	if *n != 0 {
		t.Error("detected inside a 50px radius")
	}
	pointer(s, 70, 10, true)
	if *n != 1 {
		t.Errorf("DragDetected fired %d times, want 1", *n)
	}
}

func TestSetDragDetectOverride(t *testing.T) {
	tests := []struct {
		name string
		// decide returns the override for a sample, or nil for none.
		decide func(e *MouseEvent) *bool
		path   []Vec2
		want   int
	}{
		{
			name: "forced on press",
			decide: func(e *MouseEvent) *bool {
				if e.Type == EventMousePressed {
					return ptrTo(true)
				}
				return nil
			},
			path: []Vec2{{10, 10}},
			want: 1,
		},
		{
			name: "suppressed at press stays suppressed",
			decide: func(e *MouseEvent) *bool {
				if e.Type == EventMousePressed {
					return ptrTo(false)
				}
				return nil
			},
			path: []Vec2{{10, 10}, {40, 10}, {80, 10}},
			want: 0,
		},
		{
			name: "suppressed then allowed",
			decide: func(e *MouseEvent) *bool {
				if e.Type != EventMouseDragged {
					return nil
				}
				return ptrTo(e.ScenePosition.X >= 80)
			},
			path: []Vec2{{10, 10}, {40, 10}, {80, 10}},
			want: 1,
		},
		{
			name: "forced before leaving the radius",
			decide: func(e *MouseEvent) *bool {
				if e.Type == EventMouseDragged {
					return ptrTo(true)
				}
				return nil
			},
			path: []Vec2{{10, 10}, {11, 10}},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, left, _ := touchScene()
			n := countDetected(s)
			left.OnMouse = func(e *MouseEvent) {
				if d := tt.decide(e); d != nil {
					e.SetDragDetect(*d)
				}
			}
			for _, p := range tt.path {
				pointer(s, p.X, p.Y, true)
			}
			if *n != tt.want {
				t.Errorf("DragDetected fired %d times, want %d", *n, tt.want)
			}
		})
	}
}

func TestDragDetectPrimaryButtonOnly(t *testing.T) {
	s, left, _ := touchScene()
	n := countDetected(s)
	left.OnMouse = func(e *MouseEvent) { e.SetDragDetect(true) }

	for _, p := range []Vec2{{10, 10}, {40, 10}, {80, 10}} {
		s.ProcessPointer(p, p, true, MouseButtonRight, 0)
	}
	if *n != 0 {
		t.Errorf("right button drag fired DragDetected %d times", *n)
	}
}

func TestDragDetectIgnoresReleaseAndHover(t *testing.T) {
	s, left, _ := touchScene()
	n := countDetected(s)
	left.OnMouse = func(e *MouseEvent) {
		if e.Type == EventMouseReleased || e.Type == EventMouseMoved {
			e.SetDragDetect(true)
		}
	}
	pointer(s, 10, 10, false)
	pointer(s, 20, 10, false)
	pointer(s, 20, 10, true)
	pointer(s, 20, 10, false)
	pointer(s, 60, 10, false)
	if *n != 0 {
		t.Errorf("DragDetected fired %d times, want 0", *n)
	}
}

func TestDragDetectResetsPerPress(t *testing.T) {
	s, _, _ := touchScene()
	n := countDetected(s)
	for i := 0; i < 2; i++ {
		pointer(s, 10, 10, true)
		pointer(s, 40, 10, true)
		pointer(s, 40, 10, false)
	}
	if *n != 2 {
		t.Errorf("DragDetected fired %d times over two presses, want 2", *n)
	}
}

func ptrTo[T any](v T) *T { return &v }
