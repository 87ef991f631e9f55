package reed

import (
	"math"
	"testing"
)

type gestureRecord struct {
	typ     EventType
	target  string
	delta   Vec2
	total   Vec2
	inertia bool
}

func recordGestures(s *Scene) *[]gestureRecord {
	var recs []gestureRecord
	s.OnGesture(func(e *GestureEvent) {
		r := gestureRecord{typ: e.Type, target: e.Target.Name, inertia: e.Inertia}
		switch e.Kind {
		case GestureZoom:
			r.delta, r.total = Vec2{X: e.ZoomFactor}, Vec2{X: e.TotalZoomFactor}
		case GestureRotate:
			r.delta, r.total = Vec2{X: e.Angle}, Vec2{X: e.TotalAngle}
		default:
			r.delta, r.total = e.Delta, e.Total
		}
		recs = append(recs, r)
	})
	return &recs
}

func at(x, y float64) GestureSample {
	return GestureSample{ScenePosition: Vec2{x, y}, ScreenPosition: Vec2{x, y}, TouchCount: 2, Direct: true}
}

func unknownPosition() GestureSample {
	return GestureSample{ScenePosition: NaNVec2(), ScreenPosition: NaNVec2(), TouchCount: 2}
}

func TestScrollTargetPinnedAtStart(t *testing.T) {
	s, _, _ := touchScene()
	recs := recordGestures(s)

	s.ProcessScroll(GestureStarted, Vec2{5, 5}, at(10, 10))
	s.ProcessScroll(GestureUpdating, Vec2{3, 0}, at(250, 10))
	s.ProcessScroll(GestureUpdating, Vec2{2, 1}, at(260, 10))
	s.ProcessScroll(GestureFinished, Vec2{}, at(260, 10))

	want := []gestureRecord{
		{EventScrollStarted, "left", Vec2{}, Vec2{}, false},
		{EventScroll, "left", Vec2{3, 0}, Vec2{3, 0}, false},
		{EventScroll, "left", Vec2{2, 1}, Vec2{5, 1}, false},
		{EventScrollFinished, "left", Vec2{}, Vec2{5, 1}, false},
	}
	if len(*recs) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(*recs), len(want), *recs)
	}
	for i, w := range want {
		if (*recs)[i] != w {
			t.Errorf("event %d = %+v, want %+v", i, (*recs)[i], w)
		}
	}
	if ph := s.Recognizer(GestureScroll).Phase(); ph != GestureFinished {
		t.Errorf("phase = %d, want finished", ph)
	}
}

func TestZoomAndRotateAccumulate(t *testing.T) {
	tests := []struct {
		name    string
		feed    func(s *Scene, phase GesturePhase, v float64)
		samples []float64
		start   EventType
		total   float64
		neutral float64
	}{
		{
			name:    "zoom multiplies",
			feed:    func(s *Scene, p GesturePhase, v float64) { s.ProcessZoom(p, v, at(10, 10)) },
			samples: []float64{2, 1.5},
			start:   EventZoomStarted,
			total:   3,
			neutral: 1,
		},
		{
			name:    "rotate adds",
			feed:    func(s *Scene, p GesturePhase, v float64) { s.ProcessRotate(p, v, at(10, 10)) },
			samples: []float64{10, 20},
			start:   EventRotationStarted,
			total:   30,
			neutral: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := touchScene()
			recs := recordGestures(s)
			tt.feed(s, GestureStarted, 99)
			for _, v := range tt.samples {
				tt.feed(s, GestureUpdating, v)
			}
			tt.feed(s, GestureFinished, 0)

			first, last := (*recs)[0], (*recs)[len(*recs)-1]
			if first.typ != tt.start || first.delta.X != tt.neutral || first.total.X != tt.neutral {
				t.Errorf("started = %+v, want neutral %v", first, tt.neutral)
			}
			if last.total.X != tt.total {
				t.Errorf("finished total = %v, want %v", last.total.X, tt.total)
			}
			if last.delta.X != tt.neutral {
				t.Errorf("finished delta = %v, want neutral", last.delta.X)
			}
		})
	}
}

func TestLoneScrollPicksPerSample(t *testing.T) {
	s, _, _ := touchScene()
	recs := recordGestures(s)

	s.ProcessScroll(GestureUpdating, Vec2{0, 4}, at(250, 10))
	s.ProcessScroll(GestureUpdating, Vec2{0, 4}, at(10, 10))

	if len(*recs) != 2 {
		t.Fatalf("got %d events, want 2", len(*recs))
	}
	if (*recs)[0].target != "right" || (*recs)[1].target != "left" {
		t.Errorf("targets = %s, %s; want right, left", (*recs)[0].target, (*recs)[1].target)
	}
	if (*recs)[1].total != (Vec2{0, 4}) {
		t.Errorf("lone update total = %v, want its delta", (*recs)[1].total)
	}
}

func TestGestureUnknownPosition(t *testing.T) {
	t.Run("dropped without any known position", func(t *testing.T) {
		s, _, _ := touchScene()
		recs := recordGestures(s)
		s.ProcessZoom(GestureStarted, 1, unknownPosition())
		if len(*recs) != 0 {
			t.Errorf("got %d events, want none", len(*recs))
		}
	})

	t.Run("falls back to the cursor", func(t *testing.T) {
		s, _, _ := touchScene()
		recs := recordGestures(s)
		s.ProcessPointer(Vec2{250, 50}, Vec2{250, 50}, false, MouseButtonLeft, 0)
		s.ProcessZoom(GestureStarted, 1, unknownPosition())
		if len(*recs) != 1 || (*recs)[0].target != "right" {
			t.Errorf("events = %+v, want one started at right", *recs)
		}
	})

	t.Run("updates keep the last position", func(t *testing.T) {
		s, _, _ := touchScene()
		var pos Vec2
		s.OnGesture(func(e *GestureEvent) { pos = e.ScenePosition })
		s.ProcessScroll(GestureStarted, Vec2{}, at(30, 40))
		s.ProcessScroll(GestureUpdating, Vec2{1, 1}, unknownPosition())
		if pos != (Vec2{30, 40}) {
			t.Errorf("position = %v, want (30, 40)", pos)
		}
		if p, ok := s.Recognizer(GestureScroll).Position(); !ok || p != (Vec2{30, 40}) {
			t.Errorf("recognizer position = %v, %v", p, ok)
		}
	})
}

func TestGestureFinishWithoutStart(t *testing.T) {
	s, _, _ := touchScene()
	recs := recordGestures(s)
	s.ProcessRotate(GestureFinished, 0, at(10, 10))
	if len(*recs) != 0 {
		t.Errorf("finish without start delivered %+v", *recs)
	}
}

func TestPlatformInertia(t *testing.T) {
	inertial := func(x, y float64) GestureSample {
		sm := at(x, y)
		sm.Inertia = true
		return sm
	}

	t.Run("delivered to the pinned target", func(t *testing.T) {
		s, _, _ := touchScene()
		recs := recordGestures(s)
		s.ProcessScroll(GestureStarted, Vec2{}, at(10, 10))
		s.ProcessScroll(GestureUpdating, Vec2{5, 0}, at(20, 10))
		s.ProcessScroll(GestureFinished, Vec2{}, at(20, 10))
		s.ProcessScroll(GestureUpdating, Vec2{2, 0}, inertial(250, 10))

		last := (*recs)[len(*recs)-1]
		if !last.inertia || last.target != "left" || last.total != (Vec2{7, 0}) {
			t.Errorf("inertia event = %+v", last)
		}
	})

	t.Run("dropped after a tap", func(t *testing.T) {
		s, _, _ := touchScene()
		recs := recordGestures(s)
		s.ProcessScroll(GestureStarted, Vec2{}, at(10, 10))
		s.ProcessScroll(GestureUpdating, Vec2{5, 0}, at(20, 10))
		s.ProcessScroll(GestureFinished, Vec2{}, at(20, 10))
		mustFrame(t, s, rawPoint{1, TouchPressed, 50, 50})
		n := len(*recs)
		s.ProcessScroll(GestureUpdating, Vec2{2, 0}, inertial(20, 10))
		if len(*recs) != n {
			t.Errorf("inertia after a tap delivered %+v", (*recs)[n:])
		}
	})
}

func TestSwipeDelivery(t *testing.T) {
	s, _, right := touchScene()
	var got []EventType
	right.OnSwipe = func(e *GestureEvent) { got = append(got, e.Type) }

	s.ProcessSwipe(SwipeLeft, at(250, 50))
	s.ProcessSwipe(SwipeDown, at(250, 50))
	if len(got) != 2 || got[0] != EventSwipeLeft || got[1] != EventSwipeDown {
		t.Errorf("swipes = %v", got)
	}
}

func TestGestureBubblesToAncestors(t *testing.T) {
	s := NewScene()
	list := NewContainer("list")
	row := NewNode("row", 100, 20)
	list.AddChild(row)
	s.Root().AddChild(list)

	var sources []string
	list.OnScroll = func(e *GestureEvent) {
		sources = append(sources, e.Source.Name)
		if e.Target != row {
			t.Errorf("target = %s, want row", e.Target.Name)
		}
		e.Consume()
	}
	var sceneLevel int
	s.OnGesture(func(e *GestureEvent) { sceneLevel++ })

	s.ProcessScroll(GestureUpdating, Vec2{0, 3}, at(10, 10))
	if len(sources) != 1 || sources[0] != "list" {
		t.Errorf("sources = %v", sources)
	}
	if sceneLevel != 0 {
		t.Error("consumed event reached scene-level handlers")
	}
}

func TestGestureLocalPosition(t *testing.T) {
	s, _, right := touchScene()
	right.SetRotation(math.Pi / 2)
	var local Vec2
	right.OnZoom = func(e *GestureEvent) { local = e.LocalPosition() }

	// Rotated 90 degrees about its origin at (200, 0), right covers x in
	// [100, 200] and y in [0, 100].
	s.ProcessZoom(GestureStarted, 1, at(190, 30))
	if math.Abs(local.X-30) > 1e-9 || math.Abs(local.Y-10) > 1e-9 {
		t.Errorf("local = %v, want (30, 10)", local)
	}
}

func TestAngleDelta(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 10, 10},
		{10, 0, -10},
		{170, -170, 20},
		{-170, 170, -20},
		{0, 180, 180},
	}
	for _, tt := range tests {
		if got := angleDelta(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("angleDelta(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
