package reed

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticTouch
	syntheticScroll
)

// syntheticInput is one queued frame of injected input. Coordinates are
// scene coordinates; screen coordinates are taken to be the same.
type syntheticInput struct {
	kind    syntheticKind
	pos     Vec2
	pressed bool
	button  MouseButton
	touches []SyntheticTouch
	delta   Vec2
}

// SyntheticTouch is one contact of an injected touch frame.
type SyntheticTouch struct {
	ID    int64
	State TouchState
	X, Y  float64
}

// InjectPress queues a left-button press at (x, y). The event is consumed
// on the next frame.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQ = append(s.injectQ, syntheticInput{
		kind:    syntheticPointer,
		pos:     Vec2{x, y},
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move to (x, y) with the button held down.
// Use this between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQ = append(s.injectQ, syntheticInput{
		kind:    syntheticPointer,
		pos:     Vec2{x, y},
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move to (x, y) with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQ = append(s.injectQ, syntheticInput{kind: syntheticPointer, pos: Vec2{x, y}})
}

// InjectRelease queues a pointer release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQ = append(s.injectQ, syntheticInput{
		kind:   syntheticPointer,
		pos:    Vec2{x, y},
		button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectTouch queues one direct touch frame holding points.
func (s *Scene) InjectTouch(points ...SyntheticTouch) {
	s.injectQ = append(s.injectQ, syntheticInput{kind: syntheticTouch, touches: points})
}

// InjectScroll queues a single scroll update of (dx, dy) at (x, y), like a
// mouse wheel notch.
func (s *Scene) InjectScroll(x, y, dx, dy float64) {
	s.injectQ = append(s.injectQ, syntheticInput{kind: syntheticScroll, pos: Vec2{x, y}, delta: Vec2{dx, dy}})
}

// InjectModifiers sets the modifier keys reported with injected input.
func (s *Scene) InjectModifiers(mods KeyModifiers) {
	s.injectMods = mods
}

// processInjectedInput pops one frame from the inject queue and feeds it
// through the same entry points as real input. Returns true if a frame was
// consumed, in which case real input is skipped for this tick.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQ) == 0 {
		return false
	}
	in := s.injectQ[0]
	copy(s.injectQ, s.injectQ[1:])
	s.injectQ[len(s.injectQ)-1] = syntheticInput{}
	s.injectQ = s.injectQ[:len(s.injectQ)-1]

	mods := s.injectMods
	switch in.kind {
	case syntheticPointer:
		s.ProcessPointer(in.pos, in.pos, in.pressed, in.button, mods)
	case syntheticScroll:
		s.ProcessScroll(GestureUpdating, in.delta, GestureSample{
			ScenePosition:  in.pos,
			ScreenPosition: in.pos,
			Modifiers:      mods,
		})
	case syntheticTouch:
		s.injectTouchFrame(in.touches, mods)
	}
	return true
}

func (s *Scene) injectTouchFrame(points []SyntheticTouch, mods KeyModifiers) {
	t := s.touches
	f := t.BeginFrame(s.Now(), len(points), true, mods)
	for _, p := range points {
		pos := Vec2{p.X, p.Y}
		if err := t.ReportPoint(f, p.State, p.ID, pos, pos); err != nil {
			s.reportError(err)
			return
		}
	}
	s.reportError(t.EndFrame(f))
}
