package reed

// GestureSample is one platform gesture notification. A NaN
// ScenePosition means the position is unknown; the last known pointer
// position is used instead, and the sample is dropped when there is none.
type GestureSample struct {
	ScenePosition  Vec2
	ScreenPosition Vec2
	TouchCount     int
	Direct         bool
	Inertia        bool
	Modifiers      KeyModifiers
}

// Recognizer accumulates one kind of continuous gesture. The target is
// picked once when the gesture starts and stays pinned through its updates,
// its finish, and any inertia that follows.
type Recognizer struct {
	kind  GestureKind
	scene *Scene

	phase  GesturePhase
	target *Node
	total  Vec2

	last       Vec2
	lastScreen Vec2
	hasLast    bool
	touchCount int

	// set by a tap after the gesture finished; later inertia samples of
	// the same gesture are dropped.
	inertiaCancelled bool
}

func newRecognizer(s *Scene, kind GestureKind) *Recognizer {
	return &Recognizer{kind: kind, scene: s}
}

// Kind returns the gesture kind this recognizer handles.
func (r *Recognizer) Kind() GestureKind { return r.kind }

// Phase returns the recognizer's current state.
func (r *Recognizer) Phase() GesturePhase { return r.phase }

// Target returns the pinned target, or nil when no gesture has started or
// the last one was abandoned.
func (r *Recognizer) Target() *Node { return r.target }

// Position returns the last known position of the gesture. After the
// gesture finishes it stays frozen until the next one starts.
func (r *Recognizer) Position() (Vec2, bool) { return r.last, r.hasLast }

// neutral is the accumulator's identity: zero for scroll and rotate, a
// factor of 1 for zoom.
func (r *Recognizer) neutral() Vec2 {
	if r.kind == GestureZoom {
		return Vec2{X: 1}
	}
	return Vec2{}
}

func (r *Recognizer) combine(total, delta Vec2) Vec2 {
	switch r.kind {
	case GestureZoom:
		return Vec2{X: total.X * delta.X}
	case GestureRotate:
		return Vec2{X: total.X + delta.X}
	default:
		return total.Add(delta)
	}
}

func (r *Recognizer) eventType(phase GesturePhase) EventType {
	var started EventType
	switch r.kind {
	case GestureZoom:
		started = EventZoomStarted
	case GestureRotate:
		started = EventRotationStarted
	default:
		started = EventScrollStarted
	}
	return started + EventType(phase-GestureStarted)
}

// resolve returns the sample position, falling back to the scene's last
// pointer position and then to this recognizer's last position.
func (r *Recognizer) resolve(sm GestureSample) (scene, screen Vec2, ok bool) {
	if !sm.ScenePosition.IsNaN() {
		screen = sm.ScreenPosition
		if screen.IsNaN() {
			screen = sm.ScenePosition
		}
		return sm.ScenePosition, screen, true
	}
	if r.scene.hasCursor {
		return r.scene.cursor, r.scene.cursorScreen, true
	}
	if r.hasLast {
		return r.last, r.lastScreen, true
	}
	return Vec2{}, Vec2{}, false
}

// pinned reports whether a sample belongs to the current gesture.
func (r *Recognizer) pinned(sm GestureSample) bool {
	if r.target == nil {
		return false
	}
	switch r.phase {
	case GestureStarted, GestureUpdating:
		return true
	case GestureFinished:
		return sm.Inertia
	}
	return false
}

func (r *Recognizer) remember(scene, screen Vec2) {
	r.last = scene
	r.lastScreen = screen
	r.hasLast = true
}

// process handles one sample. delta is a scroll offset, a zoom factor in X,
// or a rotation angle in X, depending on the kind. It reports whether an
// event was delivered.
func (r *Recognizer) process(phase GesturePhase, delta Vec2, sm GestureSample) bool {
	if sm.Inertia && r.inertiaCancelled {
		return false
	}
	s := r.scene
	switch phase {
	case GestureStarted:
		scene, screen, ok := r.resolve(sm)
		if !ok {
			s.logf("%s started with unknown position; dropped", r.kind)
			return false
		}
		if s.inertia.rec == r {
			s.inertia.stop()
		}
		s.refreshTransforms()
		var pick PickResult
		r.target, pick = s.pick(scene)
		r.phase = GestureStarted
		r.total = r.neutral()
		r.touchCount = sm.TouchCount
		r.inertiaCancelled = false
		r.remember(scene, screen)
		r.fire(r.eventType(GestureStarted), r.target, pick, r.neutral(), r.total, scene, screen, sm)
		return true

	case GestureUpdating:
		scene, screen, ok := r.resolve(sm)
		if r.pinned(sm) {
			if !ok {
				scene, screen = r.last, r.lastScreen
			}
			if r.phase == GestureStarted {
				r.phase = GestureUpdating
			}
			if !sm.Inertia && r.phase != GestureFinished {
				r.remember(scene, screen)
			}
			r.total = r.combine(r.total, delta)
			s.refreshTransforms()
			_, pick := s.pick(scene)
			r.fire(r.eventType(GestureUpdating), r.target, pick, delta, r.total, scene, screen, sm)
			return true
		}
		if !ok {
			return false
		}
		// A lone update, such as a mouse wheel notch: picked per sample.
		s.refreshTransforms()
		target, pick := s.pick(scene)
		r.fire(r.eventType(GestureUpdating), target, pick, delta, r.combine(r.neutral(), delta), scene, screen, sm)
		return true

	case GestureFinished:
		if r.target == nil || (r.phase != GestureStarted && r.phase != GestureUpdating) {
			return false
		}
		r.phase = GestureFinished
		s.refreshTransforms()
		_, pick := s.pick(r.last)
		r.fire(r.eventType(GestureFinished), r.target, pick, r.neutral(), r.total, r.last, r.lastScreen, sm)
		return true
	}
	return false
}

// inertiaUpdate delivers a synthesized inertia increment to the pinned
// target at the frozen position.
func (r *Recognizer) inertiaUpdate(delta Vec2) bool {
	return r.process(GestureUpdating, delta, GestureSample{
		ScenePosition:  r.last,
		ScreenPosition: r.lastScreen,
		TouchCount:     r.touchCount,
		Direct:         true,
		Inertia:        true,
	})
}

// abandon drops the current gesture without delivering anything. Later
// updates are picked per sample until a new gesture starts.
func (r *Recognizer) abandon() {
	if r.scene.inertia.rec == r {
		r.scene.inertia.stop()
	}
	r.phase = GestureIdle
	r.target = nil
	r.total = r.neutral()
}

// cancelInertia drops inertia belonging to a finished gesture.
func (r *Recognizer) cancelInertia() {
	if r.phase == GestureFinished {
		r.inertiaCancelled = true
	}
}

// swipe delivers a discrete swipe, picked at the sample position.
func (r *Recognizer) swipe(dir SwipeDirection, sm GestureSample) bool {
	scene, screen, ok := r.resolve(sm)
	if !ok {
		r.scene.logf("swipe with unknown position; dropped")
		return false
	}
	s := r.scene
	s.refreshTransforms()
	target, pick := s.pick(scene)
	r.target = target
	r.touchCount = sm.TouchCount
	r.remember(scene, screen)
	r.fire(dir.eventType(), target, pick, Vec2{}, Vec2{}, scene, screen, sm)
	return true
}

func (r *Recognizer) fire(t EventType, target *Node, pick PickResult, delta, total, scene, screen Vec2, sm GestureSample) {
	ev := &GestureEvent{
		eventBase:      eventBase{Type: t, Modifiers: sm.Modifiers},
		Kind:           r.kind,
		TouchCount:     sm.TouchCount,
		Direct:         sm.Direct,
		Inertia:        sm.Inertia,
		ScenePosition:  scene,
		ScreenPosition: screen,
		PickResult:     pick,
	}
	switch r.kind {
	case GestureScroll:
		ev.Delta = delta
		ev.Total = total
	case GestureZoom:
		ev.ZoomFactor = delta.X
		ev.TotalZoomFactor = total.X
	case GestureRotate:
		ev.Angle = delta.X
		ev.TotalAngle = total.X
	}
	bubble(r.scene, target, ev, gestureHandler(r.kind), &r.scene.handlers.gesture)
	r.scene.emitGestureEvent(ev)
}

// --- Platform entry points ---

// ProcessScroll feeds a scroll sample. The delta of a started sample is
// ignored: started events always carry zero delta and total.
func (s *Scene) ProcessScroll(phase GesturePhase, delta Vec2, sm GestureSample) {
	s.scroll.process(phase, delta, sm)
}

// ProcessZoom feeds a zoom sample; factor is relative to the previous
// sample.
func (s *Scene) ProcessZoom(phase GesturePhase, factor float64, sm GestureSample) {
	s.zoom.process(phase, Vec2{X: factor}, sm)
}

// ProcessRotate feeds a rotate sample; angle is in degrees, relative to the
// previous sample.
func (s *Scene) ProcessRotate(phase GesturePhase, angle float64, sm GestureSample) {
	s.rotate.process(phase, Vec2{X: angle}, sm)
}

// ProcessSwipe feeds a completed swipe.
func (s *Scene) ProcessSwipe(dir SwipeDirection, sm GestureSample) {
	s.swipe.swipe(dir, sm)
}

// Recognizer returns the recognizer for kind.
func (s *Scene) Recognizer(kind GestureKind) *Recognizer {
	switch kind {
	case GestureZoom:
		return s.zoom
	case GestureRotate:
		return s.rotate
	case GestureSwipe:
		return s.swipe
	default:
		return s.scroll
	}
}
