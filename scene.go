package reed

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree and every piece of
// input state: touch tracking, gesture recognizers, the mouse pipeline, and
// the active drag-and-drop session.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	config Config
	picker PickProvider
	hitBuf []*Node

	handlers handlerRegistry

	// Touch
	touches       *TouchTracker
	touchGestures touchGestureDetector

	// Continuous gestures
	scroll  *Recognizer
	zoom    *Recognizer
	rotate  *Recognizer
	swipe   *Recognizer
	inertia inertiaDriver

	// Last known pointer position, shared by mouse and touch. Gesture
	// samples without a position fall back to it.
	cursor       Vec2
	cursorScreen Vec2
	hasCursor    bool

	// Mouse and drag-and-drop
	mouse       pointerState
	captured    *Node
	detect      dragDetector
	detecting   *MouseEvent
	pendingDrag *DragSession
	dnd         *DragSession

	// Frame clock, advanced by Update and Advance.
	clock time.Time

	backend    ebitenInput
	injectQ    []syntheticInput
	injectMods KeyModifiers
	testRunner *TestRunner

	errorHandler func(error)
}

// NewScene creates a new scene with a pre-created root container and the
// default configuration.
func NewScene() *Scene {
	s := &Scene{
		root:   NewContainer("root"),
		config: DefaultConfig(),
		clock:  time.Unix(0, 0),
	}
	s.picker = scenePicker{s: s}
	s.touches = newTouchTracker(s)
	s.touchGestures = touchGestureDetector{s: s}
	s.scroll = newRecognizer(s, GestureScroll)
	s.zoom = newRecognizer(s, GestureZoom)
	s.rotate = newRecognizer(s, GestureRotate)
	s.swipe = newRecognizer(s, GestureSwipe)
	s.inertia = inertiaDriver{s: s}
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Touches returns the scene's touch identity tracker.
func (s *Scene) Touches() *TouchTracker {
	return s.touches
}

// DragSession returns the active drag-and-drop session, or nil.
func (s *Scene) DragSession() *DragSession {
	return s.dnd
}

// SetPickProvider replaces the default tree hit test. A nil provider
// restores the default.
func (s *Scene) SetPickProvider(p PickProvider) {
	if p == nil {
		p = scenePicker{s: s}
	}
	s.picker = p
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and input
// diagnostics are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// SetErrorHandler sets a callback for protocol errors raised while polling
// or replaying input, where there is no caller to return them to.
func (s *Scene) SetErrorHandler(fn func(error)) {
	s.errorHandler = fn
}

func (s *Scene) reportError(err error) {
	if err == nil {
		return
	}
	s.logf("input error: %v", err)
	if s.errorHandler != nil {
		s.errorHandler(err)
	}
}

// Update polls ebiten for input and advances inertia by one tick. Call it
// from ebiten.Game.Update.
func (s *Scene) Update() {
	s.step(1.0/float64(ebiten.TPS()), true)
}

// Advance runs one frame of dt seconds without polling the platform:
// scripted steps and injected input are processed and inertia advances.
func (s *Scene) Advance(dt float64) {
	s.step(dt, false)
}

func (s *Scene) step(dt float64, poll bool) {
	s.clock = s.clock.Add(time.Duration(dt * float64(time.Second)))
	s.refreshTransforms()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() && poll {
		s.backend.poll(s)
	}
	s.inertia.advance(dt)
}

// Now returns the scene's frame clock.
func (s *Scene) Now() time.Time {
	return s.clock
}

func (s *Scene) refreshTransforms() {
	updateWorldTransform(s.root, identityAffine, false)
}

func (s *Scene) setCursor(scene, screen Vec2) {
	s.cursor = scene
	s.cursorScreen = screen
	s.hasCursor = true
}

// CancelInput aborts every in-flight interaction: the touch session, any
// drag-and-drop gesture, and pending inertia.
func (s *Scene) CancelInput() {
	s.touches.Cancel()
	if s.dnd != nil {
		s.dnd.Cancel()
	}
	s.pendingDrag = nil
	s.inertia.stop()
	s.endPress()
}
