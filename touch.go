package reed

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// TouchPoint is one contact tracked across frames. ID is stable for the
// lifetime of the contact and unique within the touch session; RawID is the
// platform identifier it was reported with.
type TouchPoint struct {
	ID    int
	RawID int64
	State TouchState

	// Position is local to Target.
	Position       Vec2
	ScenePosition  Vec2
	ScreenPosition Vec2

	Target     *Node
	PickResult PickResult

	tracker  *TouchTracker
	reported bool
}

// Grab pins the point to n: later frames are delivered to n without
// picking until the point is released or ungrabbed. A nil n ungrabs.
// It fails with ErrUnknownTouchID once the point is no longer live.
func (p *TouchPoint) Grab(n *Node) error {
	err := p.tracker.grabs.Grab(p.ID, n)
	if err != nil {
		p.tracker.scene.logf("touch point %d: %v", p.ID, err)
	}
	return err
}

// GrabCurrent pins the point to the node whose handler is running. It fails
// outside of touch event delivery.
func (p *TouchPoint) GrabCurrent() error {
	err := p.tracker.grabs.GrabCurrent(p.ID)
	if err != nil {
		p.tracker.scene.logf("touch point %d: %v", p.ID, err)
	}
	return err
}

// Ungrab removes the point's grab so later frames are picked again.
func (p *TouchPoint) Ungrab() {
	p.tracker.grabs.Ungrab(p.ID)
}

// GrabNode returns the node the point is grabbed to, or nil.
func (p *TouchPoint) GrabNode() *Node {
	n, _ := p.tracker.grabs.Grabbed(p.ID)
	return n
}

// BelongsTo reports whether the point's target is n or lies below it.
func (p *TouchPoint) BelongsTo(n *Node) bool {
	return p.Target != nil && p.Target.IsDescendantOf(n)
}

// touchSession holds the counters that live exactly as long as at least
// one point is live.
type touchSession struct {
	lastID     int
	eventSetID int
}

func (ts *touchSession) allocate() int {
	ts.lastID++
	return ts.lastID
}

// TouchFrame is the handle for one platform touch update, obtained from
// TouchTracker.BeginFrame.
type TouchFrame struct {
	Timestamp time.Time
	Declared  int
	Direct    bool
	Modifiers KeyModifiers

	points []*TouchPoint
	seen   map[int64]struct{}
	count  int
	closed bool
}

// TouchTracker turns raw touch frames into stable touch points and delivers
// one TouchEvent per point and frame. It is owned by a Scene.
type TouchTracker struct {
	scene *Scene
	grabs *GrabRegistry

	session     touchSession
	live        map[int64]*TouchPoint
	open        *TouchFrame
	dispatching *TouchEvent

	// epoch changes whenever the session is reset, so delivery can stop
	// when a handler cancels the session mid-frame.
	epoch int
}

func newTouchTracker(s *Scene) *TouchTracker {
	t := &TouchTracker{scene: s, live: make(map[int64]*TouchPoint)}
	t.grabs = &GrabRegistry{tracker: t, nodes: make(map[int]*Node)}
	return t
}

// BeginFrame opens a frame that will report declared points. Beginning a
// frame while another is still open aborts the touch session.
func (t *TouchTracker) BeginFrame(ts time.Time, declared int, direct bool, mods KeyModifiers) *TouchFrame {
	if t.open != nil {
		t.scene.logf("touch frame began before the previous one ended; session aborted")
		t.reset()
	}
	f := &TouchFrame{
		Timestamp: ts,
		Declared:  declared,
		Direct:    direct,
		Modifiers: mods,
		seen:      make(map[int64]struct{}, declared),
	}
	if direct {
		for _, p := range t.live {
			p.reported = false
		}
	}
	t.open = f
	return f
}

// ReportPoint records one point of frame f. Scene and screen are the
// point's positions in scene and screen space.
func (t *TouchTracker) ReportPoint(f *TouchFrame, state TouchState, rawID int64, scene, screen Vec2) error {
	if f.closed || f != t.open {
		return ErrFrameClosed
	}
	f.count++
	if f.count > f.Declared && t.validates(f) {
		return t.abortFrame(f, fmt.Errorf("%w: more than the %d declared", ErrPointCount, f.Declared))
	}
	if !f.Direct {
		return nil
	}
	if _, dup := f.seen[rawID]; dup {
		return t.abort(fmt.Errorf("%w: raw id %d", ErrDuplicatePoint, rawID))
	}
	f.seen[rawID] = struct{}{}

	p, live := t.live[rawID]
	if state == TouchPressed {
		if live {
			return t.abort(fmt.Errorf("%w: raw id %d pressed while touch point %d is live", ErrLostRelease, rawID, p.ID))
		}
		p = &TouchPoint{ID: t.session.allocate(), RawID: rawID, tracker: t}
		t.live[rawID] = p
	} else if !live {
		return t.abort(fmt.Errorf("%w: raw id %d reported %s", ErrUnknownTouchID, rawID, state))
	}
	p.State = state
	p.ScenePosition = scene
	p.ScreenPosition = screen
	p.reported = true
	f.points = append(f.points, p)
	return nil
}

// EndFrame validates frame f and, for direct frames, delivers its events.
// Indirect frames are never delivered.
func (t *TouchTracker) EndFrame(f *TouchFrame) error {
	if f.closed || f != t.open {
		return ErrFrameClosed
	}
	if f.count != f.Declared && t.validates(f) {
		return t.abortFrame(f, fmt.Errorf("%w: %d reported, %d declared", ErrPointCount, f.count, f.Declared))
	}
	f.closed = true
	t.open = nil
	if !f.Direct {
		return nil
	}
	for _, p := range t.live {
		if !p.reported {
			return t.abort(fmt.Errorf("%w: touch point %d (raw id %d) missing from frame", ErrLostRelease, p.ID, p.RawID))
		}
	}
	if len(f.points) == 0 {
		return nil
	}
	t.deliver(f)
	return nil
}

// Cancel aborts the touch session: grabs are released, IDs are freed, and
// nothing further is delivered for it.
func (t *TouchTracker) Cancel() {
	if len(t.live) == 0 && t.open == nil {
		return
	}
	t.scene.logf("touch session cancelled")
	t.reset()
}

// Live returns the live touch points in ascending ID order.
func (t *TouchTracker) Live() []*TouchPoint {
	pts := make([]*TouchPoint, 0, len(t.live))
	for _, p := range t.live {
		pts = append(pts, p)
	}
	sortPoints(pts)
	return pts
}

// Grabs returns the grab override registry.
func (t *TouchTracker) Grabs() *GrabRegistry {
	return t.grabs
}

func (t *TouchTracker) deliver(f *TouchFrame) {
	s := t.scene
	s.refreshTransforms()

	points := f.points
	sortPoints(points)
	t.session.eventSetID++

	pressed := false
	for _, p := range points {
		t.route(p)
		if p.State == TouchPressed {
			pressed = true
		}
	}
	if pressed {
		s.cancelInertia()
	}
	s.setCursor(points[0].ScenePosition, points[0].ScreenPosition)

	epoch := t.epoch
	for _, p := range points {
		ev := &TouchEvent{
			eventBase:  eventBase{Type: p.State.eventType(), Modifiers: f.Modifiers},
			Point:      p,
			Points:     points,
			EventSetID: t.session.eventSetID,
			Timestamp:  f.Timestamp,
		}
		t.dispatching = ev
		bubble(s, p.Target, ev, touchHandler, &s.handlers.touch)
		s.emitTouchEvent(ev)
		if t.epoch != epoch {
			t.dispatching = nil
			return
		}
	}
	t.dispatching = nil

	for _, p := range points {
		if p.State == TouchReleased {
			delete(t.live, p.RawID)
			t.grabs.Ungrab(p.ID)
		}
	}
	s.touchGestures.observe(f.Timestamp, points, f.Modifiers)
	if len(t.live) == 0 {
		s.touchGestures.sessionEnded(f.Timestamp, f.Modifiers)
		t.session = touchSession{}
		t.grabs.reset()
	}
}

// route resolves a point's target: its grab when grabbed, otherwise the
// picked node. The pick result always describes what lies under the point. A press grabs the point to its picked target.
func (t *TouchTracker) route(p *TouchPoint) {
	s := t.scene
	if n, ok := t.grabs.Grabbed(p.ID); ok {
		_, p.PickResult = s.pick(p.ScenePosition)
		p.Target = n
	} else {
		p.Target, p.PickResult = s.pick(p.ScenePosition)
		if p.State == TouchPressed {
			t.grabs.nodes[p.ID] = p.Target
		}
	}
	p.Position = p.Target.WorldToLocal(p.ScenePosition)
}

// validates reports whether f's point count is checked. Indirect frames are
// exempt unless Config.StrictIndirect is set.
func (t *TouchTracker) validates(f *TouchFrame) bool {
	return f.Direct || t.scene.config.StrictIndirect
}

// abortFrame ends an invalid frame. Indirect frames carry no session state,
// so only direct frames abort the session.
func (t *TouchTracker) abortFrame(f *TouchFrame, err error) error {
	if !f.Direct {
		f.closed = true
		t.open = nil
		t.scene.logf("indirect touch frame dropped: %v", err)
		return err
	}
	return t.abort(err)
}

func (t *TouchTracker) abort(err error) error {
	t.scene.logf("touch session aborted: %v", err)
	t.reset()
	return err
}

func (t *TouchTracker) reset() {
	if t.open != nil {
		t.open.closed = true
		t.open = nil
	}
	clear(t.live)
	t.session = touchSession{}
	t.grabs.reset()
	t.scene.touchGestures.abort()
	t.epoch++
}

func (t *TouchTracker) pointByID(id int) (*TouchPoint, bool) {
	for _, p := range t.live {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func sortPoints(pts []*TouchPoint) {
	slices.SortFunc(pts, func(a, b *TouchPoint) int { return cmp.Compare(a.ID, b.ID) })
}
