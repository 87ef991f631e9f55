package reed

// dragDetector holds the drag detection state of one press-drag-release
// sequence. The decision defaults to the hysteresis result; a listener
// override is sticky until the next explicit override.
type dragDetector struct {
	explicit bool
	decision bool
	detected bool
}

func (d *dragDetector) press() {
	*d = dragDetector{}
}

// initial returns the decision a new sample starts with.
func (d *dragDetector) initial(hysteresis bool) bool {
	if d.explicit {
		return d.decision
	}
	return hysteresis
}

func (d *dragDetector) record(ev *MouseEvent) {
	if ev.dragDetectSet {
		d.explicit = true
		d.decision = ev.dragDetect
	}
}

// afterDetectSample resolves the decision of a press or drag sample once it
// has bubbled, firing DragDetected the first time it turns true.
func (s *Scene) afterDetectSample(ev *MouseEvent) {
	s.detect.record(ev)
	if !ev.dragDetect || s.detect.detected || s.mouse.button != MouseButtonLeft {
		return
	}
	s.detect.detected = true
	s.fireDragDetected(ev)
}

// fireDragDetected delivers DragDetected to the press target. Drag-and-drop
// can only be started by its handlers; a session whose dragboard is still
// empty afterwards is discarded before any target sees it.
func (s *Scene) fireDragDetected(src *MouseEvent) {
	ev := s.newMouseEvent(EventDragDetected, src.ScenePosition, src.ScreenPosition, src.PickResult, s.mouse.button, src.Modifiers)
	s.detecting = ev
	bubble(s, s.mouse.hitNode, ev, mouseHandler, &s.handlers.mouse)
	s.detecting = nil
	s.emitMouseEvent(ev)

	sess := s.pendingDrag
	s.pendingDrag = nil
	if sess == nil {
		return
	}
	if !sess.board.HasContent() {
		s.logf("drag %s discarded: empty dragboard", sess.ID)
		return
	}
	sess.state = DragDetecting
	sess.lastScene, sess.lastScreen = ev.ScenePosition, ev.ScreenPosition
	s.dnd = sess
	s.logf("drag %s started from %q with %v", sess.ID, sess.source.Name, sess.board.modes)
}

// SetDragHysteresis sets the distance in pixels the pointer must move from
// the press position before a drag is detected by default.
func (s *Scene) SetDragHysteresis(pixels float64) {
	s.config.DragHysteresis = pixels
}
