package reed

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	start     Vec2
	last      Vec2
	hitNode   *Node       // press target; receives drags and the release
	hoverNode *Node       // last node the pointer was hovering over (for enter/exit)
	dragging  bool        // left the hysteresis radius since the press
	button    MouseButton // button captured at press time
}

// CapturePointer routes all mouse events to node, bypassing picking, until
// the button is released or ReleasePointer is called.
func (s *Scene) CapturePointer(node *Node) {
	s.captured = node
}

// ReleasePointer stops routing mouse events to a captured node.
func (s *Scene) ReleasePointer() {
	s.captured = nil
}

// ProcessPointer runs the mouse state machine for one sample. While a
// drag-and-drop gesture is active, drags become drag-over samples and the
// release becomes the drop.
func (s *Scene) ProcessPointer(scene, screen Vec2, pressed bool, button MouseButton, mods KeyModifiers) {
	s.refreshTransforms()
	s.setCursor(scene, screen)
	ps := &s.mouse

	if s.dnd != nil && ps.down {
		s.routeDragAndDrop(scene, screen, pressed, mods)
		return
	}

	target, pick := s.pick(scene)
	if s.captured != nil {
		target = s.captured
	}

	// Fire hover enter/exit when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			ev := s.newMouseEvent(EventMouseExited, scene, screen, pick, button, mods)
			deliverAt(s, ps.hoverNode, ev, mouseHandler, &s.handlers.mouse)
			s.emitMouseEvent(ev)
		}
		ev := s.newMouseEvent(EventMouseEntered, scene, screen, pick, button, mods)
		deliverAt(s, target, ev, mouseHandler, &s.handlers.mouse)
		s.emitMouseEvent(ev)
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		// Just pressed: capture the button for the whole interaction.
		s.cancelInertia()
		ps.down = true
		ps.button = button
		ps.start = scene
		ps.last = scene
		ps.hitNode = target
		ps.dragging = false
		s.detect.press()

		ev := s.newMouseEvent(EventMousePressed, scene, screen, pick, button, mods)
		ev.StillSincePress = true
		ev.dragDetect = s.detect.initial(false)
		bubble(s, target, ev, mouseHandler, &s.handlers.mouse)
		s.emitMouseEvent(ev)
		s.afterDetectSample(ev)

	case !pressed && ps.down:
		// Released: never triggers drag detection.
		ev := s.newMouseEvent(EventMouseReleased, scene, screen, pick, ps.button, mods)
		ev.StillSincePress = !ps.dragging
		bubble(s, ps.hitNode, ev, mouseHandler, &s.handlers.mouse)
		s.emitMouseEvent(ev)
		if !ps.dragging && ps.hitNode == target {
			click := s.newMouseEvent(EventMouseClicked, scene, screen, pick, ps.button, mods)
			click.StillSincePress = true
			bubble(s, target, click, mouseHandler, &s.handlers.mouse)
			s.emitMouseEvent(click)
		}
		s.endPress()

	case pressed && ps.down:
		if scene != ps.last {
			if !ps.dragging && scene.Sub(ps.start).Len() > s.config.DragHysteresis {
				ps.dragging = true
			}
			ev := s.newMouseEvent(EventMouseDragged, scene, screen, pick, ps.button, mods)
			ev.StillSincePress = !ps.dragging
			ev.dragDetect = s.detect.initial(ps.dragging)
			bubble(s, ps.hitNode, ev, mouseHandler, &s.handlers.mouse)
			s.emitMouseEvent(ev)
			s.afterDetectSample(ev)
		}
		ps.last = scene

	default:
		// Hover move: never triggers drag detection.
		if scene != ps.last {
			ev := s.newMouseEvent(EventMouseMoved, scene, screen, pick, button, mods)
			bubble(s, target, ev, mouseHandler, &s.handlers.mouse)
			s.emitMouseEvent(ev)
			ps.last = scene
		}
	}
}

// routeDragAndDrop feeds mouse samples to the active drag-and-drop session.
func (s *Scene) routeDragAndDrop(scene, screen Vec2, pressed bool, mods KeyModifiers) {
	ps := &s.mouse
	sess := s.dnd
	proposed := s.config.proposedTransferMode(mods)
	if pressed {
		if scene != ps.last {
			sess.Over(scene, screen, proposed)
			ps.last = scene
		}
		return
	}
	// Drop renegotiates when the release moved or the modifiers changed.
	sess.Drop(scene, screen, proposed)

	// The press target still sees its release so it can reset.
	_, pick := s.pick(scene)
	ev := s.newMouseEvent(EventMouseReleased, scene, screen, pick, ps.button, mods)
	bubble(s, ps.hitNode, ev, mouseHandler, &s.handlers.mouse)
	s.emitMouseEvent(ev)
	s.endPress()
}

func (s *Scene) endPress() {
	ps := &s.mouse
	s.captured = nil
	ps.down = false
	ps.hitNode = nil
	ps.dragging = false
}

func (s *Scene) newMouseEvent(t EventType, scene, screen Vec2, pick PickResult, button MouseButton, mods KeyModifiers) *MouseEvent {
	return &MouseEvent{
		eventBase:      eventBase{Type: t, Modifiers: mods},
		Button:         button,
		ScenePosition:  scene,
		ScreenPosition: screen,
		PickResult:     pick,
		scene:          s,
	}
}
