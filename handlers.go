package reed

// --- Handler registry ---

type handlerEntry[E any] struct {
	id uint32
	fn func(E)
}

type handlerList[E any] struct {
	entries []handlerEntry[E]
}

func (l *handlerList[E]) add(id uint32, fn func(E)) {
	l.entries = append(l.entries, handlerEntry[E]{id: id, fn: fn})
}

// remove deletes the entry from the slice to avoid nil iteration waste.
func (l *handlerList[E]) remove(id uint32) {
	s := l.entries
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handlerEntry[E]{}
			l.entries = s[:len(s)-1]
			return
		}
	}
}

// call runs every handler in registration order, stopping early when the
// event is consumed.
func (l *handlerList[E]) call(ev E, b *eventBase) {
	for _, h := range l.entries {
		h.fn(ev)
		if b.consumed {
			return
		}
	}
}

type handlerRegistry struct {
	touch   handlerList[*TouchEvent]
	mouse   handlerList[*MouseEvent]
	gesture handlerList[*GestureEvent]
	drag    handlerList[*DragEvent]
	nextID  uint32
}

type handlerRemover interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id   uint32
	list handlerRemover
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.list == nil {
		return
	}
	h.list.remove(h.id)
}

// --- Scene-level event registration ---
//
// Scene-level callbacks run after the event has bubbled through the node
// chain, with the scene root as the event source.

// OnTouch registers a scene-level callback for every delivered touch event.
func (s *Scene) OnTouch(fn func(*TouchEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.touch.add(id, fn)
	return CallbackHandle{id: id, list: &s.handlers.touch}
}

// OnMouse registers a scene-level callback for mouse events, including
// EventDragDetected. A drag-and-drop gesture started from here has the
// scene root as its source.
func (s *Scene) OnMouse(fn func(*MouseEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.mouse.add(id, fn)
	return CallbackHandle{id: id, list: &s.handlers.mouse}
}

// OnGesture registers a scene-level callback for scroll, zoom, rotate, and
// swipe events.
func (s *Scene) OnGesture(fn func(*GestureEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.gesture.add(id, fn)
	return CallbackHandle{id: id, list: &s.handlers.gesture}
}

// OnDrag registers a scene-level callback for drag-and-drop events.
// DragEntered and DragExited only reach it when the scene root itself is
// entered or exited.
func (s *Scene) OnDrag(fn func(*DragEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.drag.add(id, fn)
	return CallbackHandle{id: id, list: &s.handlers.drag}
}
