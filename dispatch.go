package reed

// eventBase carries the routing state shared by every event kind.
type eventBase struct {
	Type EventType

	// Target is the node the event was originally delivered to.
	Target *Node
	// Source is the node whose handler is currently running. Scene-level
	// handlers see the scene root.
	Source *Node

	Modifiers KeyModifiers

	consumed bool
}

// Consume stops the event from reaching further ancestors and scene-level
// handlers.
func (e *eventBase) Consume() {
	e.consumed = true
}

// IsConsumed reports whether a handler consumed the event.
func (e *eventBase) IsConsumed() bool {
	return e.consumed
}

func (e *eventBase) base() *eventBase {
	return e
}

type routedEvent interface {
	base() *eventBase
}

// bubble delivers ev to target and then each ancestor up to the root,
// followed by the scene-level handlers. The path is captured before any
// handler runs, so tree edits made by handlers do not change it.
func bubble[E routedEvent](s *Scene, target *Node, ev E, field func(*Node) func(E), scene *handlerList[E]) {
	b := ev.base()
	b.Target = target

	var buf [16]*Node
	path := buf[:0]
	for n := target; n != nil; n = n.Parent {
		path = append(path, n)
	}
	for _, n := range path {
		fn := field(n)
		if fn == nil {
			continue
		}
		b.Source = n
		fn(ev)
		if b.consumed {
			return
		}
	}
	b.Source = s.root
	scene.call(ev, b)
}

// deliverAt delivers ev to target only. Scene-level handlers see it when
// the target is the scene root.
func deliverAt[E routedEvent](s *Scene, target *Node, ev E, field func(*Node) func(E), scene *handlerList[E]) {
	b := ev.base()
	b.Target = target
	b.Source = target
	if fn := field(target); fn != nil {
		fn(ev)
		if b.consumed {
			return
		}
	}
	if target == s.root {
		scene.call(ev, b)
	}
}

// --- Per-node handler selectors ---

func touchHandler(n *Node) func(*TouchEvent) { return n.OnTouch }

func mouseHandler(n *Node) func(*MouseEvent) { return n.OnMouse }

func gestureHandler(kind GestureKind) func(*Node) func(*GestureEvent) {
	switch kind {
	case GestureZoom:
		return func(n *Node) func(*GestureEvent) { return n.OnZoom }
	case GestureRotate:
		return func(n *Node) func(*GestureEvent) { return n.OnRotate }
	case GestureSwipe:
		return func(n *Node) func(*GestureEvent) { return n.OnSwipe }
	default:
		return func(n *Node) func(*GestureEvent) { return n.OnScroll }
	}
}

func dragHandler(t EventType) func(*Node) func(*DragEvent) {
	switch t {
	case EventDragEntered:
		return func(n *Node) func(*DragEvent) { return n.OnDragEntered }
	case EventDragExited:
		return func(n *Node) func(*DragEvent) { return n.OnDragExited }
	case EventDragEnteredTarget:
		return func(n *Node) func(*DragEvent) { return n.OnDragEnteredTarget }
	case EventDragExitedTarget:
		return func(n *Node) func(*DragEvent) { return n.OnDragExitedTarget }
	case EventDragOver:
		return func(n *Node) func(*DragEvent) { return n.OnDragOver }
	case EventDragDropped:
		return func(n *Node) func(*DragEvent) { return n.OnDragDropped }
	default:
		return func(n *Node) func(*DragEvent) { return n.OnDragDone }
	}
}
