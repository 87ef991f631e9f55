package reed

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, every delivered input event is forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is the flattened form of an input event sent to the ECS
// bridge. EntityID comes from the target node.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	SceneX    float64
	SceneY    float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers

	// Touch fields (valid for touch events)
	TouchID    int
	EventSetID int

	// Gesture fields (valid for scroll, zoom, rotate, and swipe events)
	DeltaX     float64
	DeltaY     float64
	TotalX     float64
	TotalY     float64
	ZoomFactor float64
	Angle      float64
	Inertia    bool

	// Drag-and-drop fields
	TransferMode TransferMode
	SessionID    string
}

func (s *Scene) emit(ev InteractionEvent, target *Node, scene, local Vec2) {
	if target != nil {
		ev.EntityID = target.EntityID
	}
	ev.SceneX, ev.SceneY = scene.X, scene.Y
	ev.LocalX, ev.LocalY = local.X, local.Y
	s.store.EmitEvent(ev)
}

func (s *Scene) emitTouchEvent(ev *TouchEvent) {
	if s.store == nil {
		return
	}
	p := ev.Point
	s.emit(InteractionEvent{
		Type:       ev.Type,
		Modifiers:  ev.Modifiers,
		TouchID:    p.ID,
		EventSetID: ev.EventSetID,
	}, ev.Target, p.ScenePosition, p.Position)
}

func (s *Scene) emitMouseEvent(ev *MouseEvent) {
	if s.store == nil {
		return
	}
	s.emit(InteractionEvent{
		Type:      ev.Type,
		Button:    ev.Button,
		Modifiers: ev.Modifiers,
	}, ev.Target, ev.ScenePosition, localTo(ev.Target, ev.ScenePosition))
}

func (s *Scene) emitGestureEvent(ev *GestureEvent) {
	if s.store == nil {
		return
	}
	ie := InteractionEvent{
		Type:      ev.Type,
		Modifiers: ev.Modifiers,
		Inertia:   ev.Inertia,
	}
	switch ev.Kind {
	case GestureScroll:
		ie.DeltaX, ie.DeltaY = ev.Delta.X, ev.Delta.Y
		ie.TotalX, ie.TotalY = ev.Total.X, ev.Total.Y
	case GestureZoom:
		ie.ZoomFactor = ev.ZoomFactor
		ie.TotalX = ev.TotalZoomFactor
	case GestureRotate:
		ie.Angle = ev.Angle
		ie.TotalX = ev.TotalAngle
	}
	s.emit(ie, ev.Target, ev.ScenePosition, localTo(ev.Target, ev.ScenePosition))
}

func (s *Scene) emitDragEvent(ev *DragEvent) {
	if s.store == nil {
		return
	}
	ie := InteractionEvent{
		Type:         ev.Type,
		Modifiers:    ev.Modifiers,
		TransferMode: ev.TransferMode,
	}
	if ev.session != nil {
		ie.SessionID = ev.session.ID.String()
	}
	s.emit(ie, ev.Target, ev.ScenePosition, localTo(ev.Target, ev.ScenePosition))
}

func localTo(n *Node, scene Vec2) Vec2 {
	if n == nil {
		return scene
	}
	return n.WorldToLocal(scene)
}
