// Package reed is the input layer for retained-mode 2D scenes on
// [Ebitengine]: it turns raw touch, mouse, and gesture samples into events
// delivered to the right [Node].
//
// # Quick start
//
// Build a node tree under [Scene.Root] and call [Scene.Update] from your
// game loop:
//
//	type Game struct{ scene *reed.Scene }
//
//	func (g *Game) Update() error { g.scene.Update(); return nil }
//
// Handlers are plain callback fields on nodes. Events bubble from the
// target up to the root, then to the scene-level handlers registered with
// [Scene.OnTouch], [Scene.OnMouse], [Scene.OnGesture], and [Scene.OnDrag].
// Calling Consume on an event stops the bubbling.
//
//	card := reed.NewNode("card", 80, 120)
//	card.OnMouse = func(e *reed.MouseEvent) {
//		if e.Type == reed.EventMouseClicked {
//			flip(card)
//		}
//	}
//	scene.Root().AddChild(card)
//
// # Touch
//
// The [TouchTracker] assigns every contact a small, stable ID for as long as
// it is down and delivers one [TouchEvent] per contact and frame. A press
// grabs its contact to the node it landed on; handlers may regrab or
// ungrab through [TouchPoint.Grab] and [TouchPoint.Ungrab].
//
// # Gestures
//
// Scroll, zoom, and rotate each have a [Recognizer] that pins the gesture
// to the node under the gesture when it starts. Platform gesture samples go
// in through [Scene.ProcessScroll] and friends; on backends that only
// report raw contacts, two-finger gestures and swipes are derived from the
// touch frames, and a fast two-finger scroll continues with inertia.
//
// # Drag and drop
//
// A press that moves past [Config].DragHysteresis fires EventDragDetected at
// the press target. Its handler may call [MouseEvent.StartDragAndDrop] and
// fill the returned [Dragboard]; targets then negotiate a [TransferMode] in
// their DragOver handlers and complete the transfer on DragDropped. The
// source always receives exactly one DragDone.
//
//	src.OnMouse = func(e *reed.MouseEvent) {
//		if e.Type != reed.EventDragDetected {
//			return
//		}
//		board, err := e.StartDragAndDrop(reed.CopyOrMove...)
//		if err == nil {
//			board.Put("text/plain", "hello")
//		}
//	}
//
// # Testing
//
// [Scene.InjectClick], [Scene.InjectDrag], [Scene.InjectTouch], and the JSON
// [TestRunner] drive the same pipeline as real input; call [Scene.Advance]
// to run frames without a window.
//
// ECS integration is available through the Donburi adapter in reed/ecs.
//
// [Ebitengine]: https://ebitengine.org
package reed
