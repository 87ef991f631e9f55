// Package ecs bridges reed's input events into an ECS world.
//
// [NewDonburiStore] publishes every delivered event as a
// [reed.InteractionEvent] into a [Donburi] world. The event's EntityID is
// the target node's EntityID, so systems can map it back to their own
// entities. Drag-and-drop events carry the session's SessionID.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
