// Package ecs provides ECS adapters for reed.
package ecs

import (
	"github.com/phanxgames/reed"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for reed input events.
// Subscribe to this in your ECS systems to receive touch, mouse, gesture,
// and drag-and-drop events.
var InteractionEventType = events.NewEventType[reed.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are published to InteractionEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) reed.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event reed.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
