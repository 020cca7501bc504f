// Package ecs provides ECS adapters for scrollscape.
package ecs

import (
	"github.com/phanxgames/scrollscape"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FocusEventType is the Donburi event type for scrollscape focus changes.
// Subscribe to this in your ECS systems to receive landmark transitions.
var FocusEventType = events.NewEventType[scrollscape.FocusEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Focus events are published to FocusEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) scrollscape.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitFocus(event scrollscape.FocusEvent) {
	FocusEventType.Publish(s.world, event)
}
