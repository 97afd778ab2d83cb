// Package ecs provides ECS adapters for tileswap.
package ecs

import (
	"github.com/phanxgames/tileswap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for tileswap game events.
// Subscribe to this in your ECS systems to receive level loads, swaps and wins.
var GameEventType = events.NewEventType[tileswap.GameEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Game events are published to GameEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) tileswap.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event tileswap.GameEvent) {
	GameEventType.Publish(s.world, event)
}
