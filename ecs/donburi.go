// Package ecs forwards howitzer game events into an ECS world.
package ecs

import (
	"github.com/phanxgames/howitzer"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for howitzer game events.
// Subscribe to this in your ECS systems to receive shots, hits, misses and
// score changes.
var GameEventType = events.NewEventType[howitzer.GameEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Game events are published to GameEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) howitzer.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event howitzer.GameEvent) {
	GameEventType.Publish(s.world, event)
}
