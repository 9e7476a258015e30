// Package ecs provides ECS adapters for marionette.
package ecs

import (
	"github.com/phanxgames/marionette"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimationEventType is the Donburi event type for marionette playback
// events. Subscribe to this in your ECS systems to react to clip loops and
// completions.
var AnimationEventType = events.NewEventType[marionette.AnimationEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Playback
// events are published to AnimationEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) marionette.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event marionette.AnimationEvent) {
	AnimationEventType.Publish(s.world, event)
}
