// Package ecs provides ECS adapters for marionette's playback event system.
//
// The primary adapter is [NewDonburiStore], which bridges marionette
// playback events (clip loops and completions) into a [Donburi] world as
// typed events. Subscribe to [AnimationEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	player.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
