// Package ecs provides ECS adapters for howitzer's game events.
//
// The adapter is [NewDonburiSink], which bridges game events (fired, hit,
// miss, new best, resets) into a [Donburi] world as typed events.
// Subscribe to [GameEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
