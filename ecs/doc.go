// Package ecs provides ECS adapters for tileswap's game events.
//
// The primary adapter is [NewDonburiSink], which bridges tileswap game events
// (level loaded, tile swapped, level won) into a [Donburi] world as typed
// events. Subscribe to [GameEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	g, err := tileswap.NewGame(tileswap.Config{Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
