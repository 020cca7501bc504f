// Package ecs provides ECS adapters for scrollscape's focus events.
//
// The primary adapter is [NewDonburiStore], which bridges scrollscape focus
// transitions into a [Donburi] world as typed events. Subscribe to
// [FocusEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// Unlike the scene's focus subscriber, Donburi events are queued and delivered
// when the world processes events.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
