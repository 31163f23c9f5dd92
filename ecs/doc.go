// Package ecs provides ECS adapters for viewport's interaction notifications.
//
// [NewDonburiInteractor] publishes every lifecycle notification (gesture
// start, rotate, pan, dolly, spin, move, stop, mouse enter/leave) to a
// [Donburi] world as a typed event. [NewDonburiMouseHandler] publishes raw
// mouse events without ever swallowing them. Subscribe to
// [InteractionEventType] or [MouseEventType] in your ECS systems.
//
// Usage:
//
//	manager.AddInteractor(ecs.NewDonburiInteractor(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
