// Package ecs provides ECS adapters for reveal's event stream.
//
// The primary adapter is [NewDonburiSink], which bridges reveal events
// (enter, count ticks, cycles, media loads, finished entrances) into a
// [Donburi] world as typed events. Subscribe to [EventType] in your ECS
// systems to receive them. Entities bound with [DonburiSink.Bind] also get
// their [State] component kept current.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	page := reveal.NewPage(reveal.PageConfig{Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
