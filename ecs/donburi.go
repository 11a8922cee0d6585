// Package ecs provides ECS adapters for reveal.
package ecs

import (
	"github.com/phanxgames/reveal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EventType is the Donburi event type for reveal events.
var EventType = events.NewEventType[reveal.Event]()

// StateData mirrors the engine state of one watched region on an entity.
type StateData struct {
	Entered     bool
	Value       float64
	ActiveIndex int
	Loaded      bool
	Failed      bool
	Revealed    bool
}

// State is the component updated for bound entities.
var State = donburi.NewComponentType[StateData]()

// DonburiSink is a reveal.EventSink backed by a Donburi world.
type DonburiSink struct {
	world    donburi.World
	bindings map[string]donburi.Entity
}

// NewDonburiSink creates a sink that publishes every event to EventType.
// Events are queued; consume them with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, bindings: make(map[string]donburi.Entity)}
}

// Bind routes events for region in section to entity's State component.
// The component is added if the entity lacks it.
func (s *DonburiSink) Bind(section, region string, entity donburi.Entity) {
	if !s.world.Valid(entity) {
		return
	}
	entry := s.world.Entry(entity)
	if !entry.HasComponent(State) {
		entry.AddComponent(State)
	}
	s.bindings[section+"/"+region] = entity
}

// Unbind stops routing events for region in section.
func (s *DonburiSink) Unbind(section, region string) {
	delete(s.bindings, section+"/"+region)
}

// EmitEvent publishes event and updates the bound entity, if any.
func (s *DonburiSink) EmitEvent(event reveal.Event) {
	EventType.Publish(s.world, event)

	key := event.Section + "/" + event.Region
	entity, ok := s.bindings[key]
	if !ok {
		return
	}
	if !s.world.Valid(entity) {
		delete(s.bindings, key)
		return
	}
	st := State.Get(s.world.Entry(entity))
	switch event.Type {
	case reveal.EventEnter:
		st.Entered = true
	case reveal.EventCountTick:
		st.Value = event.Value
	case reveal.EventCycle:
		st.ActiveIndex = event.Index
	case reveal.EventMediaLoaded:
		st.Loaded = true
	case reveal.EventMediaError:
		st.Failed = true
	case reveal.EventEntranceDone:
		st.Revealed = true
	}
}
