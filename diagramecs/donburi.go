// Package diagramecs bridges a diagram.Model to a Donburi ECS world: it
// lets a cell's opaque Value be backed by a Donburi entity, and it
// republishes diagram.Model events onto the world's event bus so ECS
// systems can react to model mutations without importing package
// diagram's event registry directly. Grounded on the teacher's
// ecs/donburi.go (willow.EntityStore backed by a Donburi world,
// publishing willow.InteractionEvent), generalized from willow's single
// interaction-event stream to the diagram engine's named model events.
package diagramecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/arborgraph/diagram"
)

// ModelEventType is the Donburi event type for diagram.Model events.
// Subscribe to this with events.Subscribe and drain it with
// events.ProcessEvents each tick.
var ModelEventType = events.NewEventType[ModelEvent]()

// ModelEvent pairs an event name (diagram.EventChange, etc.) with its
// payload for ECS consumers that want to switch on the name.
type ModelEvent struct {
	Name string
	diagram.Event
}

// CellComponent associates a donburi.Entity with the CellID it backs.
var CellComponent = donburi.NewComponentType[diagram.CellID]()

// CellStore bridges a diagram.Model to a Donburi world: it creates one
// entity per cell on request and republishes model events onto
// ModelEventType.
type CellStore struct {
	world   donburi.World
	model   *diagram.Model
	byCell  map[diagram.CellID]donburi.Entity
	handles []diagram.EventHandle
}

// NewDonburiStore wires model's events into world, returning the store
// that also manages the Cell-to-entity mapping. Call Close to
// unregister the listeners.
func NewDonburiStore(model *diagram.Model, world donburi.World) *CellStore {
	s := &CellStore{world: world, model: model, byCell: make(map[diagram.CellID]donburi.Entity)}
	for _, name := range diagramecsObservedEvents {
		name := name
		h := model.On(name, func(e diagram.Event) {
			ModelEventType.Publish(world, ModelEvent{Name: name, Event: e})
		})
		s.handles = append(s.handles, h)
	}
	return s
}

// diagramecsObservedEvents lists the model-side event names republished
// onto the ECS bus: change, notify and before-undo. Begin/end-update
// events are not republished.
var diagramecsObservedEvents = []string{
	diagram.EventChange,
	diagram.EventNotify,
	diagram.EventBeforeUndo,
}

// EntityFor returns the Donburi entity backing cell, creating one (with
// CellComponent set to cell.ID()) on first use.
func (s *CellStore) EntityFor(cell *diagram.Cell) donburi.Entity {
	if e, ok := s.byCell[cell.ID()]; ok {
		return e
	}
	e := s.world.Create(CellComponent)
	CellComponent.SetValue(s.world.Entry(e), cell.ID())
	s.byCell[cell.ID()] = e
	return e
}

// CellIDFor returns the CellID backing entity, and whether one was
// recorded.
func (s *CellStore) CellIDFor(e donburi.Entity) (diagram.CellID, bool) {
	entry := s.world.Entry(e)
	if entry == nil || !entry.HasComponent(CellComponent) {
		return 0, false
	}
	return *CellComponent.Get(entry), true
}

// Forget removes cell's entity mapping (but does not destroy the
// entity; the caller owns that lifecycle decision).
func (s *CellStore) Forget(cell *diagram.Cell) {
	delete(s.byCell, cell.ID())
}

// Close unregisters every listener this store installed on the model.
func (s *CellStore) Close() {
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
}
