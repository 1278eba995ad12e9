package diagramecs

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/arborgraph/diagram"
)

func TestEntityForCreatesAndReusesOneEntityPerCell(t *testing.T) {
	m := diagram.NewModel()
	w := donburi.NewWorld()
	s := NewDonburiStore(m, w)
	defer s.Close()

	var v *diagram.Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), diagram.Geometry{Width: 10, Height: 10}, "")
	})

	e1 := s.EntityFor(v)
	e2 := s.EntityFor(v)
	if e1 != e2 {
		t.Fatalf("EntityFor returned different entities for the same cell: %v != %v", e1, e2)
	}
	id, ok := s.CellIDFor(e1)
	if !ok || id != v.ID() {
		t.Fatalf("CellIDFor = %v, %v, want %v, true", id, ok, v.ID())
	}
}

func TestCellIDForUnknownEntityReportsNotFound(t *testing.T) {
	w := donburi.NewWorld()
	s := NewDonburiStore(diagram.NewModel(), w)
	defer s.Close()

	other := w.Create()
	if _, ok := s.CellIDFor(other); ok {
		t.Fatalf("expected CellIDFor to report not-found for an entity with no CellComponent")
	}
}

func TestForgetDropsTheMappingWithoutDestroyingTheEntity(t *testing.T) {
	m := diagram.NewModel()
	w := donburi.NewWorld()
	s := NewDonburiStore(m, w)
	defer s.Close()

	var v *diagram.Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), diagram.Geometry{Width: 10, Height: 10}, "")
	})
	e := s.EntityFor(v)
	s.Forget(v)

	if _, ok := s.CellIDFor(e); !ok {
		t.Fatalf("expected the entity's component to still be readable after Forget")
	}
	e2 := s.EntityFor(v)
	if e2 == e {
		t.Fatalf("expected EntityFor to mint a fresh entity after Forget, got the same one")
	}
}

func TestNewDonburiStoreRepublishesModelEventsOntoTheWorldBus(t *testing.T) {
	m := diagram.NewModel()
	w := donburi.NewWorld()
	s := NewDonburiStore(m, w)
	defer s.Close()

	var names []string
	events.Subscribe(w, ModelEventType, func(w donburi.World, ev ModelEvent) {
		names = append(names, ev.Name)
	})

	m.Update(func() {
		m.AddVertex(m.Root(), diagram.Geometry{Width: 10, Height: 10}, "")
	})
	events.ProcessEvents(w)

	found := false
	for _, n := range names {
		if n == diagram.EventChange {
			found = true
		}
	}
	if !found {
		t.Fatalf("republished events = %v, want at least one %q", names, diagram.EventChange)
	}
}

func TestCloseUnregistersListeners(t *testing.T) {
	m := diagram.NewModel()
	w := donburi.NewWorld()
	s := NewDonburiStore(m, w)
	s.Close()

	events.Subscribe(w, ModelEventType, func(w donburi.World, ev ModelEvent) {
		t.Fatalf("did not expect any event after Close, got %+v", ev)
	})
	m.Update(func() {
		m.AddVertex(m.Root(), diagram.Geometry{Width: 10, Height: 10}, "")
	})
	events.ProcessEvents(w)
}
