package diagram

import "testing"

func TestCheckInvariantsCleanModel(t *testing.T) {
	m := NewModel()
	m.Update(func() {
		a := m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
		b := m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
		m.AddEdge(m.Root(), a, b, "")
	})
	if problems := CheckInvariants(m); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestCheckInvariantsNilModel(t *testing.T) {
	if problems := CheckInvariants(nil); len(problems) != 0 {
		t.Fatalf("expected no problems for nil model, got %v", problems)
	}
}

func TestCheckInvariantsDetectsBrokenEdgeSymmetry(t *testing.T) {
	m := NewModel()
	var a, b, e *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{}, "")
		b = m.AddVertex(m.Root(), Geometry{}, "")
		e = m.AddEdge(m.Root(), a, b, "")
	})
	// Directly corrupt the incident-edge set without going through Model,
	// simulating a bug that CheckInvariants should catch.
	a.removeEdgeRef(e)
	problems := CheckInvariants(m)
	if len(problems) == 0 {
		t.Fatalf("expected a problem after manually breaking edge symmetry")
	}
}

func TestCheckInvariantsDetectsDuplicateID(t *testing.T) {
	m := NewModel()
	var a, b *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{}, "")
		b = m.AddVertex(m.Root(), Geometry{}, "")
	})
	b.id = a.id
	problems := CheckInvariants(m)
	if len(problems) == 0 {
		t.Fatalf("expected a duplicate-id problem")
	}
}

func TestGraphCheckInvariantsLogsOnlyWhenDebug(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, DefaultGraphConfig())
	g.Debug = false
	if problems := g.CheckInvariants(); len(problems) != 0 {
		t.Fatalf("expected clean model, got %v", problems)
	}
	g.Debug = true
	if problems := g.CheckInvariants(); len(problems) != 0 {
		t.Fatalf("expected clean model, got %v", problems)
	}
}
