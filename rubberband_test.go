package diagram

import "testing"

func TestRubberbandQualifiesOnEmptyAreaPress(t *testing.T) {
	g, _, _, _ := newConnectionTestGraph()
	started := g.InjectPress(1000, 1000, Modifiers{})
	if !g.Rubberband.Active() {
		t.Fatalf("expected rubberband to start on an empty-area press")
	}
	_ = started
}

func TestRubberbandDoesNotQualifyOverACell(t *testing.T) {
	g, _, _, _ := newConnectionTestGraph()
	g.InjectPress(40, 15, Modifiers{})
	if g.Rubberband.Active() {
		t.Fatalf("expected rubberband to not start when the press lands on a cell")
	}
}

func TestRubberbandAltForcesQualify(t *testing.T) {
	g, _, _, _ := newConnectionTestGraph()
	g.InjectPress(40, 15, Modifiers{Alt: true})
	if !g.Rubberband.Active() {
		t.Fatalf("expected Alt-held press to force a rubberband start even over a cell")
	}
}

func TestRubberbandSelectsExactlyIntersectingCells(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: false})
	var a, b, c *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 20, Height: 20}, "")
		b = m.AddVertex(m.Root(), Geometry{X: 100, Y: 0, Width: 20, Height: 20}, "")
		c = m.AddVertex(m.Root(), Geometry{X: 500, Y: 500, Width: 20, Height: 20}, "")
	})

	g.InjectPress(-10, -10, Modifiers{})
	if !g.Rubberband.Active() {
		t.Fatalf("expected the rubberband to start over empty space")
	}
	g.InjectMove(130, 30, Modifiers{})
	g.InjectRelease(130, 30, Modifiers{})

	selected := g.SelectionCells()
	selectedSet := make(map[*Cell]bool)
	for _, cell := range selected {
		selectedSet[cell] = true
	}
	if !selectedSet[a] || !selectedSet[b] {
		t.Fatalf("expected a and b selected, got %v", selected)
	}
	if selectedSet[c] {
		t.Fatalf("expected c to not be selected (out of region), got %v", selected)
	}
}

func TestRubberbandReleaseClearsActive(t *testing.T) {
	g, _, _, _ := newConnectionTestGraph()
	g.InjectPress(1000, 1000, Modifiers{})
	g.InjectMove(1100, 1100, Modifiers{})
	g.InjectRelease(1100, 1100, Modifiers{})
	if g.Rubberband.Active() {
		t.Fatalf("expected rubberband inactive after release")
	}
}

func TestRubberbandShiftAddsToSelection(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: false})
	var a, b *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 20, Height: 20}, "")
		b = m.AddVertex(m.Root(), Geometry{X: 500, Y: 500, Width: 20, Height: 20}, "")
	})
	g.Select(a)

	g.InjectPress(490, 490, Modifiers{Alt: true})
	g.InjectMove(530, 530, Modifiers{Shift: true})
	g.InjectRelease(530, 530, Modifiers{Shift: true})

	selected := g.SelectionCells()
	if len(selected) != 2 {
		t.Fatalf("selected = %v, want both a=%v (pre-existing) and b=%v (newly enclosed)", selected, a, b)
	}
}
