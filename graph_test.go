package diagram

import "testing"

func TestSnapRoundsToGrid(t *testing.T) {
	g, _ := newTestGraph()
	g.Config.SnapToGrid = true
	g.Config.GridSize = 10
	if got := g.Snap(Point{X: 14, Y: 26}); got != (Point{X: 10, Y: 30}) {
		t.Fatalf("Snap = %+v, want (10,30)", got)
	}
}

func TestSnapDisabledPassesThrough(t *testing.T) {
	g, _ := newTestGraph()
	g.Config.SnapToGrid = false
	if got := g.Snap(Point{X: 14, Y: 26}); got != (Point{X: 14, Y: 26}) {
		t.Fatalf("Snap = %+v, want unchanged", got)
	}
}

func TestHitTestFindsVertex(t *testing.T) {
	g, m := newTestGraph()
	var v *Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 100, Height: 100}, "")
	})
	if got := g.HitTest(Point{X: 50, Y: 50}); got != v {
		t.Fatalf("HitTest = %v, want %v", got, v)
	}
}

func TestHitTestMissesEmptySpace(t *testing.T) {
	g, m := newTestGraph()
	m.Update(func() {
		m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 100, Height: 100}, "")
	})
	if got := g.HitTest(Point{X: 5000, Y: 5000}); got != nil {
		t.Fatalf("HitTest = %v, want nil", got)
	}
}

func TestHitTestNestedChildWinsOverParent(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: false})
	var parent, child *Cell
	m.Update(func() {
		parent = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 100, Height: 100}, "")
		child = m.AddVertex(parent, Geometry{X: 10, Y: 10, Width: 20, Height: 20}, "")
	})
	if got := g.HitTest(Point{X: 15, Y: 15}); got != child {
		t.Fatalf("HitTest = %v, want nested child %v", got, child)
	}
	if got := g.HitTest(Point{X: 80, Y: 80}); got != parent {
		t.Fatalf("HitTest = %v, want parent %v outside the child's area", got, parent)
	}
}

func TestHitTestSkipsInvisibleCell(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: false})
	var v *Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 100, Height: 100}, "")
		m.SetVisible(v, false)
	})
	if got := g.HitTest(Point{X: 50, Y: 50}); got != nil {
		t.Fatalf("HitTest = %v, want nil for an invisible cell", got)
	}
}

func TestHitTestFindsEdgeNearItsPath(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: false})
	var a, b, e *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 20, Height: 20}, "")
		b = m.AddVertex(m.Root(), Geometry{X: 200, Y: 0, Width: 20, Height: 20}, "")
		e = m.AddEdge(m.Root(), a, b, "")
	})
	if got := g.HitTest(Point{X: 110, Y: 10}); got != e {
		t.Fatalf("HitTest = %v, want edge %v", got, e)
	}
}

func TestContainsHotspotFallsBackToFullBoundsWhenDisabled(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: false})
	var v *Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 100, Height: 100}, "")
	})
	if got := g.HitTest(Point{X: 2, Y: 2}); got != v {
		t.Fatalf("HitTest = %v, want %v (full bounds corner) with hotspot disabled", got, v)
	}
}

func TestContainsHotspotNarrowsToCenterWhenEnabled(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: true, Hotspot: 0.3, MinHotspot: 8, MaxHotspot: 20})
	var v *Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 100, Height: 100}, "")
	})
	if got := g.HitTest(Point{X: 2, Y: 2}); got != nil {
		t.Fatalf("HitTest = %v, want nil (corner outside the narrowed hotspot)", got)
	}
	if got := g.HitTest(Point{X: 50, Y: 50}); got != v {
		t.Fatalf("HitTest = %v, want %v at the center", got, v)
	}
}

func TestConnectableParentOfAscendsToConnectableAncestor(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, DefaultGraphConfig())
	var parent, child *Cell
	m.Update(func() {
		parent = m.AddVertex(m.Root(), Geometry{Width: 100, Height: 100}, "")
		child = m.AddVertex(parent, Geometry{Width: 10, Height: 10}, "")
	})
	child.connectable = false
	if got := g.ConnectableParentOf(child); got != parent {
		t.Fatalf("ConnectableParentOf = %v, want %v", got, parent)
	}
}

func TestConnectableParentOfReturnsNilWhenNoAncestorQualifies(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, DefaultGraphConfig())
	var v *Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
	})
	v.connectable = false
	if got := g.ConnectableParentOf(v); got != nil {
		t.Fatalf("ConnectableParentOf = %v, want nil", got)
	}
}

func TestIsValidConnectionDefaultsTrueAndRejectsNil(t *testing.T) {
	g, m := newTestGraph()
	var a, b *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
		b = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
	})
	if !g.IsValidConnection(a, b) {
		t.Fatalf("expected default IsValidConnection to allow a->b")
	}
	if g.IsValidConnection(nil, b) || g.IsValidConnection(a, nil) {
		t.Fatalf("expected a nil endpoint to always be rejected")
	}
}

func TestIsValidConnectionDelegatesToConfigHook(t *testing.T) {
	g, m := newTestGraph()
	var a, b *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
		b = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
	})
	g.Config.IsValidConnection = func(source, target *Cell) bool { return source == b }
	if g.IsValidConnection(a, b) {
		t.Fatalf("expected a->b rejected by the hook")
	}
	if !g.IsValidConnection(b, a) {
		t.Fatalf("expected b->a allowed by the hook")
	}
}

func TestSelectClearSelectionAndSelectionCells(t *testing.T) {
	g, m := newTestGraph()
	var a, b *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
		b = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
	})
	g.Select(a, b)
	got := g.SelectionCells()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("SelectionCells = %v, want [a b]", got)
	}
	g.ClearSelection()
	if got := g.SelectionCells(); len(got) != 0 {
		t.Fatalf("SelectionCells after Clear = %v, want empty", got)
	}
}

func TestSelectRegionReplacesByDefaultAndAddsWhenRequested(t *testing.T) {
	m := NewModel()
	g := NewGraph(m, DefaultStyleProvider, GraphConfig{HotspotEnabled: false})
	var a, b, c *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{X: 0, Y: 0, Width: 20, Height: 20}, "")
		b = m.AddVertex(m.Root(), Geometry{X: 100, Y: 0, Width: 20, Height: 20}, "")
		c = m.AddVertex(m.Root(), Geometry{X: 500, Y: 500, Width: 20, Height: 20}, "")
	})
	g.Select(c)
	g.SelectRegion(Rect{X: -5, Y: -5, Width: 130, Height: 30}, false)
	got := g.SelectionCells()
	if len(got) != 2 {
		t.Fatalf("SelectRegion(replace) = %v, want [%v %v]", got, a, b)
	}

	g.Select(c)
	g.SelectRegion(Rect{X: -5, Y: -5, Width: 130, Height: 30}, true)
	got = g.SelectionCells()
	if len(got) != 3 {
		t.Fatalf("SelectRegion(add) = %v, want c plus a and b", got)
	}
}

func TestToggleCellVisibleFlipsCollapsed(t *testing.T) {
	g, m := newTestGraph()
	var v *Cell
	m.Update(func() {
		v = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
	})
	if v.IsCollapsed() {
		t.Fatalf("expected a fresh vertex to start uncollapsed")
	}
	g.ToggleCellVisible(v)
	if !v.IsCollapsed() {
		t.Fatalf("expected ToggleCellVisible to collapse")
	}
	g.ToggleCellVisible(v)
	if v.IsCollapsed() {
		t.Fatalf("expected a second toggle to uncollapse")
	}
}

func TestFoldCellsSetsEveryCellToTheGivenState(t *testing.T) {
	g, m := newTestGraph()
	var a, b *Cell
	m.Update(func() {
		a = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
		b = m.AddVertex(m.Root(), Geometry{Width: 10, Height: 10}, "")
	})
	g.FoldCells(true, a, b)
	if !a.IsCollapsed() || !b.IsCollapsed() {
		t.Fatalf("expected both cells collapsed")
	}
	g.FoldCells(false, a, b)
	if a.IsCollapsed() || b.IsCollapsed() {
		t.Fatalf("expected both cells expanded")
	}
}

func TestGraphNearestCommonAncestorDelegatesToModel(t *testing.T) {
	g, m := newTestGraph()
	var parent, a, b *Cell
	m.Update(func() {
		parent = m.AddVertex(m.Root(), Geometry{Width: 100, Height: 100}, "")
		a = m.AddVertex(parent, Geometry{Width: 10, Height: 10}, "")
		b = m.AddVertex(parent, Geometry{X: 50, Width: 10, Height: 10}, "")
	})
	if got := g.NearestCommonAncestor(a, b); got != parent {
		t.Fatalf("NearestCommonAncestor = %v, want %v", got, parent)
	}
}

func TestDominantAxisProjectPicksTheLargerDelta(t *testing.T) {
	center := Point{X: 0, Y: 0}
	if got := dominantAxisProject(center, Point{X: 10, Y: 2}); got != (Point{X: 10, Y: 0}) {
		t.Fatalf("dominantAxisProject (wide) = %+v, want (10,0)", got)
	}
	if got := dominantAxisProject(center, Point{X: 2, Y: 10}); got != (Point{X: 0, Y: 10}) {
		t.Fatalf("dominantAxisProject (tall) = %+v, want (0,10)", got)
	}
}
