package diagram

import "math"

// GraphConfig holds the engine-construction-time capability descriptor
// spec.md §9 asks for ("global constants and feature-detection... replace
// with a capability descriptor injected at engine construction"), plus
// the grid/fold supplemental features (SPEC_FULL.md "Supplemental
// features"). Grounded on camera.go's Viewport/Bounds config-field style.
type GraphConfig struct {
	GridSize   float64
	SnapToGrid bool

	HotspotEnabled bool
	Hotspot        float64
	MinHotspot     float64
	MaxHotspot     float64

	CreateTarget   bool
	WaypointsOnAlt bool

	// IsValidConnection vets a candidate source/target pair before the
	// connection handler will commit an edge between them. Nil means
	// "always valid".
	IsValidConnection func(source, target *Cell) bool
}

// DefaultGraphConfig returns the conventional defaults this family of
// diagram engines ships with.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		GridSize:       10,
		SnapToGrid:     true,
		HotspotEnabled: true,
		Hotspot:        0.3,
		MinHotspot:     8,
		MaxHotspot:     20,
	}
}

// Graph is the top-level engine object wiring a Model and a View
// together with the interaction state machines (marker, constraint
// handler, connection handler, rubberband) and the current selection.
// This is the object a host application constructs and drives with
// pointer events (spec.md §4's component list, assembled).
type Graph struct {
	Model  *Model
	View   *View
	Config GraphConfig
	Debug  bool

	Marker     *CellMarker
	Constraint *ConstraintHandler
	Connection *ConnectionHandler
	Rubberband *Rubberband
	Selection  *SelectionCellsHandler

	selected []CellID

	EdgeFactory   func(m *Model, value any, style string, source, target *Cell) *Cell
	VertexFactory func(m *Model, value any, style string, geo Geometry) *Cell
}

// NewGraph assembles a Graph over model, wiring every handler with back
// references to itself, grounded on willow.go's top-level constructor
// that wires Scene+Camera+InputState together.
func NewGraph(model *Model, provider StyleProvider, cfg GraphConfig) *Graph {
	g := &Graph{
		Model:  model,
		View:   NewView(model, provider),
		Config: cfg,
	}
	g.Marker = newCellMarker(g)
	g.Constraint = newConstraintHandler(g)
	g.Connection = newConnectionHandler(g)
	g.Rubberband = newRubberband(g)
	g.Selection = newSelectionCellsHandler(g)
	return g
}

// Snap rounds p to the configured grid if snapping is enabled.
func (g *Graph) Snap(p Point) Point {
	if !g.Config.SnapToGrid || g.Config.GridSize <= 0 {
		return p
	}
	return Point{Quantize(p.X, g.Config.GridSize), Quantize(p.Y, g.Config.GridSize)}
}

// HitTest returns the topmost visible cell whose state contains p, in
// reverse child order (last-painted-on-top), descending into children
// before testing a parent's own bounds so a nested vertex wins over its
// container. Grounded on input.go's hitTest/collectInteractable reverse
// painter-order walk.
func (g *Graph) HitTest(p Point) *Cell {
	return g.hitTestCell(g.Model.root, p)
}

func (g *Graph) hitTestCell(cell *Cell, p Point) *Cell {
	if cell == nil {
		return nil
	}
	for i := cell.ChildCount() - 1; i >= 0; i-- {
		if hit := g.hitTestCell(cell.ChildAt(i), p); hit != nil {
			return hit
		}
	}
	if cell == g.Model.root || !cell.IsVisible() {
		return nil
	}
	s := g.View.State(cell)
	if s == nil {
		return nil
	}
	if cell.IsEdge() {
		if hitsPolyline(s.AbsolutePoints, p, 4) {
			return cell
		}
		return nil
	}
	if g.containsHotspot(s, p) {
		return cell
	}
	return nil
}

func (g *Graph) containsHotspot(s *CellState, p Point) bool {
	bounds := s.RotatedBounds()
	local := p
	if s.Rotation != 0 {
		local = InverseRotatePoint(p, bounds.Center(), s.Rotation)
	}
	if !g.Config.HotspotEnabled || g.Config.Hotspot <= 0 {
		return bounds.Contains(local)
	}
	hw := clamp(bounds.Width*g.Config.Hotspot, g.Config.MinHotspot, g.Config.MaxHotspot)
	hh := clamp(bounds.Height*g.Config.Hotspot, g.Config.MinHotspot, g.Config.MaxHotspot)
	c := bounds.Center()
	hot := Rect{c.X - hw/2, c.Y - hh/2, hw, hh}
	return hot.Contains(local)
}

func hitsPolyline(pts []Point, p Point, tolerance float64) bool {
	for i := 1; i < len(pts); i++ {
		if distanceToSegment(p, pts[i-1], pts[i]) <= tolerance {
			return true
		}
	}
	return false
}

func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = clamp(t, 0, 1)
	proj := Point{a.X + t*ab.X, a.Y + t*ab.Y}
	return p.Distance(proj)
}

// ConnectableParentOf ascends from cell to the nearest connectable
// ancestor, or nil (spec.md §4.4 step 2: "ascend to a connectable parent
// if the cell itself is not connectable").
func (g *Graph) ConnectableParentOf(cell *Cell) *Cell {
	for c := cell; c != nil; c = c.Parent() {
		if c.IsConnectable() {
			return c
		}
	}
	return nil
}

// IsValidConnection delegates to the config hook, defaulting to true.
func (g *Graph) IsValidConnection(source, target *Cell) bool {
	if source == nil || target == nil {
		return false
	}
	if g.Config.IsValidConnection == nil {
		return true
	}
	return g.Config.IsValidConnection(source, target)
}

// Select replaces the current selection.
func (g *Graph) Select(cells ...*Cell) {
	g.selected = g.selected[:0]
	for _, c := range cells {
		if c != nil {
			g.selected = append(g.selected, c.ID())
		}
	}
}

// ClearSelection empties the current selection.
func (g *Graph) ClearSelection() { g.selected = nil }

// SelectionCells resolves the current selection's ids back to cells.
func (g *Graph) SelectionCells() []*Cell {
	out := make([]*Cell, 0, len(g.selected))
	for _, id := range g.selected {
		if c := g.Model.CellByID(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// SelectRegion selects every visible cell (vertex or edge, connectable or
// not) whose state intersects rect (spec.md §4.7 "Rubberband").
func (g *Graph) SelectRegion(rect Rect, add bool) {
	var hits []*Cell
	g.collectIntersecting(g.Model.root, rect, &hits)
	if add {
		for _, c := range hits {
			g.selected = append(g.selected, c.ID())
		}
		return
	}
	g.Select(hits...)
}

func (g *Graph) collectIntersecting(cell *Cell, rect Rect, out *[]*Cell) {
	for i := 0; i < cell.ChildCount(); i++ {
		g.collectIntersecting(cell.ChildAt(i), rect, out)
	}
	if cell == g.Model.root || !cell.IsVisible() {
		return
	}
	s := g.View.State(cell)
	if s != nil && s.Bounds().Intersects(rect) {
		*out = append(*out, cell)
	}
}

// ToggleCellVisible flips a cell's collapsed flag, relying on its
// geometry's AlternateBounds for the collapsed footprint (SPEC_FULL.md
// supplemental feature; spec.md §3.2 carries the field without exposing
// the operation that drives it).
func (g *Graph) ToggleCellVisible(cell *Cell) {
	g.Model.SetCollapsed(cell, !cell.IsCollapsed())
}

// FoldCells collapses or expands every cell in cells to collapsed.
func (g *Graph) FoldCells(collapsed bool, cells ...*Cell) {
	g.Model.Update(func() {
		for _, c := range cells {
			if c.IsCollapsed() != collapsed {
				g.Model.SetCollapsed(c, collapsed)
			}
		}
	})
}

// NearestCommonAncestor exposes Model.NearestCommonAncestor for handlers
// that need to reparent a freshly committed edge (spec.md §4.6 commit
// step: "optionally reparent to the nearest common ancestor").
func (g *Graph) NearestCommonAncestor(a, b *Cell) *Cell {
	return g.Model.NearestCommonAncestor(a, b)
}

func dominantAxisProject(center, p Point) Point {
	dx := math.Abs(p.X - center.X)
	dy := math.Abs(p.Y - center.Y)
	if dx >= dy {
		return Point{p.X, center.Y}
	}
	return Point{center.X, p.Y}
}
