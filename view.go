package diagram

// View derives and caches absolute CellState geometry from the model's
// relative geometry, plus a global scale and translate (spec.md §3.3,
// §4.2). Grounded on camera.go's Camera (Zoom/X/Y, a dirty flag, lazily
// recomputed view matrix): the view's Scale/Translate play exactly the
// role Camera.Zoom/X/Y play for willow's render pipeline, generalized from
// "camera to screen" to "model to absolute/scaled coordinates".
type View struct {
	Model    *Model
	Provider StyleProvider

	Scale     float64
	Translate Point

	states map[CellID]*CellState
}

// NewView creates a view over model with scale 1 and zero translate.
func NewView(model *Model, provider StyleProvider) *View {
	if provider == nil {
		provider = DefaultStyleProvider
	}
	return &View{
		Model:    model,
		Provider: provider,
		Scale:    1,
		states:   make(map[CellID]*CellState),
	}
}

// SetScaleAndTranslate updates the view's global scale and translate and
// invalidates every cached state (spec.md §4.2 "Invalidation is monotonic:
// ... on scale/translate change").
func (v *View) SetScaleAndTranslate(scale float64, translate Point) {
	v.Scale = scale
	v.Translate = translate
	v.InvalidateAll()
}

// InvalidateAll discards every cached state; the next State() call for
// each cell revalidates from scratch.
func (v *View) InvalidateAll() {
	v.states = make(map[CellID]*CellState)
}

// Invalidate discards the cached state for cell and, because a
// structural/geometry change to an ancestor affects every descendant's
// absolute position, for its entire subtree.
func (v *View) Invalidate(cell *Cell) {
	if cell == nil {
		return
	}
	delete(v.states, cell.id)
	for _, child := range cell.children {
		v.Invalidate(child)
	}
	// An edge incident to this cell (as a terminal) may also need
	// re-routing even though it isn't a structural descendant.
	for _, e := range cell.edges {
		delete(v.states, e.id)
	}
}

// rawState returns the cached state without validating it, or nil.
func (v *View) rawState(cell *Cell) *CellState {
	return v.states[cell.id]
}

// State returns the validated CellState for cell, computing (and caching)
// it if necessary. Returns nil if cell is not visible or not reachable
// from the root (spec.md §3.3 invariant: "a state is cached iff its cell
// is visible and reachable").
func (v *View) State(cell *Cell) *CellState {
	if cell == nil || !v.reachableAndVisible(cell) {
		if cell != nil {
			delete(v.states, cell.id)
		}
		return nil
	}
	if s, ok := v.states[cell.id]; ok && !s.invalidLayout && !s.invalidStyle {
		return s
	}
	return v.validate(cell)
}

func (v *View) reachableAndVisible(cell *Cell) bool {
	for c := cell; c != nil; c = c.parent {
		if !c.visible {
			return false
		}
		if c == v.Model.root {
			return true
		}
	}
	return false
}

// validate implements spec.md §4.2's five steps. Step 2 (validate the
// parent first) is the same parent-before-child recursion
// transform.go's updateWorldTransform uses for world matrices.
func (v *View) validate(cell *Cell) *CellState {
	s, ok := v.states[cell.id]
	if !ok {
		s = &CellState{View: v, Cell: cell}
		v.states[cell.id] = s
	}

	s.Style = v.Provider.Resolve(cell.Style)
	s.Rotation = s.Style.Float(StyleRotation, 0) * (3.141592653589793 / 180)
	s.invalidStyle = false

	if cell.isEdge {
		v.validateEdge(cell, s)
	} else {
		v.validateVertex(cell, s)
	}
	s.invalidLayout = false
	return s
}

func (v *View) validateVertex(cell *Cell, s *CellState) {
	var parentOrigin Point
	if cell.parent != nil && cell.parent != v.Model.root {
		if ps := v.validate(cell.parent); ps != nil {
			// Back to unscaled model space; scale and translate apply once below.
			parentOrigin = Point{(ps.Origin.X - v.Translate.X) / maxf(v.Scale, 1e-9), (ps.Origin.Y - v.Translate.Y) / maxf(v.Scale, 1e-9)}
		}
	}

	g := cell.Geometry()
	bounds := g.Bounds(cell.collapsed)

	if g.Relative && cell.parent != nil {
		var pw, ph float64
		if cell.parent != v.Model.root {
			if ps := v.rawState(cell.parent); ps != nil {
				pw, ph = ps.UnscaledWidth, ps.UnscaledHeight
			}
		}
		x := parentOrigin.X + bounds.X*pw + g.Offset.X
		y := parentOrigin.Y + bounds.Y*ph + g.Offset.Y
		s.UnscaledWidth = bounds.Width
		s.UnscaledHeight = bounds.Height
		s.Origin = Point{v.Translate.X + x*v.Scale, v.Translate.Y + y*v.Scale}
	} else {
		x := parentOrigin.X + bounds.X
		y := parentOrigin.Y + bounds.Y
		s.UnscaledWidth = bounds.Width
		s.UnscaledHeight = bounds.Height
		s.Origin = Point{v.Translate.X + x*v.Scale, v.Translate.Y + y*v.Scale}
	}
	s.Width = s.UnscaledWidth * v.Scale
	s.Height = s.UnscaledHeight * v.Scale
	s.BoundingBox = Rect{s.Origin.X, s.Origin.Y, s.Width, s.Height}
}

func (v *View) validateEdge(cell *Cell, s *CellState) {
	srcState := v.visibleTerminalState(cell, true)
	tgtState := v.visibleTerminalState(cell, false)
	s.VisibleSourceState = srcState
	s.VisibleTargetState = tgtState

	hints := cell.Geometry().Points
	scaledHints := make([]Point, len(hints))
	for i, h := range hints {
		scaledHints[i] = Point{v.Translate.X + h.X*v.Scale, v.Translate.Y + h.Y*v.Scale}
	}

	routeName, _ := s.Style.String(StyleEdge)
	route := Router(routeName)
	pts := route(s, srcState, tgtState, scaledHints)

	if srcState != nil {
		pts = clipEndpoint(pts, srcState, true)
	}
	if tgtState != nil {
		pts = clipEndpoint(pts, tgtState, false)
	}

	s.AbsolutePoints = pts
	s.BoundingBox = boundingBoxOf(pts)
	s.Width = s.BoundingBox.Width
	s.Height = s.BoundingBox.Height
	s.UnscaledWidth = s.Width / maxf(v.Scale, 1e-9)
	s.UnscaledHeight = s.Height / maxf(v.Scale, 1e-9)
	if len(pts) > 0 {
		s.Origin = pts[0]
	}

	s.TerminalDistance, s.Segments = segmentLengths(pts)
}

// visibleTerminalState resolves the non-relative ancestor used for
// routing an edge endpoint (spec.md §3.3 invariant, §4.2 step 4): a
// relative vertex is routed from its containing non-relative ancestor.
func (v *View) visibleTerminalState(edge *Cell, source bool) *CellState {
	terminal := edge.Terminal(source)
	for terminal != nil {
		g := terminal.Geometry()
		if terminal.HasGeometry() && (!g.Relative || terminal.parent == nil) {
			return v.validate(terminal)
		}
		if !terminal.HasGeometry() {
			return v.validate(terminal)
		}
		terminal = terminal.parent
	}
	return nil
}

func clipEndpoint(pts []Point, terminal *CellState, source bool) []Point {
	if len(pts) == 0 {
		return pts
	}
	idx := 0
	if !source {
		idx = len(pts) - 1
	}
	next := pts[0]
	if !source && len(pts) > 1 {
		next = pts[len(pts)-2]
	} else if source && len(pts) > 1 {
		next = pts[1]
	}
	pts[idx] = terminal.Perimeter(next, true)
	return pts
}

func boundingBoxOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

func segmentLengths(pts []Point) (total float64, segs []float64) {
	segs = make([]float64, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		d := pts[i-1].Distance(pts[i])
		segs = append(segs, d)
		total += d
	}
	return total, segs
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
