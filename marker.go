package diagram

// MarkerColor distinguishes a valid drop target from an invalid one in
// the marker's highlight (spec.md §4.4: "a color (valid vs. invalid)").
type MarkerColor int

const (
	MarkerNone MarkerColor = iota
	MarkerValid
	MarkerInvalid
)

// CellMarker maintains at most one "marked" state, grounded on
// input.go's hitTest/collectInteractable reverse-painter-order walk
// (now Graph.HitTest) and node.go's invalidate-triggers-repaint pattern
// for the highlight lifecycle.
type CellMarker struct {
	graph *Graph

	// IsValidState decides the marker color for a candidate state. Nil
	// means every hit is valid.
	IsValidState func(s *CellState) bool
	// RejectSwimlaneContent, when true, causes a hit on content laid out
	// inside a swimlane-style container to be rejected: no cell is marked,
	// and the hit does not fall back to the swimlane itself (spec.md §4.4
	// step 3, "configurable").
	RejectSwimlaneContent bool

	current *CellState
	color   MarkerColor
	fade    *HighlightTween

	onMark []func(s *CellState, color MarkerColor)
}

func newCellMarker(g *Graph) *CellMarker {
	return &CellMarker{graph: g}
}

// OnMark registers a callback invoked whenever the marked state or its
// color changes.
func (m *CellMarker) OnMark(fn func(s *CellState, color MarkerColor)) {
	m.onMark = append(m.onMark, fn)
}

// Current returns the currently marked state, or nil.
func (m *CellMarker) Current() *CellState { return m.current }

// Process implements spec.md §4.4's five-step contract: resolve the hit
// cell, ascend to a connectable parent, reject swimlane content if
// configured, evaluate validity, and repaint/emit only on change.
func (m *CellMarker) Process(evt *PointerEvent) *CellState {
	cell := m.graph.HitTest(evt.Point())
	if cell != nil && !cell.IsConnectable() && !cell.IsEdge() {
		cell = m.graph.ConnectableParentOf(cell)
	}
	if cell != nil && m.RejectSwimlaneContent && m.isSwimlaneContent(cell) {
		cell = nil
	}

	var state *CellState
	if cell != nil {
		state = m.graph.View.State(cell)
	}

	color := MarkerNone
	if state != nil {
		valid := m.IsValidState == nil || m.IsValidState(state)
		if valid {
			color = MarkerValid
		} else {
			color = MarkerInvalid
		}
	}

	if state != m.current || color != m.color {
		m.current = state
		m.color = color
		if state != nil {
			m.fade = NewMarkerFadeIn()
		} else {
			m.fade = nil
		}
		for _, fn := range m.onMark {
			fn(state, color)
		}
	}
	return m.current
}

// Highlight advances and returns the marker's fade-in tween for the
// current mark, or nil when nothing is marked. The host render loop
// calls this once per frame with its delta time.
func (m *CellMarker) Highlight(dt float32) *HighlightTween {
	if m.fade == nil {
		return nil
	}
	m.fade.Update(dt)
	return m.fade
}

// isSwimlaneContent reports whether cell is a child laid out beneath a
// container whose style marks it a swimlane (a "swimlane" style flag,
// the recognized convention for this family of engines).
func (m *CellMarker) isSwimlaneContent(cell *Cell) bool {
	parent := cell.Parent()
	if parent == nil {
		return false
	}
	s := m.graph.View.State(parent)
	if s == nil {
		return false
	}
	return s.Style.Bool("swimlane", false)
}

// Reset clears the marked state without raising a mark event unless one
// was active.
func (m *CellMarker) Reset() {
	if m.current == nil && m.color == MarkerNone {
		return
	}
	m.current = nil
	m.color = MarkerNone
	m.fade = nil
	for _, fn := range m.onMark {
		fn(nil, MarkerNone)
	}
}

// HotspotContains reports whether p lies within state's hotspot
// rectangle, honoring rotation (spec.md §4.4 "Hotspot policy").
func (m *CellMarker) HotspotContains(s *CellState, p Point) bool {
	return m.graph.containsHotspot(s, p)
}
