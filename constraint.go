package diagram

import "strconv"

// ConnectionConstraint is a fixed connection point on a vertex, expressed
// as a fractional (x, y) position within its rectangle (spec.md
// GLOSSARY "Port / constraint").
type ConnectionConstraint struct {
	X, Y      float64
	Perimeter bool
}

// defaultConstraints is the conventional 8-point set (4 midpoints + 4
// corners) this family of engines draws when a vertex's style doesn't
// list its own.
var defaultConstraints = []ConnectionConstraint{
	{0, 0, true}, {0.5, 0, true}, {1, 0, true},
	{0, 0.5, true}, {1, 0.5, true},
	{0, 1, true}, {0.5, 1, true}, {1, 1, true},
}

// ConstraintsOf returns the fixed connection constraints for state,
// honoring a style-declared "points" override (semicolon-separated
// "x,y" fractional pairs) or the conventional 8-point default.
func (g *Graph) ConstraintsOf(s *CellState) []ConnectionConstraint {
	if s == nil || s.Cell.IsEdge() {
		return nil
	}
	if raw, ok := s.Style.String("points"); ok && raw != "" {
		return parseConstraintPoints(raw)
	}
	return defaultConstraints
}

func parseConstraintPoints(raw string) []ConnectionConstraint {
	var out []ConnectionConstraint
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ';' {
			pair := raw[start:i]
			start = i + 1
			if pair == "" {
				continue
			}
			if c, ok := parseConstraintPair(pair); ok {
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		return defaultConstraints
	}
	return out
}

func parseConstraintPair(s string) (ConnectionConstraint, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			x, errX := strconv.ParseFloat(s[:i], 64)
			y, errY := strconv.ParseFloat(s[i+1:], 64)
			if errX != nil || errY != nil {
				return ConnectionConstraint{}, false
			}
			return ConnectionConstraint{X: x, Y: y, Perimeter: true}, true
		}
	}
	return ConnectionConstraint{}, false
}

// ConstraintHandler draws icons at a connectable vertex's fixed
// connection points and tracks which one the pointer is nearest (spec.md
// §4.5). Grounded on input.go's pinch-center distance math, generalized
// from "distance between two pointers" to "distance from pointer to each
// candidate icon".
type ConstraintHandler struct {
	graph *Graph

	// PointerTolerance is the half-size of the pointer's own tolerance
	// box used for icon-intersection testing.
	PointerTolerance float64
	// FocusGrow inflates a vertex's bounds to form its focus-area
	// rectangle.
	FocusGrow float64

	focus           *CellState
	focusLocked     bool
	currentPoint    Point
	currentConstr   ConnectionConstraint
	hasConstraint   bool
	fade            *HighlightTween
	onChange        []func(h *ConstraintHandler)
}

func newConstraintHandler(g *Graph) *ConstraintHandler {
	return &ConstraintHandler{graph: g, PointerTolerance: 6, FocusGrow: 20}
}

// OnChange registers a callback invoked whenever the focus, constraint,
// or point changes.
func (h *ConstraintHandler) OnChange(fn func(h *ConstraintHandler)) {
	h.onChange = append(h.onChange, fn)
}

// Focus returns the vertex state currently showing constraint icons, or
// nil.
func (h *ConstraintHandler) Focus() *CellState { return h.focus }

// Constraint returns the currently selected constraint and true, or
// false if none qualifies.
func (h *ConstraintHandler) Constraint() (ConnectionConstraint, bool) {
	return h.currentConstr, h.hasConstraint
}

// Point returns the absolute point of the currently selected constraint.
func (h *ConstraintHandler) Point() Point { return h.currentPoint }

// Update implements spec.md §4.5's per-move contract.
func (h *ConstraintHandler) Update(evt *PointerEvent, snapBox *Rect) {
	p := evt.Point()

	if evt.Modifiers.Shift && h.focus != nil {
		h.focusLocked = true
	} else if !evt.Modifiers.Shift {
		h.focusLocked = false
	}

	prevFocus := h.focus
	if !h.focusLocked {
		h.focus = h.resolveFocus(p)
	}
	if h.focus != prevFocus {
		if h.focus != nil {
			h.fade = NewConstraintFadeIn()
		} else {
			h.fade = nil
		}
	}

	if h.focus == nil {
		h.reset()
		return
	}

	constraints := h.graph.ConstraintsOf(h.focus)
	bounds := h.focus.RotatedBounds()
	tolBox := Rect{p.X - h.PointerTolerance, p.Y - h.PointerTolerance, 2 * h.PointerTolerance, 2 * h.PointerTolerance}

	best := -1
	bestDist := 0.0
	for i, c := range constraints {
		icon := Point{bounds.X + c.X*bounds.Width, bounds.Y + c.Y*bounds.Height}
		iconBounds := Rect{icon.X - 4, icon.Y - 4, 8, 8}
		if !iconBounds.Intersects(tolBox) && (snapBox == nil || !iconBounds.Intersects(*snapBox)) {
			continue
		}
		d := p.DistanceSq(icon)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	changed := false
	if best == -1 {
		changed = h.hasConstraint
		h.hasConstraint = false
	} else {
		c := constraints[best]
		pt := Point{bounds.X + c.X*bounds.Width, bounds.Y + c.Y*bounds.Height}
		changed = !h.hasConstraint || h.currentConstr != c || h.currentPoint != pt
		h.currentConstr = c
		h.currentPoint = pt
		h.hasConstraint = true
	}
	if changed {
		h.notify()
	}
}

func (h *ConstraintHandler) resolveFocus(p Point) *CellState {
	cell := h.graph.HitTest(p)
	if cell == nil || cell.IsEdge() || !cell.IsConnectable() {
		return nil
	}
	s := h.graph.View.State(cell)
	if s == nil {
		return nil
	}
	area := s.RotatedBounds().Grow(h.FocusGrow, h.FocusGrow)
	if !area.Contains(p) {
		return nil
	}
	return s
}

// Reset clears the focus/constraint, callable from anywhere.
func (h *ConstraintHandler) Reset() {
	h.focusLocked = false
	h.reset()
}

func (h *ConstraintHandler) reset() {
	changed := h.focus != nil || h.hasConstraint
	h.focus = nil
	h.hasConstraint = false
	h.fade = nil
	if changed {
		h.notify()
	}
}

// Highlight advances and returns the focus icons' fade-in tween, or nil
// when nothing is focused. The host render loop calls this once per
// frame with its delta time.
func (h *ConstraintHandler) Highlight(dt float32) *HighlightTween {
	if h.fade == nil {
		return nil
	}
	h.fade.Update(dt)
	return h.fade
}

func (h *ConstraintHandler) notify() {
	for _, fn := range h.onChange {
		fn(h)
	}
}
