package diagram

// CellState is the derived, cached, absolute-coordinate view of a cell
// (spec.md §3.3). It is owned by a View and rebuilt lazily on invalidation.
type CellState struct {
	View *View
	Cell *Cell

	// Style is the resolved style dictionary for this cell (from the
	// host's StyleProvider, §6).
	Style StyleMap

	// Origin is the absolute, scaled top-left corner.
	Origin Point
	// Width and Height are the absolute, scaled dimensions.
	Width, Height float64
	// UnscaledWidth and UnscaledHeight are the dimensions before the
	// view's scale is applied; View uses them to place relative children.
	// The routers work from the scaled bounds.
	UnscaledWidth, UnscaledHeight float64
	// Rotation is the effective rotation in radians.
	Rotation float64

	// AbsolutePoints is the ordered waypoint list for an edge, in scaled
	// coordinates; AbsolutePoints[0] and the last entry are the resolved
	// terminal points (spec.md §3.3 invariant).
	AbsolutePoints []Point
	// LabelOffset is the absolute offset applied to a label's default
	// position.
	LabelOffset Point
	// BoundingBox is the state's absolute bounding rectangle, including
	// edge waypoints or vertex bounds.
	BoundingBox Rect

	// TerminalDistance and Segments cache edge-specific metrics used for
	// label placement and dash rendering.
	TerminalDistance float64
	Segments         []float64

	// VisibleSourceState and VisibleTargetState are the non-relative
	// ancestor states used for routing (spec.md §3.3 invariant).
	VisibleSourceState *CellState
	VisibleTargetState *CellState

	invalidLayout bool
	invalidStyle  bool
}

// Bounds returns the state's absolute rectangle (vertex) or its bounding
// box (edge).
func (s *CellState) Bounds() Rect {
	if s.Cell.IsEdge() {
		return s.BoundingBox
	}
	return Rect{s.Origin.X, s.Origin.Y, s.Width, s.Height}
}

// RotatedBounds returns Bounds() rotated about its own center by
// Rotation, for hit-testing and the orthogonal router's rotation handling.
func (s *CellState) RotatedBounds() Rect {
	b := s.Bounds()
	if s.Rotation == 0 {
		return b
	}
	return RotatedBounds(b, b.Center(), s.Rotation)
}

// Perimeter returns the point on this state's perimeter along the ray
// toward next, honoring the state's style "perimeter" key and rotation.
func (s *CellState) Perimeter(next Point, orthogonal bool) Point {
	bounds := s.RotatedBounds()
	if s.Rotation != 0 {
		next = InverseRotatePoint(next, bounds.Center(), s.Rotation)
	}
	name, _ := s.Style.String("perimeter")
	p := Perimeter(name)(bounds, next, orthogonal)
	if s.Rotation != 0 {
		p = RotatePoint(p, bounds.Center(), s.Rotation)
	}
	return p
}

// InvalidateLayout marks the state's geometry as needing recomputation.
func (s *CellState) InvalidateLayout() { s.invalidLayout = true }

// InvalidateStyle marks the state's resolved style as needing
// recomputation.
func (s *CellState) InvalidateStyle() { s.invalidStyle = true }
