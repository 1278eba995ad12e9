package diagram

// LoopRoute implements spec.md §4.3.2: the self-loop router, used when an
// edge's "edge" style is "loopEdgeStyle" (the view does not pick it on its
// own for an edge whose ends share a state). It produces two symmetric waypoints on the
// side of the vertex named by the "direction" style: a near point sitting
// on the vertex's perimeter and a far point offset from it by "segment".
func LoopRoute(edge, source, target *CellState, hints []Point) []Point {
	term := source
	if term == nil {
		term = target
	}
	if term == nil {
		return DirectRoute(edge, source, target, hints)
	}

	segment := edge.Style.Float(StyleSegment, 30) * edge.View.Scale
	if segment <= 0 {
		segment = 30 * edge.View.Scale
	}
	bounds := term.RotatedBounds()
	dir := directionFromStyle(edge.Style, StyleDirection, dirNorth)

	cx, cy := bounds.Center().X, bounds.Center().Y
	var near, far Point
	switch dir {
	case dirNorth:
		near = Point{cx, bounds.Y}
		far = Point{cx, bounds.Y - segment}
	case dirSouth:
		near = Point{cx, bounds.Y + bounds.Height}
		far = Point{cx, bounds.Y + bounds.Height + segment}
	case dirEast:
		near = Point{bounds.X + bounds.Width, cy}
		far = Point{bounds.X + bounds.Width + segment, cy}
	default: // dirWest
		near = Point{bounds.X, cy}
		far = Point{bounds.X - segment, cy}
	}

	// A user-placed first hint overrides the far point, but only if it
	// actually lies outside the vertex (spec.md §4.3.2) — a hint inside
	// the bounds is nonsensical for a loop's detour point and is ignored.
	if len(hints) > 0 && !bounds.Contains(hints[0]) {
		far = hints[0]
	}

	return []Point{near, far}
}
