package diagram

// EntityRelationRoute implements spec.md §4.3.1: a horizontal-exit-side
// router for ER-style diagrams. Each endpoint's exit side is chosen by (a)
// the side nearer x=0.5 when its geometry is relative, (b) otherwise the
// relative x-position of the two endpoints' centers (each exits toward
// the other; with equal center X both exit east), or (c) a
// "portConstraint" style override that forces a side regardless of
// (a)/(b). The result is the 2-point path when the exits face each other
// with room between them, and the 4-point detour otherwise.
func EntityRelationRoute(edge, source, target *CellState, hints []Point) []Point {
	segment := edge.Style.Float(StyleSegment, 30) * edge.View.Scale

	srcBounds := terminalBounds(edge, source, true)
	tgtBounds := terminalBounds(edge, target, false)

	srcLeft := entityExitLeft(edge, source, srcBounds, tgtBounds, true)
	tgtLeft := entityExitLeft(edge, target, tgtBounds, srcBounds, false)

	srcY := srcBounds.Y + srcBounds.Height/2
	tgtY := tgtBounds.Y + tgtBounds.Height/2

	srcX := srcBounds.X + srcBounds.Width + segment
	if srcLeft {
		srcX = srcBounds.X - segment
	}
	tgtX := tgtBounds.X + tgtBounds.Width + segment
	if tgtLeft {
		tgtX = tgtBounds.X - segment
	}

	srcExit := Point{srcX, srcY}
	tgtExit := Point{tgtX, tgtY}

	// "Same side": the exits face each other (one west, one east, in the
	// orientation that actually connects them without re-crossing either
	// box) — a clean 2-point path. Otherwise both exits face the same
	// absolute direction and the path must detour via two more points.
	facing := srcLeft != tgtLeft && ((srcLeft && srcX >= tgtX) || (!srcLeft && srcX <= tgtX))
	if facing {
		return []Point{srcExit, tgtExit}
	}

	midY := (srcY + tgtY) / 2
	return []Point{srcExit, {srcX, midY}, {tgtX, midY}, tgtExit}
}

// entityExitLeft decides whether the endpoint exits on its west side.
func entityExitLeft(edge *CellState, term *CellState, bounds, otherBounds Rect, source bool) bool {
	if term != nil {
		if mask, ok := portConstraintMask(term.Style, source); ok {
			if mask == portWest {
				return true
			}
			if mask == portEast {
				return false
			}
		}
		g := term.Cell.Geometry()
		if g.Relative {
			return g.X <= 0.5
		}
	}
	return bounds.Center().X > otherBounds.Center().X
}

// terminalBounds resolves a terminal's effective rectangle, or a
// zero-size point rectangle centered on the edge's recorded dangling
// point when the endpoint isn't connected.
func terminalBounds(edge *CellState, term *CellState, source bool) Rect {
	if term != nil {
		return term.RotatedBounds()
	}
	p := anchorPoint(edge, nil, source)
	return Rect{p.X, p.Y, 0, 0}
}

type portSide int

const (
	portNone portSide = iota
	portWest
	portNorth
	portEast
	portSouth
)

// portConstraintMask reads the "portConstraint" style key (spec.md
// §6.1/§4.3.5 step 3) as a single side name ("west", "north", "east" or
// "south"), returning that side; any other value forces no side.
func portConstraintMask(s StyleMap, source bool) (portSide, bool) {
	key := StylePortConstraint
	v, ok := s.String(key)
	if !ok {
		return portNone, false
	}
	switch v {
	case "west":
		return portWest, true
	case "north":
		return portNorth, true
	case "east":
		return portEast, true
	case "south":
		return portSouth, true
	}
	return portNone, false
}
