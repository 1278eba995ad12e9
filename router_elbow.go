package diagram

// ElbowRoute implements spec.md §4.3.3: a three-segment orthogonal path
// between source and target that bends twice, at the midline between the
// two terminals; it does not produce a single-bend (L-shaped) path. The
// middle segment is vertical by default and horizontal when the "elbow"
// style key is "vertical"; the orientation is not derived from overlap.
// With hints, the first and last hint replace the source and target
// anchors, and a single hint also fixes the midline.
func ElbowRoute(edge, source, target *CellState, hints []Point) []Point {
	srcBounds := terminalBounds(edge, source, true)
	tgtBounds := terminalBounds(edge, target, false)

	src := anchorPoint(edge, source, true)
	tgt := anchorPoint(edge, target, false)
	if len(hints) > 0 {
		src = hints[0]
	}
	if n := len(hints); n > 0 {
		tgt = hints[n-1]
	}

	vertical := isVerticalElbow(edge.Style)

	var mid Point
	if len(hints) == 1 {
		mid = hints[0]
	} else if vertical {
		mid = Point{src.X, midY(srcBounds, tgtBounds)}
	} else {
		mid = Point{midX(srcBounds, tgtBounds), src.Y}
	}

	pts := []Point{src}
	if vertical {
		pts = append(pts, Point{src.X, mid.Y}, Point{tgt.X, mid.Y})
	} else {
		pts = append(pts, Point{mid.X, src.Y}, Point{mid.X, tgt.Y})
	}
	pts = append(pts, tgt)
	return dedupe(pts)
}

func isVerticalElbow(s StyleMap) bool {
	v, ok := s.String(StyleElbow)
	return ok && v == "vertical"
}

func midX(a, b Rect) float64 {
	return (a.X + a.Width/2 + b.X + b.Width/2) / 2
}

func midY(a, b Rect) float64 {
	return (a.Y + a.Height/2 + b.Y + b.Height/2) / 2
}
