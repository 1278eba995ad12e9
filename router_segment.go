package diagram

// SegmentRoute implements spec.md §4.3.4: the user hints are taken as
// exact waypoints, with the source/target
// endpoints appended and, when a hint isn't already axis-aligned with its
// neighbor, a single inserted corner so the overall path stays
// orthogonal — the minimal behavior a "manually routed" edge needs.
func SegmentRoute(edge, source, target *CellState, hints []Point) []Point {
	src := anchorPoint(edge, source, true)
	tgt := anchorPoint(edge, target, false)

	pts := make([]Point, 0, len(hints)+4)
	pts = append(pts, src)
	prev := src
	for _, h := range hints {
		if !axisAligned(prev, h) {
			pts = append(pts, Point{h.X, prev.Y})
		}
		pts = append(pts, h)
		prev = h
	}
	if !axisAligned(prev, tgt) {
		pts = append(pts, Point{tgt.X, prev.Y})
	}
	pts = append(pts, tgt)
	return dedupe(pts)
}

func axisAligned(a, b Point) bool {
	const eps = 1e-6
	return floatEq(a.X, b.X, eps) || floatEq(a.Y, b.Y, eps)
}

func floatEq(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
