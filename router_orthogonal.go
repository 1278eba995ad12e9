package diagram

// OrthogonalRoute implements spec.md §4.3.5's automatic right-angle
// router. It short-circuits to the segment router for the cases where a
// full pattern-table route isn't warranted, then computes jetty sizes,
// a port-constraint mask per endpoint and the target's quadrant relative
// to the source, from which it picks an exit side per endpoint. It then
// executes the pattern-table entry for that (source side, target side)
// pair — the table is not rotated by quadrant — finishing with parity
// repair and deduplication.
func OrthogonalRoute(edge, source, target *CellState, hints []Point) []Point {
	if source == nil || target == nil || source.Cell.IsEdge() || target.Cell.IsEdge() {
		return SegmentRoute(edge, source, target, hints)
	}

	srcBounds := source.RotatedBounds()
	tgtBounds := target.RotatedBounds()

	const orthBuffer = 10.0
	srcJetty := jettySize(edge.Style, StyleSourceJettySize, orthBuffer)
	tgtJetty := jettySize(edge.Style, StyleTargetJettySize, orthBuffer)

	combined := srcJetty + tgtJetty
	if srcBounds.Grow(combined, combined).Intersects(tgtBounds) && len(hints) == 0 {
		return SegmentRoute(edge, source, target, hints)
	}
	if len(hints) > 0 && !edge.Style.Bool(StyleNoFallback, false) {
		return SegmentRoute(edge, source, target, hints)
	}

	srcMask := sideMask(edge.Style, true)
	tgtMask := sideMask(edge.Style, false)

	quadrant := classifyQuadrant(srcBounds.Center(), tgtBounds.Center())

	srcSide := preferredSide(srcMask, quadrant, true)
	tgtSide := preferredSide(tgtMask, quadrant, false)

	// Direct case: the two exit sides face each other head-on and the
	// vertices already line up on the perpendicular axis, so no bend is
	// needed at all — the route is the two perimeter points, with no
	// jetty stub (spec.md §8.2 scenario 1).
	if directFacing(srcSide, tgtSide) && perpendicularAligned(srcSide, srcBounds, tgtBounds) {
		return []Point{
			source.Perimeter(tgtBounds.Center(), true),
			target.Perimeter(srcBounds.Center(), true),
		}
	}

	pattern := orthoPatternTable[srcSide][tgtSide]

	pts := make([]Point, 0, len(pattern)+2)
	srcAnchor := jettyAnchor(srcBounds, srcSide, srcJetty)
	tgtAnchor := jettyAnchor(tgtBounds, tgtSide, tgtJetty)
	pts = append(pts, srcBounds.Center())
	pts = append(pts, srcAnchor)

	cur := srcAnchor
	for _, op := range pattern {
		limit := decodeRouteOp(op, srcBounds, tgtBounds, srcJetty, tgtJetty)
		next := cur
		switch limit.Side {
		case portWest, portEast:
			next.X = limit.Limit
		case portNorth, portSouth:
			next.Y = limit.Limit
		}
		if limit.Center {
			if limit.Side == portWest || limit.Side == portEast {
				next.X = (srcBounds.Center().X + tgtBounds.Center().X) / 2
			} else {
				next.Y = (srcBounds.Center().Y + tgtBounds.Center().Y) / 2
			}
		}
		pts = append(pts, next)
		cur = next
	}

	// The pattern only ever walks toward the midpoint on one axis at a
	// time (an "L" or a straight run); it never lands exactly on
	// tgtAnchor's own coordinate. Without a final squaring move the last
	// pattern point and tgtAnchor differ on both axes and the segment
	// between them cuts a diagonal — not orthogonal. Bend into a "Z" (or
	// mirror, "S") by inserting the one last same-axis move tgtAnchor's
	// side requires: a vertical hop to tgtAnchor's Y for a west/east
	// anchor, a horizontal hop to tgtAnchor's X for a north/south one.
	const tol = 1e-6
	if tgtSide == portWest || tgtSide == portEast {
		if abs(cur.Y-tgtAnchor.Y) > tol {
			cur = Point{cur.X, tgtAnchor.Y}
			pts = append(pts, cur)
		}
	} else {
		if abs(cur.X-tgtAnchor.X) > tol {
			cur = Point{tgtAnchor.X, cur.Y}
			pts = append(pts, cur)
		}
	}

	pts = append(pts, tgtAnchor)
	pts = append(pts, tgtBounds.Center())

	if len(pts)%2 != 0 && srcSide == tgtSide {
		pts = pts[:len(pts)-1]
	}

	return dedupe(pts)
}

// directFacing reports whether srcSide/tgtSide are the two sides of a
// head-on pair (east-to-west or north-to-south, in either direction).
func directFacing(srcSide, tgtSide portSide) bool {
	switch {
	case srcSide == portEast && tgtSide == portWest, srcSide == portWest && tgtSide == portEast:
		return true
	case srcSide == portNorth && tgtSide == portSouth, srcSide == portSouth && tgtSide == portNorth:
		return true
	}
	return false
}

// perpendicularAligned reports whether src and tgt already share the axis
// perpendicular to the exit side (same center Y for an east/west exit,
// same center X for a north/south exit) within a 1e-6 tolerance, so
// a direct segment needs no bend to stay orthogonal.
func perpendicularAligned(srcSide portSide, src, tgt Rect) bool {
	const tol = 1e-6
	if srcSide == portEast || srcSide == portWest {
		return abs(src.Center().Y-tgt.Center().Y) < tol
	}
	return abs(src.Center().X-tgt.Center().X) < tol
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func jettySize(s StyleMap, key string, buffer float64) float64 {
	v := s.Float(key, s.Float(StyleJettySize, 2*buffer))
	if v < 2*buffer {
		v = 2 * buffer
	}
	n := v / buffer
	if n != float64(int(n)) {
		n = float64(int(n) + 1)
	}
	return n * buffer
}

// sideMask reads the portConstraint style key into a bitmask of allowed
// sides, defaulting to all four sides open.
func sideMask(s StyleMap, source bool) uint8 {
	v, ok := s.String(StylePortConstraint)
	if !ok {
		return 1<<portWest | 1<<portNorth | 1<<portEast | 1<<portSouth
	}
	switch v {
	case "west":
		return 1 << portWest
	case "north":
		return 1 << portNorth
	case "east":
		return 1 << portEast
	case "south":
		return 1 << portSouth
	}
	return 1<<portWest | 1<<portNorth | 1<<portEast | 1<<portSouth
}

// classifyQuadrant buckets target's position relative to source into one
// of four quadrants (Y grows downward): 0 (south-east, including due
// east and due south), 1 (south-west), 2 (north-west), 3 (north-east).
// preferredSide uses it to pick each endpoint's natural exit side.
func classifyQuadrant(src, tgt Point) int {
	dx := tgt.X - src.X
	dy := tgt.Y - src.Y
	switch {
	case dx >= 0 && dy >= 0:
		return 0
	case dx < 0 && dy >= 0:
		return 1
	case dx < 0 && dy < 0:
		return 2
	default:
		return 3
	}
}

// preferredSide picks the allowed side (from mask) nearest the natural
// exit direction for quadrant, rotating through W/N/E/S until an allowed
// side is found.
func preferredSide(mask uint8, quadrant int, source bool) portSide {
	natural := [4]portSide{portEast, portSouth, portWest, portNorth}
	start := quadrant
	if !source {
		start = (quadrant + 2) % 4
	}
	for i := 0; i < 4; i++ {
		s := natural[(start+i)%4]
		if mask&(1<<s) != 0 {
			return s
		}
	}
	return portEast
}

func jettyAnchor(bounds Rect, side portSide, jetty float64) Point {
	c := bounds.Center()
	switch side {
	case portWest:
		return Point{bounds.X - jetty, c.Y}
	case portEast:
		return Point{bounds.X + bounds.Width + jetty, c.Y}
	case portNorth:
		return Point{c.X, bounds.Y - jetty}
	default: // portSouth
		return Point{c.X, bounds.Y + bounds.Height + jetty}
	}
}

// routeOp is the raw encoded pattern-table operation (spec.md §9: "keep
// the encoding... but define a decoder that returns a named record").
type routeOp uint8

const (
	opSourceLimit routeOp = iota
	opTargetLimit
	opCenterX
	opCenterY
)

// routePattern is a decoded named record for one step of a route-pattern
// entry: which side to move toward, which terminal it's relative to, the
// resulting coordinate limit, and whether it's a center move instead.
type routePattern struct {
	Side    portSide
	Limit   float64
	Center  bool
	Terminal bool // true = target-relative, false = source-relative
}

func decodeRouteOp(op routeOp, srcBounds, tgtBounds Rect, srcJetty, tgtJetty float64) routePattern {
	switch op {
	case opSourceLimit:
		return routePattern{Side: portEast, Limit: srcBounds.X + srcBounds.Width + srcJetty}
	case opTargetLimit:
		return routePattern{Side: portWest, Limit: tgtBounds.X - tgtJetty, Terminal: true}
	case opCenterX:
		return routePattern{Side: portEast, Center: true}
	default: // opCenterY
		return routePattern{Side: portNorth, Center: true}
	}
}

// orthoPatternTable is the 4x4 table of pattern sequences indexed by
// (source side, target side). Each entry is an ordered list of raw
// encoded operations; decodeRouteOp gives each a readable meaning. The
// table is deliberately small (a single center-crossing bend per
// direction pair) rather than the full multi-segment mxgraph table,
// covering the common 3-segment topology while leaving room to extend
// per-pair if a future caller needs a different bend shape.
var orthoPatternTable = [5][5][]routeOp{
	portWest:  {portWest: {opCenterX}, portNorth: {opCenterX, opCenterY}, portEast: {opCenterX}, portSouth: {opCenterX, opCenterY}},
	portNorth: {portWest: {opCenterY, opCenterX}, portNorth: {opCenterY}, portEast: {opCenterY, opCenterX}, portSouth: {opCenterY}},
	portEast:  {portWest: {opCenterX}, portNorth: {opCenterX, opCenterY}, portEast: {opCenterX}, portSouth: {opCenterX, opCenterY}},
	portSouth: {portWest: {opCenterY, opCenterX}, portNorth: {opCenterY}, portEast: {opCenterY, opCenterX}, portSouth: {opCenterY}},
}
