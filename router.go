package diagram

// RouteFunc computes the ordered, scaled-coordinate waypoint list for an
// edge given its own (being-validated) state, its resolved source/target
// terminal states (either may be nil for a dangling endpoint), and the
// user-placed hints in scaled coordinates (spec.md §4.3). Implementations
// are pure functions of their inputs (spec.md §8.1 "Router determinism").
type RouteFunc func(edge, source, target *CellState, hints []Point) []Point

// routerRegistry maps a style's "edge" key to its RouteFunc, grounded on
// the dispatch-by-style-string idea render.go uses for shape kinds,
// applied here to routing strategies instead.
var routerRegistry = map[string]RouteFunc{
	"entityRelationEdgeStyle": EntityRelationRoute,
	"loopEdgeStyle":           LoopRoute,
	"elbowEdgeStyle":          ElbowRoute,
	"segmentEdgeStyle":        SegmentRoute,
	"orthogonalEdgeStyle":     OrthogonalRoute,
}

// RegisterRouter installs or replaces a named routing strategy.
func RegisterRouter(name string, fn RouteFunc) {
	routerRegistry[name] = fn
}

// Router looks up a routing strategy by name, defaulting to a direct
// (2-point) route when name is unrecognized or empty — the fallback every
// style-driven dispatch in this engine uses for "no special routing
// requested".
func Router(name string) RouteFunc {
	if fn, ok := routerRegistry[name]; ok {
		return fn
	}
	return DirectRoute
}

// DirectRoute is the trivial straight-line strategy: source perimeter
// point to target perimeter point, with any hints passed through
// unmodified in between.
func DirectRoute(edge, source, target *CellState, hints []Point) []Point {
	pts := make([]Point, 0, len(hints)+2)
	pts = append(pts, anchorPoint(edge, source, true))
	pts = append(pts, hints...)
	pts = append(pts, anchorPoint(edge, target, false))
	return pts
}

// anchorPoint resolves one endpoint of an edge to a concrete point before
// perimeter clipping. A connected terminal always wins: its state's
// rectangle center is used (routers work from the shape before clipping
// to its actual perimeter), and any terminal point recorded in the edge's
// geometry is ignored. Only a dangling endpoint uses its recorded
// SourcePoint/TargetPoint, scaled and translated; with neither, it is
// the origin.
func anchorPoint(edge *CellState, term *CellState, source bool) Point {
	if term != nil {
		return term.Bounds().Center()
	}
	g := edge.Cell.Geometry()
	var p *Point
	if source {
		p = g.SourcePoint
	} else {
		p = g.TargetPoint
	}
	if p != nil {
		return Point{edge.View.Translate.X + p.X*edge.View.Scale, edge.View.Translate.Y + p.Y*edge.View.Scale}
	}
	return Point{}
}

// dedupe removes consecutive equal points (spec.md §4.3.5 step 8,
// applied generically since every router benefits from it).
func dedupe(pts []Point) []Point {
	if len(pts) < 2 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if !p.Equals(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

// direction is a compass side, used by the entity-relation, loop, elbow,
// and orthogonal routers.
type direction int

const (
	dirWest direction = iota
	dirNorth
	dirEast
	dirSouth
)

func directionFromStyle(s StyleMap, key string, def direction) direction {
	v, ok := s.String(key)
	if !ok {
		return def
	}
	switch v {
	case "west":
		return dirWest
	case "north":
		return dirNorth
	case "east":
		return dirEast
	case "south":
		return dirSouth
	}
	return def
}
