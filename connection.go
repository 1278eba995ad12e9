package diagram

// ConnectionState is the connection handler's current position in
// spec.md §4.6's state table.
type ConnectionState int

const (
	ConnIdle ConnectionState = iota
	ConnHover
	ConnArming
	ConnPreviewing
	ConnPreviewingWaypoint
	ConnCommitting
)

// PreviewColor distinguishes a would-succeed preview from one that would
// be rejected on release.
type PreviewColor int

const (
	PreviewNone PreviewColor = iota
	PreviewValid
	PreviewInvalid
)

// ConnectionHandler converts a pointer gesture into exactly one
// well-formed new edge (spec.md §4.6), grounded directly on input.go's
// processPointer per-pointer state machine: willow's down/dragging
// booleans generalize into the ConnectionState enum above, and
// processPointer's drag-dead-zone check becomes the Hover→Arming→
// Previewing tolerance check below.
type ConnectionHandler struct {
	graph *Graph

	// Tolerance is the press-to-move distance (in client pixels) that
	// promotes Arming to Previewing.
	Tolerance float64
	// OutlineConnect makes Release connect to the marker's current cell
	// whenever one is marked, instead of hit-testing the preview end. (The
	// preview end snaps to a marked target's perimeter either way.)
	OutlineConnect bool

	state ConnectionState

	source      *Cell
	sourceState *CellState
	pressPoint  Point

	waypoints []Point
	current   Point

	preview      []Point
	previewColor PreviewColor

	validationErr error

	onStart   []func()
	onConnect []func(edge *Cell)
	onReset   []func()
}

func newConnectionHandler(g *Graph) *ConnectionHandler {
	return &ConnectionHandler{graph: g, Tolerance: 4}
}

func (h *ConnectionHandler) OnStart(fn func())            { h.onStart = append(h.onStart, fn) }
func (h *ConnectionHandler) OnConnect(fn func(edge *Cell)) { h.onConnect = append(h.onConnect, fn) }
func (h *ConnectionHandler) OnReset(fn func())             { h.onReset = append(h.onReset, fn) }

// State returns the handler's current state.
func (h *ConnectionHandler) State() ConnectionState { return h.state }

// Preview returns the current preview polyline and its color.
func (h *ConnectionHandler) Preview() ([]Point, PreviewColor) { return h.preview, h.previewColor }

// Press begins a gesture if the pointer is over a connectable source (or
// landed while hovering one); otherwise leaves the state machine in
// Hover/Idle untouched.
func (h *ConnectionHandler) Press(evt *PointerEvent) {
	if evt.Consumed() {
		return
	}
	cell := h.graph.HitTest(evt.Point())
	if cell != nil && !cell.IsConnectable() {
		cell = h.graph.ConnectableParentOf(cell)
	}
	if cell == nil {
		return
	}
	state := h.graph.View.State(cell)
	if state == nil {
		return
	}
	h.source = cell
	h.sourceState = state
	h.pressPoint = evt.Point()
	h.state = ConnArming
	evt.Consume()
}

// Move implements spec.md §4.6's per-move work, steps 1-8.
func (h *ConnectionHandler) Move(evt *PointerEvent) {
	if h.state == ConnIdle {
		h.updateHover(evt)
		return
	}

	p := h.graph.Snap(evt.Point())
	if evt.Modifiers.Shift && h.sourceState != nil {
		p = dominantAxisProject(h.sourceState.RotatedBounds().Center(), p)
	}

	h.graph.Marker.Process(evt)
	var snapBox *Rect
	h.graph.Constraint.Update(evt, snapBox)

	var target Point
	if _, ok := h.graph.Constraint.Constraint(); ok {
		target = h.graph.Constraint.Point()
	} else if ms := h.graph.Marker.Current(); ms != nil {
		target = ms.Perimeter(p, true)
	} else {
		target = p
	}
	h.current = target

	if h.state == ConnArming {
		if h.pressPoint.Distance(evt.Point()) > h.Tolerance {
			h.state = ConnPreviewing
			h.notifyStart()
		} else {
			return
		}
	}

	if h.state != ConnPreviewing && h.state != ConnPreviewingWaypoint {
		return
	}

	sourceTerm := h.sourceState.Perimeter(target, true)
	pts := make([]Point, 0, len(h.waypoints)+2)
	pts = append(pts, sourceTerm)
	pts = append(pts, h.waypoints...)
	pts = append(pts, target)
	h.preview = pts

	h.validationErr = nil
	if tgtCell := h.graph.HitTest(target); tgtCell != nil && tgtCell != h.source {
		if !h.graph.IsValidConnection(h.source, tgtCell) {
			h.previewColor = PreviewInvalid
		} else {
			h.previewColor = PreviewValid
		}
	} else {
		h.previewColor = PreviewValid
	}
	evt.Consume()
}

func (h *ConnectionHandler) updateHover(evt *PointerEvent) {
	cell := h.graph.HitTest(evt.Point())
	if cell != nil && !cell.IsConnectable() {
		cell = h.graph.ConnectableParentOf(cell)
	}
	if cell == nil {
		h.graph.Marker.Reset()
		return
	}
	h.graph.Marker.Process(evt)
	h.state = ConnHover
}

// Release implements spec.md §4.6's commit contract.
func (h *ConnectionHandler) Release(evt *PointerEvent) {
	switch h.state {
	case ConnPreviewing, ConnPreviewingWaypoint:
	default:
		if h.state == ConnArming {
			h.Reset()
		}
		return
	}

	// Bring the preview end to the release point before acting on it.
	h.Move(evt)

	if h.isWaypointClick(evt) {
		h.waypoints = append(h.waypoints, h.current)
		h.state = ConnPreviewingWaypoint
		evt.Consume()
		return
	}

	h.state = ConnCommitting
	target := h.resolveTarget(evt)
	createTarget := target == nil && h.graph.Config.CreateTarget && h.graph.VertexFactory != nil && h.sourceState != nil

	if target == nil && !createTarget {
		h.Reset()
		return
	}
	if target != nil {
		if h.isNoOpEdge(target) {
			h.Reset()
			return
		}
		if !h.graph.IsValidConnection(h.source, target) {
			h.Reset()
			return
		}
	}

	// The auto-created target vertex (when target was nil) and the edge
	// that connects to it must land in the same undoable edit — spec.md
	// §4.6 "Wrap all inserts in a single transaction bracket" — so a
	// single undo removes both instead of orphaning the new vertex.
	var edge *Cell
	h.graph.Model.Update(func() {
		if createTarget {
			target = h.createTargetVertex(evt)
			if target == nil {
				return
			}
		}
		if h.graph.EdgeFactory != nil {
			edge = h.graph.EdgeFactory(h.graph.Model, nil, "", h.source, target)
		} else {
			parent := h.graph.Model.Root()
			edge = h.graph.Model.AddEdge(parent, h.source, target, "")
		}
		pts := make([]Point, len(h.waypoints))
		for i, w := range h.waypoints {
			pts[i] = Point{
				(w.X - h.graph.View.Translate.X) / h.graph.View.Scale,
				(w.Y - h.graph.View.Translate.Y) / h.graph.View.Scale,
			}
		}
		g := edge.Geometry()
		g.Points = pts
		h.graph.Model.SetGeometry(edge, g)
		if anc := h.graph.NearestCommonAncestor(h.source, target); anc != nil && anc != edge.Parent() {
			h.graph.Model.InsertChild(anc, edge, anc.ChildCount())
		}
	})

	if edge == nil {
		h.Reset()
		return
	}

	h.graph.Select(edge)
	for _, fn := range h.onConnect {
		fn(edge)
	}
	h.Reset()
	evt.Consume()
}

func (h *ConnectionHandler) isWaypointClick(evt *PointerEvent) bool {
	return h.graph.Config.WaypointsOnAlt && evt.Modifiers.Alt
}

func (h *ConnectionHandler) resolveTarget(evt *PointerEvent) *Cell {
	if h.OutlineConnect {
		if ms := h.graph.Marker.Current(); ms != nil {
			return ms.Cell
		}
	}
	cell := h.graph.HitTest(h.current)
	if cell == nil {
		return nil
	}
	if !cell.IsConnectable() {
		cell = h.graph.ConnectableParentOf(cell)
	}
	return cell
}

func (h *ConnectionHandler) isNoOpEdge(target *Cell) bool {
	return target == h.source && len(h.waypoints) == 0
}

// createTargetVertex builds the auto-created target vertex. It must be
// called from inside the caller's own Model.Update bracket (Release's),
// so the vertex and the edge that connects to it land in one undoable
// edit rather than two.
func (h *ConnectionHandler) createTargetVertex(evt *PointerEvent) *Cell {
	if h.graph.VertexFactory == nil || h.sourceState == nil {
		return nil
	}
	b := h.sourceState.RotatedBounds()
	pt := h.current
	if pt.Distance(h.sourceState.Bounds().Center()) < h.Tolerance {
		pt = h.sourceState.Bounds().Center().Add(Point{b.Width, 0})
	}
	x := (pt.X - h.graph.View.Translate.X) / h.graph.View.Scale
	y := (pt.Y - h.graph.View.Translate.Y) / h.graph.View.Scale
	geo := Geometry{X: x - b.Width/2, Y: y - b.Height/2, Width: b.Width, Height: b.Height}
	return h.graph.VertexFactory(h.graph.Model, nil, h.source.Style, geo)
}

// Reset discards the preview, clears marker/constraint state, zeroes the
// waypoint list, and returns to Idle (spec.md §4.6 "Reset"). Safe to
// call from any state, including Idle.
func (h *ConnectionHandler) Reset() {
	wasActive := h.state != ConnIdle
	h.state = ConnIdle
	h.source = nil
	h.sourceState = nil
	h.waypoints = nil
	h.preview = nil
	h.previewColor = PreviewNone
	h.validationErr = nil
	h.graph.Marker.Reset()
	h.graph.Constraint.Reset()
	if wasActive {
		for _, fn := range h.onReset {
			fn()
		}
	}
}

func (h *ConnectionHandler) notifyStart() {
	for _, fn := range h.onStart {
		fn()
	}
}

// ValidationError always returns nil: IsValidConnection is a yes/no check,
// and neither Move nor Release records a rejection reason for the
// application.
func (h *ConnectionHandler) ValidationError() error { return h.validationErr }
