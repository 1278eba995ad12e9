package diagram

// Rubberband implements spec.md §4.7's region-select gesture: on a
// qualifying press it records a start point, tracks a floating rectangle
// per move, and asks the graph to select every cell it intersects on
// release. Grounded on input.go's drag-start/drag/drag-end trio.
type Rubberband struct {
	graph *Graph

	Clipboard ClipboardBridge

	active bool
	start  Point
	rect   Rect

	onChange []func(active bool, rect Rect)
}

func newRubberband(g *Graph) *Rubberband {
	return &Rubberband{graph: g}
}

// OnChange registers a callback invoked whenever the floating rectangle
// changes (including becoming active/inactive).
func (r *Rubberband) OnChange(fn func(active bool, rect Rect)) {
	r.onChange = append(r.onChange, fn)
}

// Active reports whether a rubberband gesture is in progress.
func (r *Rubberband) Active() bool { return r.active }

// Rect returns the current floating rectangle.
func (r *Rubberband) Rect() Rect { return r.rect }

// qualifies reports whether evt should start a rubberband: alt-held, or
// a press on empty area (nothing under the pointer), per spec.md §4.7.
func (r *Rubberband) qualifies(evt *PointerEvent) bool {
	if evt.Modifiers.Alt {
		return true
	}
	return r.graph.HitTest(evt.Point()) == nil
}

// Press begins tracking if evt qualifies. Returns whether it started.
func (r *Rubberband) Press(evt *PointerEvent) bool {
	if evt.Consumed() || !r.qualifies(evt) {
		return false
	}
	r.active = true
	r.start = evt.Point()
	r.rect = Rect{r.start.X, r.start.Y, 0, 0}
	if r.Clipboard != nil {
		r.Clipboard.ClearNativeSelection()
	}
	r.notify()
	evt.Consume()
	return true
}

// Move updates the floating rectangle.
func (r *Rubberband) Move(evt *PointerEvent) {
	if !r.active {
		return
	}
	p := evt.Point()
	x0, x1 := minf(r.start.X, p.X), maxf(r.start.X, p.X)
	y0, y1 := minf(r.start.Y, p.Y), maxf(r.start.Y, p.Y)
	r.rect = Rect{x0, y0, x1 - x0, y1 - y0}
	r.notify()
	evt.Consume()
}

// Release finalizes the gesture: selects every intersecting cell,
// respecting alt/shift modifier semantics (shift adds to the existing
// selection).
func (r *Rubberband) Release(evt *PointerEvent) {
	if !r.active {
		return
	}
	r.active = false
	r.graph.SelectRegion(r.rect, evt.Modifiers.Shift)
	r.rect = Rect{}
	r.notify()
	evt.Consume()
}

func (r *Rubberband) notify() {
	for _, fn := range r.onChange {
		fn(r.active, r.rect)
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// SelectionCellsHandler owns a cell-to-handler dictionary and refreshes
// it against the current selection, grounded on scene.go's
// EntityStore-diff-and-refresh idea generalized from "ECS entity per
// node" to "selection handler per selected cell".
type SelectionCellsHandler struct {
	graph *Graph

	// NewHandler constructs a per-cell selection handle (resize/rotate
	// grips, etc.); the host supplies the concrete behavior.
	NewHandler func(cell *Cell) SelectionHandle

	handlers map[CellID]SelectionHandle
}

// SelectionHandle is a per-cell interaction helper (resize handles,
// rotation grip, ...) owned by a SelectionCellsHandler.
type SelectionHandle interface {
	// Active reports whether the handle has an interaction in progress
	// (e.g. a drag), in which case Refresh is skipped this cycle.
	Active() bool
	Refresh()
	Destroy()
	Process(evt *PointerEvent)
}

func newSelectionCellsHandler(g *Graph) *SelectionCellsHandler {
	return &SelectionCellsHandler{graph: g, handlers: make(map[CellID]SelectionHandle)}
}

// Refresh diffs the current selection against the handler dictionary:
// destroys handlers for cells no longer selected, constructs new ones
// for newly selected cells, and refreshes every retained handler with no
// active interaction (spec.md §4.7 "Selection-cells handler").
func (s *SelectionCellsHandler) Refresh() {
	if s.NewHandler == nil {
		return
	}
	selected := make(map[CellID]bool)
	for _, c := range s.graph.SelectionCells() {
		selected[c.ID()] = true
		if _, ok := s.handlers[c.ID()]; !ok {
			s.handlers[c.ID()] = s.NewHandler(c)
		}
	}
	for id, h := range s.handlers {
		if !selected[id] {
			h.Destroy()
			delete(s.handlers, id)
		}
	}
	for _, h := range s.handlers {
		if !h.Active() {
			h.Refresh()
		}
	}
}

// Process fans evt out to every retained handler in turn.
func (s *SelectionCellsHandler) Process(evt *PointerEvent) {
	for _, h := range s.handlers {
		if evt.Consumed() {
			return
		}
		h.Process(evt)
	}
}
