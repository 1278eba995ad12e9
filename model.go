package diagram

import "fmt"

// Model owns the tree of cells, the id dictionary, and the transaction
// log (spec.md §3.1, §4.1). All reads are pure; all structural, value, or
// style mutations are recorded as atomic changes (changes.go) inside the
// edit that is open between Update's matching begin/end bracket.
type Model struct {
	root *Cell

	idOf    map[CellID]*Cell
	nextID  CellID
	attrs   map[*Cell]map[string]any

	updateDepth int
	currentEdit *UndoableEdit
	listeners   eventRegistry

	// MaintainEdgeParent, when true, makes Model reparent an edge into the
	// nearest common ancestor of its endpoints after any structural change
	// that moved one of them (spec.md §4.1).
	MaintainEdgeParent bool
}

// NewModel creates an empty model with a fresh root cell. The root is
// attached but has no parent and is never itself a vertex or edge (spec.md
// §3.1: "exactly one role (vertex | edge | neither=group/root)").
func NewModel() *Model {
	m := &Model{
		idOf:  make(map[CellID]*Cell),
		attrs: make(map[*Cell]map[string]any),
	}
	root := &Cell{visible: true}
	m.root = root
	m.assignID(root)
	m.currentEdit = newUndoableEdit()
	return m
}

// Root returns the model's root cell.
func (m *Model) Root() *Cell { return m.root }

// CellByID resolves a cell by its id, or nil if the id is unknown or the
// cell is currently detached (spec.md §3.1: "reparented ... disabling
// id-lookup").
func (m *Model) CellByID(id CellID) *Cell { return m.idOf[id] }

// -- id dictionary --------------------------------------------------------

func (m *Model) assignID(c *Cell) {
	if c.id != 0 {
		if existing, ok := m.idOf[c.id]; !ok || existing == c {
			m.idOf[c.id] = c
			return
		}
		// Collision with a distinct cell: re-mint (spec.md §4.1 "collisions
		// resolved by re-minting").
	}
	m.nextID++
	c.id = m.nextID
	m.idOf[c.id] = c
}

func (m *Model) releaseID(c *Cell) {
	if m.idOf[c.id] == c {
		delete(m.idOf, c.id)
	}
}

func (m *Model) attributesOf(c *Cell) map[string]any {
	attrs, ok := m.attrs[c]
	if !ok {
		attrs = make(map[string]any)
		m.attrs[c] = attrs
	}
	return attrs
}

// Attribute returns the named attribute previously set with SetAttribute,
// and whether it was present.
func (m *Model) Attribute(c *Cell, key string) (any, bool) {
	v, ok := m.attrs[c][key]
	return v, ok
}

// -- update brackets -------------------------------------------------------

// Update wraps fn in a begin/end update bracket (spec.md §4.1). Nested
// calls (Update calling Update) coalesce into the outermost bracket's
// single edit; only the outermost call flushes and publishes events. If fn
// panics, the deferred endUpdate still decrements the depth counter (so the
// model is never left with a stuck open bracket) and the panic propagates
// to the caller; nothing recovers it, per spec.md §7 "Transactional
// failure".
func (m *Model) Update(fn func()) {
	m.beginUpdate()
	defer m.endUpdate()
	fn()
}

func (m *Model) beginUpdate() {
	m.updateDepth++
	m.listeners.fire(EventBeginUpdate, Event{Model: m})
	if m.updateDepth == 1 {
		m.listeners.fire(EventStartEdit, Event{Model: m})
	}
}

func (m *Model) endUpdate() {
	if m.updateDepth == 0 {
		panic("diagram: endUpdate with no matching beginUpdate")
	}
	m.updateDepth--
	m.listeners.fire(EventEndUpdate, Event{Model: m})
	if m.updateDepth != 0 {
		return
	}
	m.listeners.fire(EventEndEdit, Event{Model: m})
	edit := m.currentEdit
	if len(edit.Changes) > 0 {
		m.listeners.fire(EventBeforeUndo, Event{Model: m, Edit: edit})
		m.listeners.fire(EventChange, Event{Model: m, Edit: edit})
		m.listeners.fire(EventNotify, Event{Model: m, Edit: edit})
	}
	m.currentEdit = newUndoableEdit()
}

// record appends c to the currently open edit and applies it once.
func (m *Model) record(c change) {
	if m.updateDepth == 0 {
		// Allow a single unwrapped mutation to behave like a one-change
		// transaction, the same convenience willow's setters offer (no
		// caller-visible begin/end needed for a single field write).
		m.beginUpdate()
		defer m.endUpdate()
	}
	c.execute()
	m.currentEdit.Changes = append(m.currentEdit.Changes, c)
}

// -- structural mutation ---------------------------------------------------

// AddVertex creates a connectable, visible vertex with the given geometry
// and style, attached as the last child of parent, and returns it.
func (m *Model) AddVertex(parent *Cell, g Geometry, style string) *Cell {
	c := &Cell{isVertex: true, connectable: true, visible: true, Style: style}
	geom := g
	c.geometry = &geom
	m.InsertChild(parent, c, parent.ChildCount())
	return c
}

// AddEdge creates an edge between source and target (either may be nil for
// a dangling endpoint) attached as the last child of parent, and returns
// it.
func (m *Model) AddEdge(parent, source, target *Cell, style string) *Cell {
	c := &Cell{isEdge: true, visible: true, Style: style}
	m.InsertChild(parent, c, parent.ChildCount())
	m.SetTerminal(c, source, true)
	m.SetTerminal(c, target, false)
	return c
}

// InsertChild attaches cell as a child of parent at index, wrapped in its
// own update bracket if none is open. Panics if cell is already an
// ancestor of parent (a cycle) or if parent is nil.
func (m *Model) InsertChild(parent, cell *Cell, index int) {
	if parent == nil {
		panic("diagram: InsertChild with nil parent")
	}
	if cell.isAncestorOf(parent) {
		panic("diagram: InsertChild would create a cycle")
	}
	if m.updateDepth == 0 {
		m.beginUpdate()
		defer m.endUpdate()
	}
	// A move hands the edge endpoints its removal disconnects to the
	// re-attachment, which restores them, and refreshes the path keys of
	// the siblings the removal shifted.
	var moved []edgeEndpointBackup
	if old := cell.parent; old != nil {
		removal := &childChange{model: m, cell: cell, parent: nil}
		m.record(removal)
		moved = append(moved, removal.edgeRestore...)
		m.markPathKeysDirty(old)
	}
	m.record(&childChange{model: m, cell: cell, parent: parent, index: index, edgeRestore: moved})
	if m.MaintainEdgeParent {
		m.reparentIncidentEdges(cell)
	}
}

// RemoveCell detaches cell from its parent. Removing the root replaces it
// with nil (spec.md §4.1 "Failure modes": "attempting to remove the root
// replaces it with null").
func (m *Model) RemoveCell(cell *Cell) {
	if cell == m.root {
		m.record(&rootChange{model: m, root: nil})
		return
	}
	if cell.parent == nil {
		return
	}
	m.record(&childChange{model: m, cell: cell, parent: nil})
}

// SetRoot replaces the model's root cell.
func (m *Model) SetRoot(root *Cell) {
	m.record(&rootChange{model: m, root: root})
}

// SetTerminal sets the source (source=true) or target (source=false)
// endpoint of edge.
func (m *Model) SetTerminal(edge, terminal *Cell, source bool) {
	m.record(&terminalChange{model: m, edge: edge, terminal: terminal, source: source})
	if m.MaintainEdgeParent {
		m.reparentIncidentEdges(edge)
	}
}

// SetValue replaces cell's opaque Value.
func (m *Model) SetValue(cell *Cell, value any) {
	m.record(&valueChange{cell: cell, value: value})
}

// SetStyle replaces cell's Style string.
func (m *Model) SetStyle(cell *Cell, style string) {
	m.record(&styleChange{cell: cell, style: style})
}

// SetGeometry replaces cell's Geometry.
func (m *Model) SetGeometry(cell *Cell, g Geometry) {
	geom := g
	m.record(&geometryChange{cell: cell, geometry: &geom})
}

// SetVisible replaces cell's Visible flag.
func (m *Model) SetVisible(cell *Cell, visible bool) {
	m.record(&visibleChange{cell: cell, visible: visible})
}

// SetCollapsed replaces cell's Collapsed flag.
func (m *Model) SetCollapsed(cell *Cell, collapsed bool) {
	m.record(&collapsedChange{cell: cell, collapsed: collapsed})
}

// SetAttribute sets a named auxiliary attribute on cell.
func (m *Model) SetAttribute(cell *Cell, key string, value any) {
	m.record(&attributeChange{model: m, cell: cell, key: key, value: value, isSet: true})
}

// RemoveAttribute deletes a named auxiliary attribute from cell.
func (m *Model) RemoveAttribute(cell *Cell, key string) {
	m.record(&attributeChange{model: m, cell: cell, key: key, isSet: false})
}

// -- edge endpoint disconnect/restore (spec.md §4.1 "Child-change specifics") --

func (m *Model) disconnectEdgesRecursive(cell *Cell, backup *[]edgeEndpointBackup) {
	for _, e := range append([]*Cell(nil), cell.edges...) {
		if e.source == cell {
			*backup = append(*backup, edgeEndpointBackup{edge: e, cell: cell, source: true})
			e.source = nil
			cell.removeEdgeRef(e)
		}
		if e.target == cell {
			*backup = append(*backup, edgeEndpointBackup{edge: e, cell: cell, source: false})
			e.target = nil
			cell.removeEdgeRef(e)
		}
	}
	for _, child := range cell.children {
		m.disconnectEdgesRecursive(child, backup)
	}
}

// restoreEdgesRecursive restores every backed-up endpoint whose
// disconnected cell lies within root's subtree (root included), per
// spec.md §4.1 "on re-insertion those connections are restored recursively
// across descendants".
func (m *Model) restoreEdgesRecursive(root *Cell, backup *[]edgeEndpointBackup) {
	remaining := (*backup)[:0]
	for _, b := range *backup {
		if root.isAncestorOf(b.cell) {
			if b.source {
				b.edge.source = b.cell
			} else {
				b.edge.target = b.cell
			}
			b.cell.addEdgeRef(b.edge)
			continue
		}
		remaining = append(remaining, b)
	}
	*backup = remaining
}

// -- nearest common ancestor (spec.md §4.1 "Nearest-common-ancestor") ------

func (m *Model) markPathKeysDirty(cell *Cell) {
	var walk func(*Cell)
	walk = func(c *Cell) {
		c.pathKeyDirty = true
		for _, ch := range c.children {
			walk(ch)
		}
	}
	walk(cell)
}

func (m *Model) pathKeyOf(c *Cell) []int {
	if c == nil {
		return nil
	}
	if !c.pathKeyDirty && c.pathKey != nil {
		return c.pathKey
	}
	if c.parent == nil {
		c.pathKey = nil
		c.pathKeyDirty = false
		return nil
	}
	key := append(append([]int(nil), m.pathKeyOf(c.parent)...), c.Index())
	c.pathKey = key
	c.pathKeyDirty = false
	return key
}

// NearestCommonAncestor returns the deepest cell that is an ancestor of
// (or equal to) both a and b, comparing precomputed path keys (spec.md
// §4.1). Ties use the shorter path when one key is a prefix of the other.
func (m *Model) NearestCommonAncestor(a, b *Cell) *Cell {
	if a == nil || b == nil {
		return nil
	}
	pa := m.pathKeyOf(a)
	pb := m.pathKeyOf(b)
	n := len(pa)
	if len(pb) < n {
		n = len(pb)
	}
	common := 0
	for common < n && pa[common] == pb[common] {
		common++
	}
	anc := m.root
	cur := anc
	for i := 0; i < common; i++ {
		if i >= len(cur.children) {
			break
		}
		cur = cur.children[pa[i]]
		anc = cur
	}
	return anc
}

func (m *Model) reparentIncidentEdges(cell *Cell) {
	var edges []*Cell
	if cell.isEdge {
		edges = append(edges, cell)
	}
	edges = append(edges, cell.edges...)
	for _, e := range edges {
		if e.source == nil || e.target == nil {
			continue
		}
		anc := m.NearestCommonAncestor(e.source, e.target)
		if anc != nil && anc != e.parent && !e.isAncestorOf(anc) {
			m.InsertChild(anc, e, anc.ChildCount())
		}
	}
}

// String renders a short debug summary of the model's cell count.
func (m *Model) String() string {
	return fmt.Sprintf("Model{cells: %d}", len(m.idOf))
}
