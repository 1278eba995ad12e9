package diagram

// change is an atomic, reversible model mutation (spec.md §3.4). Its
// execute swaps the stored "other" value into the target slot and keeps
// the value that was there before in the change (execute returns
// nothing) — so calling execute twice is a no-op and a single further
// execute call re-inverts it. This mirrors spec.md §4.1 ("execute swaps the stored
// value with the slot's current value") exactly; there is no separate
// "undo" method anywhere in this file.
type change interface {
	execute()
}

// rootChange swaps the model's root cell.
type rootChange struct {
	model *Model
	root  *Cell
}

func (c *rootChange) execute() {
	prev := c.model.root
	c.model.root = c.root
	if c.model.root != nil {
		c.model.root.parent = nil
	}
	c.root = prev
}

// childChange swaps a cell between being a child of `parent` at `index`
// and being detached (parent == nil). On removal it disconnects the
// cell's incident edges from their terminals, remembering the previous
// endpoints in edgeRestore so a later re-execute (redo of the removal, or
// undo of an insertion) can restore them, per spec.md §4.1 "Child-change
// specifics".
type childChange struct {
	model    *Model
	cell     *Cell
	parent   *Cell
	index    int
	executed bool

	edgeRestore []edgeEndpointBackup
}

type edgeEndpointBackup struct {
	edge   *Cell
	cell   *Cell // the terminal cell that was disconnected
	source bool  // true = cell was the edge's source terminal
}

func (c *childChange) execute() {
	if c.parent == nil {
		c.detach()
	} else {
		c.attach()
	}
}

func (c *childChange) attach() {
	p := c.parent
	idx := c.index
	if idx < 0 || idx > len(p.children) {
		idx = len(p.children)
	}
	c.cell.parent = p
	p.children = append(p.children, nil)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = c.cell
	c.model.markPathKeysDirty(c.cell)

	if c.model.idOf[c.cell.id] != c.cell {
		c.model.assignID(c.cell)
	}

	// Restore incident-edge endpoints recursively across descendants.
	c.model.restoreEdgesRecursive(c.cell, &c.edgeRestore)

	// Flip this change so the next execute() detaches again.
	c.parent = nil
	c.index = idx
}

func (c *childChange) detach() {
	p := c.cell.parent
	idx := c.cell.Index()

	c.model.disconnectEdgesRecursive(c.cell, &c.edgeRestore)

	if idx >= 0 {
		p.children = append(p.children[:idx], p.children[idx+1:]...)
	}
	c.cell.parent = nil
	c.model.releaseID(c.cell)

	// Flip this change so the next execute() re-attaches at the same spot.
	c.parent = p
	c.index = idx
}

// terminalChange swaps one endpoint (source or target) of an edge cell.
type terminalChange struct {
	model    *Model
	edge     *Cell
	terminal *Cell
	source   bool
}

func (c *terminalChange) execute() {
	var prev *Cell
	if c.source {
		prev = c.edge.source
		if prev != nil {
			prev.removeEdgeRef(c.edge)
		}
		c.edge.source = c.terminal
		if c.terminal != nil {
			c.terminal.addEdgeRef(c.edge)
		}
	} else {
		prev = c.edge.target
		if prev != nil {
			prev.removeEdgeRef(c.edge)
		}
		c.edge.target = c.terminal
		if c.terminal != nil {
			c.terminal.addEdgeRef(c.edge)
		}
	}
	c.terminal = prev
}

// valueChange swaps a cell's opaque Value.
type valueChange struct {
	cell  *Cell
	value any
}

func (c *valueChange) execute() {
	prev := c.cell.Value
	c.cell.Value = c.value
	c.value = prev
}

// styleChange swaps a cell's Style string.
type styleChange struct {
	cell  *Cell
	style string
}

func (c *styleChange) execute() {
	prev := c.cell.Style
	c.cell.Style = c.style
	c.style = prev
}

// geometryChange swaps a cell's Geometry.
type geometryChange struct {
	cell     *Cell
	geometry *Geometry
}

func (c *geometryChange) execute() {
	prev := c.cell.geometry
	c.cell.geometry = c.geometry
	c.geometry = prev
}

// visibleChange swaps a cell's Visible flag.
type visibleChange struct {
	cell    *Cell
	visible bool
}

func (c *visibleChange) execute() {
	prev := c.cell.visible
	c.cell.visible = c.visible
	c.visible = prev
}

// collapsedChange swaps a cell's Collapsed flag.
type collapsedChange struct {
	cell      *Cell
	collapsed bool
}

func (c *collapsedChange) execute() {
	prev := c.cell.collapsed
	c.cell.collapsed = c.collapsed
	c.collapsed = prev
}

// attributeChange swaps a single key in a cell's attribute map (an
// auxiliary bag of named values distinct from Value, used for style
// overrides applied programmatically rather than parsed from Style).
type attributeChange struct {
	model *Model
	cell  *Cell
	key   string
	value any
	isSet bool // whether `value` is to be set (vs. deleted)
}

func (c *attributeChange) execute() {
	attrs := c.model.attributesOf(c.cell)
	prevValue, prevSet := attrs[c.key]
	if c.isSet {
		attrs[c.key] = c.value
	} else {
		delete(attrs, c.key)
	}
	c.value = prevValue
	c.isSet = prevSet
}
