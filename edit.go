package diagram

// UndoableEdit is an ordered list of atomic changes published as a single
// unit when an outermost update bracket closes (spec.md §3.4, §4.1). Since
// every change's execute() is self-inverting, re-applying the same edit
// toggles the model between the post-edit and pre-edit state: apply once
// to undo, apply again to redo, per spec.md §8.1 "Undo round-trip".
type UndoableEdit struct {
	// Changes is the ordered list of atomic changes recorded while the
	// bracket was open, in append order.
	Changes []change
	// Significant marks whether this edit should be pushed onto a host
	// undo stack (insignificant edits — e.g. pure selection changes — are
	// typically filtered out by the caller).
	Significant bool

	undone bool
}

func newUndoableEdit() *UndoableEdit {
	return &UndoableEdit{Significant: true}
}

// Execute toggles the edit: while it is applied, it undoes it by running
// every change's execute() in reverse append order; once undone, it redoes
// it by running them in append order (execute is its own inverse).
func (e *UndoableEdit) Execute() {
	if e.undone {
		for _, c := range e.Changes {
			c.execute()
		}
	} else {
		for i := len(e.Changes) - 1; i >= 0; i-- {
			e.Changes[i].execute()
		}
	}
	e.undone = !e.undone
}

// IsEmpty reports whether the edit recorded no changes.
func (e *UndoableEdit) IsEmpty() bool { return len(e.Changes) == 0 }
