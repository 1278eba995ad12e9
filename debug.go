package diagram

import (
	"fmt"
	"os"
)

// debugMaxTreeDepth and debugMaxChildCount are the conventional
// pathological-input thresholds this family of engines warns on,
// grounded on the teacher's debugCheckTreeDepth/debugCheckChildCount
// constants (debugMaxTreeDepth = 32, debugMaxChildCount = 1000 there),
// widened here since a diagram model's trees are typically shallower but
// a single container can legitimately hold many more cells than a scene
// graph node holds children.
const (
	debugMaxTreeDepth  = 64
	debugMaxChildCount = 10000
)

// debugLog writes a diagnostic line to stderr iff g.Debug is set,
// grounded on the teacher's Scene.debugLog (a plain fmt.Fprintf behind a
// debug flag, not a structured logging library — see SPEC_FULL.md
// "AMBIENT STACK / Logging").
func (g *Graph) debugLog(format string, args ...any) {
	if !g.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[diagram] "+format+"\n", args...)
}

// CheckInvariants walks m from its root and returns one description per
// spec.md §8.1 invariant violation found: id uniqueness, parent/child
// symmetry (a child's parent pointer and its parent's child-list index
// agree), and edge/terminal symmetry (an edge's source/target cell lists
// the edge in its incident set, and vice versa). It never panics or
// mutates m; a host decides what to do with the returned problems
// (Graph.CheckInvariants logs them when Debug is set).
//
// This is grounded on the teacher's debugCheckDisposed/
// debugCheckTreeDepth/debugCheckChildCount shape: those check a single
// node at the point of a tree operation and either panic (programmer
// error) or warn (soft threshold); this generalizes the warn half of
// that split into a whole-model sweep over the spec's testable
// invariants (spec.md §8.1), since "is this cell's id unique" can't be
// checked locally the way "is this node disposed" can.
func CheckInvariants(m *Model) []string {
	var problems []string
	if m == nil || m.root == nil {
		return problems
	}

	seen := make(map[CellID]*Cell)
	var walkTree func(c *Cell, depth int)
	walkTree = func(c *Cell, depth int) {
		if c.id != 0 {
			if other, ok := seen[c.id]; ok && other != c {
				problems = append(problems, fmt.Sprintf("duplicate id %d shared by two reachable cells", c.id))
			} else {
				seen[c.id] = c
			}
		}
		if depth > debugMaxTreeDepth {
			problems = append(problems, fmt.Sprintf("cell %d: tree depth %d exceeds %d", c.id, depth, debugMaxTreeDepth))
		}
		if len(c.children) > debugMaxChildCount {
			problems = append(problems, fmt.Sprintf("cell %d: %d children exceeds %d", c.id, len(c.children), debugMaxChildCount))
		}
		for i, ch := range c.children {
			if ch.parent != c {
				problems = append(problems, fmt.Sprintf("cell %d: child at index %d has parent pointer to a different cell", c.id, i))
			} else if ch.Index() != i {
				problems = append(problems, fmt.Sprintf("cell %d: child at index %d reports Index()=%d", c.id, i, ch.Index()))
			}
			walkTree(ch, depth+1)
		}
	}
	walkTree(m.root, 0)

	// Edge/terminal symmetry, per spec.md §3.1: "for every edge E with
	// terminal T at end S: E ∈ T.edges; conversely for every E ∈ T.edges,
	// T is an endpoint of E at one end." Walk in both directions since
	// either side could be the one left inconsistent by a bug.
	for _, c := range seen {
		if !c.isEdge {
			continue
		}
		if c.source != nil && !hasEdgeRef(c.source, c) {
			problems = append(problems, fmt.Sprintf("edge %d: source %d does not list it as incident", c.id, c.source.id))
		}
		if c.target != nil && !hasEdgeRef(c.target, c) {
			problems = append(problems, fmt.Sprintf("edge %d: target %d does not list it as incident", c.id, c.target.id))
		}
	}
	for _, c := range seen {
		for _, e := range c.edges {
			if e.source != c && e.target != c {
				problems = append(problems, fmt.Sprintf("cell %d: listed as incident on edge %d but is neither its source nor target", c.id, e.id))
			}
		}
	}

	return problems
}

func hasEdgeRef(c, e *Cell) bool {
	for _, existing := range c.edges {
		if existing == e {
			return true
		}
	}
	return false
}

// CheckInvariants runs CheckInvariants(g.Model) and, when g.Debug is
// set, logs each violation to stderr via debugLog. Intended to be called
// by a host after a batch of mutations it wants to sanity-check (e.g. in
// a test, or periodically in a debug build) — invariant checking walks
// the whole model and is not wired into every mutation automatically.
func (g *Graph) CheckInvariants() []string {
	problems := CheckInvariants(g.Model)
	for _, p := range problems {
		g.debugLog("invariant violation: %s", p)
	}
	return problems
}
