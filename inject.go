package diagram

// Synthetic pointer injection, grounded on the teacher's inject.go
// (InjectPress/InjectMove/InjectRelease/InjectDrag queuing events for
// Scene.Update to drain one per frame). This engine has no frame loop of
// its own — every pointer event is processed synchronously by its
// caller — so the queue collapses into direct dispatch; what survives is
// the same "press, N interpolated moves, release" gesture-construction
// idea, now the natural vehicle for driving the connection handler
// (§4.6) and rubberband (§4.7) state machines headlessly in tests,
// exactly as the teacher uses its inject queue for screenshot testing
// without a real window.

// InjectPress synthesizes a press at (x, y) and dispatches it to the
// rubberband first (so an alt-held or empty-area press can start a
// region selection) and, if the rubberband didn't start, to the
// connection handler.
func (g *Graph) InjectPress(x, y float64, mods Modifiers) *PointerEvent {
	evt := &PointerEvent{ClientX: x, ClientY: y, ScreenX: x, ScreenY: y, Modifiers: mods}
	if !g.Rubberband.Press(evt) {
		g.Connection.Press(evt)
	}
	return evt
}

// InjectMove synthesizes a move at (x, y), routing to whichever handler
// has an active gesture.
func (g *Graph) InjectMove(x, y float64, mods Modifiers) *PointerEvent {
	evt := &PointerEvent{ClientX: x, ClientY: y, ScreenX: x, ScreenY: y, Modifiers: mods}
	if g.Rubberband.Active() {
		g.Rubberband.Move(evt)
	} else {
		g.Connection.Move(evt)
	}
	return evt
}

// InjectRelease synthesizes a release at (x, y), routing to whichever
// handler has an active gesture.
func (g *Graph) InjectRelease(x, y float64, mods Modifiers) *PointerEvent {
	evt := &PointerEvent{ClientX: x, ClientY: y, ScreenX: x, ScreenY: y, Modifiers: mods}
	if g.Rubberband.Active() {
		g.Rubberband.Release(evt)
	} else {
		g.Connection.Release(evt)
	}
	return evt
}

// InjectClick is a convenience for InjectPress immediately followed by
// InjectRelease at the same point (a click with no drag).
func (g *Graph) InjectClick(x, y float64, mods Modifiers) {
	g.InjectPress(x, y, mods)
	g.InjectRelease(x, y, mods)
}

// InjectDrag plays a full press/move.../release gesture from (fromX,
// fromY) to (toX, toY) over steps linearly interpolated intermediate
// moves — the headless equivalent of the teacher's InjectDrag, used by
// inject_test.go to exercise spec.md §4.6/§4.7 without a real pointer
// source.
func (g *Graph) InjectDrag(fromX, fromY, toX, toY float64, steps int, mods Modifiers) {
	if steps < 1 {
		steps = 1
	}
	g.InjectPress(fromX, fromY, mods)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, mods)
	}
	g.InjectRelease(toX, toY, mods)
}
