// Package diagram implements the core of a 2-D diagram engine: the cell
// model and transactional mutation layer, the view/layout pipeline that
// derives absolute geometry from relative model geometry, and the
// interaction state machines that turn pointer events into model
// mutations.
//
// diagram is not a finished drawing application. It exposes a
// programmatic API that a host editor drives: the host owns the pointer
// event source, the rendering surface, and the style dictionary; diagram
// owns the graph data structure, undo/redo, edge routing, and the
// hit-testing/connection/selection state machines built on top of it.
//
// # Quick start
//
//	model := diagram.NewModel()
//	graph := diagram.NewGraph(model, diagram.DefaultStyleProvider, diagram.DefaultGraphConfig())
//
//	var v1, v2 *diagram.Cell
//	model.Update(func() {
//		v1 = model.AddVertex(model.Root(), diagram.Geometry{Width: 80, Height: 30}, "")
//		v2 = model.AddVertex(model.Root(), diagram.Geometry{X: 200, Width: 80, Height: 30}, "")
//	})
//
//	state := graph.View.State(v1) // derived absolute geometry
//
// # Key subsystems
//
//   - [Model] and [Cell]: the tree of vertices and edges, mutated only
//     through [Model.Update] update brackets ([UndoableEdit]).
//   - [View] and [CellState]: the derived, cached, absolute-coordinate
//     projection of the model, scale/translate aware.
//   - The router registry ([RegisterRouter], [Router]): five routing
//     strategies that turn two [CellState]s into an ordered waypoint list.
//   - [CellMarker], [ConstraintHandler], [ConnectionHandler],
//     [Rubberband], [SelectionCellsHandler]: the pointer-driven state
//     machines that create and edit edges and selections.
//
// The rendering surface ([RenderSurface]) and pointer source ([PointerEvent])
// are external collaborators the core only consumes; package ebitensurface
// supplies a concrete [RenderSurface] backed by [Ebitengine], and package
// diagramecs optionally bridges model mutation events onto a [Donburi]
// world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package diagram
