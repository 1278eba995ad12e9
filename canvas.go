package diagram

// Layer identifies one of the rendering surface's z-ordered layers
// (spec.md §6 "Rendering surface": "a draw layer for permanent shapes
// and an overlay layer for handles and previews").
type Layer int

const (
	LayerDraw Layer = iota
	LayerDecorator
	LayerOverlay
)

// RenderSurface is the external vector-canvas collaborator the core
// consumes but never provides (spec.md §6). A host supplies a concrete
// implementation (e.g. package ebitensurface); the core only issues path
// and transform commands against this interface.
type RenderSurface interface {
	Begin(layer Layer)
	MoveTo(p Point)
	LineTo(p Point)
	QuadraticTo(ctrl, end Point)
	CubicTo(c1, c2, end Point)
	Fill()
	Stroke()

	SetFill(color string)
	SetStroke(color string, width float64)
	SetOpacity(alpha float64)
	SetShadow(color string, blur, dx, dy float64)
	SetTransform(translate Point, rotate, scale float64)

	DrawImage(source string, bounds Rect)

	// HitTest reports whether p lies within the last-painted shape's
	// filled region, for host-delegated precise (non-rectangular) hit
	// testing when the marker's hotspot rectangle test isn't enough.
	HitTest(p Point) bool

	// CreateNode and RemoveNode manage any host-side retained resource
	// (e.g. a cached path object) associated with a CellID, mirroring
	// node.go's create/destroy-on-invalidate lifecycle.
	CreateNode(id CellID, layer Layer)
	RemoveNode(id CellID)
}

// ClipboardBridge is the "clear native selection" primitive spec.md §6
// asks for, invoked during rubberband drag to suppress native text
// selection while the user is dragging a selection rectangle.
type ClipboardBridge interface {
	ClearNativeSelection()
}
