package diagram

// ShapeKind tags the variant a Shape plays, replacing the teacher's
// class hierarchy (RectangleShape/Polyline/ImageShape) with a flat
// capability set over one struct, per spec.md §9: "model the common
// surface as a capability set and the variants as tagged variants over
// that set".
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
	ShapeRhombus
	ShapePolyline
	ShapeImage
)

// Shape is a drawable diagram element: a vertex's body or an edge's
// polyline, resolved from a CellState and ready to paint onto a
// RenderSurface. Grounded on render.go's RenderCommand — a flat struct
// covering every drawable kind instead of an interface hierarchy per
// shape subtype.
type Shape struct {
	Kind   ShapeKind
	Bounds Rect
	Points []Point // polyline/edge waypoints; unused for vertex kinds

	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Rotation    float64

	Image string // source identifier, ShapeImage only

	StartArrow, EndArrow string
	StartSize, EndSize   float64
}

// Paint draws the shape onto the given layer of surface using the same
// path-building sequence for every kind (begin/moveTo/lineTo-or-curve/
// fill/stroke), grounded on mesh_helpers.go's shared path-emission
// helpers generalized from mesh triangulation to vector outlines.
func (s Shape) Paint(surface RenderSurface, layer Layer) {
	surface.SetTransform(Point{}, s.Rotation, 1)
	surface.SetOpacity(s.Opacity)
	surface.Begin(layer)
	switch s.Kind {
	case ShapeRectangle:
		paintRectPath(surface, s.Bounds)
	case ShapeEllipse:
		paintEllipsePath(surface, s.Bounds)
	case ShapeRhombus:
		paintRhombusPath(surface, s.Bounds)
	case ShapePolyline:
		paintPolylinePath(surface, s.Points)
	case ShapeImage:
		surface.DrawImage(s.Image, s.Bounds)
		return
	}
	if s.Fill != "" {
		surface.SetFill(s.Fill)
		surface.Fill()
	}
	if s.Stroke != "" {
		surface.SetStroke(s.Stroke, s.StrokeWidth)
		surface.Stroke()
	}
}

func paintRectPath(surface RenderSurface, b Rect) {
	surface.MoveTo(Point{b.X, b.Y})
	surface.LineTo(Point{b.X + b.Width, b.Y})
	surface.LineTo(Point{b.X + b.Width, b.Y + b.Height})
	surface.LineTo(Point{b.X, b.Y + b.Height})
	surface.LineTo(Point{b.X, b.Y})
}

func paintEllipsePath(surface RenderSurface, b Rect) {
	cx, cy := b.Center().X, b.Center().Y
	rx, ry := b.Width/2, b.Height/2
	const k = 0.5522847498 // cubic Bezier circle-approximation constant
	surface.MoveTo(Point{cx + rx, cy})
	surface.CubicTo(Point{cx + rx, cy + ry*k}, Point{cx + rx*k, cy + ry}, Point{cx, cy + ry})
	surface.CubicTo(Point{cx - rx*k, cy + ry}, Point{cx - rx, cy + ry*k}, Point{cx - rx, cy})
	surface.CubicTo(Point{cx - rx, cy - ry*k}, Point{cx - rx*k, cy - ry}, Point{cx, cy - ry})
	surface.CubicTo(Point{cx + rx*k, cy - ry}, Point{cx + rx, cy - ry*k}, Point{cx + rx, cy})
}

func paintRhombusPath(surface RenderSurface, b Rect) {
	cx, cy := b.Center().X, b.Center().Y
	surface.MoveTo(Point{cx, b.Y})
	surface.LineTo(Point{b.X + b.Width, cy})
	surface.LineTo(Point{cx, b.Y + b.Height})
	surface.LineTo(Point{b.X, cy})
	surface.LineTo(Point{cx, b.Y})
}

func paintPolylinePath(surface RenderSurface, pts []Point) {
	if len(pts) == 0 {
		return
	}
	surface.MoveTo(pts[0])
	for _, p := range pts[1:] {
		surface.LineTo(p)
	}
}
