package diagram

import "math"

// PerimeterFunc computes the point where a line from the shape's center
// toward next crosses the shape's perimeter. bounds is the shape's
// (possibly rotation-adjusted) absolute bounding box. orthogonal, when
// true, asks the function to snap the result to the nearest horizontal or
// vertical exit rather than the true geometric crossing. View's endpoint
// clipping and the connection handler's preview always request this,
// whatever the router (spec.md §4.2 step 4, §4.3).
type PerimeterFunc func(bounds Rect, next Point, orthogonal bool) Point

// perimeterRegistry maps a style's "perimeter" key to its PerimeterFunc.
// Populated by RegisterPerimeter; read by View when clipping edge
// endpoints (spec.md §4.2 step 4).
var perimeterRegistry = map[string]PerimeterFunc{
	"rectangle": RectanglePerimeter,
	"ellipse":   EllipsePerimeter,
	"rhombus":   RhombusPerimeter,
}

// RegisterPerimeter installs or replaces a named perimeter function.
func RegisterPerimeter(name string, fn PerimeterFunc) {
	perimeterRegistry[name] = fn
}

// Perimeter looks up a perimeter function by name, defaulting to
// RectanglePerimeter when name is unrecognized (the common case: most
// vertices are boxes).
func Perimeter(name string) PerimeterFunc {
	if fn, ok := perimeterRegistry[name]; ok {
		return fn
	}
	return RectanglePerimeter
}

// RectanglePerimeter returns the point where the ray from bounds' center to
// next crosses the rectangle's edge.
func RectanglePerimeter(bounds Rect, next Point, orthogonal bool) Point {
	cx, cy := bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2
	dx := next.X - cx
	dy := next.Y - cy

	if orthogonal {
		if math.Abs(dx) > math.Abs(dy) {
			if dx > 0 {
				return Point{bounds.X + bounds.Width, cy}
			}
			return Point{bounds.X, cy}
		}
		if dy > 0 {
			return Point{cx, bounds.Y + bounds.Height}
		}
		return Point{cx, bounds.Y}
	}

	if dx == 0 && dy == 0 {
		return Point{cx, cy}
	}

	halfW := bounds.Width / 2
	halfH := bounds.Height / 2
	// Scale the ray so it reaches whichever of the two half-extents is hit
	// first (the classic "t" for each axis, take the smaller).
	tX := math.Inf(1)
	if dx != 0 {
		tX = halfW / math.Abs(dx)
	}
	tY := math.Inf(1)
	if dy != 0 {
		tY = halfH / math.Abs(dy)
	}
	t := math.Min(tX, tY)
	return Point{cx + dx*t, cy + dy*t}
}

// EllipsePerimeter returns the point where the ray from bounds' center to
// next crosses the ellipse inscribed in bounds.
func EllipsePerimeter(bounds Rect, next Point, orthogonal bool) Point {
	cx, cy := bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2
	a := bounds.Width / 2
	b := bounds.Height / 2
	dx := next.X - cx
	dy := next.Y - cy

	if orthogonal {
		return RectanglePerimeter(bounds, next, true)
	}
	if dx == 0 && dy == 0 {
		return Point{cx, cy - b}
	}
	// Solve t such that ((t*dx)/a)^2 + ((t*dy)/b)^2 = 1.
	denom := (dx*dx)/(a*a) + (dy*dy)/(b*b)
	if denom == 0 {
		return Point{cx, cy}
	}
	t := 1 / math.Sqrt(denom)
	return Point{cx + dx*t, cy + dy*t}
}

// RhombusPerimeter returns the point where the ray from bounds' center to
// next crosses the rhombus (diamond) inscribed in bounds.
func RhombusPerimeter(bounds Rect, next Point, orthogonal bool) Point {
	cx, cy := bounds.X+bounds.Width/2, bounds.Y+bounds.Height/2
	a := bounds.Width / 2
	b := bounds.Height / 2
	dx := next.X - cx
	dy := next.Y - cy

	if orthogonal {
		return RectanglePerimeter(bounds, next, true)
	}
	if dx == 0 && dy == 0 || a == 0 || b == 0 {
		return Point{cx, cy}
	}
	// |dx|/a + |dy|/b = 1/t  =>  t = 1 / (|dx|/a + |dy|/b)
	denom := math.Abs(dx)/a + math.Abs(dy)/b
	if denom == 0 {
		return Point{cx, cy}
	}
	t := 1 / denom
	return Point{cx + dx*t, cy + dy*t}
}
