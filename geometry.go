package diagram

import "math"

// Point is a location in a 2-D plane. Depending on context it may be in
// model-relative, unscaled-absolute, or scaled-absolute coordinates; callers
// are responsible for keeping those spaces straight, as spec.md §4.3 does.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by f about the origin.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(p.DistanceSq(q))
}

// DistanceSq returns the squared Euclidean distance between p and q, for
// callers (e.g. the constraint handler, spec.md §4.5) that only need to
// compare distances and can skip the sqrt.
func (p Point) DistanceSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Equals reports whether p and q are identical.
func (p Point) Equals(q Point) bool { return p.X == q.X && p.Y == q.Y }

// Rect is an axis-aligned rectangle in the plane.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether p lies within r, inclusive of the boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects reports whether r and s overlap (touching edges count as
// intersecting, matching the rubberband's inclusive selection semantics,
// spec.md §8.2 scenario 5).
func (r Rect) Intersects(s Rect) bool {
	return r.X <= s.X+s.Width && r.X+r.Width >= s.X &&
		r.Y <= s.Y+s.Height && r.Y+r.Height >= s.Y
}

// Grow returns r inflated by dx horizontally and dy vertically on every
// side (used for jetty buffers, §4.3.5, and focus-area rectangles, §4.5).
func (r Rect) Grow(dx, dy float64) Rect {
	return Rect{r.X - dx, r.Y - dy, r.Width + 2*dx, r.Height + 2*dy}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return s
	}
	if s.Width == 0 && s.Height == 0 {
		return r
	}
	x0 := math.Min(r.X, s.X)
	y0 := math.Min(r.Y, s.Y)
	x1 := math.Max(r.X+r.Width, s.X+s.Width)
	y1 := math.Max(r.Y+r.Height, s.Y+s.Height)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// OverlapsHorizontally reports whether r and s share any X range.
func (r Rect) OverlapsHorizontally(s Rect) bool {
	return r.X < s.X+s.Width && s.X < r.X+r.Width
}

// OverlapsVertically reports whether r and s share any Y range.
func (r Rect) OverlapsVertically(s Rect) bool {
	return r.Y < s.Y+s.Height && s.Y < r.Y+r.Height
}

// RotatePoint rotates p by theta radians (clockwise, matching the screen
// Y-down convention used throughout, per node.go's Rotation field) about
// center.
func RotatePoint(p, center Point, theta float64) Point {
	if theta == 0 {
		return p
	}
	sin, cos := math.Sincos(theta)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// RotatedBounds returns the axis-aligned bounding box of r after rotating it
// by theta radians about center. Used by the orthogonal router and the cell
// marker to treat a rotated vertex's "effective" rectangle (spec.md §4.3.5
// "Rotation", §4.4 "Rotated states inverse-rotate the pointer").
func RotatedBounds(r Rect, center Point, theta float64) Rect {
	if theta == 0 {
		return r
	}
	corners := [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		rp := RotatePoint(c, center, theta)
		minX = math.Min(minX, rp.X)
		minY = math.Min(minY, rp.Y)
		maxX = math.Max(maxX, rp.X)
		maxY = math.Max(maxY, rp.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// InverseRotatePoint rotates p by -theta about center; used to map a
// pointer position into a rotated state's unrotated local frame before
// hit-testing (spec.md §4.4).
func InverseRotatePoint(p, center Point, theta float64) Point {
	return RotatePoint(p, center, -theta)
}

// Quantize rounds v to the nearest multiple of step (step > 0). Graph.Snap
// uses it for grid snapping; no router calls it, so routed waypoints are
// not quantized.
func Quantize(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
