// Package ebitensurface provides a diagram.RenderSurface backed by
// Ebitengine's vector.Path, the concrete collaborator a host application
// wires in to actually paint a diagram.Graph. Grounded on the teacher's
// render.go command-batching approach (here simplified to one vector
// path per shape, since paths rather than mesh triangles are the
// natural fit for diagram outlines) and mesh_helpers.go's
// vertex/index-buffer plumbing pattern.
package ebitensurface

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/arborgraph/diagram"
)

// Surface implements diagram.RenderSurface against an *ebiten.Image
// target, one vector.Path per Begin/Fill-or-Stroke cycle.
type Surface struct {
	target *ebiten.Image

	path       vector.Path
	translate  diagram.Point
	rotate     float64
	scale      float64
	opacity    float64
	fillColor  color.Color
	strokeColor color.Color
	strokeWidth float64

	nodes    map[diagram.CellID]struct{}
	resolver ImageResolver
}

// New wraps target, the image the surface paints into each frame.
func New(target *ebiten.Image) *Surface {
	return &Surface{target: target, opacity: 1, scale: 1, nodes: make(map[diagram.CellID]struct{})}
}

// SetTarget repoints the surface at a new backing image, used when the
// host resizes its window and recreates the screen image.
func (s *Surface) SetTarget(target *ebiten.Image) { s.target = target }

func (s *Surface) Begin(layer diagram.Layer) {
	s.path = vector.Path{}
}

func (s *Surface) transform(p diagram.Point) (float32, float32) {
	x, y := p.X, p.Y
	if s.rotate != 0 {
		sin, cos := math.Sincos(s.rotate)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	x = x*s.scale + s.translate.X
	y = y*s.scale + s.translate.Y
	return float32(x), float32(y)
}

func (s *Surface) MoveTo(p diagram.Point) {
	x, y := s.transform(p)
	s.path.MoveTo(x, y)
}

func (s *Surface) LineTo(p diagram.Point) {
	x, y := s.transform(p)
	s.path.LineTo(x, y)
}

func (s *Surface) QuadraticTo(ctrl, end diagram.Point) {
	cx, cy := s.transform(ctrl)
	ex, ey := s.transform(end)
	s.path.QuadTo(cx, cy, ex, ey)
}

func (s *Surface) CubicTo(c1, c2, end diagram.Point) {
	x1, y1 := s.transform(c1)
	x2, y2 := s.transform(c2)
	ex, ey := s.transform(end)
	s.path.CubicTo(x1, y1, x2, y2, ex, ey)
}

func (s *Surface) Fill() {
	if s.target == nil || s.fillColor == nil {
		return
	}
	vs, is := s.path.AppendVerticesAndIndicesForFilling(nil, nil)
	applyColor(vs, s.fillColor, s.opacity)
	s.target.DrawTriangles(vs, is, whiteSubImage(), &ebiten.DrawTrianglesOptions{
		FillRule: ebiten.FillRuleNonZero,
	})
}

func (s *Surface) Stroke() {
	if s.target == nil || s.strokeColor == nil {
		return
	}
	op := &vector.StrokeOptions{Width: float32(s.strokeWidth)}
	vs, is := s.path.AppendVerticesAndIndicesForStroke(nil, nil, op)
	applyColor(vs, s.strokeColor, s.opacity)
	s.target.DrawTriangles(vs, is, whiteSubImage(), nil)
}

func (s *Surface) SetFill(hex string)            { s.fillColor = parseColor(hex) }
func (s *Surface) SetStroke(hex string, w float64) {
	s.strokeColor = parseColor(hex)
	s.strokeWidth = w
}
func (s *Surface) SetOpacity(alpha float64)      { s.opacity = alpha }
func (s *Surface) SetShadow(string, float64, float64, float64) {
	// Soft shadows aren't part of the vector.Path primitive set; a host
	// wanting them composites a blurred duplicate pass itself.
}

func (s *Surface) SetTransform(translate diagram.Point, rotate, scale float64) {
	s.translate = translate
	s.rotate = rotate
	s.scale = scale
}

func (s *Surface) DrawImage(source string, bounds diagram.Rect) {
	// Image lookup by logical source identifier is a host concern (asset
	// registry); this surface only positions whatever *ebiten.Image the
	// host has already resolved via SetImageResolver.
	if s.resolver == nil {
		return
	}
	img := s.resolver(source)
	if img == nil || s.target == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw > 0 && ih > 0 {
		op.GeoM.Scale(bounds.Width/float64(iw), bounds.Height/float64(ih))
	}
	op.GeoM.Translate(bounds.X, bounds.Y)
	s.target.DrawImage(img, op)
}

// ImageResolver maps a logical source identifier (as set on a
// diagram.Shape with Kind==ShapeImage) to a concrete ebiten.Image.
type ImageResolver func(source string) *ebiten.Image

// SetImageResolver installs the host's image-lookup function.
func (s *Surface) SetImageResolver(r ImageResolver) { s.resolver = r }

func (s *Surface) HitTest(p diagram.Point) bool {
	x, y := s.transform(p)
	return s.path.In(x, y)
}

func (s *Surface) CreateNode(id diagram.CellID, layer diagram.Layer) { s.nodes[id] = struct{}{} }
func (s *Surface) RemoveNode(id diagram.CellID)                     { delete(s.nodes, id) }

func applyColor(vs []ebiten.Vertex, c color.Color, opacity float64) {
	r, g, b, a := c.RGBA()
	cr := float32(r) / 0xffff
	cg := float32(g) / 0xffff
	cb := float32(b) / 0xffff
	ca := float32(a) / 0xffff * float32(opacity)
	for i := range vs {
		vs[i].ColorR = cr
		vs[i].ColorG = cg
		vs[i].ColorB = cb
		vs[i].ColorA = ca
	}
}

var whiteImage *ebiten.Image

func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(whiteImage.Bounds()).(*ebiten.Image)
}

// parseColor accepts "#rrggbb" or "#rrggbbaa"; an empty string returns
// nil, and any other input resolves to opaque black, matching the
// forgiving style-string parsing the rest of the engine uses.
func parseColor(hex string) color.Color {
	if len(hex) == 0 {
		return nil
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}
	var r, g, b, a uint64 = 0, 0, 0, 255
	switch len(hex) {
	case 6, 8:
		r = hexByte(hex[0:2])
		g = hexByte(hex[2:4])
		b = hexByte(hex[4:6])
		if len(hex) == 8 {
			a = hexByte(hex[6:8])
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

func hexByte(s string) uint64 {
	var v uint64
	for i := 0; i < len(s); i++ {
		v *= 16
		switch {
		case s[i] >= '0' && s[i] <= '9':
			v += uint64(s[i] - '0')
		case s[i] >= 'a' && s[i] <= 'f':
			v += uint64(s[i]-'a') + 10
		case s[i] >= 'A' && s[i] <= 'F':
			v += uint64(s[i]-'A') + 10
		}
	}
	return v
}
