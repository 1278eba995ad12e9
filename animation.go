package diagram

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// HighlightTween animates a single opacity value toward a target over
// time, used by the marker (spec.md §4.4) and constraint handler (§4.5)
// to fade their highlight shapes in and out rather than snapping them.
// Grounded on the teacher's TweenGroup, narrowed from up-to-4 simultaneous
// fields to the single opacity channel these highlights animate.
type HighlightTween struct {
	tween *gween.Tween
	value float64
	done  bool
}

// NewHighlightTween starts a tween from from to to over duration seconds
// using fn as the easing curve.
func NewHighlightTween(from, to float64, duration float32, fn ease.TweenFunc) *HighlightTween {
	return &HighlightTween{
		tween: gween.New(float32(from), float32(to), duration, fn),
		value: from,
	}
}

// Update advances the tween by dt seconds and returns the current value.
func (t *HighlightTween) Update(dt float32) float64 {
	if t.done {
		return t.value
	}
	v, finished := t.tween.Update(dt)
	t.value = float64(v)
	t.done = finished
	return t.value
}

// Done reports whether the tween has reached its target.
func (t *HighlightTween) Done() bool { return t.done }

// Value returns the tween's current value without advancing it.
func (t *HighlightTween) Value() float64 { return t.value }

// MarkerFadeDuration and ConstraintFadeDuration are the conventional
// highlight fade-in times this family of engines uses; a host may ignore
// them and drive its own tweens from CellMarker.OnMark/
// ConstraintHandler.OnChange instead.
const (
	MarkerFadeDuration     float32 = 0.15
	ConstraintFadeDuration float32 = 0.1
)

// NewMarkerFadeIn returns a HighlightTween that fades a highlight's
// opacity from 0 to 1 using the default marker fade duration.
func NewMarkerFadeIn() *HighlightTween {
	return NewHighlightTween(0, 1, MarkerFadeDuration, ease.OutQuad)
}

// NewConstraintFadeIn returns a HighlightTween that fades a constraint
// icon's opacity from 0 to 1 using the default constraint fade duration.
func NewConstraintFadeIn() *HighlightTween {
	return NewHighlightTween(0, 1, ConstraintFadeDuration, ease.OutQuad)
}
