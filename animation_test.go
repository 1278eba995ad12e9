package diagram

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestHighlightTweenStartsAtFrom(t *testing.T) {
	tw := NewHighlightTween(0, 1, 1, ease.Linear)
	if tw.Value() != 0 {
		t.Fatalf("Value() before any Update = %v, want 0", tw.Value())
	}
	if tw.Done() {
		t.Fatalf("expected a freshly started tween to not be done")
	}
}

func TestHighlightTweenReachesTargetAtDuration(t *testing.T) {
	tw := NewHighlightTween(0, 1, 1, ease.Linear)
	v := tw.Update(1)
	if !tw.Done() {
		t.Fatalf("expected Done() once the full duration has elapsed")
	}
	if v != 1 {
		t.Fatalf("Update at full duration = %v, want 1", v)
	}
}

func TestHighlightTweenIsMonotonicPartway(t *testing.T) {
	tw := NewHighlightTween(0, 1, 1, ease.Linear)
	v := tw.Update(0.5)
	if tw.Done() {
		t.Fatalf("expected not done halfway through")
	}
	if v <= 0 || v >= 1 {
		t.Fatalf("Update(0.5) = %v, want strictly between 0 and 1", v)
	}
}

func TestHighlightTweenFreezesValueAfterDone(t *testing.T) {
	tw := NewHighlightTween(0, 1, 1, ease.Linear)
	tw.Update(1)
	after := tw.Update(1)
	if after != 1 {
		t.Fatalf("Update after Done = %v, want it to stay at 1", after)
	}
}

func TestNewMarkerFadeInStartsTransparentAndRising(t *testing.T) {
	tw := NewMarkerFadeIn()
	if tw.Value() != 0 {
		t.Fatalf("NewMarkerFadeIn initial Value = %v, want 0", tw.Value())
	}
	v := tw.Update(MarkerFadeDuration)
	if !tw.Done() || v != 1 {
		t.Fatalf("Update(full duration) = %v, done=%v, want 1 and done", v, tw.Done())
	}
}
