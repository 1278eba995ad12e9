package diagram

import "testing"

func TestLoopRouteDefaultNorth(t *testing.T) {
	term := vertexState(0, 0, 40, 20)
	edge := entityEdgeState(nil)
	pts := LoopRoute(edge, term, term, nil)
	if len(pts) != 2 {
		t.Fatalf("pts = %v, want 2 symmetric waypoints", pts)
	}
	for _, p := range pts {
		if p.Y > term.Bounds().Y {
			t.Fatalf("expected every loop point at or above the shape's top edge for dirNorth, got %+v", p)
		}
	}
}

func TestLoopRouteFallsBackToDirectWhenNoTerminal(t *testing.T) {
	edge := entityEdgeState(nil)
	pts := LoopRoute(edge, nil, nil, nil)
	if len(pts) != 2 {
		t.Fatalf("pts = %v, want a 2-point direct fallback", pts)
	}
}

// TestLoopRouteWestSegment20 is spec.md §8.2 scenario 2: a self-loop with
// direction "west" and segment 20 on a vertex at (100,100,60,40) produces
// two symmetric waypoints on the west side: (100,120) and (80,120).
func TestLoopRouteWestSegment20(t *testing.T) {
	term := vertexState(100, 100, 60, 40)
	edge := entityEdgeState(StyleMap{StyleDirection: "west", StyleSegment: "20"})
	pts := LoopRoute(edge, term, term, nil)
	want := []Point{{100, 120}, {80, 120}}
	if len(pts) != 2 || pts[0] != want[0] || pts[1] != want[1] {
		t.Fatalf("pts = %v, want %v", pts, want)
	}
}

func TestLoopRouteHintOutsideVertexOverridesFarPoint(t *testing.T) {
	term := vertexState(0, 0, 40, 20)
	edge := entityEdgeState(nil)
	hint := Point{100, 100}
	pts := LoopRoute(edge, term, term, []Point{hint})
	if len(pts) != 2 {
		t.Fatalf("pts = %v, want 2 points (near, hint)", pts)
	}
	if pts[1] != hint {
		t.Fatalf("pts[1] = %+v, want hint %+v", pts[1], hint)
	}
}

func TestLoopRouteHintInsideVertexIsIgnored(t *testing.T) {
	term := vertexState(0, 0, 40, 20)
	edge := entityEdgeState(nil)
	hint := Point{10, 10} // inside the 40x20 vertex
	pts := LoopRoute(edge, term, term, []Point{hint})
	if len(pts) != 2 || pts[1] == hint {
		t.Fatalf("pts = %v, want the default far point, hint should be ignored", pts)
	}
}

func TestElbowRouteHorizontalDefault(t *testing.T) {
	src := vertexState(0, 0, 80, 30)
	tgt := vertexState(200, 100, 80, 30)
	edge := entityEdgeState(nil)
	pts := ElbowRoute(edge, src, tgt, nil)
	if len(pts) < 3 {
		t.Fatalf("pts = %v, want at least 3 points", pts)
	}
	first, last := pts[0], pts[len(pts)-1]
	if first != src.Bounds().Center() {
		t.Fatalf("first point = %+v, want source center %+v", first, src.Bounds().Center())
	}
	if last != tgt.Bounds().Center() {
		t.Fatalf("last point = %+v, want target center %+v", last, tgt.Bounds().Center())
	}
}

func TestElbowRouteVerticalStyle(t *testing.T) {
	src := vertexState(0, 0, 80, 30)
	tgt := vertexState(200, 100, 80, 30)
	edge := entityEdgeState(StyleMap{StyleElbow: "vertical"})
	pts := ElbowRoute(edge, src, tgt, nil)
	if len(pts) < 3 {
		t.Fatalf("pts = %v, want at least 3 points", pts)
	}
	// A vertical elbow's middle segment is a horizontal jump at a shared Y.
	if pts[1].Y != pts[2].Y {
		t.Fatalf("expected a shared Y for the vertical elbow's middle segment, got %v", pts)
	}
}

func TestSegmentRouteNoHintsIsDirect(t *testing.T) {
	src := vertexState(0, 0, 80, 30)
	tgt := vertexState(200, 0, 80, 30)
	edge := entityEdgeState(nil)
	pts := SegmentRoute(edge, src, tgt, nil)
	if len(pts) != 2 {
		t.Fatalf("pts = %v, want a 2-point direct route with no hints", pts)
	}
}

func TestSegmentRouteInsertsCornerForNonAlignedHint(t *testing.T) {
	src := vertexState(0, 0, 80, 30)
	tgt := vertexState(200, 0, 80, 30)
	edge := entityEdgeState(nil)
	hint := Point{150, 100}
	pts := SegmentRoute(edge, src, tgt, []Point{hint})
	// src center is (40,15); hint (150,100) shares neither X nor Y with it,
	// so a corner must be inserted before the hint.
	if len(pts) < 4 {
		t.Fatalf("pts = %v, want a corner inserted before and after the hint", pts)
	}
}

func TestSegmentRouteKeepsAlignedHintWithoutCorner(t *testing.T) {
	src := vertexState(0, 0, 80, 30)
	tgt := vertexState(200, 0, 80, 30)
	edge := entityEdgeState(nil)
	hint := Point{100, 15} // same Y as src/tgt centers (15)
	pts := SegmentRoute(edge, src, tgt, []Point{hint})
	if len(pts) != 3 {
		t.Fatalf("pts = %v, want exactly 3 points (no corner needed)", pts)
	}
}
