package canvas

import (
	"math"
	"testing"
)

// FuzzViewport drives a viewport with arbitrary pans and wheel steps.
// Run with: go test -fuzz=FuzzViewport -fuzztime=30s ./pkg/canvas/
func FuzzViewport(f *testing.F) {
	f.Add(0.0, 0.0, 1.0, 400.0, 300.0, -100.0)
	f.Add(-500.0, 250.0, 0.5, 0.0, 0.0, 100000.0)
	f.Add(1e6, -1e6, 19.9, 799.0, 1.0, -100000.0)
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0, 0.0)

	f.Fuzz(func(t *testing.T, x, y, zoom, px, py, delta float64) {
		for _, v := range []float64{x, y, zoom, px, py, delta} {
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > 1e6 {
				t.Skip()
			}
		}

		v := ViewportAt(x, y, zoom)
		if v.Zoom() < MinZoom || v.Zoom() > MaxZoom {
			t.Fatalf("ViewportAt zoom %g out of range", v.Zoom())
		}

		p := Point{X: px, Y: py}
		anchor := v.ToWorld(p)
		v.ZoomAt(p, WheelFactor(delta))
		if v.Zoom() < MinZoom || v.Zoom() > MaxZoom {
			t.Fatalf("zoom %g out of range after wheel %g", v.Zoom(), delta)
		}
		got := v.ToWorld(p)
		tol := 1e-6 * math.Max(1, math.Max(math.Abs(anchor.X), math.Abs(anchor.Y)))
		if math.Abs(got.X-anchor.X) > tol || math.Abs(got.Y-anchor.Y) > tol {
			t.Fatalf("anchor drifted from %v to %v", anchor, got)
		}

		// The grid must stay finite for any reachable viewport.
		n := 0
		for range Grid(v, 64, 48) {
			n++
			if n > 1_000_000 {
				t.Fatal("grid did not terminate")
			}
		}
	})
}
