package canvas

import (
	"math"
	"math/rand"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func nearPoint(a, b Point) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestNewViewportIsIdentity(t *testing.T) {
	v := NewViewport()
	if v.X() != 0 || v.Y() != 0 || v.Zoom() != 1 {
		t.Fatalf("got (%g, %g, %g), want (0, 0, 1)", v.X(), v.Y(), v.Zoom())
	}
	p := Point{X: 123, Y: -45}
	if got := v.ToWorld(p); got != p {
		t.Errorf("identity ToWorld(%v) = %v", p, got)
	}
}

func TestViewportConversions(t *testing.T) {
	v := ViewportAt(100, 50, 2)

	if got := v.ToWorld(Point{X: 300, Y: 250}); got != (Point{X: 100, Y: 100}) {
		t.Errorf("ToWorld = %v, want (100, 100)", got)
	}
	if got := v.ToScreen(Point{X: 100, Y: 100}); got != (Point{X: 300, Y: 250}) {
		t.Errorf("ToScreen = %v, want (300, 250)", got)
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := ViewportAt(rng.Float64()*2000-1000, rng.Float64()*2000-1000, MinZoom+rng.Float64()*(MaxZoom-MinZoom))
		p := Point{X: rng.Float64()*4000 - 2000, Y: rng.Float64()*4000 - 2000}
		if got := v.ToScreen(v.ToWorld(p)); !nearPoint(got, p) {
			t.Fatalf("viewport (%g, %g, %g): round trip of %v = %v", v.X(), v.Y(), v.Zoom(), p, got)
		}
	}
}

func TestPanIsUnbounded(t *testing.T) {
	v := NewViewport()
	v.Pan(1e9, -1e9)
	v.Pan(5, 5)
	if v.X() != 1e9+5 || v.Y() != -1e9+5 {
		t.Errorf("got (%g, %g)", v.X(), v.Y())
	}
	if v.Zoom() != 1 {
		t.Errorf("pan changed zoom to %g", v.Zoom())
	}
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"far out", []float64{100000}, MinZoom},
		{"far in", []float64{-100000}, MaxZoom},
		{"out then in", []float64{100000, -100}, MinZoom * math.Pow(wheelBase, -100)},
		{"none", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport()
			for _, d := range tt.deltas {
				v.ZoomAt(Point{X: 400, Y: 300}, WheelFactor(d))
			}
			if !near(v.Zoom(), tt.want) {
				t.Errorf("zoom = %g, want %g", v.Zoom(), tt.want)
			}
		})
	}
}

func TestZoomStaysInRangeForRandomWheels(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	v := NewViewport()
	for i := 0; i < 5000; i++ {
		v.ZoomAt(Point{X: rng.Float64() * 800, Y: rng.Float64() * 600}, WheelFactor(rng.Float64()*4000-2000))
		if v.Zoom() < MinZoom || v.Zoom() > MaxZoom {
			t.Fatalf("step %d: zoom %g out of range", i, v.Zoom())
		}
	}
}

func TestZoomAtKeepsCursorAnchored(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		v := ViewportAt(rng.Float64()*2000-1000, rng.Float64()*2000-1000, MinZoom+rng.Float64()*(MaxZoom-MinZoom))
		p := Point{X: rng.Float64() * 800, Y: rng.Float64() * 600}
		before := v.ToWorld(p)
		v.ZoomAt(p, WheelFactor(rng.Float64()*2000-1000))
		if after := v.ToWorld(p); !nearPoint(before, after) {
			t.Fatalf("world under cursor moved from %v to %v", before, after)
		}
	}
}

func TestZoomAtIgnoresNonFiniteFactor(t *testing.T) {
	v := ViewportAt(10, 20, 3)
	v.ZoomAt(Point{X: 5, Y: 5}, math.NaN())
	v.ZoomAt(Point{X: 5, Y: 5}, math.Inf(1))
	if v != ViewportAt(10, 20, 3) {
		t.Errorf("viewport changed: (%g, %g, %g)", v.X(), v.Y(), v.Zoom())
	}
}

func TestResetIdempotent(t *testing.T) {
	v := ViewportAt(-300, 75, 4.5)
	v.Reset()
	once := v
	v.Reset()
	if v != once || v != NewViewport() {
		t.Errorf("reset twice = (%g, %g, %g), once = (%g, %g, %g)",
			v.X(), v.Y(), v.Zoom(), once.X(), once.Y(), once.Zoom())
	}
}

func TestWheelFactor(t *testing.T) {
	if WheelFactor(0) != 1 {
		t.Errorf("WheelFactor(0) = %g", WheelFactor(0))
	}
	if WheelFactor(100) >= 1 {
		t.Errorf("scrolling down should zoom out, factor %g", WheelFactor(100))
	}
	if WheelFactor(-100) <= 1 {
		t.Errorf("scrolling up should zoom in, factor %g", WheelFactor(-100))
	}
	if !near(WheelFactor(50)*WheelFactor(50), WheelFactor(100)) {
		t.Errorf("wheel zoom should compose multiplicatively")
	}
}

func TestVisibleRect(t *testing.T) {
	v := ViewportAt(-200, 100, 2)
	r := v.VisibleRect(800, 600)
	want := Rect{X: 100, Y: -50, Width: 400, Height: 300}
	if r != want {
		t.Errorf("VisibleRect = %+v, want %+v", r, want)
	}
}

func TestClipSegment(t *testing.T) {
	r := Rect{Width: 100, Height: 100}
	tests := []struct {
		name   string
		a, b   Point
		wantOK bool
		wantA  Point
		wantB  Point
	}{
		{"inside", Point{10, 10}, Point{90, 90}, true, Point{10, 10}, Point{90, 90}},
		{"crossing", Point{-50, 50}, Point{150, 50}, true, Point{0, 50}, Point{100, 50}},
		{"outside", Point{-50, -50}, Point{-10, 200}, false, Point{}, Point{}},
		{"diagonal", Point{-100, -100}, Point{200, 200}, true, Point{0, 0}, Point{100, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := ClipSegment(tt.a, tt.b, r)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (!nearPoint(a, tt.wantA) || !nearPoint(b, tt.wantB)) {
				t.Errorf("got %v-%v, want %v-%v", a, b, tt.wantA, tt.wantB)
			}
		})
	}
}
