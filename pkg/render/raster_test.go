package render

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

func demoModel() canvas.Model {
	return canvas.Model{
		Nodes: []canvas.Node{
			{ID: "a", Name: "App", Type: canvas.CategoryComponent, X: 100, Y: 100},
			{ID: "b", Name: "useThing", Type: canvas.CategoryHook, X: 300, Y: 100},
			{ID: "c", Name: "helper", Type: canvas.CategoryFunction, X: 300, Y: 400},
		},
		Connections: []canvas.Connection{
			{ID: "1", Source: "a", Target: "b"},
			{ID: "2", Source: "b", Target: "c"},
		},
	}
}

func mountRaster(t *testing.T, m canvas.Model) (*canvas.Controller, *RasterHost) {
	t.Helper()
	h := NewRasterHost(DefaultRasterOptions())
	c := canvas.NewController(nil)
	c.SetModel(m)
	if err := c.Mount(h); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, h
}

func closeTo(got, want color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(got.R, want.R) <= 2 && d(got.G, want.G) <= 2 && d(got.B, want.B) <= 2
}

func TestRasterPaintsLayers(t *testing.T) {
	_, h := mountRaster(t, demoModel())
	img := h.Surface.Image()

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 20, 20, canvas.ColorLight},
		{"grid point", 0, 0, canvas.ColorGridPoint},
		{"grid point", 40, 40, canvas.ColorGridPoint},
		{"component fill", 200, 170, canvas.ColorComponent},
		{"hook fill", 400, 170, canvas.ColorHook},
		{"function fill", 400, 470, canvas.ColorFunction},
		{"connection", 359, 300, canvas.ColorConnection},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); !closeTo(got, tt.want) {
			t.Errorf("%s at (%d, %d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRasterFollowsViewport(t *testing.T) {
	c, h := mountRaster(t, demoModel())
	c.SetViewport(canvas.ViewportAt(-100, -100, 2))
	img := h.Surface.Image()

	// Node a now spans screen (100..340, 100..260).
	if got := img.RGBAAt(300, 240); !closeTo(got, canvas.ColorComponent) {
		t.Errorf("zoomed node pixel = %v", got)
	}
	if got := img.RGBAAt(20, 20); !closeTo(got, canvas.ColorLight) {
		t.Errorf("background pixel = %v", got)
	}
}

func TestRasterOffscreenContent(t *testing.T) {
	c, h := mountRaster(t, demoModel())
	c.SetViewport(canvas.ViewportAt(-1e6, -1e6, 1))
	img := h.Surface.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := img.RGBAAt(x, y); got != canvas.ColorLight && got != canvas.ColorGridPoint {
				t.Fatalf("unexpected pixel %v at (%d, %d)", got, x, y)
			}
		}
	}
}

func TestRasterWritePNG(t *testing.T) {
	_, h := mountRaster(t, demoModel())
	var buf bytes.Buffer
	if err := h.Surface.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("decoded size %dx%d", b.Dx(), b.Dy())
	}
}

func TestRasterInvalidSize(t *testing.T) {
	for _, opts := range []RasterOptions{{Width: 0, Height: 10}, {Width: 10, Height: -1}} {
		if _, err := NewRasterSurface(opts); !errors.Is(err, canvas.ErrSurfaceUnavailable) {
			t.Errorf("NewRasterSurface(%+v) = %v", opts, err)
		}
	}

	h := NewRasterHost(RasterOptions{})
	c := canvas.NewController(nil)
	if err := c.Mount(h); !errors.Is(err, canvas.ErrSurfaceUnavailable) {
		t.Fatalf("Mount = %v", err)
	}
	if c.State() != canvas.StateFailed {
		t.Errorf("state = %v", c.State())
	}
}

func TestRasterResize(t *testing.T) {
	c, h := mountRaster(t, demoModel())
	h.Resize(320, 200)
	if w, ht := h.Surface.Size(); w != 320 || ht != 200 {
		t.Errorf("size = %dx%d", w, ht)
	}
	if got := h.Surface.Image().RGBAAt(200, 170); !closeTo(got, canvas.ColorComponent) {
		t.Errorf("not repainted after resize: %v", got)
	}

	h.Resize(0, 0)
	if c.State() != canvas.StateFailed {
		t.Errorf("invalid resize left state %v", c.State())
	}
	if h.Listeners() != 0 {
		t.Errorf("%d listeners after failure", h.Listeners())
	}
}

func TestHostListeners(t *testing.T) {
	c, h := mountRaster(t, canvas.Model{})
	if h.Listeners() != 1 {
		t.Fatalf("got %d listeners, want 1", h.Listeners())
	}
	c.Close()
	if h.Listeners() != 0 {
		t.Errorf("got %d listeners after close", h.Listeners())
	}
}

func TestRasterMinZoomGrid(t *testing.T) {
	c, h := mountRaster(t, canvas.Model{})
	c.SetViewport(canvas.ViewportAt(0, 0, canvas.MinZoom))
	// Points 0.4 px apart cover the whole image.
	img := h.Surface.Image()
	for _, p := range [][2]int{{0, 0}, {400, 300}, {799, 599}} {
		if got := img.RGBAAt(p[0], p[1]); got != canvas.ColorGridPoint {
			t.Errorf("pixel %v = %v", p, got)
		}
	}
}
