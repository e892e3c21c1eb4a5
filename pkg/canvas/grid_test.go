package canvas

import (
	"math"
	"testing"
)

func collect(v Viewport, w, h int) []GridPoint {
	var pts []GridPoint
	for p := range Grid(v, w, h) {
		pts = append(pts, p)
	}
	return pts
}

func TestGridIdentity(t *testing.T) {
	pts := collect(NewViewport(), 80, 40)
	// x: 0, 40, 80; y: 0, 40
	if len(pts) != 6 {
		t.Fatalf("got %d points, want 6: %v", len(pts), pts)
	}
	if pts[0].Center != (Point{0, 0}) || pts[len(pts)-1].Center != (Point{80, 40}) {
		t.Errorf("unexpected corners %v .. %v", pts[0].Center, pts[len(pts)-1].Center)
	}
}

func TestGridCoverage(t *testing.T) {
	viewports := []Viewport{
		NewViewport(),
		ViewportAt(13, -27, 1),
		ViewportAt(-1234.5, 987.25, 0.37),
		ViewportAt(400, 300, 3.3),
		ViewportAt(0, 0, MinZoom*10),
	}
	for _, v := range viewports {
		const w, h = 640, 480
		seen := make(map[Point]bool)
		for _, p := range collect(v, w, h) {
			if seen[p.Center] {
				t.Fatalf("viewport (%g, %g, %g): duplicate point %v", v.X(), v.Y(), v.Zoom(), p.Center)
			}
			seen[p.Center] = true
		}

		vis := v.VisibleRect(w, h)
		for i := math.Ceil(vis.X / GridSpacing); i*GridSpacing <= vis.X+vis.Width; i++ {
			for j := math.Ceil(vis.Y / GridSpacing); j*GridSpacing <= vis.Y+vis.Height; j++ {
				p := Point{X: i * GridSpacing, Y: j * GridSpacing}
				if !seen[p] {
					t.Fatalf("viewport (%g, %g, %g): visible point %v missing", v.X(), v.Y(), v.Zoom(), p)
				}
			}
		}
	}
}

func TestGridRadius(t *testing.T) {
	tests := []struct {
		zoom float64
		want float64
	}{
		{MinZoom, 1},
		{0.5, 1},
		{1, 2},
		{4, 8},
	}
	for _, tt := range tests {
		v := ViewportAt(0, 0, tt.zoom)
		for p := range Grid(v, 10, 10) {
			if p.Radius != tt.want {
				t.Errorf("zoom %g: radius %g, want %g", tt.zoom, p.Radius, tt.want)
			}
			break
		}
	}
}

func TestGridEmptySurface(t *testing.T) {
	if pts := collect(NewViewport(), 0, 600); len(pts) != 0 {
		t.Errorf("zero width: got %d points", len(pts))
	}
	if pts := collect(NewViewport(), 800, -1); len(pts) != 0 {
		t.Errorf("negative height: got %d points", len(pts))
	}
}

func TestGridIsDeterministicAndStoppable(t *testing.T) {
	v := ViewportAt(17, 23, 1.7)
	a, b := collect(v, 300, 200), collect(v, 300, 200)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}

	n := 0
	for range Grid(v, 300, 200) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("early break yielded %d", n)
	}
}

func TestDistinctCells(t *testing.T) {
	const w, h = 100, 60
	tests := []struct {
		name         string
		v            Viewport
		cellW, cellH float64
	}{
		{"pixels at min zoom", ViewportAt(13, -7, MinZoom), 1, 1},
		{"terminal cells", ViewportAt(0, 0, 0.1), 10, 20},
		{"sparse", ViewportAt(5, 5, 2), 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			all := collect(tt.v, w, h)
			blocks := make(map[[2]int]bool)
			for _, p := range all {
				s := tt.v.ToScreen(p.Center)
				col, row := int(math.Floor(s.X/tt.cellW)), int(math.Floor(s.Y/tt.cellH))
				if s.X >= 0 && s.X < w && s.Y >= 0 && s.Y < h {
					blocks[[2]int{col, row}] = true
				}
			}

			seen := make(map[[2]int]bool)
			for p := range DistinctCells(Grid(tt.v, w, h), tt.v, tt.cellW, tt.cellH, w, h) {
				s := tt.v.ToScreen(p.Center)
				b := [2]int{int(math.Floor(s.X / tt.cellW)), int(math.Floor(s.Y / tt.cellH))}
				if seen[b] {
					t.Fatalf("two points in block %v", b)
				}
				seen[b] = true
			}
			for b := range blocks {
				if !seen[b] {
					t.Fatalf("block %v lost its point", b)
				}
			}
			if GridSpacing*tt.v.Zoom() >= tt.cellW && len(seen) != len(all) {
				t.Errorf("sparse grid thinned: %d of %d", len(seen), len(all))
			}
			if GridSpacing*tt.v.Zoom() < tt.cellW && len(seen) >= len(all) {
				t.Errorf("dense grid not thinned: %d of %d", len(seen), len(all))
			}
		})
	}
}
