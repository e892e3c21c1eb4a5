package canvas

import (
	"iter"
	"math"
)

// GridSpacing is the distance between background points in world units.
const GridSpacing = 40.0

// GridPoint is a background marker ("light point"). Center is in world
// coordinates; Radius is in screen pixels.
type GridPoint struct {
	Center Point
	Radius float64
}

// GridRadius returns the marker radius for a zoom level.
func GridRadius(zoom float64) float64 {
	return math.Max(1, 2*zoom)
}

// Grid returns the background points covering a surface of width×height
// pixels under v. The visible world rectangle is widened to whole grid
// cells so partially visible edge cells are covered. Each call yields a
// fresh, finite, duplicate-free sequence, columns first.
func Grid(v Viewport, width, height int) iter.Seq[GridPoint] {
	return func(yield func(GridPoint) bool) {
		if width <= 0 || height <= 0 {
			return
		}
		visible := v.VisibleRect(width, height)
		x0, x1 := gridSpan(visible.X, visible.X+visible.Width)
		y0, y1 := gridSpan(visible.Y, visible.Y+visible.Height)
		radius := GridRadius(v.Zoom())

		// Integer cell indices keep points exact and unique.
		for i := x0; i <= x1; i++ {
			for j := y0; j <= y1; j++ {
				p := GridPoint{
					Center: Point{X: float64(i) * GridSpacing, Y: float64(j) * GridSpacing},
					Radius: radius,
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

// gridSpan returns the first and last cell index covering [lo, hi].
func gridSpan(lo, hi float64) (int64, int64) {
	return int64(math.Floor(lo / GridSpacing)), int64(math.Ceil(hi / GridSpacing))
}

// DistinctCells thins a grid sequence for a surface that cannot show more
// than one marker per cellW×cellH block of screen pixels: it yields the
// first point landing in each block. Points beyond a one-block margin
// around the width×height surface are dropped. When the grid spacing on
// screen is at least one block every point is kept.
func DistinctCells(points iter.Seq[GridPoint], v Viewport, cellW, cellH float64, width, height int) iter.Seq[GridPoint] {
	spacing := GridSpacing * v.Zoom()
	if spacing >= cellW && spacing >= cellH {
		return points
	}
	return func(yield func(GridPoint) bool) {
		if width <= 0 || height <= 0 || cellW <= 0 || cellH <= 0 {
			return
		}
		// One extra block on each side.
		cols := int(math.Ceil(float64(width)/cellW)) + 2
		rows := int(math.Ceil(float64(height)/cellH)) + 2
		seen := make([]bool, cols*rows)
		for p := range points {
			s := v.ToScreen(p.Center)
			col := int(math.Floor(s.X/cellW)) + 1
			row := int(math.Floor(s.Y/cellH)) + 1
			if col < 0 || col >= cols || row < 0 || row >= rows {
				continue
			}
			i := row*cols + col
			if seen[i] {
				continue
			}
			seen[i] = true
			if !yield(p) {
				return
			}
		}
	}
}
