// Package canvas provides an infinite pan/zoom canvas: a viewport over an
// unbounded world plane, a background grid, a retained scene of node boxes
// and connection lines, and a controller that turns pointer input into
// viewport changes and node clicks.
package canvas

import "math"

// Zoom limits.
const (
	MinZoom = 0.01
	MaxZoom = 20.0
)

// wheelBase is raised to the wheel delta to get a zoom multiplier.
const wheelBase = 0.999

// Point is a 2D position, in world or screen units depending on context.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsEmpty reports whether r has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the centre point of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// ClipSegment clips the segment a–b to r (Liang–Barsky) and reports
// whether any part of it remains.
func ClipSegment(a, b Point, r Rect) (Point, Point, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y
	edges := [4][2]float64{
		{-dx, a.X - r.X},
		{dx, r.X + r.Width - a.X},
		{-dy, a.Y - r.Y},
		{dy, r.Y + r.Height - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// Viewport maps world coordinates to screen coordinates with a translation
// and a uniform scale: screen = world*zoom + offset.
//
// Use NewViewport; the zero value has zoom 0 and is not a valid transform.
type Viewport struct {
	x, y float64
	zoom float64
}

// NewViewport returns the identity viewport (0, 0, 1).
func NewViewport() Viewport {
	return Viewport{zoom: 1}
}

// ViewportAt returns a viewport with the given offset and zoom. The zoom is
// clamped to [MinZoom, MaxZoom].
func ViewportAt(x, y, zoom float64) Viewport {
	return Viewport{x: x, y: y, zoom: clampZoom(zoom)}
}

// X returns the horizontal screen offset of the world origin.
func (v Viewport) X() float64 { return v.x }

// Y returns the vertical screen offset of the world origin.
func (v Viewport) Y() float64 { return v.y }

// Zoom returns the current scale factor.
func (v Viewport) Zoom() float64 { return v.zoom }

// Pan moves the world origin by a screen-space delta. Panning is unbounded.
func (v *Viewport) Pan(dx, dy float64) {
	v.x += dx
	v.y += dy
}

// ZoomAt multiplies the zoom by factor, clamps it, and shifts the offset so
// the world point under screen point p stays under p. Non-finite factors
// are ignored.
func (v *Viewport) ZoomAt(p Point, factor float64) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	anchor := v.ToWorld(p)
	v.zoom = clampZoom(v.zoom * factor)
	v.x = p.X - anchor.X*v.zoom
	v.y = p.Y - anchor.Y*v.zoom
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	*v = NewViewport()
}

// ToWorld converts a screen point to world coordinates.
func (v Viewport) ToWorld(p Point) Point {
	return Point{X: (p.X - v.x) / v.zoom, Y: (p.Y - v.y) / v.zoom}
}

// ToScreen converts a world point to screen coordinates.
func (v Viewport) ToScreen(p Point) Point {
	return Point{X: p.X*v.zoom + v.x, Y: p.Y*v.zoom + v.y}
}

// VisibleRect returns the world rectangle shown on a surface of the given
// pixel size.
func (v Viewport) VisibleRect(width, height int) Rect {
	topLeft := v.ToWorld(Point{})
	return Rect{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  float64(width) / v.zoom,
		Height: float64(height) / v.zoom,
	}
}

// WheelFactor returns the zoom multiplier for a wheel delta. Positive deltas
// (scrolling down) zoom out, negative deltas zoom in.
func WheelFactor(deltaY float64) float64 {
	return math.Pow(wheelBase, deltaY)
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) || z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
