// Package render provides off-screen canvas surfaces: a raster surface that
// encodes PNG and a vector surface that writes SVG.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// minLabelSize is the smallest label, in pixels, worth rasterizing.
const minLabelSize = 3.0

// RasterOptions configures a raster surface.
type RasterOptions struct {
	Width      int
	Height     int
	Background color.RGBA
}

// DefaultRasterOptions returns an 800×600 surface on a white background.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Width:      800,
		Height:     600,
		Background: canvas.ColorLight,
	}
}

// RasterSurface paints scenes into an in-memory RGBA image.
type RasterSurface struct {
	img        *image.RGBA
	background color.RGBA
	font       *opentype.Font

	// label face, cached per pixel size
	face     font.Face
	faceSize float64
}

// NewRasterSurface allocates a surface. It fails with
// canvas.ErrSurfaceUnavailable when the size is not positive.
func NewRasterSurface(opts RasterOptions) (*RasterSurface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", canvas.ErrSurfaceUnavailable, opts.Width, opts.Height)
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font: %w", canvas.ErrSurfaceUnavailable, err)
	}
	s := &RasterSurface{
		img:        image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		background: opts.Background,
		font:       fnt,
	}
	s.clear()
	return s, nil
}

// Size returns the image size in pixels.
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the image. Content is lost until the next Paint.
func (s *RasterSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", canvas.ErrSurfaceUnavailable, width, height)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.clear()
	return nil
}

// Image returns the backing image.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

// WritePNG encodes the current image.
func (s *RasterSurface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// Close releases the font face.
func (s *RasterSurface) Close() error {
	if s.face != nil {
		err := s.face.Close()
		s.face = nil
		return err
	}
	return nil
}

// Paint clears the image and draws the scene layer by layer.
func (s *RasterSurface) Paint(sc *canvas.Scene, v canvas.Viewport) error {
	s.clear()
	w, h := s.Size()
	for p := range canvas.DistinctCells(sc.GridPoints(), v, 1, 1, w, h) {
		c := v.ToScreen(p.Center)
		s.fillCircle(c.X, c.Y, p.Radius, canvas.ColorGridPoint)
	}
	for _, l := range sc.Lines() {
		s.drawLine(v.ToScreen(l.From), v.ToScreen(l.To), l.Width*v.Zoom(), l.Stroke)
	}
	for _, g := range sc.Groups() {
		if err := s.drawGroup(g, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *RasterSurface) clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// fillCircle plots a small filled disc directly; grid points are too many
// and too small for the path rasterizer.
func (s *RasterSurface) fillCircle(cx, cy, r float64, c color.RGBA) {
	b := s.img.Bounds()
	if cx+r < 0 || cy+r < 0 || cx-r > float64(b.Max.X) || cy-r > float64(b.Max.Y) {
		return
	}
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= r*r && image.Pt(x, y).In(b) {
				s.img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLine clips the segment to the image and fills it as a quad.
func (s *RasterSurface) drawLine(a, b canvas.Point, width float64, c color.RGBA) {
	width = math.Max(width, 1)
	bounds := s.img.Bounds()
	clip := canvas.Rect{
		X: -width, Y: -width,
		Width:  float64(bounds.Dx()) + 2*width,
		Height: float64(bounds.Dy()) + 2*width,
	}
	a, b, ok := canvas.ClipSegment(a, b, clip)
	if !ok {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		s.fillCircle(a.X, a.Y, width/2, c)
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	quad := []canvas.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
	s.fillPath(c, func(z *vector.Rasterizer, off canvas.Point) {
		z.MoveTo(float32(quad[0].X-off.X), float32(quad[0].Y-off.Y))
		for _, p := range quad[1:] {
			z.LineTo(float32(p.X-off.X), float32(p.Y-off.Y))
		}
		z.ClosePath()
	}, boundsOf(quad))
}

func (s *RasterSurface) drawGroup(g *canvas.NodeGroup, v canvas.Viewport) error {
	zoom := v.Zoom()
	tl := v.ToScreen(canvas.Point{X: g.Box.X, Y: g.Box.Y})
	outer := canvas.Rect{X: tl.X, Y: tl.Y, Width: g.Box.Width * zoom, Height: g.Box.Height * zoom}
	if !s.visible(outer) {
		return nil
	}

	s.fillRoundRect(outer, g.Radius*zoom, g.Border)
	bw := g.BorderWidth * zoom
	inner := canvas.Rect{X: outer.X + bw, Y: outer.Y + bw, Width: outer.Width - 2*bw, Height: outer.Height - 2*bw}
	if !inner.IsEmpty() {
		s.fillRoundRect(inner, math.Max(g.Radius*zoom-bw, 0), g.Fill)
	}

	size := g.Label.Size * zoom
	if size < minLabelSize || g.Label.Text == "" {
		return nil
	}
	face, err := s.labelFace(size)
	if err != nil {
		return err
	}
	at := v.ToScreen(g.Label.At)
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(g.Label.Color),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(at.X * 64), Y: fixed.Int26_6(at.Y*64) + face.Metrics().Ascent},
	}
	d.DrawString(g.Label.Text)
	return nil
}

func (s *RasterSurface) fillRoundRect(r canvas.Rect, radius float64, c color.RGBA) {
	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)
	// Cubic approximation of a quarter circle.
	const k = 0.5522847498
	kr := radius * k
	s.fillPath(c, func(z *vector.Rasterizer, off canvas.Point) {
		x0, y0 := r.X-off.X, r.Y-off.Y
		x1, y1 := x0+r.Width, y0+r.Height
		f := func(v float64) float32 { return float32(v) }
		z.MoveTo(f(x0+radius), f(y0))
		z.LineTo(f(x1-radius), f(y0))
		z.CubeTo(f(x1-radius+kr), f(y0), f(x1), f(y0+radius-kr), f(x1), f(y0+radius))
		z.LineTo(f(x1), f(y1-radius))
		z.CubeTo(f(x1), f(y1-radius+kr), f(x1-radius+kr), f(y1), f(x1-radius), f(y1))
		z.LineTo(f(x0+radius), f(y1))
		z.CubeTo(f(x0+radius-kr), f(y1), f(x0), f(y1-radius+kr), f(x0), f(y1-radius))
		z.LineTo(f(x0), f(y0+radius))
		z.CubeTo(f(x0), f(y0+radius-kr), f(x0+radius-kr), f(y0), f(x0+radius), f(y0))
		z.ClosePath()
	}, r)
}

// fillPath rasterizes a path into an alpha mask the size of its bounds and
// composites c through it. The mask keeps the rasterizer inside its own
// buffer; draw.DrawMask does the clipping against the image.
func (s *RasterSurface) fillPath(c color.RGBA, path func(z *vector.Rasterizer, off canvas.Point), bounds canvas.Rect) {
	minX := int(math.Floor(bounds.X))
	minY := int(math.Floor(bounds.Y))
	maxX := int(math.Ceil(bounds.X + bounds.Width))
	maxY := int(math.Ceil(bounds.Y + bounds.Height))
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return
	}
	z := vector.NewRasterizer(w, h)
	path(z, canvas.Point{X: float64(minX), Y: float64(minY)})
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	dst := image.Rect(minX, minY, maxX, maxY)
	draw.DrawMask(s.img, dst, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func (s *RasterSurface) visible(r canvas.Rect) bool {
	b := s.img.Bounds()
	return r.X+r.Width >= 0 && r.Y+r.Height >= 0 && r.X <= float64(b.Max.X) && r.Y <= float64(b.Max.Y)
}

func (s *RasterSurface) labelFace(size float64) (font.Face, error) {
	if s.face != nil && s.faceSize == size {
		return s.face, nil
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: label face: %w", canvas.ErrSurfaceUnavailable, err)
	}
	if s.face != nil {
		s.face.Close()
	}
	s.face, s.faceSize = face, size
	return face, nil
}

func boundsOf(pts []canvas.Point) canvas.Rect {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return canvas.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
