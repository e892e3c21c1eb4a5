package render

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// SVGSurface paints scenes as an SVG document. World shapes sit inside one
// group carrying the viewport transform, so the output stays editable.
type SVGSurface struct {
	width, height int
	background    color.RGBA
	doc           string
}

// NewSVGSurface returns a surface of the given size. It fails with
// canvas.ErrSurfaceUnavailable when the size is not positive.
func NewSVGSurface(opts RasterOptions) (*SVGSurface, error) {
	s := &SVGSurface{background: opts.Background}
	if err := s.Resize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return s, nil
}

// Size returns the document size in pixels.
func (s *SVGSurface) Size() (int, int) { return s.width, s.height }

// Resize changes the document size.
func (s *SVGSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", canvas.ErrSurfaceUnavailable, width, height)
	}
	s.width, s.height = width, height
	return nil
}

// Close is a no-op.
func (s *SVGSurface) Close() error { return nil }

// String returns the last painted document.
func (s *SVGSurface) String() string { return s.doc }

// WriteTo writes the last painted document to w.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.doc)
	return int64(n), err
}

// Paint renders the scene into a new document.
func (s *SVGSurface) Paint(sc *canvas.Scene, v canvas.Viewport) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.width, s.height, s.width, s.height))
	sb.WriteString(fmt.Sprintf(`  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(s.background)))
	sb.WriteString(fmt.Sprintf(`  <g transform="translate(%s %s) scale(%s)">`+"\n",
		num(v.X()), num(v.Y()), num(v.Zoom())))

	// Grid radii are screen pixels; undo the group scale.
	sb.WriteString(fmt.Sprintf(`    <g class="grid" fill="%s">`+"\n", hexColor(canvas.ColorGridPoint)))
	for p := range canvas.DistinctCells(sc.GridPoints(), v, 1, 1, s.width, s.height) {
		sb.WriteString(fmt.Sprintf(`      <circle cx="%s" cy="%s" r="%s"/>`+"\n",
			num(p.Center.X), num(p.Center.Y), num(p.Radius/v.Zoom())))
	}
	sb.WriteString("    </g>\n")

	sb.WriteString(`    <g class="connections">` + "\n")
	for _, l := range sc.Lines() {
		sb.WriteString(fmt.Sprintf(`      <line id="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			html.EscapeString(l.Connection.ID), num(l.From.X), num(l.From.Y), num(l.To.X), num(l.To.Y),
			hexColor(l.Stroke), num(l.Width)))
	}
	sb.WriteString("    </g>\n")

	sb.WriteString(`    <g class="nodes">` + "\n")
	for _, g := range sc.Groups() {
		sb.WriteString(fmt.Sprintf(`      <g id="%s" data-type="%s">`+"\n",
			html.EscapeString(g.Node.ID), html.EscapeString(g.Node.Type)))
		sb.WriteString(fmt.Sprintf(`        <rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			num(g.Box.X), num(g.Box.Y), num(g.Box.Width), num(g.Box.Height), num(g.Radius), num(g.Radius),
			hexColor(g.Fill), hexColor(g.Border), num(g.BorderWidth)))
		sb.WriteString(fmt.Sprintf(`        <text x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s" dominant-baseline="hanging">%s</text>`+"\n",
			num(g.Label.At.X), num(g.Label.At.Y), num(g.Label.Size), hexColor(g.Label.Color),
			html.EscapeString(g.Label.Text)))
		sb.WriteString("      </g>\n")
	}
	sb.WriteString("    </g>\n")

	sb.WriteString("  </g>\n</svg>\n")
	s.doc = sb.String()
	return nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
