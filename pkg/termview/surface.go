package termview

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// surface paints a scene into the view's screen. The last row is the
// status bar; everything above it is canvas.
type surface struct {
	view *View
}

// Size returns the canvas area in pixels.
func (s *surface) Size() (int, int) {
	cols, rows := s.view.screen.Size()
	return cols * s.view.opts.CellWidth, max(rows-1, 0) * s.view.opts.CellHeight
}

// Resize is a no-op: the terminal owns its size and Size reads it back.
func (s *surface) Resize(int, int) error { return nil }

// Close finalises the screen.
func (s *surface) Close() error {
	s.view.screen.Fini()
	return nil
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Paint draws grid, connections and nodes, then the status bar.
func (s *surface) Paint(sc *canvas.Scene, v canvas.Viewport) error {
	scr := s.view.screen
	cols, rows := scr.Size()
	canvasRows := max(rows-1, 0)
	clear(s.view.targets)

	bg := canvas.ColorLight
	if s.view.opts.Dark {
		bg = canvas.ColorDark
	}
	base := tcell.StyleDefault.Background(rgb(bg))
	for y := 0; y < canvasRows; y++ {
		for x := 0; x < cols; x++ {
			scr.SetContent(x, y, ' ', nil, base)
		}
	}

	gridStyle := base.Foreground(tcell.ColorGray)
	cw, ch := float64(s.view.opts.CellWidth), float64(s.view.opts.CellHeight)
	for p := range canvas.DistinctCells(sc.GridPoints(), v, cw, ch, cols*s.view.opts.CellWidth, canvasRows*s.view.opts.CellHeight) {
		col, row := s.cell(v.ToScreen(p.Center))
		if col >= 0 && col < cols && row >= 0 && row < canvasRows {
			scr.SetContent(col, row, '·', nil, gridStyle)
		}
	}

	for _, l := range sc.Lines() {
		s.drawLine(v.ToScreen(l.From), v.ToScreen(l.To), base.Foreground(rgb(l.Stroke)), cols, canvasRows)
	}

	for _, g := range sc.Groups() {
		s.drawGroup(g, v, cols, canvasRows)
	}

	s.view.drawStatus(v.Zoom())
	scr.Show()
	return nil
}

func (s *surface) cell(p canvas.Point) (int, int) {
	return int(math.Floor(p.X / float64(s.view.opts.CellWidth))),
		int(math.Floor(p.Y / float64(s.view.opts.CellHeight)))
}

// drawLine walks the clipped segment cell by cell (Bresenham).
func (s *surface) drawLine(a, b canvas.Point, style tcell.Style, cols, rows int) {
	cw, ch := float64(s.view.opts.CellWidth), float64(s.view.opts.CellHeight)
	clip := canvas.Rect{Width: float64(cols) * cw, Height: float64(rows) * ch}
	a, b, ok := canvas.ClipSegment(a, b, clip)
	if !ok {
		return
	}
	x0, y0 := s.cell(a)
	x1, y1 := s.cell(b)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if x0 >= 0 && x0 < cols && y0 >= 0 && y0 < rows {
			s.view.screen.SetContent(x0, y0, '•', nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// span returns the first and last cell whose centre lies in [lo, hi]. A
// range too small to hold any centre gets the one cell containing its
// midpoint, so every node stays visible.
func span(lo, hi, size float64) (int, int) {
	first := int(math.Ceil(lo/size - 0.5))
	last := int(math.Floor(hi/size - 0.5))
	if first > last {
		mid := int(math.Floor((lo + hi) / 2 / size))
		return mid, mid
	}
	return first, last
}

func (s *surface) drawGroup(g *canvas.NodeGroup, v canvas.Viewport, cols, rows int) {
	tl := v.ToScreen(canvas.Point{X: g.Box.X, Y: g.Box.Y})
	br := v.ToScreen(canvas.Point{X: g.Box.X + g.Box.Width, Y: g.Box.Y + g.Box.Height})
	cw, ch := float64(s.view.opts.CellWidth), float64(s.view.opts.CellHeight)
	x0, x1 := span(tl.X, br.X, cw)
	y0, y1 := span(tl.Y, br.Y, ch)
	if x1 < 0 || y1 < 0 || x0 >= cols || y0 >= rows {
		return
	}

	// Clicks on a painted cell resolve to a point just inside the box.
	inset := canvas.Rect{
		X:      g.Box.X + g.Box.Width*1e-3,
		Y:      g.Box.Y + g.Box.Height*1e-3,
		Width:  g.Box.Width * (1 - 2e-3),
		Height: g.Box.Height * (1 - 2e-3),
	}
	fill := tcell.StyleDefault.Background(rgb(g.Fill)).Foreground(rgb(g.Border))
	scr := s.view.screen
	put := func(x, y int, r rune, st tcell.Style) {
		if x < 0 || x >= cols || y < 0 || y >= rows {
			return
		}
		scr.SetContent(x, y, r, nil, st)
		cx, cy := s.view.cellCentre(x, y)
		w := v.ToWorld(canvas.Point{X: cx, Y: cy})
		w.X = min(max(w.X, inset.X), inset.X+inset.Width)
		w.Y = min(max(w.Y, inset.Y), inset.Y+inset.Height)
		s.view.targets[[2]int{x, y}] = v.ToScreen(w)
	}

	if x0 == x1 || y0 == y1 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				put(x, y, '■', tcell.StyleDefault.Foreground(rgb(g.Fill)))
			}
		}
		return
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r := ' '
			switch {
			case y == y0 && x == x0:
				r = '╭'
			case y == y0 && x == x1:
				r = '╮'
			case y == y1 && x == x0:
				r = '╰'
			case y == y1 && x == x1:
				r = '╯'
			case y == y0 || y == y1:
				r = '─'
			case x == x0 || x == x1:
				r = '│'
			}
			put(x, y, r, fill)
		}
	}

	lx, ly := s.cell(v.ToScreen(g.Label.At))
	lx = max(lx, x0+1)
	ly = min(max(ly, y0+1), y1-1)
	if ly <= y0 {
		return
	}
	label := fill.Foreground(rgb(g.Label.Color)).Bold(true)
	for i, r := range []rune(g.Label.Text) {
		if lx+i >= x1 {
			break
		}
		put(lx+i, ly, r, label)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
