// Package termview hosts a canvas in a terminal using tcell. Each cell
// stands for a CellWidth×CellHeight block of screen pixels; mouse input is
// decoded into canvas events at cell centres.
package termview

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// Options configures a View.
type Options struct {
	CellWidth   int           // pixels per column
	CellHeight  int           // pixels per row
	DoubleClick time.Duration // max gap between presses of a double click
	PanModifier tcell.ModMask // held with Button1 to pan
	Dark        bool          // dark background
}

// DefaultOptions returns 10×20 pixel cells, a 400 ms double click and Alt
// as the pan modifier.
func DefaultOptions() Options {
	return Options{
		CellWidth:   10,
		CellHeight:  20,
		DoubleClick: 400 * time.Millisecond,
		PanModifier: tcell.ModAlt,
	}
}

// wheelStep is the DeltaY reported for one wheel notch.
const wheelStep = 100

// View is a canvas.Host backed by a tcell screen.
type View struct {
	screen tcell.Screen
	opts   Options
	ctrl   *canvas.Controller

	listeners map[int]func(canvas.Resize)
	nextID    int

	// mouse decoding
	buttons     tcell.ButtonMask
	lastPress   time.Time
	lastPressAt [2]int
	now         func() time.Time

	// targets maps each painted node cell to a screen point inside the
	// topmost node drawn there.
	targets map[[2]int]canvas.Point

	status string
}

// New returns a view on screen. The screen is initialised when the
// controller mounts.
func New(screen tcell.Screen, opts Options) *View {
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultOptions().CellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultOptions().CellHeight
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = DefaultOptions().DoubleClick
	}
	return &View{
		screen:    screen,
		opts:      opts,
		listeners: make(map[int]func(canvas.Resize)),
		now:       time.Now,
		targets:   make(map[[2]int]canvas.Point),
	}
}

// SetStatus sets the status bar text shown on the next paint.
func (v *View) SetStatus(msg string) {
	v.status = msg
}

// NewSurface implements canvas.Host. It initialises the screen.
func (v *View) NewSurface() (canvas.Surface, error) {
	if v.screen == nil {
		return nil, fmt.Errorf("%w: no screen", canvas.ErrSurfaceUnavailable)
	}
	if err := v.screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: init screen: %w", canvas.ErrSurfaceUnavailable, err)
	}
	v.screen.EnableMouse()
	v.screen.Clear()
	return &surface{view: v}, nil
}

// OnResize implements canvas.Host.
func (v *View) OnResize(fn func(canvas.Resize)) func() {
	v.nextID++
	id := v.nextID
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

// Run mounts ctrl on this view and processes events until the user quits
// or the screen is finalised. The controller is closed on return.
func (v *View) Run(ctrl *canvas.Controller) error {
	if err := v.Attach(ctrl); err != nil {
		return err
	}
	defer ctrl.Close()

	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if v.HandleEvent(ev) {
			return nil
		}
	}
}

// Attach mounts ctrl without entering the event loop.
func (v *View) Attach(ctrl *canvas.Controller) error {
	v.ctrl = ctrl
	return ctrl.Mount(v)
}

// HandleEvent routes one tcell event and reports whether the user asked to
// quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	if v.ctrl == nil {
		return false
	}
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		cols, rows := ev.Size()
		r := canvas.Resize{Width: cols * v.opts.CellWidth, Height: rows * v.opts.CellHeight}
		for _, fn := range v.listeners {
			fn(r)
		}
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		before := v.status
		for _, e := range v.decodeMouse(ev) {
			v.ctrl.Handle(e)
		}
		// Clicks change the status without repainting the canvas.
		if v.status != before && v.ctrl.State() != canvas.StateFailed {
			v.drawStatus(v.ctrl.Viewport().Zoom())
			v.screen.Show()
		}
	}
	return false
}

// drawStatus fills the last row with the zoom level, the status text and
// key hints.
func (v *View) drawStatus(zoom float64) {
	cols, rows := v.screen.Size()
	if rows == 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	text := []rune(fmt.Sprintf(" zoom %.0f%% │ %s", zoom*100, v.status))
	hint := []rune("alt-drag pan │ wheel zoom │ dbl-click reset │ f fit │ q quit ")
	hintStart := cols - len(hint)
	y := rows - 1
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(text) {
			r = text[x]
		} else if hintStart > len(text) && x >= hintStart {
			r = hint[x-hintStart]
		}
		v.screen.SetContent(x, y, r, nil, style)
	}
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '0':
			v.ctrl.ResetView()
		case 'f':
			v.ctrl.FitToContent()
		case '+', '=':
			v.zoomCentre(-wheelStep)
		case '-':
			v.zoomCentre(wheelStep)
		}
	}
	return false
}

func (v *View) zoomCentre(delta float64) {
	cols, rows := v.screen.Size()
	v.ctrl.Handle(canvas.Wheel{
		X:      float64(cols*v.opts.CellWidth) / 2,
		Y:      float64(rows*v.opts.CellHeight) / 2,
		DeltaY: delta,
	})
}

// decodeMouse turns tcell's button-state reports into discrete events.
// tcell reports which buttons are held, so presses and releases are found
// by comparing with the previous report. Only Button1 (click or modifier
// pan) and Button3 (pan) count; Button2 is ignored.
func (v *View) decodeMouse(ev *tcell.EventMouse) []canvas.Event {
	col, row := ev.Position()
	x, y := v.cellCentre(col, row)

	// Wheel reports carry no button state; they must not end a drag.
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return []canvas.Event{canvas.Wheel{X: x, Y: y, DeltaY: -wheelStep}}
	case ev.Buttons()&tcell.WheelDown != 0:
		return []canvas.Event{canvas.Wheel{X: x, Y: y, DeltaY: wheelStep}}
	}

	held := ev.Buttons() & (tcell.Button1 | tcell.Button3)
	prev := v.buttons
	v.buttons = held

	var out []canvas.Event
	switch {
	case held != 0 && prev == 0:
		// Middle button always pans.
		modifier := held&tcell.Button3 != 0 ||
			(v.opts.PanModifier != 0 && ev.Modifiers()&v.opts.PanModifier != 0)
		if modifier {
			out = append(out, canvas.PointerDown{X: x, Y: y, Modifier: true})
			break
		}
		// A painted node cell clicks its node even when the cell centre
		// falls just outside the box.
		p := v.target(col, row)
		out = append(out, canvas.PointerDown{X: p.X, Y: p.Y})
		if v.isDoubleClick(col, row) {
			out = append(out, canvas.DoubleClick{X: p.X, Y: p.Y})
		}
	case held != 0 && prev != 0:
		out = append(out, canvas.PointerMove{X: x, Y: y})
	case held == 0 && prev != 0:
		out = append(out, canvas.PointerUp{X: x, Y: y})
	}
	return out
}

func (v *View) isDoubleClick(col, row int) bool {
	now := v.now()
	double := !v.lastPress.IsZero() &&
		now.Sub(v.lastPress) <= v.opts.DoubleClick &&
		v.lastPressAt == [2]int{col, row}
	if double {
		// A third press starts a new pair.
		v.lastPress = time.Time{}
	} else {
		v.lastPress = now
		v.lastPressAt = [2]int{col, row}
	}
	return double
}

// target returns the point clicks on a cell resolve to: a point inside the
// node painted there, or the cell centre.
func (v *View) target(col, row int) canvas.Point {
	if p, ok := v.targets[[2]int{col, row}]; ok {
		return p
	}
	x, y := v.cellCentre(col, row)
	return canvas.Point{X: x, Y: y}
}

func (v *View) cellCentre(col, row int) (float64, float64) {
	return float64(col*v.opts.CellWidth) + float64(v.opts.CellWidth)/2,
		float64(row*v.opts.CellHeight) + float64(v.opts.CellHeight)/2
}
