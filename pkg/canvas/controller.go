package canvas

import (
	"errors"
	"fmt"
	"math"
)

// ErrAlreadyMounted is returned by Mount on a controller that already holds
// a surface, has failed, or has been closed.
var ErrAlreadyMounted = errors.New("canvas: controller already mounted")

// fitPadding is the screen margin left around content by FitToContent.
const fitPadding = 40.0

// State is the controller's interaction state.
type State int

const (
	StateIdle State = iota
	StatePanning
	StateFailed // surface could not be created or used; terminal
	StateClosed // unmounted; terminal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePanning:
		return "panning"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller owns one canvas instance: its viewport, its scene and its
// surface. Input events arrive through Handle; every viewport change
// regenerates the grid and repaints.
//
// A Controller is not safe for concurrent use. Hosts call it from their
// event loop.
type Controller struct {
	viewport    Viewport
	scene       *Scene
	model       Model
	onNodeClick func(Node)

	state State
	last  Point // pointer position while panning

	surface     Surface
	unsubscribe func()
	err         error
}

// NewController returns an unmounted controller with the identity
// viewport. onNodeClick may be nil.
func NewController(onNodeClick func(Node)) *Controller {
	return &Controller{
		viewport:    NewViewport(),
		scene:       NewScene(),
		onNodeClick: onNodeClick,
	}
}

// Viewport returns a copy of the current viewport.
func (c *Controller) Viewport() Viewport { return c.viewport }

// Scene returns the retained scene.
func (c *Controller) Scene() *Scene { return c.scene }

// State returns the current interaction state.
func (c *Controller) State() State { return c.state }

// Err returns the error that put the controller into StateFailed.
func (c *Controller) Err() error { return c.err }

// Mount acquires a surface and a resize subscription from h and paints the
// first frame. On failure everything acquired so far is released, the
// controller moves to StateFailed and the error is returned; there is no
// retry.
func (c *Controller) Mount(h Host) (err error) {
	if c.surface != nil || c.state == StateFailed || c.state == StateClosed {
		return ErrAlreadyMounted
	}

	surface, err := h.NewSurface()
	if err != nil {
		c.fail(err)
		return c.err
	}
	c.surface = surface

	defer func() {
		if err != nil {
			c.fail(err)
			err = c.err
		}
	}()

	c.unsubscribe = h.OnResize(func(e Resize) { c.Handle(e) })
	c.scene.Rebuild(c.model, c.onNodeClick)
	return c.redraw()
}

// Close unregisters the resize listener and releases the surface. It is
// safe to call more than once.
func (c *Controller) Close() error {
	if c.state == StateClosed {
		return nil
	}
	err := c.release()
	c.state = StateClosed
	return err
}

// SetModel replaces the model and rebuilds the scene from scratch.
func (c *Controller) SetModel(m Model) {
	c.model = m
	if !c.live() {
		return
	}
	c.scene.Rebuild(m, c.onNodeClick)
	c.repaint()
}

// Handle applies one input event.
func (c *Controller) Handle(ev Event) {
	if !c.live() {
		return
	}
	switch e := ev.(type) {
	case PointerDown:
		c.pointerDown(e)
	case PointerMove:
		if c.state != StatePanning {
			return
		}
		p := Point{X: e.X, Y: e.Y}
		c.viewport.Pan(p.X-c.last.X, p.Y-c.last.Y)
		c.last = p
		c.repaint()
	case PointerUp:
		if c.state == StatePanning {
			c.state = StateIdle
		}
	case Wheel:
		c.viewport.ZoomAt(Point{X: e.X, Y: e.Y}, WheelFactor(e.DeltaY))
		c.repaint()
	case DoubleClick:
		if c.state != StateIdle {
			return
		}
		// Inside a node the node takes precedence: no reset.
		if c.scene.HitTest(c.viewport.ToWorld(Point{X: e.X, Y: e.Y})) != nil {
			return
		}
		c.viewport.Reset()
		c.repaint()
	case Resize:
		if c.surface != nil {
			if err := c.surface.Resize(e.Width, e.Height); err != nil {
				c.fail(err)
				return
			}
		}
		c.repaint()
	}
}

func (c *Controller) pointerDown(e PointerDown) {
	if c.state != StateIdle {
		return
	}
	p := Point{X: e.X, Y: e.Y}
	if e.Modifier {
		c.state = StatePanning
		c.last = p
		return
	}
	c.scene.Click(c.viewport.ToWorld(p))
}

// ResetView restores the identity viewport and repaints.
func (c *Controller) ResetView() {
	if !c.live() {
		return
	}
	c.viewport.Reset()
	c.repaint()
}

// SetViewport replaces the viewport programmatically and repaints. The
// zoom is clamped.
func (c *Controller) SetViewport(v Viewport) {
	if !c.live() {
		return
	}
	c.viewport = ViewportAt(v.X(), v.Y(), v.Zoom())
	c.repaint()
}

// FitToContent zooms and centres the viewport on the model's nodes. With no
// nodes or no surface it behaves like ResetView.
func (c *Controller) FitToContent() {
	if !c.live() {
		return
	}
	bounds := c.model.Bounds()
	if bounds.IsEmpty() || c.surface == nil {
		c.ResetView()
		return
	}
	w, h := c.surface.Size()
	availW := math.Max(float64(w)-2*fitPadding, 1)
	availH := math.Max(float64(h)-2*fitPadding, 1)
	zoom := clampZoom(math.Min(availW/bounds.Width, availH/bounds.Height))
	center := bounds.Center()
	c.viewport = ViewportAt(float64(w)/2-center.X*zoom, float64(h)/2-center.Y*zoom, zoom)
	c.repaint()
}

func (c *Controller) live() bool {
	return c.state != StateFailed && c.state != StateClosed
}

func (c *Controller) repaint() {
	if c.surface == nil {
		return
	}
	if err := c.redraw(); err != nil {
		c.fail(err)
	}
}

// redraw regenerates the grid for the current viewport and paints the
// scene. The grid must be current before the scene is painted.
func (c *Controller) redraw() error {
	w, h := c.surface.Size()
	c.scene.SetGrid(Grid(c.viewport, w, h))
	return c.surface.Paint(c.scene, c.viewport)
}

func (c *Controller) fail(err error) {
	if !errors.Is(err, ErrSurfaceUnavailable) {
		err = fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	c.err = err
	c.release()
	c.scene.Clear()
	c.scene.SetGrid(nil)
	c.state = StateFailed
}

func (c *Controller) release() error {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.surface == nil {
		return nil
	}
	err := c.surface.Close()
	c.surface = nil
	return err
}
