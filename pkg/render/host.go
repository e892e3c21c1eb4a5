package render

import "github.com/ha1tch/codecanvas/pkg/canvas"

// Host is a canvas.Host for off-screen rendering. It hands out the surface
// built by New and lets callers simulate resizes.
type Host struct {
	New func() (canvas.Surface, error)

	listeners map[int]func(canvas.Resize)
	nextID    int
}

// RasterHost hosts a RasterSurface.
type RasterHost struct {
	Host
	Surface *RasterSurface
}

// NewRasterHost returns a host whose surface is a RasterSurface, available
// in Surface once mounted.
func NewRasterHost(opts RasterOptions) *RasterHost {
	h := &RasterHost{}
	h.New = func() (canvas.Surface, error) {
		s, err := NewRasterSurface(opts)
		if err != nil {
			return nil, err
		}
		h.Surface = s
		return s, nil
	}
	return h
}

// SVGHost hosts an SVGSurface.
type SVGHost struct {
	Host
	Surface *SVGSurface
}

// NewSVGHost returns a host whose surface is an SVGSurface.
func NewSVGHost(opts RasterOptions) *SVGHost {
	h := &SVGHost{}
	h.New = func() (canvas.Surface, error) {
		s, err := NewSVGSurface(opts)
		if err != nil {
			return nil, err
		}
		h.Surface = s
		return s, nil
	}
	return h
}

// NewSurface implements canvas.Host.
func (h *Host) NewSurface() (canvas.Surface, error) {
	return h.New()
}

// OnResize implements canvas.Host.
func (h *Host) OnResize(fn func(canvas.Resize)) func() {
	if h.listeners == nil {
		h.listeners = make(map[int]func(canvas.Resize))
	}
	h.nextID++
	id := h.nextID
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// Listeners returns the number of registered resize listeners.
func (h *Host) Listeners() int { return len(h.listeners) }

// Resize notifies every listener of a new size.
func (h *Host) Resize(width, height int) {
	for _, fn := range h.listeners {
		fn(canvas.Resize{Width: width, Height: height})
	}
}
