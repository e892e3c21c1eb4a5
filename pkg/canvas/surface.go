package canvas

import "errors"

// ErrSurfaceUnavailable wraps any failure to create or use a drawing
// surface. It is fatal for the mount that hit it.
var ErrSurfaceUnavailable = errors.New("canvas: surface unavailable")

// Surface is something a scene can be painted on. Sizes are in screen
// pixels; Paint maps the scene's world shapes through the viewport.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int) error
	Paint(s *Scene, v Viewport) error
	Close() error
}

// Host supplies a surface and forwards resize notifications. The function
// returned by OnResize unregisters the listener.
type Host interface {
	NewSurface() (Surface, error)
	OnResize(fn func(Resize)) (unsubscribe func())
}
