// Package interaction turns raw mouse input into chart events and keeps the
// hit regions plugins register while rendering.
package interaction

// Region kinds
const (
	KindCluster   = "cluster"
	KindTimestamp = "timestamp"
)

// Cursors
const (
	CursorDefault  = ""
	CursorGrabbing = "grabbing"
	CursorPointer  = "pointer"
)

// Point is a mouse position in pixels
type Point struct {
	X, Y float64
}

// Delta is a drag step in pixels. Positive values move the view right/down.
type Delta struct {
	DX, DY float64
}

// HitRegion is a rectangle a plugin can be found under
type HitRegion struct {
	Kind       string
	Data       any
	X, Y, W, H float64

	owner int
}

// Contains reports whether p lies in the region, edges included
func (r *HitRegion) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Source is what a plugin sees of the interaction engine
type Source interface {
	Mouse() Point
	GlobalMouse() Point
	SetCursor(cursor string)
	ClearCursor()
	AddHitRegion(kind string, data any, x, y, w, h float64)
	ClearHitRegions()

	OnChangePosition(fn func(Delta))
	OnSelect(fn func(*HitRegion))
	OnHover(fn func(*HitRegion))
	OnUp(fn func())
}

// handlers holds the subscriptions of one listener
type handlers struct {
	changePosition []func(Delta)
	selects        []func(*HitRegion)
	hovers         []func(*HitRegion)
	ups            []func()
}

func (h *handlers) emitChangePosition(d Delta) {
	for _, fn := range h.changePosition {
		fn(d)
	}
}

func (h *handlers) emitSelect(r *HitRegion) {
	for _, fn := range h.selects {
		fn(r)
	}
}

func (h *handlers) emitHover(r *HitRegion) {
	for _, fn := range h.hovers {
		fn(r)
	}
}

func (h *handlers) emitUp() {
	for _, fn := range h.ups {
		fn()
	}
}
