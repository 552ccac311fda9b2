package interaction

const rootOwner = 0

// Engine is the root interaction engine. It receives mouse input in screen
// pixels, tracks drags, and routes events to the plugin bands created with
// Separate.
type Engine struct {
	handlers

	mouse    Point
	down     bool
	moved    bool
	last     Point
	dragging *Separated

	regions  []HitRegion
	cursor   string
	children []*Separated
	nextID   int
}

// New creates an engine with no regions
func New() *Engine {
	return &Engine{nextID: rootOwner + 1}
}

// Separate creates a view of the engine for a plugin occupying a horizontal
// band starting at offsetY
func (e *Engine) Separate(offsetY, height float64) *Separated {
	s := &Separated{parent: e, id: e.nextID, offsetY: offsetY, height: height}
	e.nextID++
	e.children = append(e.children, s)
	return s
}

// Mouse returns the last mouse position
func (e *Engine) Mouse() Point { return e.mouse }

// GlobalMouse returns the last mouse position; for the root engine it is the
// same as Mouse
func (e *Engine) GlobalMouse() Point { return e.mouse }

// Cursor returns the cursor requested by the last SetCursor
func (e *Engine) Cursor() string { return e.cursor }

func (e *Engine) SetCursor(cursor string) { e.cursor = cursor }

func (e *Engine) ClearCursor() { e.cursor = CursorDefault }

// AddHitRegion registers a region in screen coordinates
func (e *Engine) AddHitRegion(kind string, data any, x, y, w, h float64) {
	e.addRegion(HitRegion{Kind: kind, Data: data, X: x, Y: y, W: w, H: h, owner: rootOwner})
}

func (e *Engine) addRegion(r HitRegion) {
	e.regions = append(e.regions, r)
}

// ClearHitRegions drops every region of every band
func (e *Engine) ClearHitRegions() {
	e.regions = e.regions[:0]
}

func (e *Engine) clearOwned(owner int) {
	kept := e.regions[:0]
	for _, r := range e.regions {
		if r.owner != owner {
			kept = append(kept, r)
		}
	}
	clear(e.regions[len(kept):])
	e.regions = kept
}

// Regions returns the number of registered regions
func (e *Engine) Regions() int {
	return len(e.regions)
}

// HitTest returns the last registered region containing p, or nil
func (e *Engine) HitTest(p Point) *HitRegion {
	for i := len(e.regions) - 1; i >= 0; i-- {
		if e.regions[i].Contains(p) {
			r := e.regions[i]
			return &r
		}
	}
	return nil
}

// HandleMouseDown starts a drag
func (e *Engine) HandleMouseDown(x, y float64) {
	e.mouse = Point{x, y}
	e.down = true
	e.moved = false
	e.last = e.mouse
	e.dragging = e.bandAt(y)
}

// HandleMouseMove moves the mouse. While a button is held it emits
// change-position to the band the drag started in; it always emits hover.
func (e *Engine) HandleMouseMove(x, y float64) {
	e.mouse = Point{x, y}

	if e.down {
		d := Delta{DX: e.last.X - x, DY: e.last.Y - y}
		e.last = e.mouse
		if d.DX != 0 || d.DY != 0 {
			e.moved = true
			e.emitChangePosition(d)
			if e.dragging != nil {
				e.dragging.emitChangePosition(d)
			}
		}
	}

	e.hover()
}

// HandleMouseUp ends a drag. A press and release without movement selects
// the region under the mouse.
func (e *Engine) HandleMouseUp(x, y float64) {
	e.mouse = Point{x, y}
	click := e.down && !e.moved
	e.down = false
	e.dragging = nil

	if click {
		e.route(e.HitTest(e.mouse), (*handlers).emitSelect)
	}

	e.emitUp()
	for _, c := range e.children {
		c.emitUp()
	}
}

// HandleMouseLeave drops the hover state
func (e *Engine) HandleMouseLeave() {
	e.mouse = Point{-1, -1}
	e.route(nil, (*handlers).emitHover)
}

// Dragging reports whether a button is held
func (e *Engine) Dragging() bool {
	return e.down
}

func (e *Engine) hover() {
	e.route(e.HitTest(e.mouse), (*handlers).emitHover)
}

// route sends a region event to the root listeners and to the band that
// owns the region. A nil region reaches every band.
func (e *Engine) route(r *HitRegion, emit func(*handlers, *HitRegion)) {
	emit(&e.handlers, r)
	for _, c := range e.children {
		if r == nil || r.owner == c.id {
			emit(&c.handlers, r)
		}
	}
}

func (e *Engine) bandAt(y float64) *Separated {
	for _, c := range e.children {
		if y >= c.offsetY && y < c.offsetY+c.height {
			return c
		}
	}
	return nil
}

func (e *Engine) OnChangePosition(fn func(Delta)) {
	e.changePosition = append(e.changePosition, fn)
}

func (e *Engine) OnSelect(fn func(*HitRegion)) {
	e.selects = append(e.selects, fn)
}

func (e *Engine) OnHover(fn func(*HitRegion)) {
	e.hovers = append(e.hovers, fn)
}

func (e *Engine) OnUp(fn func()) {
	e.ups = append(e.ups, fn)
}
