package interaction

// Separated is the part of the engine a single plugin sees. Coordinates are
// local to the plugin's band: y = 0 is the top of the band.
type Separated struct {
	handlers

	parent  *Engine
	id      int
	offsetY float64
	height  float64
}

// SetBand moves the band. Regions already registered keep their position
// until the plugin rebuilds them.
func (s *Separated) SetBand(offsetY, height float64) {
	s.offsetY = offsetY
	s.height = height
}

// OffsetY returns the top of the band in screen pixels
func (s *Separated) OffsetY() float64 { return s.offsetY }

// Height returns the band height
func (s *Separated) Height() float64 { return s.height }

// Mouse returns the mouse position relative to the band
func (s *Separated) Mouse() Point {
	m := s.parent.mouse
	return Point{m.X, m.Y - s.offsetY}
}

// GlobalMouse returns the mouse position on screen
func (s *Separated) GlobalMouse() Point {
	return s.parent.mouse
}

func (s *Separated) SetCursor(cursor string) { s.parent.SetCursor(cursor) }

func (s *Separated) ClearCursor() { s.parent.ClearCursor() }

// AddHitRegion registers a region given in band coordinates
func (s *Separated) AddHitRegion(kind string, data any, x, y, w, h float64) {
	s.parent.addRegion(HitRegion{
		Kind: kind, Data: data,
		X: x, Y: y + s.offsetY, W: w, H: h,
		owner: s.id,
	})
}

// ClearHitRegions drops the regions this band registered
func (s *Separated) ClearHitRegions() {
	s.parent.clearOwned(s.id)
}

func (s *Separated) OnChangePosition(fn func(Delta)) {
	s.changePosition = append(s.changePosition, fn)
}

func (s *Separated) OnSelect(fn func(*HitRegion)) {
	s.selects = append(s.selects, fn)
}

func (s *Separated) OnHover(fn func(*HitRegion)) {
	s.hovers = append(s.hovers, fn)
}

func (s *Separated) OnUp(fn func()) {
	s.ups = append(s.ups, fn)
}
