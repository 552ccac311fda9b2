// Package viewport holds the visible time window and its pixel projection
package viewport

import "math"

const (
	// MaxZoom caps zooming in so projections stay finite
	MaxZoom = 1e9
	minZoom = 1e-12
)

// State is the zoom and pan position of the chart. It has a single writer,
// the chart engine; everything else reads it.
type State struct {
	zoom      float64 // pixels per time unit
	positionX float64 // time at the left edge
	width     float64 // pixels
	height    float64 // pixels
	min       float64
	max       float64
}

// New creates a viewport of the given pixel size showing [0, 1]
func New(width, height float64) *State {
	s := &State{width: width, height: height, max: 1}
	s.Reset()
	return s
}

// Zoom returns pixels per time unit
func (s *State) Zoom() float64 { return s.zoom }

// PositionX returns the time at the left edge
func (s *State) PositionX() float64 { return s.positionX }

// Width returns the pixel width
func (s *State) Width() float64 { return s.width }

// Height returns the pixel height
func (s *State) Height() float64 { return s.height }

// Min returns the smallest time of the dataset
func (s *State) Min() float64 { return s.min }

// Max returns the largest time of the dataset
func (s *State) Max() float64 { return s.max }

// TimeWidth returns Max - Min, or 1 when the dataset has no extent
func (s *State) TimeWidth() float64 {
	if w := s.max - s.min; w > 0 {
		return w
	}
	return 1
}

// TimeToPosition projects a time to a pixel x
func (s *State) TimeToPosition(t float64) float64 {
	return (t - s.positionX) * s.zoom
}

// PixelToTime maps a pixel x back to time
func (s *State) PixelToTime(x float64) float64 {
	return x/s.zoom + s.positionX
}

// RealView returns the visible time width
func (s *State) RealView() float64 {
	return s.width / s.zoom
}

// SetBounds sets the dataset bounds without moving the view
func (s *State) SetBounds(lo, hi float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		lo, hi = 0, 0
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	s.min, s.max = lo, hi
}

// Resize changes the pixel size and keeps the visible time window
func (s *State) Resize(width, height float64) {
	view := s.RealView()
	s.width, s.height = width, height
	if width > 0 && view > 0 {
		s.setZoom(width / view)
	}
}

// Reset fits the whole dataset into the width
func (s *State) Reset() {
	s.positionX = s.min
	s.setZoom(s.width / s.TimeWidth())
}

// SetZoom changes the zoom keeping the left edge fixed
func (s *State) SetZoom(zoom float64) {
	s.setZoom(zoom)
	s.clamp()
}

// ZoomAt scales the zoom by factor, keeping the time under pixel x in place
func (s *State) ZoomAt(x, factor float64) bool {
	if factor <= 0 || math.IsNaN(factor) {
		return false
	}
	pinned := s.PixelToTime(x)
	prevZoom, prevPos := s.zoom, s.positionX

	s.setZoom(s.zoom * factor)
	s.positionX = pinned - x/s.zoom
	s.clamp()

	return prevZoom != s.zoom || prevPos != s.positionX
}

// TryToChangePosition pans by deltaX pixels. It reports whether the view moved.
func (s *State) TryToChangePosition(deltaX float64) bool {
	prev := s.positionX
	s.positionX += deltaX / s.zoom
	s.clamp()
	return prev != s.positionX
}

// Focus shows [start, end] with a margin of pad pixels on each side
func (s *State) Focus(start, end, pad float64) {
	if end < start {
		start, end = end, start
	}
	span := end - start
	usable := s.width - 2*pad
	if usable <= 0 {
		usable = s.width
		pad = 0
	}
	if span <= 0 {
		span = s.RealView()
	} else {
		s.setZoom(usable / span)
	}
	s.positionX = start - pad/s.zoom
	s.clamp()
}

func (s *State) setZoom(zoom float64) {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom <= 0 {
		zoom = minZoom
	}
	s.zoom = math.Min(math.Max(zoom, minZoom), MaxZoom)
}

// clamp keeps the window inside [min, max]. When the whole dataset fits the
// view, the left edge is pinned to min.
func (s *State) clamp() {
	view := s.RealView()
	if view >= s.max-s.min {
		s.positionX = s.min
		return
	}
	s.positionX = math.Max(s.min, math.Min(s.positionX, s.max-view))
}
