package chart

import (
	"github.com/pstuifzand/tui-flamechart/internal/interaction"
	"github.com/pstuifzand/tui-flamechart/internal/render"
)

// RenderEngine is the view of the engine given to one plugin. Y coordinates
// are relative to the top of the plugin's band; draw commands are moved to
// screen coordinates and clipped to the band.
type RenderEngine struct {
	parent  *Engine
	offsetY float64
	height  float64
}

// Parent returns the engine that owns this band
func (r *RenderEngine) Parent() *Engine { return r.parent }

func (r *RenderEngine) Zoom() float64 { return r.parent.view.Zoom() }

func (r *RenderEngine) PositionX() float64 { return r.parent.view.PositionX() }

func (r *RenderEngine) Min() float64 { return r.parent.view.Min() }

func (r *RenderEngine) Max() float64 { return r.parent.view.Max() }

func (r *RenderEngine) Width() float64 { return r.parent.view.Width() }

// Height returns the band height
func (r *RenderEngine) Height() float64 { return r.height }

// OffsetY returns the top of the band on screen
func (r *RenderEngine) OffsetY() float64 { return r.offsetY }

func (r *RenderEngine) TimeToPosition(t float64) float64 { return r.parent.view.TimeToPosition(t) }

// RealView returns the visible time width
func (r *RenderEngine) RealView() float64 { return r.parent.view.RealView() }

func (r *RenderEngine) TimeUnits() string { return r.parent.options.TimeUnits }

// Accuracy returns the label precision of the current time grid
func (r *RenderEngine) Accuracy() int { return r.parent.grid.Accuracy() }

func (r *RenderEngine) BlockHeight() float64 { return r.parent.styles.BlockHeight }

func (r *RenderEngine) MinTextWidth() float64 { return r.parent.styles.MinTextWidth }

func (r *RenderEngine) Options() Options { return r.parent.options }

func (r *RenderEngine) Styles() Styles { return r.parent.styles }

// Render asks the engine for a new frame
func (r *RenderEngine) Render() { r.parent.Render() }

// RecalcMinMax asks the engine to recompute the time range
func (r *RenderEngine) RecalcMinMax() { r.parent.RecalcMinMax() }

// ResetParentView fits the time range into the width
func (r *RenderEngine) ResetParentView() { r.parent.ResetView() }

// TryToChangePosition pans the shared viewport
func (r *RenderEngine) TryToChangePosition(deltaX float64) bool {
	return r.parent.TryToChangePosition(deltaX)
}

// AddRect draws a filled rectangle given in band coordinates
func (r *RenderEngine) AddRect(rect render.Rect, layer int) {
	if rect, ok := r.clip(rect); ok {
		r.parent.surface.AddRect(rect, layer)
	}
}

// AddStroke draws a rectangle outline given in band coordinates
func (r *RenderEngine) AddStroke(rect render.Rect, layer int) {
	if rect, ok := r.clip(rect); ok {
		r.parent.surface.AddStroke(rect, layer)
	}
}

// AddText draws a label whose top is at t.Y in band coordinates
func (r *RenderEngine) AddText(t render.Text, layer int) {
	if t.Y < 0 || t.Y >= r.height {
		return
	}
	t.Y += r.offsetY
	r.parent.surface.AddText(t, layer)
}

// CreateCachedPattern registers a named pattern with the surface
func (r *RenderEngine) CreateCachedPattern(p render.Pattern) {
	r.parent.surface.CreateCachedPattern(p)
}

// RenderTooltipFromData draws tooltip lines next to the mouse
func (r *RenderEngine) RenderTooltipFromData(lines []render.TooltipLine, mouse interaction.Point) {
	r.parent.surface.RenderTooltip(lines, mouse.X, mouse.Y)
}

func (r *RenderEngine) clip(rect render.Rect) (render.Rect, bool) {
	top := max(rect.Y, 0)
	bottom := min(rect.Y+rect.H, r.height)
	if bottom <= top {
		return rect, false
	}
	rect.Y = top + r.offsetY
	rect.H = bottom - top
	return rect, true
}
