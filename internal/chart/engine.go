package chart

import (
	"log"

	"github.com/pstuifzand/tui-flamechart/internal/config"
	"github.com/pstuifzand/tui-flamechart/internal/interaction"
	"github.com/pstuifzand/tui-flamechart/internal/render"
	"github.com/pstuifzand/tui-flamechart/internal/timegrid"
	"github.com/pstuifzand/tui-flamechart/internal/viewport"
)

type state int

const (
	stateIdle state = iota
	stateRendering
)

type slot struct {
	plugin Plugin
	engine *RenderEngine
	band   *interaction.Separated
}

// Engine renders frames. It is the only writer of the viewport.
type Engine struct {
	surface      render.Surface
	interactions *interaction.Engine
	view         *viewport.State
	grid         *timegrid.Grid

	styles  Styles
	options Options
	slots   []*slot

	state  state
	queued bool
	frames int
}

// New creates an engine drawing to surface with a viewport of width x height
// pixels
func New(surface render.Surface, interactions *interaction.Engine, width, height float64) *Engine {
	if interactions == nil {
		interactions = interaction.New()
	}
	return &Engine{
		surface:      surface,
		interactions: interactions,
		view:         viewport.New(width, height),
		grid:         timegrid.New(),
		styles:       DefaultStyles(),
		options:      DefaultOptions(),
	}
}

// AddPlugin initializes p with its own band and adds it below the others
func (e *Engine) AddPlugin(p Plugin) {
	s := &slot{plugin: p}
	s.engine = &RenderEngine{parent: e}
	s.band = e.interactions.Separate(0, 0)
	e.slots = append(e.slots, s)
	e.layout()

	p.Init(s.engine, s.band)
}

// layout gives fixed-height plugins their height, top to bottom, and splits
// the remaining height between the others
func (e *Engine) layout() {
	total := e.view.Height()
	fixed, flexible := 0.0, 0
	for _, s := range e.slots {
		if sized, ok := s.plugin.(Sized); ok {
			fixed += sized.Height()
		} else {
			flexible++
		}
	}

	share := 0.0
	if flexible > 0 {
		share = max(total-fixed, 0) / float64(flexible)
	}

	y := 0.0
	for _, s := range e.slots {
		h := share
		if sized, ok := s.plugin.(Sized); ok {
			h = sized.Height()
		}
		s.engine.offsetY, s.engine.height = y, h
		s.band.SetBand(y, h)
		y += h
	}
}

// SetSettings applies the chart configuration to the engine and every plugin
func (e *Engine) SetSettings(cfg *config.Config) {
	chart := cfg.EffectiveChart()

	e.options.NonSequential = chart.NonSequential
	e.options.TimeUnits = chart.TimeUnits
	switch {
	case chart.Tooltip == config.TooltipNone:
		e.options.Tooltip = TooltipDisabled
	case e.options.TooltipFunc != nil:
		e.options.Tooltip = TooltipCustom
	default:
		e.options.Tooltip = TooltipDefault
	}

	e.styles.BlockHeight = chart.BlockHeight
	e.styles.BadgeSize = chart.BadgeSize
	e.styles.MinTextWidth = chart.MinTextWidth
	e.grid.MinPixelDelta = chart.MinTickSpacing

	for _, s := range e.slots {
		s.plugin.SetSettings(cfg)
	}
	e.layout()
}

// SetTooltipFunc installs a custom tooltip renderer. nil restores the
// default tooltip.
func (e *Engine) SetTooltipFunc(fn TooltipFunc) {
	e.options.TooltipFunc = fn
	if fn != nil {
		e.options.Tooltip = TooltipCustom
	} else if e.options.Tooltip == TooltipCustom {
		e.options.Tooltip = TooltipDefault
	}
}

// SetTimeUnits changes the label suffix
func (e *Engine) SetTimeUnits(units string) {
	e.options.TimeUnits = units
}

// SetStyles replaces the styles
func (e *Engine) SetStyles(s Styles) {
	e.styles = s
	e.layout()
}

// Styles returns the current styles
func (e *Engine) Styles() Styles { return e.styles }

// Options returns the current options
func (e *Engine) Options() Options { return e.options }

// View returns the viewport. Callers must not modify it.
func (e *Engine) View() *viewport.State { return e.view }

// Grid returns the time grid of the last frame
func (e *Engine) Grid() *timegrid.Grid { return e.grid }

// Interactions returns the root interaction engine
func (e *Engine) Interactions() *interaction.Engine { return e.interactions }

// Surface returns the drawing surface
func (e *Engine) Surface() render.Surface { return e.surface }

// Frames returns the number of frames rendered
func (e *Engine) Frames() int { return e.frames }

// Rendering reports whether a frame is being drawn
func (e *Engine) Rendering() bool { return e.state == stateRendering }

// Render draws a frame. A Render requested while a frame is being drawn is
// queued and runs once the current frame is done.
func (e *Engine) Render() {
	if e.state == stateRendering {
		e.queued = true
		return
	}

	e.state = stateRendering
	defer func() { e.state = stateIdle }()

	for {
		e.queued = false
		e.renderFrame()
		if !e.queued {
			return
		}
	}
}

func (e *Engine) renderFrame() {
	e.surface.Clear()
	e.interactions.ClearHitRegions()
	e.grid.Recalc(e.view)

	e.grid.Styles.LineColor = e.styles.GridLineColor
	e.grid.RenderLines(e.surface, 0, e.view.Height())

	for _, s := range e.slots {
		s.plugin.Render()
	}

	for _, s := range e.slots {
		if s.plugin.RenderTooltip() {
			break
		}
	}

	for _, s := range e.slots {
		s.plugin.PostRender()
	}

	e.surface.Flush()
	e.frames++
}

// RecalcMinMax takes the time range from the bounded plugins. Without any
// data the range is [0, 0].
func (e *Engine) RecalcMinMax() {
	lo, hi, found := 0.0, 0.0, false
	for _, s := range e.slots {
		b, ok := s.plugin.(Bounded)
		if !ok {
			continue
		}
		pmin, pmax, ok := b.MinMax()
		if !ok {
			continue
		}
		if !found {
			lo, hi, found = pmin, pmax, true
			continue
		}
		lo, hi = min(lo, pmin), max(hi, pmax)
	}
	e.view.SetBounds(lo, hi)
}

// ResetView fits the whole time range into the width
func (e *Engine) ResetView() {
	e.view.Reset()
}

// TryToChangePosition pans by deltaX pixels and reports whether the view moved
func (e *Engine) TryToChangePosition(deltaX float64) bool {
	return e.view.TryToChangePosition(deltaX)
}

// ZoomAt zooms by factor around pixel x and reports whether the view changed
func (e *Engine) ZoomAt(x, factor float64) bool {
	return e.view.ZoomAt(x, factor)
}

// FocusRange shows [start, end] with the focus padding on both sides
func (e *Engine) FocusRange(start, end float64) {
	e.view.Focus(start, end, e.styles.FocusPadding)
}

// Resize changes the pixel size of the chart
func (e *Engine) Resize(width, height float64) {
	if width == e.view.Width() && height == e.view.Height() {
		return
	}
	e.view.Resize(width, height)
	e.layout()
	log.Printf("chart resized to %.0fx%.0f", width, height)
}
