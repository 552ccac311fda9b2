// Package chart sequences frames for a set of plugins that share one time
// axis. The engine owns the viewport and the time grid; every plugin draws
// into its own horizontal band through a RenderEngine.
package chart

import (
	"github.com/pstuifzand/tui-flamechart/internal/config"
	"github.com/pstuifzand/tui-flamechart/internal/interaction"
)

// Plugin is one visualization drawn by the engine
type Plugin interface {
	Name() string
	// Init is called once when the plugin is added
	Init(engine *RenderEngine, interactions interaction.Source)
	SetSettings(cfg *config.Config)
	Render()
	// RenderTooltip draws the tooltip of the hovered element. It reports
	// whether the plugin owns the tooltip for this frame.
	RenderTooltip() bool
	PostRender()
}

// Bounded plugins contribute to the time range of the chart
type Bounded interface {
	MinMax() (lo, hi float64, ok bool)
}

// Sized plugins have a fixed band height. Other plugins share the rest.
type Sized interface {
	Height() float64
}

// TooltipMode selects how hovered elements are described
type TooltipMode int

const (
	TooltipDefault TooltipMode = iota
	TooltipDisabled
	TooltipCustom
)

// TooltipFunc draws a custom tooltip for data, the element under the mouse
type TooltipFunc func(data any, engine *RenderEngine, mouse interaction.Point)

// Options are the behavior switches shared by all plugins
type Options struct {
	Tooltip       TooltipMode
	TooltipFunc   TooltipFunc
	NonSequential bool
	TimeUnits     string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Tooltip:   TooltipDefault,
		TimeUnits: "ms",
	}
}

// Styles are sizes in pixels and colors in CSS-like strings
type Styles struct {
	BlockHeight    float64
	BadgeSize      float64
	MinTextWidth   float64
	RulerHeight    float64
	CharHeight     float64
	PaddingX       float64
	FocusPadding   float64
	Font           string
	FontColor      string
	BlockTextColor string
	GridLineColor  string
	RulerColor     string
	SelectionColor string
}

// DefaultStyles returns styles sized for a terminal cell grid
func DefaultStyles() Styles {
	return Styles{
		BlockHeight:    1,
		BadgeSize:      1,
		MinTextWidth:   4,
		RulerHeight:    2,
		CharHeight:     1,
		PaddingX:       1,
		FocusPadding:   2,
		Font:           "mono",
		FontColor:      "#a9b1d6",
		BlockTextColor: "#1a1b26",
		GridLineColor:  "rgba(90,90,90,0.20)",
		RulerColor:     "#16161e",
		SelectionColor: "green",
	}
}
