package chart

import (
	"github.com/pstuifzand/tui-flamechart/internal/config"
	"github.com/pstuifzand/tui-flamechart/internal/interaction"
	"github.com/pstuifzand/tui-flamechart/internal/timegrid"
)

// Ruler draws the time labels of the grid in a fixed band
type Ruler struct {
	engine *RenderEngine
}

// NewRuler creates the time ruler plugin
func NewRuler() *Ruler {
	return &Ruler{}
}

func (p *Ruler) Name() string { return "timeGridPlugin" }

func (p *Ruler) Init(engine *RenderEngine, _ interaction.Source) {
	p.engine = engine
}

func (p *Ruler) SetSettings(*config.Config) {}

// Height returns the band height of the ruler
func (p *Ruler) Height() float64 {
	if p.engine == nil {
		return DefaultStyles().RulerHeight
	}
	return p.engine.Styles().RulerHeight
}

func (p *Ruler) Render() {
	e := p.engine
	styles := e.Styles()
	surface := e.Parent().Surface()

	if styles.RulerColor != "" {
		surface.SetFillStyle(styles.RulerColor)
		surface.FillRect(0, e.OffsetY(), e.Width(), e.Height())
	}

	e.Parent().Grid().RenderTimes(surface, timegrid.TextStyle{
		Font:       styles.Font,
		FontColor:  styles.FontColor,
		PaddingX:   styles.PaddingX,
		CharHeight: e.OffsetY() + styles.CharHeight,
	}, e.Options().NonSequential, e.TimeUnits())
}

func (p *Ruler) RenderTooltip() bool { return false }

func (p *Ruler) PostRender() {}
