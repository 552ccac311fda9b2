// Package timegrid computes adaptive tick positions for the time axis
package timegrid

import (
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/render"
)

// DefaultMinPixelDelta is the smallest pixel distance between two ticks
const DefaultMinPixelDelta = 85

// Viewport is the projection the grid is computed from
type Viewport interface {
	Min() float64
	Max() float64
	PositionX() float64
	Width() float64
	RealView() float64
	TimeToPosition(t float64) float64
}

// Styles are the colors used when the grid draws itself
type Styles struct {
	LineColor string
}

// DefaultStyles returns the grid colors used when nothing is configured
func DefaultStyles() Styles {
	return Styles{LineColor: "rgba(90,90,90,0.20)"}
}

// Grid holds the tick layout for the last Recalc
type Grid struct {
	MinPixelDelta float64
	Styles        Styles

	view       Viewport
	start      int
	end        int
	delta      float64
	accuracy   int
	timeWidth  float64
	proportion float64
}

// New creates a grid with the default tick spacing
func New() *Grid {
	return &Grid{
		MinPixelDelta: DefaultMinPixelDelta,
		Styles:        DefaultStyles(),
	}
}

// Recalc chooses the tick spacing for the current viewport. Spacing changes
// in powers of two of the fit-to-width spacing so ticks do not jitter while
// zooming.
func (g *Grid) Recalc(v Viewport) {
	g.view = v

	spacing := g.MinPixelDelta
	if spacing <= 0 {
		spacing = DefaultMinPixelDelta
	}

	g.timeWidth = v.Max() - v.Min()
	initialLinesCount := v.Width() / spacing
	initialDelta := g.timeWidth / initialLinesCount

	realView := v.RealView()
	g.proportion = realView / nonZero(g.timeWidth)

	// the epsilon keeps exact powers of two from flipping a step on rounding
	g.delta = initialDelta / math.Pow(2, math.Floor(math.Log2(1/g.proportion)+1e-9))
	if !finite(g.delta) || g.delta <= 0 {
		g.start, g.end, g.accuracy = 0, -1, 0
		return
	}

	start := math.Floor((v.PositionX() - v.Min()) / g.delta)
	end := math.Ceil(realView/g.delta) + start
	if !finite(start) || !finite(end) || end-start > math.MaxInt32 {
		g.start, g.end = 0, -1
	} else {
		g.start, g.end = int(start), int(end)
	}

	g.accuracy = accuracyFor(g.delta / 2)
}

// accuracyFor returns the number of decimals that keeps labels of ticks
// spaced 2*v apart distinct without printing float noise
func accuracyFor(v float64) int {
	v = math.Abs(v)
	if v == 0 || !finite(v) {
		return 0
	}

	if v < 1e-6 || v >= 1e21 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		exp, err := strconv.Atoi(s[strings.IndexByte(s, 'e')+2:])
		if err != nil {
			return 0
		}
		return exp
	}

	if v >= 1 {
		return 0
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	frac := strings.TrimPrefix(s, "0.")
	return len(frac) - len(strings.TrimLeft(frac, "0")) + 1
}

// Ticks yields (pixel, time) for every tick index in [start, end]. The
// sequence can be ranged over any number of times.
func (g *Grid) Ticks() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		if g.view == nil {
			return
		}
		lo := g.view.Min()
		for i := g.start; i <= g.end; i++ {
			t := float64(i)*g.delta + lo
			rounded, err := strconv.ParseFloat(strconv.FormatFloat(t, 'f', g.accuracy, 64), 64)
			if err != nil {
				rounded = t
			}
			if !yield(g.view.TimeToPosition(rounded), t) {
				return
			}
		}
	}
}

// Accuracy returns the number of decimals for labels
func (g *Grid) Accuracy() int { return g.accuracy }

// Delta returns the time between two ticks
func (g *Grid) Delta() float64 { return g.delta }

// Range returns the first and last tick index
func (g *Grid) Range() (int, int) { return g.start, g.end }

// VisibleDuration returns the time width of the visible window
func (g *Grid) VisibleDuration() float64 {
	return g.timeWidth * g.proportion
}

// FormatTime formats a time with the grid accuracy and units
func (g *Grid) FormatTime(t float64, units string) string {
	return strconv.FormatFloat(t, 'f', g.accuracy, 64) + units
}

// RenderLines draws a one pixel vertical line per tick
func (g *Grid) RenderLines(s render.Surface, top, height float64) {
	s.SetFillStyle(g.Styles.LineColor)
	for x := range g.Ticks() {
		s.FillRect(x, top, 1, height)
	}
}

// TextStyle describes how tick labels are placed
type TextStyle struct {
	Font       string
	FontColor  string
	PaddingX   float64
	CharHeight float64
}

// RenderTimes draws tick labels. In non-sequential mode a single centered
// label shows the visible duration instead.
func (g *Grid) RenderTimes(s render.Surface, style TextStyle, nonSequential bool, units string) {
	s.SetFillStyle(style.FontColor)
	s.SetFont(style.Font)

	if !nonSequential {
		s.SetTextAlign(render.AlignLeft)
		for x, t := range g.Ticks() {
			s.FillText(g.FormatTime(t, units), x+style.PaddingX, style.CharHeight)
		}
		return
	}

	width := 0.0
	if g.view != nil {
		width = g.view.Width()
	}
	s.SetTextAlign(render.AlignCenter)
	s.FillText(g.FormatTime(g.VisibleDuration(), units), style.PaddingX+width/2, style.CharHeight)
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
