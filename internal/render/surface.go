// Package render defines the drawing surface the chart emits commands to
package render

// Layers used by the chart; higher layers are drawn on top
const (
	LayerBlocks = 0
	LayerBadges = 1
	LayerLabels = 2
)

// Transparent is the color of rectangles that only show their pattern
const Transparent = "transparent"

// Align is a horizontal text alignment
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Rect is a filled or stroked rectangle in pixels
type Rect struct {
	X, Y, W, H float64
	Color      string
	Pattern    string // name of a pattern created with CreateCachedPattern
}

// Text is a label clipped to a width in pixels
type Text struct {
	Text    string
	X, Y, W float64
	Color   string
}

// Pattern is a reusable fill identified by Name
type Pattern struct {
	Name      string
	Kind      string // "triangles" or "stripes"
	Color     string
	Width     float64
	Align     string
	Direction string
}

// TooltipLine is one line of tooltip text
type TooltipLine struct {
	Text  string
	Color string
}

// Surface receives the draw commands of one frame. Layered commands are
// composited at Flush in layer order; FillRect and FillText draw directly
// with the current fill style, font and alignment.
type Surface interface {
	AddRect(r Rect, layer int)
	AddStroke(r Rect, layer int)
	AddText(t Text, layer int)
	CreateCachedPattern(p Pattern)

	SetFillStyle(color string)
	SetFont(font string)
	SetTextAlign(a Align)
	FillRect(x, y, w, h float64)
	FillText(text string, x, y float64)

	RenderTooltip(lines []TooltipLine, x, y float64)

	Clear()
	Flush()
}
