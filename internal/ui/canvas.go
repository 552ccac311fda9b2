package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pstuifzand/tui-flamechart/internal/render"
	"github.com/pstuifzand/tui-flamechart/internal/theme"
)

// A terminal cell is one pixel wide and two pixels high, so a block of
// height 1 plus its 1px gutter takes exactly one row.
const (
	PixelsPerColumn = 1
	PixelsPerRow    = 2
)

const (
	triangleRune = '◤'
	stripeRune   = '░'
)

type parsedColor struct {
	c     colorful.Color
	alpha float64
	ok    bool
}

type tooltipBox struct {
	lines []render.TooltipLine
	x, y  float64
}

// Canvas is a render.Surface drawing into a rectangle of the screen
type Canvas struct {
	screen *Screen

	left, top  int
	cols, rows int

	patterns *render.PatternCache
	layers   render.Layers
	tooltip  *tooltipBox
	colors   map[string]parsedColor

	fillStyle string
	font      string
	align     render.Align
}

var _ render.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas covering the whole screen
func NewCanvas(screen *Screen) *Canvas {
	w, h := screen.Size()
	return &Canvas{
		screen:   screen,
		cols:     w,
		rows:     h,
		patterns: render.NewPatternCache(render.DefaultPatternCacheSize),
		colors:   make(map[string]parsedColor),
	}
}

// SetArea moves the canvas to cols x rows cells starting at (left, top)
func (c *Canvas) SetArea(left, top, cols, rows int) {
	c.left, c.top = left, top
	c.cols, c.rows = max(cols, 0), max(rows, 0)
}

// Area returns the cell rectangle of the canvas
func (c *Canvas) Area() (left, top, cols, rows int) {
	return c.left, c.top, c.cols, c.rows
}

// PixelSize returns the size of the canvas in chart pixels
func (c *Canvas) PixelSize() (w, h float64) {
	return float64(c.cols * PixelsPerColumn), float64(c.rows * PixelsPerRow)
}

// CellToPixel maps a screen cell to the chart pixel at its center. ok is
// false outside the canvas.
func (c *Canvas) CellToPixel(col, row int) (x, y float64, ok bool) {
	col -= c.left
	row -= c.top
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) * PixelsPerColumn
	y = (float64(row) + 0.25) * PixelsPerRow
	return x, y, true
}

// Patterns returns the named patterns created so far
func (c *Canvas) Patterns() *render.PatternCache {
	return c.patterns
}

func (c *Canvas) AddRect(r render.Rect, layer int) {
	c.layers.Add(render.Command{Kind: render.KindRect, Layer: layer, Rect: r})
}

func (c *Canvas) AddStroke(r render.Rect, layer int) {
	c.layers.Add(render.Command{Kind: render.KindStroke, Layer: layer, Rect: r})
}

func (c *Canvas) AddText(t render.Text, layer int) {
	c.layers.Add(render.Command{Kind: render.KindText, Layer: layer, Text: t})
}

func (c *Canvas) CreateCachedPattern(p render.Pattern) {
	c.patterns.Ensure(p)
}

func (c *Canvas) SetFillStyle(color string) { c.fillStyle = color }

func (c *Canvas) SetFont(font string) { c.font = font }

func (c *Canvas) SetTextAlign(a render.Align) { c.align = a }

// FillRect tints the background of the covered cells with the fill style
func (c *Canvas) FillRect(x, y, w, h float64) {
	c0, c1 := c.columns(x, w)
	r0, r1 := c.rowRange(y, h)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			ch, style := c.screen.GetCell(col, row)
			_, bg, _ := style.Decompose()
			if color, ok := c.resolve(c.fillStyle, bg); ok {
				c.screen.SetCell(col, row, ch, style.Background(color))
			}
		}
	}
}

// FillText draws text at the pixel position, aligned around x
func (c *Canvas) FillText(text string, x, y float64) {
	row := c.row(y)
	if row < 0 {
		return
	}
	col := int(math.Floor(x))
	switch c.align {
	case render.AlignCenter:
		col -= StringWidth(text) / 2
	case render.AlignRight:
		col -= StringWidth(text)
	}
	c.drawText(text, col, row, c.fillStyle)
}

func (c *Canvas) RenderTooltip(lines []render.TooltipLine, x, y float64) {
	c.tooltip = &tooltipBox{lines: append([]render.TooltipLine(nil), lines...), x: x, y: y}
}

// Clear starts a new frame and paints the canvas with the chart background
func (c *Canvas) Clear() {
	c.layers.Reset()
	c.tooltip = nil
	style := c.screen.ChartStyle()
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			c.screen.SetCell(c.left+col, c.top+row, ' ', style)
		}
	}
}

// Flush draws the layered commands and the tooltip. Showing the screen is
// left to the caller so it can draw its own widgets on top.
func (c *Canvas) Flush() {
	c.layers.Each(func(cmd render.Command) {
		switch cmd.Kind {
		case render.KindRect:
			c.drawRect(cmd.Rect)
		case render.KindStroke:
			c.drawStroke(cmd.Rect)
		case render.KindText:
			t := cmd.Text
			avail := int(math.Floor(t.X+t.W)) - int(math.Floor(t.X))
			if avail > 0 {
				c.drawText(Clip(t.Text, avail), int(math.Floor(t.X)), c.row(t.Y), t.Color)
			}
		}
	})
	c.layers.Reset()

	if c.tooltip != nil {
		c.drawTooltip(*c.tooltip)
	}
}

func (c *Canvas) drawRect(r render.Rect) {
	var pattern render.Pattern
	hasPattern := false
	if r.Pattern != "" {
		pattern, hasPattern = c.patterns.Get(r.Pattern)
	}

	c0, c1 := c.columns(r.X, r.W)
	r0, r1 := c.rowRange(r.Y, r.H)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			ch, style := c.screen.GetCell(col, row)
			fg, bg, _ := style.Decompose()
			if color, ok := c.resolve(r.Color, bg); ok {
				ch, bg = ' ', color
			}
			if hasPattern {
				if color, ok := c.resolve(pattern.Color, bg); ok {
					fg = color
				}
				switch pattern.Kind {
				case "triangles":
					ch = triangleRune
				case "stripes":
					ch = stripeRune
				}
			}
			c.screen.SetCell(col, row, ch, style.Foreground(fg).Background(bg))
		}
	}
}

func (c *Canvas) drawStroke(r render.Rect) {
	c0, c1 := c.columns(r.X, r.W)
	r0, r1 := c.rowRange(r.Y, r.H)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			ch, style := c.screen.GetCell(col, row)
			_, bg, _ := style.Decompose()
			if color, ok := c.resolve(r.Color, bg); ok {
				style = style.Foreground(color)
			}
			c.screen.SetCell(col, row, ch, style.Underline(true).Bold(true))
		}
	}
}

// drawText draws text at a canvas cell keeping the background of each cell
func (c *Canvas) drawText(text string, col, row int, color string) {
	if row < 0 {
		return
	}
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= c.cols {
			x, y := c.left+col, c.top+row
			_, style := c.screen.GetCell(x, y)
			_, bg, _ := style.Decompose()
			if fg, ok := c.resolve(color, bg); ok {
				style = style.Foreground(fg)
			}
			c.screen.SetCell(x, y, r, style)
		}
		col += w
	}
}

func (c *Canvas) drawTooltip(t tooltipBox) {
	if len(t.lines) == 0 {
		return
	}
	inner := 0
	for _, l := range t.lines {
		inner = max(inner, StringWidth(l.Text))
	}
	width := inner + 4
	height := len(t.lines) + 2

	screenW, screenH := c.screen.Size()
	x := c.left + int(math.Floor(t.x)) + 2
	y := c.top + c.row(t.y) + 1
	if x+width > screenW {
		x = max(screenW-width, 0)
	}
	if y+height > screenH {
		y = max(screenH-height, 0)
	}

	border := c.screen.TooltipBorderStyle()
	text := c.screen.TooltipStyle()

	c.screen.SetCell(x, y, '┌', border)
	c.screen.SetCell(x+width-1, y, '┐', border)
	c.screen.SetCell(x, y+height-1, '└', border)
	c.screen.SetCell(x+width-1, y+height-1, '┘', border)
	for col := x + 1; col < x+width-1; col++ {
		c.screen.SetCell(col, y, '─', border)
		c.screen.SetCell(col, y+height-1, '─', border)
	}

	for i, l := range t.lines {
		row := y + 1 + i
		c.screen.SetCell(x, row, '│', border)
		c.screen.SetCell(x+width-1, row, '│', border)
		for col := x + 1; col < x+width-1; col++ {
			c.screen.SetCell(col, row, ' ', text)
		}
		style := text
		if l.Color != "" {
			_, bg, _ := text.Decompose()
			if fg, ok := c.resolve(l.Color, bg); ok {
				style = style.Foreground(fg)
			}
		}
		c.screen.DrawString(x+2, row, l.Text, style)
	}
}

// resolve turns a color string into a terminal color, blending translucent
// colors over bg. ok is false for empty, transparent or invalid colors.
func (c *Canvas) resolve(color string, bg tcell.Color) (tcell.Color, bool) {
	if color == "" {
		return tcell.ColorDefault, false
	}
	p, seen := c.colors[color]
	if !seen {
		cc, alpha, err := theme.ParseColor(color)
		p = parsedColor{c: cc, alpha: alpha, ok: err == nil && alpha > 0}
		c.colors[color] = p
	}
	if !p.ok {
		return tcell.ColorDefault, false
	}
	return theme.Blend(p.c, p.alpha, bg), true
}

// columns returns the screen columns covered by [x, x+w), clipped to the
// canvas. An empty range has first > last.
func (c *Canvas) columns(x, w float64) (first, last int) {
	first = int(math.Floor(x / PixelsPerColumn))
	last = int(math.Ceil((x+w)/PixelsPerColumn)) - 1
	if last < first {
		last = first
	}
	first, last = max(first, 0), min(last, c.cols-1)
	return c.left + first, c.left + last
}

func (c *Canvas) rowRange(y, h float64) (first, last int) {
	first = int(math.Floor(y / PixelsPerRow))
	last = int(math.Ceil((y+h)/PixelsPerRow)) - 1
	if last < first {
		last = first
	}
	first, last = max(first, 0), min(last, c.rows-1)
	return c.top + first, c.top + last
}

// row returns the canvas row holding pixel y, or -1 outside the canvas
func (c *Canvas) row(y float64) int {
	r := int(math.Floor(y / PixelsPerRow))
	if r < 0 || r >= c.rows {
		return -1
	}
	return r
}
