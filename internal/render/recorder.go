package render

// DirectKind tells what a direct draw command drew
type DirectKind int

const (
	DirectRect DirectKind = iota
	DirectText
)

// DirectCommand is a FillRect or FillText call with the state it ran with
type DirectCommand struct {
	Kind       DirectKind
	X, Y, W, H float64
	Text       string
	FillStyle  string
	Font       string
	Align      Align
}

// Tooltip is the tooltip drawn during a frame
type Tooltip struct {
	Lines []TooltipLine
	X, Y  float64
}

// Frame is everything drawn between Clear and Flush
type Frame struct {
	Direct  []DirectCommand
	Layered []Command
	Tooltip *Tooltip
}

// Rects returns the layered rectangles of the frame
func (f Frame) Rects() []Rect {
	return f.filter(KindRect)
}

// Strokes returns the layered strokes of the frame
func (f Frame) Strokes() []Rect {
	return f.filter(KindStroke)
}

// Texts returns the layered texts of the frame
func (f Frame) Texts() []Text {
	var out []Text
	for _, cmd := range f.Layered {
		if cmd.Kind == KindText {
			out = append(out, cmd.Text)
		}
	}
	return out
}

func (f Frame) filter(kind CommandKind) []Rect {
	var out []Rect
	for _, cmd := range f.Layered {
		if cmd.Kind == kind {
			out = append(out, cmd.Rect)
		}
	}
	return out
}

// Recorder is a Surface that keeps the commands of the last flushed frame.
// It backs headless rendering and tests.
type Recorder struct {
	Patterns *PatternCache

	layers  Layers
	current Frame
	last    Frame
	flushes int

	fillStyle string
	font      string
	align     Align
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{Patterns: NewPatternCache(DefaultPatternCacheSize)}
}

func (r *Recorder) AddRect(rect Rect, layer int) {
	r.layers.Add(Command{Kind: KindRect, Layer: layer, Rect: rect})
}

func (r *Recorder) AddStroke(rect Rect, layer int) {
	r.layers.Add(Command{Kind: KindStroke, Layer: layer, Rect: rect})
}

func (r *Recorder) AddText(t Text, layer int) {
	r.layers.Add(Command{Kind: KindText, Layer: layer, Text: t})
}

func (r *Recorder) CreateCachedPattern(p Pattern) {
	r.Patterns.Ensure(p)
}

func (r *Recorder) SetFillStyle(color string) { r.fillStyle = color }

func (r *Recorder) SetFont(font string) { r.font = font }

func (r *Recorder) SetTextAlign(a Align) { r.align = a }

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.current.Direct = append(r.current.Direct, DirectCommand{
		Kind: DirectRect, X: x, Y: y, W: w, H: h,
		FillStyle: r.fillStyle, Font: r.font, Align: r.align,
	})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.current.Direct = append(r.current.Direct, DirectCommand{
		Kind: DirectText, X: x, Y: y, Text: text,
		FillStyle: r.fillStyle, Font: r.font, Align: r.align,
	})
}

func (r *Recorder) RenderTooltip(lines []TooltipLine, x, y float64) {
	r.current.Tooltip = &Tooltip{Lines: append([]TooltipLine(nil), lines...), X: x, Y: y}
}

// Clear starts a new frame
func (r *Recorder) Clear() {
	r.current = Frame{}
	r.layers.Reset()
}

// Flush composites the layers and publishes the frame as Last
func (r *Recorder) Flush() {
	r.layers.Each(func(cmd Command) {
		r.current.Layered = append(r.current.Layered, cmd)
	})
	r.last = r.current
	r.current = Frame{}
	r.layers.Reset()
	r.flushes++
}

// Last returns the last flushed frame
func (r *Recorder) Last() Frame {
	return r.last
}

// Flushes returns how many frames were flushed
func (r *Recorder) Flushes() int {
	return r.flushes
}
