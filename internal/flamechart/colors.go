package flamechart

import (
	"log"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pstuifzand/tui-flamechart/internal/theme"
)

const (
	defaultHueStep = 27
	startHue       = 180
	saturation     = 0.3
	lightness      = 0.7
)

// ColorTable hands out a stable color per node type. Configured colors win;
// unknown types get the next hue of a rotating palette.
type ColorTable struct {
	hue   float64
	step  float64
	user  map[string]string
	cache map[string]string
}

// NewColorTable creates a table with the default palette
func NewColorTable() *ColorTable {
	return &ColorTable{
		hue:   startHue,
		step:  defaultHueStep,
		cache: make(map[string]string),
	}
}

// SetHueStep changes the palette rotation for types not yet colored
func (t *ColorTable) SetHueStep(step float64) {
	if step > 0 {
		t.step = step
	}
}

// SetUserColors replaces the configured type colors and forgets assigned
// colors
func (t *ColorTable) SetUserColors(colors map[string]string) {
	t.user = colors
	t.Reset()
}

// Get returns the color of a node of type typ. A color set on the node
// itself is returned unchanged.
func (t *ColorTable) Get(typ, hint string) string {
	if hint != "" {
		return hint
	}
	if c, ok := t.cache[typ]; ok {
		return c
	}

	if raw, ok := t.user[typ]; ok {
		c, alpha, err := theme.ParseColor(raw)
		if err == nil {
			color := raw
			if alpha >= 1 {
				color = c.Hex()
			}
			t.cache[typ] = color
			return color
		}
		log.Printf("color for type %q: %v", typ, err)
	}

	t.hue = math.Mod(t.hue+t.step, 360)
	color := colorful.Hsl(t.hue, saturation, lightness).Clamped().Hex()
	t.cache[typ] = color
	return color
}

// Len returns the number of types colored so far
func (t *ColorTable) Len() int {
	return len(t.cache)
}

// Reset forgets assigned colors and restarts the palette
func (t *ColorTable) Reset() {
	t.hue = startHue
	clear(t.cache)
}
