package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor converts a hex color string (#RRGGBB or #RGB) to tcell.Color
func HexToColor(hexColor string) tcell.Color {
	c, ok := parseHex(hexColor)
	if !ok {
		return tcell.ColorDefault
	}
	return ToTcell(c)
}

func parseHex(hexColor string) (colorful.Color, bool) {
	hexColor = strings.TrimPrefix(hexColor, "#")

	// Handle short form (#RGB)
	if len(hexColor) == 3 {
		hexColor = string(hexColor[0]) + string(hexColor[0]) +
			string(hexColor[1]) + string(hexColor[1]) +
			string(hexColor[2]) + string(hexColor[2])
	}

	if len(hexColor) != 6 {
		return colorful.Color{}, false
	}

	c, err := colorful.Hex("#" + hexColor)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ToTcell converts a go-colorful color to a tcell color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// FromTcell converts a tcell color to go-colorful. ok is false for the
// terminal default color.
func FromTcell(c tcell.Color) (colorful.Color, bool) {
	if c == tcell.ColorDefault {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

// ToHex formats a tcell color as #rrggbb, or "" for the terminal default
func ToHex(c tcell.Color) string {
	cc, ok := FromTcell(c)
	if !ok {
		return ""
	}
	return cc.Hex()
}

// ParseColor parses #RRGGBB, #RGB, rgb(r,g,b), rgba(r,g,b,a), a color name
// or "transparent". alpha is 0 for transparent and 1 for opaque colors.
func ParseColor(colorStr string) (c colorful.Color, alpha float64, err error) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))

	switch {
	case colorStr == "transparent":
		return colorful.Color{}, 0, nil

	case strings.HasPrefix(colorStr, "#"):
		c, ok := parseHex(colorStr)
		if !ok {
			return colorful.Color{}, 0, fmt.Errorf("invalid hex color %q", colorStr)
		}
		return c, 1, nil

	case strings.HasPrefix(colorStr, "rgb(") || strings.HasPrefix(colorStr, "rgba("):
		if !strings.HasSuffix(colorStr, ")") {
			return colorful.Color{}, 0, fmt.Errorf("invalid color %q", colorStr)
		}
		inner := colorStr[strings.IndexByte(colorStr, '(')+1 : len(colorStr)-1]
		parts := strings.Split(inner, ",")
		withAlpha := strings.HasPrefix(colorStr, "rgba(")
		if (!withAlpha && len(parts) != 3) || (withAlpha && len(parts) != 4) {
			return colorful.Color{}, 0, fmt.Errorf("invalid color %q", colorStr)
		}

		var rgb [3]float64
		for i := range rgb {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return colorful.Color{}, 0, fmt.Errorf("invalid color component %q", parts[i])
			}
			rgb[i] = float64(v) / 255
		}

		alpha = 1
		if withAlpha {
			a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
			if err != nil || a < 0 || a > 1 {
				return colorful.Color{}, 0, fmt.Errorf("invalid alpha %q", parts[3])
			}
			alpha = a
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, alpha, nil
	}

	if named, ok := tcell.ColorNames[colorStr]; ok {
		if c, ok := FromTcell(named); ok {
			return c, 1, nil
		}
	}

	return colorful.Color{}, 0, fmt.Errorf("unknown color %q", colorStr)
}

// ParseColorString handles multiple color formats: #RRGGBB, #RGB, rgb(r,g,b),
// rgba(r,g,b,a) and color names. Alpha is ignored.
func ParseColorString(colorStr string) tcell.Color {
	c, alpha, err := ParseColor(colorStr)
	if err != nil || alpha == 0 {
		return tcell.ColorDefault
	}
	return ToTcell(c)
}

// Blend composes a color with alpha over a background
func Blend(c colorful.Color, alpha float64, background tcell.Color) tcell.Color {
	if alpha >= 1 {
		return ToTcell(c)
	}
	bg, ok := FromTcell(background)
	if !ok {
		bg = colorful.Color{}
	}
	return ToTcell(bg.BlendRgb(c, alpha))
}

// ColorToStyle creates a style with a specific foreground color
func ColorToStyle(fgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor)
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
