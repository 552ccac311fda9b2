package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	// Chart area
	ChartBackground tcell.Color
	BlockText       tcell.Color
	GridLine        tcell.Color
	Selection       tcell.Color

	// Time ruler
	RulerBackground tcell.Color
	RulerText       tcell.Color

	// Tooltip box
	TooltipBackground tcell.Color
	TooltipText       tcell.Color
	TooltipBorder     tcell.Color

	// Search bar colors
	SearchLabel       tcell.Color
	SearchText        tcell.Color
	SearchResultCount tcell.Color

	// Command line colors
	CommandPrompt tcell.Color
	CommandText   tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusMessage tcell.Color
	StatusError   tcell.Color

	// Header colors
	HeaderTitle tcell.Color
}

// fields maps the TOML key of every color to its field
func (c *Colors) fields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"chart_background":    &c.ChartBackground,
		"block_text":          &c.BlockText,
		"grid_line":           &c.GridLine,
		"selection":           &c.Selection,
		"ruler_background":    &c.RulerBackground,
		"ruler_text":          &c.RulerText,
		"tooltip_background":  &c.TooltipBackground,
		"tooltip_text":        &c.TooltipText,
		"tooltip_border":      &c.TooltipBorder,
		"search_label":        &c.SearchLabel,
		"search_text":         &c.SearchText,
		"search_result_count": &c.SearchResultCount,
		"command_prompt":      &c.CommandPrompt,
		"command_text":        &c.CommandText,
		"help_background":     &c.HelpBackground,
		"help_border":         &c.HelpBorder,
		"help_title":          &c.HelpTitle,
		"help_content":        &c.HelpContent,
		"status_mode":         &c.StatusMode,
		"status_message":      &c.StatusMessage,
		"status_error":        &c.StatusError,
		"header_title":        &c.HeaderTitle,
	}
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults. Chart elements
// that need a visible color get basic ANSI colors.
func Default() *Theme {
	t := &Theme{Name: "default"}
	for _, c := range t.Colors.fields() {
		*c = tcell.ColorDefault
	}
	t.Colors.BlockText = tcell.ColorBlack
	t.Colors.GridLine = tcell.ColorGray
	t.Colors.Selection = tcell.ColorGreen
	t.Colors.TooltipBackground = tcell.ColorWhite
	t.Colors.TooltipText = tcell.ColorBlack
	t.Colors.StatusError = tcell.ColorRed
	return t
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			ChartBackground:   HexToColor("#1a1b26"), // Dark background
			BlockText:         HexToColor("#1a1b26"), // Dark on light blocks
			GridLine:          HexToColor("#3b4261"), // Muted blue-gray
			Selection:         HexToColor("#9ece6a"), // Green
			RulerBackground:   HexToColor("#16161e"), // Darker background
			RulerText:         HexToColor("#a9b1d6"), // Gray-blue
			TooltipBackground: HexToColor("#24283b"), // Storm background
			TooltipText:       HexToColor("#c0caf5"), // Light gray-blue
			TooltipBorder:     HexToColor("#7dcfff"), // Cyan
			SearchLabel:       HexToColor("#bb9af7"), // Magenta
			SearchText:        HexToColor("#c0caf5"), // Light gray-blue
			SearchResultCount: HexToColor("#9ece6a"), // Green
			CommandPrompt:     HexToColor("#bb9af7"), // Magenta
			CommandText:       HexToColor("#c0caf5"), // Light gray-blue
			HelpBackground:    HexToColor("#1a1b26"), // Dark background
			HelpBorder:        HexToColor("#7dcfff"), // Cyan
			HelpTitle:         HexToColor("#bb9af7"), // Magenta
			HelpContent:       HexToColor("#c0caf5"), // Light gray-blue
			StatusMode:        HexToColor("#bb9af7"), // Magenta
			StatusMessage:     HexToColor("#9ece6a"), // Green
			StatusError:       HexToColor("#f7768e"), // Red
			HeaderTitle:       HexToColor("#bb9af7"), // Magenta
		},
	}
}
