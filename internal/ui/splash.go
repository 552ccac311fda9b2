package ui

import "fmt"

// splashCommands are listed under the title, key left and text right
var splashCommands = [][2]string{
	{":open <file>", "load a .json, .yaml, .toml or .txt dataset"},
	{":theme <name>", "switch colors"},
	{"?", "show keys"},
	{":q", "quit"},
}

// SplashScreen is shown instead of the chart while no dataset is loaded
type SplashScreen struct {
	visible bool
}

// NewSplashScreen creates a hidden splash screen
func NewSplashScreen() *SplashScreen {
	return &SplashScreen{}
}

func (s *SplashScreen) Show()           { s.visible = true }
func (s *SplashScreen) Hide()           { s.visible = false }
func (s *SplashScreen) IsVisible() bool { return s.visible }

// GetContent returns the lines of the splash screen. The first two are the
// heading, the rest list commands.
func (s *SplashScreen) GetContent() []string {
	keyWidth := 0
	for _, c := range splashCommands {
		keyWidth = max(keyWidth, StringWidth(c[0]))
	}

	lines := []string{"~~ TUI Flamechart ~~", "a terminal flame chart for timing trees", ""}
	for _, c := range splashCommands {
		lines = append(lines, fmt.Sprintf("%-*s  %s", keyWidth, c[0], c[1]))
	}
	return append(lines, "", "Type :open filename to get started")
}

// Render centers the content above the status line
func (s *SplashScreen) Render(screen *Screen) {
	if !s.visible {
		return
	}

	width, height := screen.Size()
	rows := height - 1
	for y := range rows {
		screen.FillLine(0, y, screen.ChartStyle())
	}

	content := s.GetContent()
	blockWidth := 0
	for _, line := range content {
		blockWidth = max(blockWidth, StringWidth(line))
	}
	x := max((width-blockWidth)/2, 0)
	top := max((rows-len(content))/2, 0)

	for i, line := range content {
		y := top + i
		if y >= rows {
			break
		}
		style := screen.StatusMessageStyle()
		if i < 2 {
			style = screen.HeaderStyle()
		}
		screen.DrawStringLimited(x, y, line, width-x, style)
	}
}
