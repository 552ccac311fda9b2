package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-flamechart/internal/theme"
)

func TestSplashScreenVisibility(t *testing.T) {
	splash := NewSplashScreen()
	assert.False(t, splash.IsVisible())

	splash.Show()
	assert.True(t, splash.IsVisible())

	splash.Hide()
	assert.False(t, splash.IsVisible())
}

func TestSplashScreenContent(t *testing.T) {
	content := NewSplashScreen().GetContent()
	joined := strings.Join(content, "\n")
	for _, want := range []string{"TUI Flamechart", ":open <file>", ".txt", ":q"} {
		assert.Contains(t, joined, want)
	}

	// descriptions line up in one column
	col := strings.Index(content[3], "load")
	assert.Equal(t, col, strings.Index(content[6], "quit"))
}

func TestSplashScreenRender(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(80, 20)
	t.Cleanup(sim.Fini)
	screen := NewScreenFrom(sim, theme.Default())

	splash := NewSplashScreen()
	splash.Render(screen)
	r, _ := screen.GetCell(40, 5)
	assert.Equal(t, ' ', r, "hidden splash draws nothing")

	splash.Show()
	splash.Render(screen)

	var rows []string
	for y := range 20 {
		var b strings.Builder
		for x := range 80 {
			r, _ := screen.GetCell(x, y)
			b.WriteRune(r)
		}
		rows = append(rows, b.String())
	}
	assert.Contains(t, strings.Join(rows, "\n"), "~~ TUI Flamechart ~~")
}
