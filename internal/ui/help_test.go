package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-flamechart/internal/theme"
)

type binding struct {
	key  rune
	desc string
}

func (b binding) GetKey() rune           { return b.key }
func (b binding) GetDescription() string { return b.desc }

type pending struct {
	binding
	seqs map[rune]string
}

func (p pending) GetSequences() map[rune]string { return p.seqs }

func TestHelpLines(t *testing.T) {
	h := NewHelpScreen()
	h.SetKeybindings([]KeyBindingInfo{
		binding{'h', "Pan left"},
		pending{binding{'z', "Zoom"}, map[rune]string{'o': "Zoom out", 'i': "Zoom in"}},
	})

	lines := h.Lines()
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "  h        Pan left", lines[2])
	assert.Equal(t, "  z        Zoom", lines[3])
	assert.Equal(t, "    zi     Zoom in", lines[4])
	assert.Equal(t, "    zo     Zoom out", lines[5])
}

func TestHelpRender(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(40, 12)
	defer sim.Fini()
	screen := NewScreenFrom(sim, theme.Default())

	h := NewHelpScreen()
	h.Render(screen)
	r, _ := screen.GetCell(2, 1)
	assert.Equal(t, ' ', r, "hidden help draws nothing")

	h.Toggle()
	h.Render(screen)
	r, _ = screen.GetCell(2, 1)
	assert.Equal(t, '┌', r)
	r, _ = screen.GetCell(37, 10)
	assert.Equal(t, '┘', r)

	h.Toggle()
	assert.False(t, h.IsVisible())
}
