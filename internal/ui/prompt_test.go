package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-flamechart/internal/history"
	"github.com/pstuifzand/tui-flamechart/internal/theme"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(p *Prompt, text string) {
	for _, r := range text {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestPromptEditing(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		keys  []tcell.Key
		want  string
	}{
		{"plain", "set tooltip none", nil, "set tooltip none"},
		{"backspace", "abc", []tcell.Key{tcell.KeyBackspace2}, "ab"},
		{"delete word", "set tooltip ", []tcell.Key{tcell.KeyCtrlW}, "set"},
		{"delete to start", "abc", []tcell.Key{tcell.KeyLeft, tcell.KeyCtrlU}, "c"},
		{"kill to end", "abc", []tcell.Key{tcell.KeyHome, tcell.KeyRight, tcell.KeyCtrlK}, "a"},
		{"delete under cursor", "abc", []tcell.Key{tcell.KeyHome, tcell.KeyDelete}, "bc"},
		{"wide runes", "中国", []tcell.Key{tcell.KeyBackspace2}, "中"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewCommandPrompt(nil)
			p.Start()
			typeText(p, tt.typed)
			for _, k := range tt.keys {
				_, res := p.HandleKey(key(k))
				require.Equal(t, PromptEditing, res)
			}
			assert.Equal(t, tt.want, p.Input())
		})
	}
}

func TestPromptInsertAtCursor(t *testing.T) {
	p := NewSearchPrompt(nil)
	p.Start()
	typeText(p, "ac")
	p.HandleKey(key(tcell.KeyLeft))
	typeText(p, "b")
	assert.Equal(t, "abc", p.Input())
}

func TestPromptSubmitAndCancel(t *testing.T) {
	p := NewCommandPrompt(nil)
	p.Start()
	typeText(p, " q ")
	input, res := p.HandleKey(key(tcell.KeyEnter))
	assert.Equal(t, PromptSubmit, res)
	assert.Equal(t, "q", input)
	assert.False(t, p.IsActive())

	p.Start()
	typeText(p, "x")
	_, res = p.HandleKey(key(tcell.KeyEscape))
	assert.Equal(t, PromptCancel, res)

	p.Start()
	_, res = p.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, PromptCancel, res, "backspace on empty input leaves the prompt")
}

func TestPromptHistory(t *testing.T) {
	p := NewCommandPrompt(nil)
	for _, cmd := range []string{"reset", "stack"} {
		p.Start()
		typeText(p, cmd)
		p.HandleKey(key(tcell.KeyEnter))
	}

	p.Start()
	typeText(p, "se")
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "stack", p.Input())
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "reset", p.Input())
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "reset", p.Input(), "oldest entry stays")
	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "stack", p.Input())
	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "se", p.Input(), "typed input comes back")
}

func TestHistoryPersists(t *testing.T) {
	m, err := history.NewManagerAt(t.TempDir())
	require.NoError(t, err)

	h, err := NewHistoryWithManager(2, m, "search.toml")
	require.NoError(t, err)
	h.Add("a")
	h.Add("b")
	h.Add("b")
	h.Add("c")
	assert.Equal(t, []string{"b", "c"}, h.GetAll())

	reloaded, err := NewHistoryWithManager(2, m, "search.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, reloaded.GetAll())
}

func TestPromptRender(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(20, 3)
	defer sim.Fini()
	screen := NewScreenFrom(sim, theme.Default())

	p := NewSearchPrompt(nil)
	p.Start()
	typeText(p, "gc")
	p.Render(screen, 2, "1/3")

	var line []rune
	for x := 0; x < 20; x++ {
		r, _ := screen.GetCell(x, 2)
		line = append(line, r)
	}
	assert.Equal(t, "/gc              1/3", string(line))

	_, style := screen.GetCell(3, 2)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "cursor after the input")
}
