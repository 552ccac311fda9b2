package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// PromptResult tells the caller what a key did to the prompt
type PromptResult int

const (
	PromptEditing PromptResult = iota
	PromptSubmit
	PromptCancel
)

const promptHistorySize = 50

// Prompt is a single line editor shown in the status row, used for `:`
// commands and `/` searches
type Prompt struct {
	prefix  string
	search  bool
	active  bool
	input   []rune
	cursor  int
	history *History
}

// NewCommandPrompt creates the `:` prompt
func NewCommandPrompt(h *History) *Prompt {
	return newPrompt(":", false, h)
}

// NewSearchPrompt creates the `/` prompt
func NewSearchPrompt(h *History) *Prompt {
	return newPrompt("/", true, h)
}

func newPrompt(prefix string, search bool, h *History) *Prompt {
	if h == nil {
		h = NewHistory(promptHistorySize)
	}
	return &Prompt{prefix: prefix, search: search, history: h}
}

// Start activates the prompt with empty input
func (p *Prompt) Start() {
	p.active = true
	p.input = p.input[:0]
	p.cursor = 0
	p.history.Reset()
}

// Stop deactivates the prompt
func (p *Prompt) Stop() {
	p.active = false
}

// IsActive reports whether the prompt takes keys
func (p *Prompt) IsActive() bool {
	return p.active
}

// Input returns the trimmed input
func (p *Prompt) Input() string {
	return strings.TrimSpace(string(p.input))
}

// SetInput replaces the input and moves the cursor to its end
func (p *Prompt) SetInput(s string) {
	p.input = []rune(s)
	p.cursor = len(p.input)
}

// History returns the prompt history
func (p *Prompt) History() *History {
	return p.history
}

// HandleKey edits the input. On submit the trimmed input is returned and
// added to the history.
func (p *Prompt) HandleKey(ev *tcell.EventKey) (string, PromptResult) {
	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return "", PromptCancel
	case tcell.KeyEnter:
		input := p.Input()
		p.history.Add(input)
		p.Stop()
		return input, PromptSubmit
	case tcell.KeyUp:
		if !p.history.IsNavigating() {
			p.history.SetTemporary(string(p.input))
		}
		if prev, ok := p.history.Previous(); ok {
			p.SetInput(prev)
		}
	case tcell.KeyDown:
		if next, ok := p.history.Next(); ok {
			p.SetInput(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) == 0 {
			p.Stop()
			return "", PromptCancel
		}
		if p.cursor > 0 {
			p.delete(p.cursor-1, p.cursor)
		}
	case tcell.KeyDelete:
		if p.cursor < len(p.input) {
			p.delete(p.cursor, p.cursor+1)
		}
	case tcell.KeyCtrlW:
		p.delete(prevWord(p.input, p.cursor), p.cursor)
	case tcell.KeyCtrlU:
		p.delete(0, p.cursor)
	case tcell.KeyCtrlK:
		p.input = p.input[:p.cursor]
	case tcell.KeyLeft:
		p.cursor = max(p.cursor-1, 0)
	case tcell.KeyRight:
		p.cursor = min(p.cursor+1, len(p.input))
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.input)
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			p.wordMotion(ev.Rune())
			break
		}
		p.input = append(p.input[:p.cursor], append([]rune{ev.Rune()}, p.input[p.cursor:]...)...)
		p.cursor++
	}
	return "", PromptEditing
}

func (p *Prompt) wordMotion(r rune) {
	switch r {
	case 'b':
		p.cursor = prevWord(p.input, p.cursor)
	case 'f':
		p.cursor = nextWord(p.input, p.cursor)
	}
}

func (p *Prompt) delete(from, to int) {
	if from >= to {
		return
	}
	p.input = append(p.input[:from], p.input[to:]...)
	p.cursor = from
}

// Render draws the prompt on row y. status is right aligned, for example
// the number of search results.
func (p *Prompt) Render(screen *Screen, y int, status string) {
	if !p.active {
		return
	}

	promptStyle, textStyle := screen.CommandPromptStyle(), screen.CommandTextStyle()
	if p.search {
		promptStyle, textStyle = screen.SearchLabelStyle(), screen.SearchTextStyle()
	}
	cursorStyle := screen.CursorStyle()
	width := screen.GetWidth()

	screen.FillLine(0, y, textStyle)
	x := screen.DrawString(0, y, p.prefix, promptStyle)

	avail := width - x - StringWidth(status) - 1
	if status != "" {
		screen.DrawString(width-StringWidth(status), y, status, screen.SearchResultCountStyle())
	}

	// scroll so the cursor stays visible
	start := 0
	for start < p.cursor && StringWidth(string(p.input[start:p.cursor])) >= avail {
		start++
	}

	for i := start; i <= len(p.input); i++ {
		r, style := ' ', textStyle
		if i < len(p.input) {
			r = p.input[i]
		}
		if i == p.cursor {
			style = cursorStyle
		}
		w := max(RuneWidth(r), 1)
		if x+w > width-StringWidth(status) {
			break
		}
		screen.SetCell(x, y, r, style)
		x += w
	}
}
