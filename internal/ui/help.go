package ui

import (
	"fmt"
	"sort"
)

// KeyBindingInfo is a key binding as shown in the help screen
type KeyBindingInfo interface {
	GetKey() rune
	GetDescription() string
}

// PendingKeyBindingInfo is a prefix key waiting for a second key
type PendingKeyBindingInfo interface {
	KeyBindingInfo
	GetSequences() map[rune]string // second key to description
}

// HelpScreen is the `?` overlay listing key bindings
type HelpScreen struct {
	visible     bool
	keybindings []KeyBindingInfo
	scroll      int
}

// NewHelpScreen creates a hidden help screen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings sets the key bindings to list
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo) {
	h.keybindings = keybindings
}

// Toggle shows or hides the help screen
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
	h.scroll = 0
}

// Hide hides the help screen
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible reports whether the help screen is shown
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Scroll moves the listing by delta lines
func (h *HelpScreen) Scroll(delta int) {
	h.scroll = max(h.scroll+delta, 0)
}

// Lines returns the help text
func (h *HelpScreen) Lines() []string {
	lines := []string{"Keys:", ""}

	for _, kb := range h.keybindings {
		lines = append(lines, fmt.Sprintf("  %c        %s", kb.GetKey(), kb.GetDescription()))

		pkb, ok := kb.(PendingKeyBindingInfo)
		if !ok {
			continue
		}
		seqs := pkb.GetSequences()
		keys := make([]rune, 0, len(seqs))
		for k := range seqs {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("    %c%c     %s", pkb.GetKey(), k, seqs[k]))
		}
	}

	lines = append(lines,
		"",
		"Other keys:",
		"  Arrows   pan and scroll",
		"  Enter    focus the selected block",
		"  Escape   clear the selection",
		"  Mouse    click selects, drag pans, wheel zooms",
		"  Shift+wheel scrolls levels",
		"",
		"Commands:",
		"  :open <file>         load a dataset",
		"  :set <key> <value>   change a chart setting",
		"  :set                 list chart settings",
		"  :reset               fit the whole dataset",
		"  :q                   quit",
	)
	return lines
}

// Render draws the help box over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	width, height := screen.Size()
	for y := 0; y < height; y++ {
		screen.FillLine(0, y, contentStyle)
	}

	startX, startY := 2, 1
	boxWidth := width - 4
	boxHeight := height - 2
	if boxWidth < 10 || boxHeight < 5 {
		return
	}
	right := startX + boxWidth - 1
	bottom := startY + boxHeight - 1

	hline := func(y int, l, r rune) {
		screen.SetCell(startX, y, l, borderStyle)
		for x := startX + 1; x < right; x++ {
			screen.SetCell(x, y, '─', borderStyle)
		}
		screen.SetCell(right, y, r, borderStyle)
	}

	hline(startY, '┌', '┐')
	screen.SetCell(startX, startY+1, '│', borderStyle)
	screen.DrawStringLimited(startX+2, startY+1, " Help (? to close) ", boxWidth-4, titleStyle)
	screen.SetCell(right, startY+1, '│', borderStyle)
	hline(startY+2, '├', '┤')

	lines := h.Lines()
	h.scroll = min(h.scroll, max(len(lines)-(bottom-startY-3), 0))
	for y, i := startY+3, h.scroll; y < bottom; y, i = y+1, i+1 {
		screen.SetCell(startX, y, '│', borderStyle)
		if i < len(lines) {
			screen.DrawStringLimited(startX+2, y, lines[i], boxWidth-4, contentStyle)
		}
		screen.SetCell(right, y, '│', borderStyle)
	}
	hline(bottom, '└', '┘')
}
