package app

import (
	"github.com/pstuifzand/tui-flamechart/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding
func (kb *KeyBinding) GetKey() rune {
	return kb.Key
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// PendingKeyBinding represents a pending key (like 'g' or 'z') that waits for a second key
type PendingKeyBinding struct {
	Prefix      rune                // The first key (e.g., 'g' or 'z')
	Description string              // Description of what the pending key does
	Sequences   map[rune]KeyBinding // Map of second key to keybinding
}

// GetKey returns the prefix key
func (pkb *PendingKeyBinding) GetKey() rune {
	return pkb.Prefix
}

// GetDescription returns the description
func (pkb *PendingKeyBinding) GetDescription() string {
	return pkb.Description
}

// GetSequences returns a map of second key to description for display in help
func (pkb *PendingKeyBinding) GetSequences() map[rune]string {
	result := make(map[rune]string)
	for key, binding := range pkb.Sequences {
		result[key] = binding.Description
	}
	return result
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'h',
			Description: "Pan left",
			Handler: func(app *App) {
				app.panColumns(-1)
			},
		},
		{
			Key:         'l',
			Description: "Pan right",
			Handler: func(app *App) {
				app.panColumns(1)
			},
		},
		{
			Key:         'H',
			Description: "Pan left by half a screen",
			Handler: func(app *App) {
				app.panPage(-0.5)
			},
		},
		{
			Key:         'L',
			Description: "Pan right by half a screen",
			Handler: func(app *App) {
				app.panPage(0.5)
			},
		},
		{
			Key:         'j',
			Description: "Scroll down one level",
			Handler: func(app *App) {
				app.scrollLevels(1)
			},
		},
		{
			Key:         'k',
			Description: "Scroll up one level",
			Handler: func(app *App) {
				app.scrollLevels(-1)
			},
		},
		{
			Key:         '+',
			Description: "Zoom in",
			Handler: func(app *App) {
				app.zoomCenter(zoomStep)
			},
		},
		{
			Key:         '=',
			Description: "Zoom in",
			Handler: func(app *App) {
				app.zoomCenter(zoomStep)
			},
		},
		{
			Key:         '-',
			Description: "Zoom out",
			Handler: func(app *App) {
				app.zoomCenter(1 / zoomStep)
			},
		},
		{
			Key:         '0',
			Description: "Fit the whole dataset",
			Handler: func(app *App) {
				app.resetView()
			},
		},
		{
			Key:         'p',
			Description: "Select parent",
			Handler: func(app *App) {
				app.selectParent()
			},
		},
		{
			Key:         'c',
			Description: "Select first child",
			Handler: func(app *App) {
				app.selectFirstChild()
			},
		},
		{
			Key:         ']',
			Description: "Select next sibling",
			Handler: func(app *App) {
				app.selectSibling(1)
			},
		},
		{
			Key:         '[',
			Description: "Select previous sibling",
			Handler: func(app *App) {
				app.selectSibling(-1)
			},
		},
		{
			Key:         '/',
			Description: "Search nodes",
			Handler: func(app *App) {
				app.search.Start()
			},
		},
		{
			Key:         'n',
			Description: "Next search match",
			Handler: func(app *App) {
				app.selectNode(app.search.Next())
			},
		},
		{
			Key:         'N',
			Description: "Previous search match",
			Handler: func(app *App) {
				app.selectNode(app.search.Prev())
			},
		},
		{
			Key:         's',
			Description: "Toggle stacking upwards",
			Handler: func(app *App) {
				app.toggleSetting("stack_upwards")
			},
		},
		{
			Key:         ':',
			Description: "Command mode",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}

// InitializePendingKeybindings sets up the two key sequences
func (a *App) InitializePendingKeybindings() []PendingKeyBinding {
	return []PendingKeyBinding{
		{
			Prefix:      'z',
			Description: "Zoom commands",
			Sequences: map[rune]KeyBinding{
				'z': {
					Key:         'z',
					Description: "Zoom to the selected block",
					Handler: func(app *App) {
						app.focusSelection()
					},
				},
				'i': {
					Key:         'i',
					Description: "Zoom in twice as far",
					Handler: func(app *App) {
						app.zoomCenter(zoomStep * zoomStep)
					},
				},
				'o': {
					Key:         'o',
					Description: "Zoom out twice as far",
					Handler: func(app *App) {
						app.zoomCenter(1 / (zoomStep * zoomStep))
					},
				},
				'r': {
					Key:         'r',
					Description: "Fit the whole dataset",
					Handler: func(app *App) {
						app.resetView()
					},
				},
			},
		},
		{
			Prefix:      'g',
			Description: "Go to commands",
			Sequences: map[rune]KeyBinding{
				'g': {
					Key:         'g',
					Description: "Scroll to the top level",
					Handler: func(app *App) {
						app.flame.ScrollToLevel(0)
						app.engine.Render()
					},
				},
				'r': {
					Key:         'r',
					Description: "Select the root of the selection",
					Handler: func(app *App) {
						app.selectRoot()
					},
				},
				'l': {
					Key:         'l',
					Description: "Select the longest child",
					Handler: func(app *App) {
						app.selectLongest()
					},
				},
			},
		},
	}
}

// helpEntries lists the bindings in the order the help screen shows them
func (a *App) helpEntries() []ui.KeyBindingInfo {
	entries := make([]ui.KeyBindingInfo, 0, len(a.keybindings)+len(a.pendingKeybindings))
	for i := range a.keybindings {
		entries = append(entries, &a.keybindings[i])
	}
	for i := range a.pendingKeybindings {
		entries = append(entries, &a.pendingKeybindings[i])
	}
	return entries
}

// GetKeybindingByKey returns a keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keybindings {
		if a.keybindings[i].Key == key {
			return &a.keybindings[i]
		}
	}
	return nil
}

// GetPendingKeyBindingByPrefix returns a pending keybinding for a prefix key
func (a *App) GetPendingKeyBindingByPrefix(prefix rune) *PendingKeyBinding {
	for i := range a.pendingKeybindings {
		if a.pendingKeybindings[i].Prefix == prefix {
			return &a.pendingKeybindings[i]
		}
	}
	return nil
}

// IsPendingKeyPrefix checks if a key is a pending key prefix
func (a *App) IsPendingKeyPrefix(key rune) bool {
	return a.GetPendingKeyBindingByPrefix(key) != nil
}
