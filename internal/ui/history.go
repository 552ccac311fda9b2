package ui

import (
	"log"

	"github.com/pstuifzand/tui-flamechart/internal/history"
)

// History keeps the previous entries of a prompt and lets Up/Down walk
// through them
type History struct {
	entries    []string
	index      int // -1 when not navigating
	maxEntries int
	pending    string // input typed before navigation started

	manager  *history.Manager
	filename string
}

// NewHistory creates an in-memory history
func NewHistory(maxEntries int) *History {
	return &History{index: -1, maxEntries: maxEntries}
}

// NewHistoryWithManager creates a history persisted as filename by manager.
// The returned history is usable even when loading fails.
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(maxEntries)
	h.manager, h.filename = manager, filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add records entry. Empty entries and repeats of the last entry are
// skipped.
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}
	h.Reset()
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	if err := h.Save(); err != nil {
		log.Printf("save history %s: %v", h.filename, err)
	}
}

// Save persists the entries when a manager is configured
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous steps back in history. The first call starts at the newest entry.
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.index < 0:
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	}
	return h.entries[h.index], true
}

// Next steps forward. Stepping past the newest entry returns the input that
// was typed before navigating.
func (h *History) Next() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		pending := h.pending
		h.Reset()
		return pending, true
	}
	return h.entries[h.index], true
}

// Reset stops navigating
func (h *History) Reset() {
	h.index = -1
	h.pending = ""
}

// SetTemporary stores the input to restore when navigating past the end
func (h *History) SetTemporary(input string) {
	h.pending = input
}

// GetAll returns a copy of the entries, oldest first
func (h *History) GetAll() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating reports whether Previous was called since the last Reset
func (h *History) IsNavigating() bool {
	return h.index >= 0
}
