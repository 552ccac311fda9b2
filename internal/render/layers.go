package render

import "sort"

// CommandKind tells what a layered command draws
type CommandKind int

const (
	KindRect CommandKind = iota
	KindStroke
	KindText
)

// Command is one layered draw command
type Command struct {
	Kind  CommandKind
	Layer int
	Rect  Rect
	Text  Text
}

// Layers buffers layered commands for one frame
type Layers struct {
	byLayer map[int][]Command
}

// Add appends a command to its layer
func (l *Layers) Add(cmd Command) {
	if l.byLayer == nil {
		l.byLayer = make(map[int][]Command)
	}
	l.byLayer[cmd.Layer] = append(l.byLayer[cmd.Layer], cmd)
}

// Each calls fn for every command, lowest layer first, in insertion order
// within a layer
func (l *Layers) Each(fn func(Command)) {
	keys := make([]int, 0, len(l.byLayer))
	for k := range l.byLayer {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		for _, cmd := range l.byLayer[k] {
			fn(cmd)
		}
	}
}

// Len returns the number of buffered commands
func (l *Layers) Len() int {
	n := 0
	for _, cmds := range l.byLayer {
		n += len(cmds)
	}
	return n
}

// Reset drops all commands and keeps the allocated layers
func (l *Layers) Reset() {
	for k := range l.byLayer {
		l.byLayer[k] = l.byLayer[k][:0]
	}
}
