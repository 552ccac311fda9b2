package app

import (
	"strconv"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// zoomStep is the zoom factor of one key press or wheel notch
const zoomStep = 1.5

// panColumns pans by n tenths of the chart width
func (a *App) panColumns(n int) {
	step := max(a.engine.View().Width()/10, 1)
	a.flame.Pan(float64(n)*step, 0)
}

// panPage pans by a fraction of the chart width
func (a *App) panPage(fraction float64) {
	a.flame.Pan(fraction*a.engine.View().Width(), 0)
}

// scrollLevels scrolls the flame chart by n rows
func (a *App) scrollLevels(n int) {
	row := a.engine.Styles().BlockHeight + 1
	a.flame.Pan(0, float64(n)*row)
}

func (a *App) zoomAt(x, factor float64) {
	if a.engine.ZoomAt(x, factor) {
		a.engine.Render()
	}
}

func (a *App) zoomCenter(factor float64) {
	a.zoomAt(a.engine.View().Width()/2, factor)
}

func (a *App) resetView() {
	a.engine.ResetView()
	a.engine.Render()
}

// focusSelection zooms to the selected node
func (a *App) focusSelection() {
	n := a.flame.Selected()
	if n == nil {
		a.SetStatus("Nothing selected")
		return
	}
	a.flame.SelectNode(n)
}

// selectNode selects and focuses n. It reports false for nil.
func (a *App) selectNode(n *flat.Node) bool {
	if n == nil {
		if a.search.Query() != "" || a.search.Err() != nil {
			a.SetStatus("No match")
		}
		return false
	}
	a.flame.SelectNode(n)
	return true
}

func (a *App) nodes() []*flat.Node {
	if tree := a.flame.Tree(); tree != nil {
		return tree.Nodes()
	}
	return nil
}

// startNode is the node navigation starts from: the selection, or the first
// root when nothing is selected. ok is false when it should not move.
func (a *App) startNode() (n *flat.Node, ok bool) {
	if n := a.flame.Selected(); n != nil {
		return n, true
	}
	if nodes := a.nodes(); len(nodes) > 0 {
		a.selectNode(nodes[0])
	}
	return nil, false
}

func (a *App) selectParent() {
	n, ok := a.startNode()
	if !ok {
		return
	}
	if n.Parent == nil {
		a.SetStatus("Already at the top level")
		return
	}
	a.selectNode(n.Parent)
}

func (a *App) selectRoot() {
	n, ok := a.startNode()
	if !ok {
		return
	}
	for n.Parent != nil {
		n = n.Parent
	}
	a.selectNode(n)
}

// selectFirstChild relies on pre-order: the first child directly follows
// its parent
func (a *App) selectFirstChild() {
	n, ok := a.startNode()
	if !ok {
		return
	}
	nodes := a.nodes()
	if next := n.Index + 1; next < len(nodes) && nodes[next].Parent == n {
		a.selectNode(nodes[next])
		return
	}
	a.SetStatus("No children")
}

// selectSibling moves dir siblings forward or backward
func (a *App) selectSibling(dir int) {
	n, ok := a.startNode()
	if !ok {
		return
	}
	nodes := a.nodes()
	for i := n.Index + dir; i >= 0 && i < len(nodes); i += dir {
		c := nodes[i]
		if c.Level < n.Level {
			break
		}
		if c.Level == n.Level && c.Parent == n.Parent {
			a.selectNode(c)
			return
		}
	}
	a.SetStatus("No more siblings")
}

// selectLongest selects the longest child of the selection, or the longest
// root without a selection. Repeating it follows the heaviest path down.
func (a *App) selectLongest() {
	parent := a.flame.Selected()
	var best *flat.Node
	for _, c := range a.nodes() {
		if c.Parent != parent {
			continue
		}
		if best == nil || c.Duration > best.Duration {
			best = c
		}
	}
	if best == nil {
		a.SetStatus("No children")
		return
	}
	a.selectNode(best)
}

// formatTime prints v with two more decimals than the time ruler
func (a *App) formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', a.engine.Grid().Accuracy()+2, 64)
}
