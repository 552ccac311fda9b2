// Package flat turns a recursive timing tree into an ordered node sequence
package flat

import (
	"cmp"
	"slices"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

// Node is one input node annotated with its depth and absolute bounds
type Node struct {
	Source   *model.Node
	Parent   *Node
	Level    int
	Index    int // position in pre-order
	Start    float64
	Duration float64
}

// End returns Start + Duration
func (n *Node) End() float64 {
	return n.Start + n.Duration
}

// Name returns the source node's name
func (n *Node) Name() string {
	return n.Source.Name
}

// Type returns the source node's type
func (n *Node) Type() string {
	return n.Source.Type
}

// Tree is the flattened dataset
type Tree struct {
	nodes    []*Node
	roots    []*model.Node
	min      float64
	max      float64
	maxLevel int
}

// Build flattens roots in depth-first pre-order and computes the time bound
// in the same pass. Nodes outside their parent's range are kept as they are.
func Build(roots []*model.Node) *Tree {
	t := &Tree{roots: roots}
	first := true

	var visit func(children []*model.Node, parent *Node, level int)
	visit = func(children []*model.Node, parent *Node, level int) {
		for _, src := range children {
			if src == nil {
				continue
			}
			n := &Node{
				Source:   src,
				Parent:   parent,
				Level:    level,
				Index:    len(t.nodes),
				Start:    src.Start,
				Duration: src.Duration,
			}
			t.nodes = append(t.nodes, n)

			lo, hi := n.Start, n.End()
			if hi < lo {
				lo, hi = hi, lo
			}
			if first {
				t.min, t.max = lo, hi
				first = false
			} else {
				t.min = min(t.min, lo)
				t.max = max(t.max, hi)
			}
			t.maxLevel = max(t.maxLevel, level)

			visit(src.Children, n, level+1)
		}
	}
	visit(roots, nil, 0)

	return t
}

// Nodes returns the pre-order sequence. Callers must not modify it.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Roots returns the input the tree was built from
func (t *Tree) Roots() []*model.Node {
	return t.roots
}

// Len returns the number of flattened nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// MinMax returns the smallest start and the largest end, (0, 0) when empty
func (t *Tree) MinMax() (float64, float64) {
	return t.min, t.max
}

// MaxLevel returns the deepest level present in the tree
func (t *Tree) MaxLevel() int {
	return t.maxLevel
}

// RowOrder returns a copy of the nodes ordered by level, then by start time.
// Ties keep pre-order, so siblings stay in input order.
func (t *Tree) RowOrder() []*Node {
	rows := slices.Clone(t.nodes)
	slices.SortStableFunc(rows, func(a, b *Node) int {
		if c := cmp.Compare(a.Level, b.Level); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})
	return rows
}
