// Package model contains the timing tree that the flame chart visualizes
package model

// Node represents a single timed interval in the input tree
type Node struct {
	Name     string  `json:"name" yaml:"name" toml:"name"`
	Type     string  `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Start    float64 `json:"start" yaml:"start" toml:"start"`
	Duration float64 `json:"duration" yaml:"duration" toml:"duration"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`

	// Rendering hints
	Color   string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Badge   string `json:"badge,omitempty" yaml:"badge,omitempty" toml:"badge,omitempty"`
}

// Dataset is the document loaded from disk
type Dataset struct {
	Title string  `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Units string  `json:"units,omitempty" yaml:"units,omitempty" toml:"units,omitempty"`
	Nodes []*Node `json:"nodes" yaml:"nodes" toml:"nodes"`
}

// NewNode creates a node without children
func NewNode(name, typ string, start, duration float64) *Node {
	return &Node{
		Name:     name,
		Type:     typ,
		Start:    start,
		Duration: duration,
	}
}

// AddChild appends a child node and returns the parent for chaining
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// End returns the end time of the node
func (n *Node) End() float64 {
	return n.Start + n.Duration
}

// SelfTime returns the duration not covered by the direct children
func (n *Node) SelfTime() float64 {
	self := n.Duration
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		self -= child.Duration
	}
	return self
}

// Count returns the number of nodes in the subtrees rooted at nodes
func Count(nodes []*Node) int {
	count := 0
	for _, n := range nodes {
		if n == nil {
			continue
		}
		count += 1 + Count(n.Children)
	}
	return count
}

// Walk visits every node depth-first, in input order
func Walk(nodes []*Node, fn func(n *Node, level int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, level int, fn func(n *Node, level int)) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		fn(n, level)
		walk(n.Children, level+1, fn)
	}
}
