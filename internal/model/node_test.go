package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelfTime(t *testing.T) {
	root := NewNode("root", "fn", 0, 100).AddChild(
		NewNode("a", "fn", 0, 30),
		NewNode("b", "fn", 40, 20),
	)

	assert.Equal(t, 50.0, root.SelfTime())
	assert.Equal(t, 30.0, root.Children[0].SelfTime())
}

func TestSelfTimeSkipsNilChildren(t *testing.T) {
	root := NewNode("root", "fn", 0, 100)
	root.Children = []*Node{nil, NewNode("a", "fn", 0, 30), nil}

	assert.Equal(t, 70.0, root.SelfTime())
}

func TestCountSkipsNil(t *testing.T) {
	nodes := []*Node{
		NewNode("a", "", 0, 1).AddChild(NewNode("b", "", 0, 1), nil),
		nil,
		NewNode("c", "", 1, 1),
	}

	assert.Equal(t, 3, Count(nodes))
}

func TestWalkOrder(t *testing.T) {
	nodes := []*Node{
		NewNode("a", "", 0, 10).AddChild(
			NewNode("a1", "", 0, 5).AddChild(NewNode("a11", "", 0, 1)),
			NewNode("a2", "", 5, 5),
		),
		NewNode("b", "", 10, 10),
	}

	var names []string
	var levels []int
	Walk(nodes, func(n *Node, level int) {
		names = append(names, n.Name)
		levels = append(levels, level)
	})

	assert.Equal(t, []string{"a", "a1", "a11", "a2", "b"}, names)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, levels)
}
