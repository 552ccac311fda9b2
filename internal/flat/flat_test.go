package flat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

func sampleTree() []*model.Node {
	return []*model.Node{
		model.NewNode("main", "fn", 0, 100).AddChild(
			model.NewNode("parse", "fn", 0, 40).AddChild(
				model.NewNode("lex", "io", 0, 10),
			),
			model.NewNode("eval", "fn", 40, 60),
		),
		model.NewNode("gc", "gc", 100, 20),
	}
}

func TestBuildPreOrder(t *testing.T) {
	tree := Build(sampleTree())

	var names []string
	for _, n := range tree.Nodes() {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"main", "parse", "lex", "eval", "gc"}, names)
	assert.Equal(t, 5, tree.Len())
	assert.Equal(t, 2, tree.MaxLevel())
}

func TestBuildLevelsFollowParents(t *testing.T) {
	tree := Build(sampleTree())
	require.Equal(t, model.Count(sampleTree()), tree.Len())

	for i, n := range tree.Nodes() {
		assert.Equal(t, i, n.Index)
		if n.Parent == nil {
			assert.Equal(t, 0, n.Level, "root %s", n.Name())
			continue
		}
		assert.Equal(t, n.Parent.Level+1, n.Level, "node %s", n.Name())
	}
}

func TestBuildMinMax(t *testing.T) {
	tree := Build(sampleTree())
	lo, hi := tree.MinMax()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 120.0, hi)
}

func TestBuildEmpty(t *testing.T) {
	tree := Build(nil)
	lo, hi := tree.MinMax()
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
	assert.Empty(t, tree.RowOrder())
}

func TestBuildKeepsMalformedNodes(t *testing.T) {
	roots := []*model.Node{
		model.NewNode("parent", "fn", 10, 10).AddChild(
			model.NewNode("escapes", "fn", 50, 30),
			model.NewNode("negative", "fn", 5, -4),
			model.NewNode("escapes", "fn", 50, 30),
		),
	}

	tree := Build(roots)
	require.Equal(t, 4, tree.Len())

	lo, hi := tree.MinMax()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 80.0, hi)

	neg := tree.Nodes()[2]
	assert.Equal(t, -4.0, neg.Duration)
	assert.Equal(t, 1.0, neg.End())
}

func TestRowOrder(t *testing.T) {
	tree := Build(sampleTree())

	var names []string
	for _, n := range tree.RowOrder() {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"main", "gc", "parse", "eval", "lex"}, names)

	// pre-order sequence is untouched
	assert.Equal(t, "parse", tree.Nodes()[1].Name())
}
