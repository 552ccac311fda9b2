package cluster

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

func evenRow(count int, dur float64) []*model.Node {
	root := model.NewNode("root", "fn", 0, float64(count)*dur)
	for i := 0; i < count; i++ {
		root.AddChild(model.NewNode(fmt.Sprintf("n%d", i), "fn", float64(i)*dur, dur))
	}
	return []*model.Node{root}
}

func TestReclusterizeRestrictsToWindow(t *testing.T) {
	s := Clusterize(metasFor(evenRow(10, 10)), 1, DefaultThresholds())
	require.Equal(t, 11, s.Len())

	out := Reclusterize(s, 1, 25, 48, DefaultThresholds())
	require.Len(t, out, 4)
	for _, c := range out {
		assert.True(t, c.Intersects(25, 48), "cluster %v outside window", names(c.Nodes))
	}

	assert.Equal(t, []string{"root"}, names(out[0].Nodes))
	assert.Equal(t, []string{"n2"}, names(out[1].Nodes))
	assert.Equal(t, []string{"n3"}, names(out[2].Nodes))
	assert.Equal(t, []string{"n4"}, names(out[3].Nodes))
}

func TestReclusterizeOutsideWindow(t *testing.T) {
	s := Clusterize(metasFor(evenRow(10, 10)), 1, DefaultThresholds())

	assert.Empty(t, Reclusterize(s, 1, 200, 300, DefaultThresholds()))
	assert.Empty(t, Reclusterize(s, 1, -50, -1, DefaultThresholds()))
}

func TestReclusterizeSwappedWindow(t *testing.T) {
	s := Clusterize(metasFor(evenRow(10, 10)), 1, DefaultThresholds())

	assert.Equal(t,
		Reclusterize(s, 1, 25, 48, DefaultThresholds()),
		Reclusterize(s, 1, 48, 25, DefaultThresholds()))
}

func TestReclusterizeNilStatic(t *testing.T) {
	assert.Nil(t, Reclusterize(nil, 1, 0, 10, DefaultThresholds()))
}

func TestReclusterizeSplitsAtHigherZoom(t *testing.T) {
	s := Clusterize(metasFor(twoChildren()), 0.005, DefaultThresholds())
	require.Equal(t, 2, s.Len())

	coarse := Reclusterize(s, 0.005, 0, 100, DefaultThresholds())
	require.Len(t, coarse, 2)
	assert.True(t, coarse[1].Merged())

	fine := Reclusterize(s, 2, 0, 100, DefaultThresholds())
	require.Len(t, fine, 3)
	assert.Equal(t, []string{"childA"}, names(fine[1].Nodes))
	assert.Equal(t, []string{"childB"}, names(fine[2].Nodes))
}

func TestReclusterizeDropsMembersOutsideWindow(t *testing.T) {
	s := Clusterize(metasFor(evenRow(100, 1)), 0.01, DefaultThresholds())
	require.Equal(t, 2, s.Len())

	out := Reclusterize(s, 10, 10, 20, DefaultThresholds())
	var leaves int
	for _, c := range out[1:] {
		for _, n := range c.Nodes {
			assert.True(t, n.End() >= 10 && n.Start <= 20, "%s outside window", n.Name())
			leaves++
		}
	}
	assert.Equal(t, 12, leaves)
}

func TestReclusterizeIdempotent(t *testing.T) {
	s := Clusterize(metasFor(leafRow(500)), 0.01, DefaultThresholds())
	before := append([]Cluster(nil), s.Clusters()...)

	first := Reclusterize(s, 0.7, 100, 600, DefaultThresholds())
	second := Reclusterize(s, 0.7, 100, 600, DefaultThresholds())

	assert.Equal(t, first, second)
	assert.Equal(t, before, s.Clusters())
}

func TestReclusterizeDoesNotShareWritableSlices(t *testing.T) {
	s := Clusterize(metasFor(leafRow(50)), 0.001, DefaultThresholds())
	out := Reclusterize(s, 0.001, 0, 1000, DefaultThresholds())
	require.NotEmpty(t, out)

	for i := range out {
		out[i].Nodes = append(out[i].Nodes, nil)
	}
	for _, c := range s.Clusters() {
		for _, n := range c.Nodes {
			assert.NotNil(t, n)
		}
	}
}

func TestReclusterizeMonotonicInZoom(t *testing.T) {
	th := DefaultThresholds()
	metas := metasFor(leafRow(400))
	s := Clusterize(metas, 0.01, th)

	capped := th
	capped.MaxClusterWidth = 3
	sc := Clusterize(metas, 0.01, capped)

	zooms := []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 20}
	prev, prevCapped := 0, 0
	for _, zoom := range zooms {
		n := len(Reclusterize(s, zoom, 150, 900, th))
		assert.GreaterOrEqual(t, n, prev, "zoom %g", zoom)
		prev = n

		nc := len(Reclusterize(sc, zoom, 150, 900, capped))
		assert.GreaterOrEqual(t, nc, prevCapped, "capped zoom %g", zoom)
		prevCapped = nc
	}
}

func TestReclusterizeOrderedByLevelThenStart(t *testing.T) {
	s := Clusterize(metasFor(leafRow(200)), 0.5, DefaultThresholds())
	out := Reclusterize(s, 0.5, 0, 1000, DefaultThresholds())

	for i := 1; i < len(out); i++ {
		if out[i].Level == out[i-1].Level {
			assert.LessOrEqual(t, out[i-1].Start, out[i].Start)
		} else {
			assert.Greater(t, out[i].Level, out[i-1].Level)
		}
	}
}

func TestReclusterizeWindowInsideGap(t *testing.T) {
	roots := []*model.Node{
		model.NewNode("root", "fn", 0, 1).AddChild(
			model.NewNode("a", "fn", 0, 0.4),
			model.NewNode("b", "fn", 0.6, 0.4),
		),
	}
	th := DefaultThresholds()
	s := Clusterize(metasFor(roots), 1, th)
	require.Equal(t, 2, s.Len())
	require.True(t, s.Clusters()[1].Merged())

	for _, zoom := range []float64{1, 2, 4, 100} {
		out := Reclusterize(s, zoom, 0.45, 0.55, th)
		require.Len(t, out, 1, "zoom %g", zoom)
		assert.Equal(t, []string{"root"}, names(out[0].Nodes))
	}

	out := Reclusterize(s, 1, 0.5, 0.7, th)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"b"}, names(out[1].Nodes))
	assert.Equal(t, 0.6, out[1].Start)
	assert.InDelta(t, 1.0, out[1].End, 1e-9)
}

func TestReclusterizeOutOfOrderMembers(t *testing.T) {
	roots := []*model.Node{
		model.NewNode("root", "fn", 0, 100).AddChild(
			model.NewNode("late", "fn", 90, 1),
			model.NewNode("early", "fn", 10, 1),
			model.NewNode("wide", "fn", 5, -4),
			model.NewNode("mid", "fn", 50, 1),
		),
	}
	th := DefaultThresholds()
	th.StickDistance = 1000
	s := Clusterize(metasFor(roots), 0.001, th)
	require.Equal(t, 2, s.Len())

	var got []string
	for _, c := range Reclusterize(s, 0.001, 0, 12, th)[1:] {
		got = append(got, names(c.Nodes)...)
	}
	assert.ElementsMatch(t, []string{"early", "wide"}, got)
}

func TestReclusterizeMonotonicRandomTrees(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	th := DefaultThresholds()

	for iter := 0; iter < 100; iter++ {
		root := model.NewNode("root", "fn", 0, 1000)
		for i := 0; i < 3+rnd.Intn(30); i++ {
			start := rnd.Float64() * 1000
			child := model.NewNode(fmt.Sprintf("c%d", i), "fn", start, rnd.Float64()*20)
			for j := 0; j < rnd.Intn(4); j++ {
				child.AddChild(model.NewNode(fmt.Sprintf("c%d.%d", i, j), "fn", start+rnd.Float64()*10, rnd.Float64()*5))
			}
			root.AddChild(child)
		}

		base := 0.05 + rnd.Float64()
		s := Clusterize(metasFor([]*model.Node{root}), base, th)
		from := rnd.Float64() * 1000
		to := from + rnd.Float64()*200

		prev := 0
		for zoom := base; zoom <= base*4096; zoom *= 1.5 {
			n := len(Reclusterize(s, zoom, from, to, th))
			require.GreaterOrEqual(t, n, prev, "tree %d zoom %g window [%g, %g]", iter, zoom, from, to)
			prev = n
		}
	}
}
