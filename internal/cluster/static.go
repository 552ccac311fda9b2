package cluster

import (
	"cmp"
	"slices"
	"sort"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// Static is the clusterization of a dataset at a reference zoom. It is never
// modified after Clusterize returns.
type Static struct {
	clusters   []Cluster
	spans      []span
	rows       []row
	zoom       float64
	thresholds Thresholds
}

// row indexes the clusters of one level by start time. maxEnd[i] is the
// largest end among order[:i+1], which keeps it sorted even when the input
// has overlapping or out-of-order nodes.
type row struct {
	order  []int
	maxEnd []float64
}

// span indexes the members of one merged cluster. lastEnd[i] is the largest
// end among Nodes[:i+1] and firstStart[i] the smallest start among Nodes[i:],
// so both stay sorted whatever order the members come in.
type span struct {
	lastEnd    []float64
	firstStart []float64
}

func newSpan(nodes []*flat.Node) span {
	sp := span{
		lastEnd:    make([]float64, len(nodes)),
		firstStart: make([]float64, len(nodes)),
	}
	for i, n := range nodes {
		_, hi := bounds(n)
		if i > 0 {
			hi = max(hi, sp.lastEnd[i-1])
		}
		sp.lastEnd[i] = hi
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		lo, _ := bounds(nodes[i])
		if i < len(nodes)-1 {
			lo = min(lo, sp.firstStart[i+1])
		}
		sp.firstStart[i] = lo
	}
	return sp
}

// candidates returns the member range [a, b) outside of which no member can
// intersect [from, to]
func (sp span) candidates(from, to float64) (int, int) {
	n := len(sp.lastEnd)
	a := sort.Search(n, func(k int) bool { return sp.lastEnd[k] >= from })
	b := sort.Search(n, func(k int) bool { return sp.firstStart[k] > to })
	return a, max(a, b)
}

// Clusterize merges the members of every meta-cluster whose projected width
// at zoom falls under the thresholds. Every member ends up in exactly one
// cluster.
func Clusterize(metas []Meta, zoom float64, th Thresholds) *Static {
	s := &Static{
		zoom:       zoom,
		thresholds: th,
	}

	for _, m := range metas {
		s.clusters = split(m.Nodes, zoom, th, s.clusters)
	}
	s.index()

	return s
}

func (s *Static) index() {
	levels := 0
	for i := range s.clusters {
		levels = max(levels, s.clusters[i].Level+1)
	}
	s.rows = make([]row, levels)
	s.spans = make([]span, len(s.clusters))

	for i := range s.clusters {
		r := &s.rows[s.clusters[i].Level]
		r.order = append(r.order, i)
		if s.clusters[i].Merged() {
			s.spans[i] = newSpan(s.clusters[i].Nodes)
		}
	}

	for l := range s.rows {
		r := &s.rows[l]
		slices.SortStableFunc(r.order, func(a, b int) int {
			return cmp.Compare(s.clusters[a].Start, s.clusters[b].Start)
		})
		r.maxEnd = make([]float64, len(r.order))
		for i, idx := range r.order {
			end := s.clusters[idx].End
			if i > 0 {
				end = max(end, r.maxEnd[i-1])
			}
			r.maxEnd[i] = end
		}
	}
}

// visible returns the members of cluster i that intersect [from, to]. The
// result is either a clipped subslice of the members or a new slice.
func (s *Static) visible(i int, from, to float64) []*flat.Node {
	c := &s.clusters[i]
	if !c.Merged() {
		return c.Nodes
	}

	a, b := s.spans[i].candidates(from, to)
	nodes := c.Nodes[a:b:b]
	for k, n := range nodes {
		if intersects(n, from, to) {
			continue
		}
		out := make([]*flat.Node, k, len(nodes))
		copy(out, nodes[:k])
		for _, n := range nodes[k+1:] {
			if intersects(n, from, to) {
				out = append(out, n)
			}
		}
		return out
	}
	return nodes
}

// Clusters returns the static clusters in meta-cluster order. Callers must
// treat the result as read-only.
func (s *Static) Clusters() []Cluster {
	return s.clusters
}

// Len returns the number of static clusters
func (s *Static) Len() int {
	return len(s.clusters)
}

// Zoom returns the reference zoom the clusters were computed at
func (s *Static) Zoom() float64 {
	return s.zoom
}

// Thresholds returns the thresholds the clusters were computed with
func (s *Static) Thresholds() Thresholds {
	return s.thresholds
}
