package cluster

import (
	"sort"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// Reclusterize returns the clusters to draw for the time window [from, to]
// at the current zoom. Only members inside the window are kept; a static
// cluster with none is skipped. What remains is copied when it is small at
// the current zoom and split again otherwise, so the result never shrinks
// as zoom grows.
//
// The result is freshly allocated, ordered by level then start, and s is
// left untouched, so the previous frame's output stays valid for hit-testing.
// Work is proportional to the clusters and members that intersect the window.
func Reclusterize(s *Static, zoom, from, to float64, th Thresholds) []Cluster {
	if s == nil {
		return nil
	}
	if to < from {
		from, to = to, from
	}

	var out []Cluster
	for l := range s.rows {
		r := &s.rows[l]
		i := sort.Search(len(r.order), func(k int) bool {
			return r.maxEnd[k] >= from
		})

		for ; i < len(r.order); i++ {
			idx := r.order[i]
			c := &s.clusters[idx]
			if c.Start > to {
				break
			}
			if c.End < from {
				continue
			}

			visible := s.visible(idx, from, to)
			if len(visible) == 0 {
				continue
			}
			whole := len(visible) == len(c.Nodes)
			lo, hi := c.Start, c.End
			if !whole {
				lo, hi = extent(visible)
			}

			switch {
			case len(visible) > 1 && (hi-lo)*zoom > th.minClusterSize():
				out = split(visible, zoom, th, out)
			case whole:
				out = append(out, c.clone())
			default:
				out = append(out, newCluster(visible, lo, hi))
			}
		}
	}

	return out
}

func extent(nodes []*flat.Node) (float64, float64) {
	lo, hi := bounds(nodes[0])
	for _, n := range nodes[1:] {
		nlo, nhi := bounds(n)
		lo, hi = min(lo, nlo), max(hi, nhi)
	}
	return lo, hi
}
