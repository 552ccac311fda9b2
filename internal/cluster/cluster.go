// Package cluster merges flat timing nodes into drawable rectangles whose
// number is proportional to the screen, not to the dataset.
//
// The work is split in three passes. Metaclusterize groups adjacent nodes
// that share a rendering identity and row; it does not depend on zoom.
// Clusterize projects every group at a reference zoom and merges members
// that would be narrower than a pixel. Reclusterize runs per frame and only
// looks at the clusters that intersect the visible window.
package cluster

import (
	"slices"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// Thresholds are pixel distances that decide whether two nodes merge
type Thresholds struct {
	// StickDistance is the largest projected gap between two merged nodes
	StickDistance float64
	// MinBlockSize is the projected width under which a node may merge
	MinBlockSize float64
	// MaxClusterWidth force-closes a cluster before it grows wider. 0 disables it.
	MaxClusterWidth float64
}

// DefaultThresholds returns the thresholds used when nothing is configured
func DefaultThresholds() Thresholds {
	return Thresholds{
		StickDistance:   0.25,
		MinBlockSize:    1,
		MaxClusterWidth: 0,
	}
}

// minClusterSize is the projected width under which a static cluster is
// reused as-is by Reclusterize
func (th Thresholds) minClusterSize() float64 {
	return th.MinBlockSize*2 + th.StickDistance
}

// sticks reports whether next may join the cluster that ends with last
func (th Thresholds) sticks(last, next *flat.Node, zoom float64) bool {
	gap := (next.Start - last.End()) * zoom
	return gap < th.StickDistance &&
		last.Duration*zoom < th.MinBlockSize &&
		next.Duration*zoom < th.MinBlockSize
}

// fits reports whether a cluster spanning [lo, hi] stays under MaxClusterWidth
func (th Thresholds) fits(lo, hi, zoom float64) bool {
	if th.MaxClusterWidth <= 0 {
		return true
	}
	return (hi-lo)*zoom <= th.MaxClusterWidth
}

// Cluster is one drawable rectangle covering one or more nodes
type Cluster struct {
	Type    string
	Level   int
	Start   float64
	End     float64
	Nodes   []*flat.Node
	Color   string
	Pattern string
	Badge   string
}

// Duration returns End - Start
func (c *Cluster) Duration() float64 {
	return c.End - c.Start
}

// Merged reports whether the cluster stands for more than one node
func (c *Cluster) Merged() bool {
	return len(c.Nodes) > 1
}

// Intersects reports whether [Start, End] overlaps [from, to]
func (c *Cluster) Intersects(from, to float64) bool {
	return c.End >= from && c.Start <= to
}

// clone copies the cluster header. The node slice is clipped so appending to
// the copy can never write into the original's backing array.
func (c *Cluster) clone() Cluster {
	cp := *c
	cp.Nodes = slices.Clip(c.Nodes)
	return cp
}

// bounds returns the time range of a node; a negative duration widens the
// range to the left instead of inverting it
func bounds(n *flat.Node) (float64, float64) {
	lo, hi := n.Start, n.End()
	if hi < lo {
		return hi, lo
	}
	return lo, hi
}

func intersects(n *flat.Node, from, to float64) bool {
	lo, hi := bounds(n)
	return hi >= from && lo <= to
}

func newCluster(nodes []*flat.Node, lo, hi float64) Cluster {
	first := nodes[0]
	c := Cluster{
		Type:    first.Source.Type,
		Level:   first.Level,
		Start:   lo,
		End:     hi,
		Nodes:   nodes,
		Color:   first.Source.Color,
		Pattern: first.Source.Pattern,
	}
	for _, n := range nodes {
		if n.Source.Badge != "" {
			c.Badge = n.Source.Badge
			break
		}
	}
	return c
}

// split walks nodes in order and appends the clusters produced by the
// contiguous merge rule to dst
func split(nodes []*flat.Node, zoom float64, th Thresholds, dst []Cluster) []Cluster {
	if len(nodes) == 0 {
		return dst
	}

	begin := 0
	lo, hi := bounds(nodes[0])
	for i := 1; i < len(nodes); i++ {
		n := nodes[i]
		nlo, nhi := bounds(n)
		mlo, mhi := min(lo, nlo), max(hi, nhi)

		if th.sticks(nodes[i-1], n, zoom) && th.fits(mlo, mhi, zoom) {
			lo, hi = mlo, mhi
			continue
		}

		dst = append(dst, newCluster(nodes[begin:i:i], lo, hi))
		begin = i
		lo, hi = nlo, nhi
	}

	end := len(nodes)
	return append(dst, newCluster(nodes[begin:end:end], lo, hi))
}
