package cluster

import (
	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// Meta is a run of adjacent nodes that may merge at some zoom level
type Meta struct {
	Type    string
	Level   int
	Color   string
	Pattern string
	Nodes   []*flat.Node
}

type identity struct {
	typ     string
	level   int
	color   string
	pattern string
}

func identityOf(n *flat.Node) identity {
	return identity{
		typ:     n.Source.Type,
		level:   n.Level,
		color:   n.Source.Color,
		pattern: n.Source.Pattern,
	}
}

// Metaclusterize groups adjacent nodes with the same type and level. Nodes
// carrying explicit color or pattern hints only group with identical hints.
// Two separate runs of the same type are never coalesced.
func Metaclusterize(nodes []*flat.Node) []Meta {
	var metas []Meta
	var open identity

	for _, n := range nodes {
		if n == nil {
			continue
		}
		id := identityOf(n)
		if len(metas) > 0 && id == open {
			last := &metas[len(metas)-1]
			last.Nodes = append(last.Nodes, n)
			continue
		}

		open = id
		metas = append(metas, Meta{
			Type:    id.typ,
			Level:   id.level,
			Color:   id.color,
			Pattern: id.pattern,
			Nodes:   []*flat.Node{n},
		})
	}

	return metas
}
