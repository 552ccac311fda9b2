// Package search finds chart nodes with a small query language: bare words
// match names, ~term fuzzy-matches, /re/ is a regular expression, and
// filters such as type:db, d:>2, dur:>=10, self:<1, start:>100, children:0,
// p:query and a:query narrow the result. Terms combine with implicit AND,
// | for OR and - for NOT.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// Search returns the nodes matching query. A query that is a single bare
// word is ranked by fuzzy distance, best first; any other query returns its
// matches in time order.
func Search(nodes []*flat.Node, query string) ([]*flat.Node, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	tokens := NewTokenizer(query).AllTokens()
	if len(tokens) == 2 && tokens[0].Type == TokenText {
		return rank(nodes, tokens[0].Value), nil
	}

	expr, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	var matches []*flat.Node
	for _, n := range nodes {
		if expr.Matches(n) {
			matches = append(matches, n)
		}
	}
	sortByTime(matches)
	return matches, nil
}

func rank(nodes []*flat.Node, term string) []*flat.Node {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name()
	}

	ranks := fuzzy.RankFindFold(term, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		a, b := nodes[ranks[i].OriginalIndex], nodes[ranks[j].OriginalIndex]
		return lessByTime(a, b)
	})

	out := make([]*flat.Node, len(ranks))
	for i, r := range ranks {
		out[i] = nodes[r.OriginalIndex]
	}
	return out
}

func sortByTime(nodes []*flat.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return lessByTime(nodes[i], nodes[j])
	})
}

func lessByTime(a, b *flat.Node) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.Level < b.Level
}

// Results is a search result list with a cursor
type Results struct {
	Query string
	Nodes []*flat.Node
	index int
}

// NewResults wraps nodes with the cursor on the first match
func NewResults(query string, nodes []*flat.Node) *Results {
	return &Results{Query: query, Nodes: nodes}
}

// Len returns the number of matches
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Nodes)
}

// Index returns the cursor position
func (r *Results) Index() int {
	return r.index
}

// Current returns the node under the cursor, or nil when there are no matches
func (r *Results) Current() *flat.Node {
	if r.Len() == 0 {
		return nil
	}
	return r.Nodes[r.index]
}

// Next moves the cursor forward, wrapping around
func (r *Results) Next() *flat.Node {
	if r.Len() == 0 {
		return nil
	}
	r.index = (r.index + 1) % len(r.Nodes)
	return r.Current()
}

// Prev moves the cursor back, wrapping around
func (r *Results) Prev() *flat.Node {
	if r.Len() == 0 {
		return nil
	}
	r.index = (r.index - 1 + len(r.Nodes)) % len(r.Nodes)
	return r.Current()
}
