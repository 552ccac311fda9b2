package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
	"github.com/pstuifzand/tui-flamechart/internal/search"
)

// Search is the `/` bar. Results update while typing; Enter keeps them for
// n and N.
type Search struct {
	prompt  *Prompt
	nodes   []*flat.Node
	results *search.Results
	err     error
}

// NewSearch creates a search bar using h for its history
func NewSearch(h *History) *Search {
	return &Search{prompt: NewSearchPrompt(h)}
}

// SetNodes replaces the searched nodes and drops the results
func (s *Search) SetNodes(nodes []*flat.Node) {
	s.nodes = nodes
	s.results = nil
	s.err = nil
}

// Start opens the bar with an empty query
func (s *Search) Start() {
	s.prompt.Start()
	s.results = nil
	s.err = nil
}

// IsActive reports whether the bar takes keys
func (s *Search) IsActive() bool {
	return s.prompt.IsActive()
}

// HandleKey edits the query and refreshes the results
func (s *Search) HandleKey(ev *tcell.EventKey) PromptResult {
	before := s.prompt.Input()
	query, res := s.prompt.HandleKey(ev)

	switch res {
	case PromptCancel:
		s.results = nil
		s.err = nil
	case PromptSubmit:
		s.update(query)
	default:
		if q := s.prompt.Input(); q != before {
			s.update(q)
		}
	}
	return res
}

func (s *Search) update(query string) {
	nodes, err := search.Search(s.nodes, query)
	s.err = err
	if err != nil || query == "" {
		s.results = nil
		return
	}
	s.results = search.NewResults(query, nodes)
}

// Query returns the current query
func (s *Search) Query() string {
	return s.prompt.Input()
}

// Results returns the current results, nil without a query
func (s *Search) Results() *search.Results {
	return s.results
}

// Err returns the parse error of the query
func (s *Search) Err() error {
	return s.err
}

// Current returns the match under the cursor
func (s *Search) Current() *flat.Node {
	return s.results.Current()
}

// Next moves to the next match
func (s *Search) Next() *flat.Node {
	if s.results == nil {
		return nil
	}
	return s.results.Next()
}

// Prev moves to the previous match
func (s *Search) Prev() *flat.Node {
	if s.results == nil {
		return nil
	}
	return s.results.Prev()
}

// Status describes the results, for example "2/5"
func (s *Search) Status() string {
	switch {
	case s.err != nil:
		return "error: " + s.err.Error()
	case s.results == nil:
		return ""
	case s.results.Len() == 0:
		return "no matches"
	default:
		return fmt.Sprintf("%d/%d", s.results.Index()+1, s.results.Len())
	}
}

// Render draws the bar on row y
func (s *Search) Render(screen *Screen, y int) {
	status := s.Status()
	if StringWidth(status) > screen.GetWidth()/2 {
		status = Ellipsize(status, screen.GetWidth()/2)
	}
	s.prompt.Render(screen, y, status)
}
