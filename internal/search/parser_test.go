package search

import (
	"fmt"
	"testing"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
	"github.com/pstuifzand/tui-flamechart/internal/model"
)

func TestTokenizer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []TokenType
	}{
		{
			input:  "query",
			tokens: []TokenType{TokenText, TokenEOF},
		},
		{
			input:  "query render",
			tokens: []TokenType{TokenText, TokenText, TokenEOF},
		},
		{
			input:  "query | render",
			tokens: []TokenType{TokenText, TokenOr, TokenText, TokenEOF},
		},
		{
			input:  "query +render",
			tokens: []TokenType{TokenText, TokenAnd, TokenText, TokenEOF},
		},
		{
			input:  "-query",
			tokens: []TokenType{TokenNot, TokenText, TokenEOF},
		},
		{
			input:  "d:>2",
			tokens: []TokenType{TokenFilter, TokenEOF},
		},
		{
			input:  "dur:>=2.5 type:db",
			tokens: []TokenType{TokenFilter, TokenFilter, TokenEOF},
		},
		{
			input:  "(query | render)",
			tokens: []TokenType{TokenLParen, TokenText, TokenOr, TokenText, TokenRParen, TokenEOF},
		},
		{
			input:  `"multi word"`,
			tokens: []TokenType{TokenText, TokenEOF},
		},
		{
			input:  "~qry",
			tokens: []TokenType{TokenFilter, TokenEOF},
		},
		{
			input:  "/^get.*/",
			tokens: []TokenType{TokenRegex, TokenEOF},
		},
		{
			input:  "-p:root",
			tokens: []TokenType{TokenFilter, TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokenizer := NewTokenizer(tt.input)
			tokens := tokenizer.AllTokens()

			if len(tokens) != len(tt.tokens) {
				t.Fatalf("expected %d tokens, got %d", len(tt.tokens), len(tokens))
			}

			for i, expectedType := range tt.tokens {
				if tokens[i].Type != expectedType {
					t.Errorf("token %d: expected %d, got %d", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestParser(t *testing.T) {
	tests := []struct {
		query       string
		shouldError bool
		exprType    string
	}{
		{query: "query", exprType: "*search.TextExpr"},
		{query: "query render", exprType: "*search.AndExpr"},
		{query: "query | render", exprType: "*search.OrExpr"},
		{query: "-query", exprType: "*search.NotExpr"},
		{query: "d:>2", exprType: "*search.CountFilter"},
		{query: "children:>0", exprType: "*search.CountFilter"},
		{query: "dur:>10", exprType: "*search.TimeFilter"},
		{query: "type:db", exprType: "*search.TypeExpr"},
		{query: "~qry", exprType: "*search.FuzzyExpr"},
		{query: "p:root", exprType: "*search.ParentFilter"},
		{query: "a:root", exprType: "*search.AncestorFilter"},
		{query: "(query | render) d:>2", exprType: "*search.AndExpr"},
		{query: "", exprType: "*search.AlwaysMatchExpr"},
		{query: "(query", shouldError: true},
		{query: "d:>", shouldError: true},
		{query: "dur:>abc", shouldError: true},
		{query: "/[/", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			expr, err := ParseQuery(tt.query)

			if tt.shouldError && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tt.shouldError && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if err != nil {
				return
			}

			if got := fmt.Sprintf("%T", expr); got != tt.exprType {
				t.Errorf("expected type %s, got %s", tt.exprType, got)
			}
		})
	}
}

// sampleTree builds
//
//	main (task, 0-100)
//	  query (db, 0-40)
//	    parse (cpu, 0-5)
//	  render (cpu, 50-30)
func sampleTree() *flat.Tree {
	main := model.NewNode("main", "task", 0, 100).AddChild(
		model.NewNode("query", "db", 0, 40).AddChild(
			model.NewNode("parse", "cpu", 0, 5),
		),
		model.NewNode("render", "cpu", 50, 30),
	)
	return flat.Build([]*model.Node{main})
}

func names(nodes []*flat.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func TestFilters(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		query    string
		expected []string
	}{
		{"d:0", []string{"main"}},
		{"d:>=1", []string{"query", "parse", "render"}},
		{"type:cpu", []string{"parse", "render"}},
		{"type:CPU d:1", []string{"render"}},
		{"dur:>30", []string{"main", "query"}},
		{"self:35", []string{"query"}},
		{"start:>=50", []string{"render"}},
		{"children:0", []string{"parse", "render"}},
		{"p:main", []string{"query", "render"}},
		{"-p:main", []string{"main", "parse"}},
		{"a:main type:cpu", []string{"parse", "render"}},
		{"+a:main", []string{"main", "query", "render"}},
		{"-a:query", []string{"main", "query", "render"}},
		{"query | render", []string{"query", "render"}},
		{"-type:cpu", []string{"main", "query"}},
		{"/^r/", []string{"render"}},
		{"~rndr", []string{"render"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Search(tree.Nodes(), tt.query)
			if err != nil {
				t.Fatalf("search error: %v", err)
			}
			gotNames := names(got)
			if fmt.Sprint(gotNames) != fmt.Sprint(tt.expected) {
				t.Errorf("query %q: expected %v, got %v", tt.query, tt.expected, gotNames)
			}
		})
	}
}

func TestSearchRanksSingleWord(t *testing.T) {
	tree := sampleTree()

	got, err := Search(tree.Nodes(), "re")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if fmt.Sprint(names(got)) != "[parse render]" {
		t.Errorf("expected closest match first, got %v", names(got))
	}

	got, err = Search(tree.Nodes(), "   ")
	if err != nil || got != nil {
		t.Errorf("empty query should return nothing, got %v, %v", got, err)
	}
}

func TestResultsCursor(t *testing.T) {
	tree := sampleTree()
	r := NewResults("cpu", tree.Nodes()[2:])

	if r.Len() != 2 || r.Current().Name() != "parse" {
		t.Fatalf("unexpected start state: %d %v", r.Len(), r.Current())
	}
	if r.Next().Name() != "render" || r.Next().Name() != "parse" {
		t.Errorf("Next should wrap around")
	}
	if r.Prev().Name() != "render" || r.Index() != 1 {
		t.Errorf("Prev should wrap around")
	}

	var empty *Results
	if empty.Len() != 0 {
		t.Errorf("nil results should be empty")
	}
	if NewResults("x", nil).Next() != nil {
		t.Errorf("Next on empty results should return nil")
	}
}
