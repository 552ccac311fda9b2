package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// FilterExpr represents a filter expression that can match nodes
type FilterExpr interface {
	Matches(node *flat.Node) bool
	String() string // For debug output
}

// Quantifier represents how many ancestors must match a filter
type Quantifier int

const (
	QuantifierSome Quantifier = iota // At least one must match (default)
	QuantifierAll                    // All must match
	QuantifierNone                   // None must match
)

func (q Quantifier) String() string {
	switch q {
	case QuantifierSome:
		return "some"
	case QuantifierAll:
		return "all"
	case QuantifierNone:
		return "none"
	default:
		return "unknown"
	}
}

// TextExpr matches nodes whose name contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(node *flat.Node) bool {
	return strings.Contains(strings.ToLower(node.Name()), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches nodes whose name fuzzy-matches the search term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: strings.ToLower(term)}
}

func (e *FuzzyExpr) Matches(node *flat.Node) bool {
	return fuzzy.MatchFold(e.term, node.Name())
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches nodes whose name matches a regular expression pattern
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %v", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(node *flat.Node) bool {
	return e.re.MatchString(node.Name())
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// TypeExpr matches nodes of a type (case-insensitive, exact)
type TypeExpr struct {
	typ string
}

func NewTypeExpr(typ string) *TypeExpr {
	return &TypeExpr{typ: typ}
}

func (e *TypeExpr) Matches(node *flat.Node) bool {
	return strings.EqualFold(node.Type(), e.typ)
}

func (e *TypeExpr) String() string {
	return fmt.Sprintf("type(%q)", e.typ)
}

// AlwaysMatchExpr matches all nodes (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(node *flat.Node) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both left and right match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(node *flat.Node) bool {
	return e.left.Matches(node) && e.right.Matches(node)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("(and %s %s)", e.left.String(), e.right.String())
}

// OrExpr matches if either left or right matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(node *flat.Node) bool {
	return e.left.Matches(node) || e.right.Matches(node)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("(or %s %s)", e.left.String(), e.right.String())
}

// NotExpr matches if the wrapped expression does not match
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(node *flat.Node) bool {
	return !e.expr.Matches(node)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr.String())
}

// CountFilter compares the depth or the number of children of a node
type CountFilter struct {
	filterType FilterType
	op         ComparisonOp
	value      int
}

func NewCountFilter(filterType FilterType, op ComparisonOp, value string) (*CountFilter, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %s", filterType, value)
	}
	return &CountFilter{filterType: filterType, op: op, value: n}, nil
}

func (e *CountFilter) Matches(node *flat.Node) bool {
	var actual int
	switch e.filterType {
	case FilterTypeDepth:
		actual = node.Level
	case FilterTypeChildren:
		actual = len(node.Source.Children)
	}
	return compare(float64(actual), e.op, float64(e.value))
}

func (e *CountFilter) String() string {
	name := "depth"
	if e.filterType == FilterTypeChildren {
		name = "children"
	}
	return fmt.Sprintf("%s(%s%d)", name, e.op, e.value)
}

// TimeFilter compares the duration, self time or start of a node
type TimeFilter struct {
	filterType FilterType
	op         ComparisonOp
	value      float64
}

func NewTimeFilter(filterType FilterType, op ComparisonOp, value string) (*TimeFilter, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %s", filterType, value)
	}
	return &TimeFilter{filterType: filterType, op: op, value: v}, nil
}

func (e *TimeFilter) Matches(node *flat.Node) bool {
	var actual float64
	switch e.filterType {
	case FilterTypeDuration:
		actual = node.Duration
	case FilterTypeSelf:
		actual = node.Source.SelfTime()
	case FilterTypeStart:
		actual = node.Start
	}
	return compare(actual, e.op, e.value)
}

func (e *TimeFilter) String() string {
	return fmt.Sprintf("%s(%s%g)", e.filterType, e.op, e.value)
}

// ParentFilter matches nodes whose parent matches the inner filter
type ParentFilter struct {
	inner FilterExpr
}

func NewParentFilter(inner FilterExpr) *ParentFilter {
	return &ParentFilter{inner: inner}
}

func (e *ParentFilter) Matches(node *flat.Node) bool {
	if node.Parent == nil {
		return false
	}
	return e.inner.Matches(node.Parent)
}

func (e *ParentFilter) String() string {
	return fmt.Sprintf("parent(%s)", e.inner.String())
}

// AncestorFilter matches nodes based on their ancestors (parent* in search syntax)
type AncestorFilter struct {
	inner      FilterExpr
	quantifier Quantifier
}

func NewAncestorFilter(inner FilterExpr, quantifier Quantifier) *AncestorFilter {
	return &AncestorFilter{inner: inner, quantifier: quantifier}
}

func (e *AncestorFilter) Matches(node *flat.Node) bool {
	matched, total := 0, 0
	for current := node.Parent; current != nil; current = current.Parent {
		total++
		if e.inner.Matches(current) {
			matched++
		}
	}

	switch e.quantifier {
	case QuantifierSome:
		return matched > 0
	case QuantifierAll:
		// vacuously true for roots
		return matched == total
	case QuantifierNone:
		return matched == 0
	default:
		return false
	}
}

func (e *AncestorFilter) String() string {
	if e.quantifier == QuantifierSome {
		return fmt.Sprintf("ancestor(%s)", e.inner.String())
	}
	return fmt.Sprintf("ancestor(%s,%s)", e.quantifier.String(), e.inner.String())
}

func compare(actual float64, op ComparisonOp, expected float64) bool {
	switch op {
	case OpEqual:
		return actual == expected
	case OpNotEqual:
		return actual != expected
	case OpGreater:
		return actual > expected
	case OpGreaterEqual:
		return actual >= expected
	case OpLess:
		return actual < expected
	case OpLessEqual:
		return actual <= expected
	default:
		return false
	}
}
