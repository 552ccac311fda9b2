package search

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenFilter
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// FilterType names a key:criteria filter
type FilterType string

const (
	FilterTypeText     FilterType = "text"
	FilterTypeDepth    FilterType = "d"
	FilterTypeType     FilterType = "type"
	FilterTypeDuration FilterType = "dur"
	FilterTypeSelf     FilterType = "self"
	FilterTypeStart    FilterType = "start"
	FilterTypeChildren FilterType = "children"
	FilterTypeParent   FilterType = "p"
	FilterTypeAncestor FilterType = "a"
)

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

// Longest first, so ">=" is not read as ">".
var comparisonOps = []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual}

// filterAliases maps the long filter names onto their short form
var filterAliases = map[string]FilterType{
	"parent":   FilterTypeParent,
	"ancestor": FilterTypeAncestor,
}

var punctuation = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenOr,
}

// Tokenizer splits a search query into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// AllTokens returns the remaining tokens, ending with TokenEOF
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	c := t.input[t.pos]
	if typ, ok := punctuation[c]; ok {
		t.pos++
		return Token{Type: typ, Value: string(c)}
	}

	switch c {
	case '+':
		// +p: and +a: carry the "all ancestors" quantifier
		if t.filterAt(t.pos+1, true) {
			return t.scanFilter()
		}
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		if t.filterAt(t.pos+1, false) {
			return t.scanFilter()
		}
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return t.scanQuoted()
	case '~':
		return t.scanFuzzy()
	case '/':
		return t.scanRegex()
	}

	if t.filterAt(t.pos, false) {
		return t.scanFilter()
	}
	return t.scanWord()
}

// filterAt reports whether a filter key followed by ':' starts at i. With
// quantified set, only the filters that accept a + prefix count.
func (t *Tokenizer) filterAt(i int, quantified bool) bool {
	if i >= len(t.input) || !isAlpha(t.input[i]) {
		return false
	}
	end := i
	for end < len(t.input) && isAlphaNumeric(t.input[end]) {
		end++
	}
	key := t.input[i:end]
	if end < len(t.input) && t.input[end] == '*' {
		end++
	}
	if end >= len(t.input) || t.input[end] != ':' {
		return false
	}
	if !quantified {
		return true
	}
	typ := FilterType(key)
	if alias, ok := filterAliases[key]; ok {
		typ = alias
	}
	return typ == FilterTypeParent || typ == FilterTypeAncestor
}

// scanFilter reads [+-]key[*]:criteria. The criteria run to the next space,
// | or closing paren.
func (t *Tokenizer) scanFilter() Token {
	start := t.pos
	t.pos = strings.IndexByte(t.input[start:], ':') + start + 1
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		if isSpace(c) || c == '|' || c == ')' {
			break
		}
		t.pos++
	}
	return Token{Type: TokenFilter, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) scanQuoted() Token {
	t.pos++
	end := strings.IndexByte(t.input[t.pos:], '"')
	if end < 0 {
		value := t.input[t.pos:]
		t.pos = len(t.input)
		return Token{Type: TokenText, Value: value}
	}
	value := t.input[t.pos : t.pos+end]
	t.pos += end + 1
	return Token{Type: TokenText, Value: value}
}

func (t *Tokenizer) scanWord() Token {
	start := t.pos
	for t.pos < len(t.input) && !endsWord(t.input[t.pos]) {
		t.pos++
	}
	return Token{Type: TokenText, Value: t.input[start:t.pos]}
}

// scanFuzzy reads ~term. A lone ~ is plain text.
func (t *Tokenizer) scanFuzzy() Token {
	t.pos++
	start := t.pos
	for t.pos < len(t.input) && !endsWord(t.input[t.pos]) && t.input[t.pos] != '-' {
		t.pos++
	}
	if t.pos == start {
		return Token{Type: TokenText, Value: "~"}
	}
	return Token{Type: TokenFilter, Value: "~" + t.input[start:t.pos]}
}

// scanRegex reads /pattern/. \/ does not close the pattern, and a missing
// closing slash takes the rest of the input.
func (t *Tokenizer) scanRegex() Token {
	open := t.pos
	t.pos++
	start := t.pos
	for t.pos < len(t.input) {
		switch t.input[t.pos] {
		case '\\':
			t.pos += 2
			continue
		case '/':
			pattern := t.input[start:t.pos]
			t.pos++
			return Token{Type: TokenRegex, Value: pattern}
		}
		t.pos++
	}
	t.pos = min(t.pos, len(t.input))
	if t.pos == start {
		t.pos = open
		return t.scanWord()
	}
	return Token{Type: TokenRegex, Value: t.input[start:t.pos]}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func endsWord(c byte) bool {
	return isSpace(c) || strings.IndexByte("|+()", c) >= 0
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

// parser builds a FilterExpr from tokens. Precedence from loose to tight
// is | then AND (explicit + or juxtaposition) then - then atoms.
type parser struct {
	tokens []Token
	pos    int
}

// ParseQuery parses a complete search query and returns the root expression
func ParseQuery(query string) (FilterExpr, error) {
	tokens := NewTokenizer(query).AllTokens()
	if tokens[0].Type == TokenEOF {
		return NewAlwaysMatchExpr(), nil
	}

	p := &parser{tokens: tokens}
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token: %s", tok.Value)
	}
	return expr, nil
}

func (p *parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// atEnd reports whether the current token closes an AND chain
func (p *parser) atEnd() bool {
	switch p.peek().Type {
	case TokenEOF, TokenRParen, TokenOr:
		return true
	}
	return false
}

func (p *parser) or() (FilterExpr, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == TokenOr {
		p.next()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}
	return left, nil
}

func (p *parser) and() (FilterExpr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() {
		if p.peek().Type == TokenAnd {
			p.next()
			if p.atEnd() {
				break
			}
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}
	return left, nil
}

func (p *parser) unary() (FilterExpr, error) {
	if p.peek().Type != TokenNot {
		return p.atom()
	}
	p.next()
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	return NewNotExpr(expr), nil
}

func (p *parser) atom() (FilterExpr, error) {
	tok := p.next()
	switch tok.Type {
	case TokenLParen:
		expr, err := p.or()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Type != TokenRParen {
			return nil, fmt.Errorf("expected ')', got %s", closing.Value)
		}
		return expr, nil
	case TokenText:
		return NewTextExpr(tok.Value), nil
	case TokenFilter:
		return parseFilterValue(tok.Value)
	case TokenRegex:
		return NewRegexExpr(tok.Value)
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of input")
	}
	return nil, fmt.Errorf("unexpected token: %s", tok.Value)
}

// parseFilterValue turns a filter token such as "-type:db", "+a*:main" or
// "~rndr" into an expression.
func parseFilterValue(value string) (FilterExpr, error) {
	quantifier := QuantifierSome
	switch value[0] {
	case '-':
		quantifier, value = QuantifierNone, value[1:]
	case '+':
		quantifier, value = QuantifierAll, value[1:]
	}

	key, criteria, ok := strings.Cut(value, ":")
	var expr FilterExpr
	switch {
	case strings.HasPrefix(value, "~"):
		expr = NewFuzzyExpr(value[1:])
	case !ok:
		expr = NewTextExpr(value)
	default:
		var err error
		var quantified bool
		expr, quantified, err = filterExpr(key, criteria, quantifier)
		if err != nil {
			return nil, err
		}
		if quantified {
			return expr, nil
		}
	}

	if quantifier == QuantifierNone {
		expr = NewNotExpr(expr)
	}
	return expr, nil
}

// filterExpr builds the filter named by key. quantified is true when the
// filter applied the quantifier itself.
func filterExpr(key, criteria string, quantifier Quantifier) (FilterExpr, bool, error) {
	closure := strings.HasSuffix(key, "*")
	key = strings.TrimSuffix(key, "*")
	typ := FilterType(key)
	if alias, ok := filterAliases[key]; ok {
		typ = alias
	}

	switch typ {
	case FilterTypeDepth, FilterTypeChildren:
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, false, err
		}
		expr, err := NewCountFilter(typ, op, val)
		return expr, false, err
	case FilterTypeDuration, FilterTypeSelf, FilterTypeStart:
		op, val, err := parseComparison(criteria)
		if err != nil {
			return nil, false, err
		}
		expr, err := NewTimeFilter(typ, op, val)
		return expr, false, err
	case FilterTypeType:
		return NewTypeExpr(criteria), false, nil
	case FilterTypeParent, FilterTypeAncestor:
		inner, err := ParseQuery(criteria)
		if err != nil {
			return nil, false, err
		}
		// p*: is the same as a:
		if typ == FilterTypeAncestor || closure {
			return NewAncestorFilter(inner, quantifier), true, nil
		}
		return NewParentFilter(inner), false, nil
	}
	// Unknown keys search for the literal text
	return NewTextExpr(key + ":" + criteria), false, nil
}

// parseComparison splits criteria into an operator and a value. A value
// without an operator compares for equality: "5" is ("=", "5") and ">=1.5"
// is (">=", "1.5").
func parseComparison(criteria string) (ComparisonOp, string, error) {
	if criteria == "" {
		return "", "", fmt.Errorf("empty criteria")
	}
	for _, op := range comparisonOps {
		val, found := strings.CutPrefix(criteria, string(op))
		if !found {
			continue
		}
		if val == "" {
			return "", "", fmt.Errorf("missing value after operator %s", op)
		}
		return op, val, nil
	}
	return OpEqual, criteria, nil
}
