package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidths(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 0, RuneWidth('́'))
	assert.Equal(t, 0, RuneWidth('\x07'))

	assert.Equal(t, 0, StringWidth(""))
	assert.Equal(t, 6, StringWidth("render"))
	assert.Equal(t, 7, StringWidth("db 查询"))
}

func TestClip(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"render", 10, "render"},
		{"render", 3, "ren"},
		{"render", 0, ""},
		{"render", -1, ""},
		{"查询计划", 5, "查询"},
		{"a查询", 2, "a"},
	}
	for _, tt := range tests {
		got := Clip(tt.in, tt.width)
		assert.Equal(t, tt.want, got, "Clip(%q, %d)", tt.in, tt.width)
		assert.LessOrEqual(t, StringWidth(got), max(tt.width, 0))
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"GET /api/users", 20, "GET /api/users"},
		{"GET /api/users", 10, "GET /ap..."},
		{"GET /api/users", 3, "GET"},
		{"查询计划执行", 7, "查询..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ellipsize(tt.in, tt.width), "Ellipsize(%q, %d)", tt.in, tt.width)
	}
}

func TestWordMotions(t *testing.T) {
	rs := []rune("type:db  d:>2 render")

	assert.Equal(t, 9, nextWord(rs, 0))
	assert.Equal(t, 14, nextWord(rs, 9))
	assert.Equal(t, len(rs), nextWord(rs, 14))
	assert.Equal(t, len(rs), nextWord(rs, 100))

	assert.Equal(t, 14, prevWord(rs, len(rs)))
	assert.Equal(t, 9, prevWord(rs, 14))
	assert.Equal(t, 0, prevWord(rs, 9))
	assert.Equal(t, 0, prevWord(rs, 0))
	assert.Equal(t, 0, prevWord(nil, 3))
}
