package ui

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatFlag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  OutputFormat
		shouldErr bool
	}{
		{"text format", "text", OutputFormatText, false},
		{"fields format", "fields", OutputFormatFields, false},
		{"json format", "json", OutputFormatJSON, false},
		{"jsonl format", "jsonl", OutputFormatJSONL, false},
		{"invalid format", "xml", OutputFormatText, true},
		{"case insensitive", "TEXT", OutputFormatText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseFormatFlag(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Errorf("expected error, got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if result != tt.expected {
					t.Errorf("expected %v, got %v", tt.expected, result)
				}
			}
		})
	}
}

func TestParseFieldsFlag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single field", "name", []string{"name"}},
		{"multiple fields", "name,duration,path", []string{"name", "duration", "path"}},
		{"fields with spaces", "name, duration, path", []string{"name", "duration", "path"}},
		{"empty string", "", []string(nil)},
		{"single field with spaces", "  name  ", []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseFieldsFlag(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("expected %d fields, got %d", len(tt.expected), len(result))
				return
			}
			for i, field := range result {
				if field != tt.expected[i] {
					t.Errorf("field %d: expected %q, got %q", i, tt.expected[i], field)
				}
			}
		})
	}
}

func TestFormatFields(t *testing.T) {
	nodes := searchTree().Nodes()
	formatter := NewSearchOutputFormatter("ms")

	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{"name and duration", []string{"name", "duration"}, []string{"render\t100", "gc\t10"}},
		{"path", []string{"path"}, []string{"render > paint"}},
		{"self time", []string{"name", "self"}, []string{"render\t20"}},
		{"unknown field is empty", []string{"name", "bogus"}, []string{"gc\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := formatter.FormatResults(nodes, OutputFormatFields, tt.fields)
			require.NoError(t, err)
			assert.Len(t, strings.Split(out, "\n"), len(nodes))
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFormatJSON(t *testing.T) {
	nodes := searchTree().Nodes()[1:3]
	formatter := NewSearchOutputFormatter("ms")

	out, err := formatter.FormatResults(nodes, OutputFormatJSON, []string{"name", "start", "level"})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "layout", got[0]["name"])
	assert.Equal(t, 40.0, got[1]["start"])
	assert.Equal(t, 1.0, got[1]["level"])
}

func TestFormatJSONL(t *testing.T) {
	nodes := searchTree().Nodes()
	formatter := NewSearchOutputFormatter("ms")

	out, err := formatter.FormatResults(nodes, OutputFormatJSONL, nil)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "render", first["name"])
	assert.Equal(t, []any{"render"}, first["path"])
}

func TestFormatText(t *testing.T) {
	nodes := searchTree().Nodes()
	out, err := NewSearchOutputFormatter("ms").FormatResults(nodes, OutputFormatText, nil)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "render  100 ms @ 0", lines[0])
	assert.Equal(t, "  paint  30 ms @ 40", lines[2])
}

func TestFormatEmpty(t *testing.T) {
	out, err := NewSearchOutputFormatter("ms").FormatResults(nil, OutputFormatJSON, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
