package ui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
)

// OutputFormat specifies how search results are printed by the -query flag
type OutputFormat int

const (
	OutputFormatText OutputFormat = iota
	OutputFormatFields
	OutputFormatJSON
	OutputFormatJSONL
)

var defaultOutputFields = []string{"name", "type", "start", "duration", "self", "level", "path"}

// SearchOutputFormatter formats search results for the terminal or scripts
type SearchOutputFormatter struct {
	units string
}

// NewSearchOutputFormatter creates a formatter labelling times with units
func NewSearchOutputFormatter(units string) *SearchOutputFormatter {
	return &SearchOutputFormatter{units: units}
}

// FormatResults formats nodes in the given format. fields selects and orders
// the columns of the fields and JSON formats.
func (f *SearchOutputFormatter) FormatResults(nodes []*flat.Node, format OutputFormat, fields []string) (string, error) {
	if len(nodes) == 0 {
		return "", nil
	}
	if len(fields) == 0 {
		fields = defaultOutputFields
	}

	switch format {
	case OutputFormatFields:
		return f.formatFields(nodes, fields), nil
	case OutputFormatJSON:
		return f.formatJSON(nodes, fields)
	case OutputFormatJSONL:
		return f.formatJSONL(nodes, fields)
	default:
		return f.formatText(nodes), nil
	}
}

// formatText prints one line per node, indented by level
func (f *SearchOutputFormatter) formatText(nodes []*flat.Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s%s  %s %s @ %s",
			strings.Repeat("  ", n.Level), n.Name(),
			formatTime(n.Duration), f.units, formatTime(n.Start))
	}
	return b.String()
}

// formatFields formats results as tab-separated values
func (f *SearchOutputFormatter) formatFields(nodes []*flat.Node, fields []string) string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		values := make([]string, 0, len(fields))
		for _, field := range fields {
			switch v := f.getFieldValue(n, field).(type) {
			case []string:
				values = append(values, strings.Join(v, " > "))
			case float64:
				values = append(values, formatTime(v))
			default:
				values = append(values, fmt.Sprintf("%v", v))
			}
		}
		lines = append(lines, strings.Join(values, "\t"))
	}
	return strings.Join(lines, "\n")
}

// formatJSON formats results as a JSON array
func (f *SearchOutputFormatter) formatJSON(nodes []*flat.Node, fields []string) (string, error) {
	result := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, f.getNodeAsObject(n, fields))
	}
	data, err := json.MarshalIndent(result, "", "  ")
	return string(data), err
}

// formatJSONL formats results as JSON Lines
func (f *SearchOutputFormatter) formatJSONL(nodes []*flat.Node, fields []string) (string, error) {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		data, err := json.Marshal(f.getNodeAsObject(n, fields))
		if err != nil {
			return "", err
		}
		lines = append(lines, string(data))
	}
	return strings.Join(lines, "\n"), nil
}

func (f *SearchOutputFormatter) getNodeAsObject(n *flat.Node, fields []string) map[string]any {
	obj := make(map[string]any, len(fields))
	for _, field := range fields {
		obj[field] = f.getFieldValue(n, field)
	}
	return obj
}

func (f *SearchOutputFormatter) getFieldValue(n *flat.Node, field string) any {
	switch field {
	case "name":
		return n.Name()
	case "type":
		return n.Type()
	case "start":
		return n.Start
	case "duration":
		return n.Duration
	case "end":
		return n.End()
	case "self":
		return n.Source.SelfTime()
	case "level":
		return n.Level
	case "index":
		return n.Index
	case "children":
		return len(n.Source.Children)
	case "parent":
		if n.Parent == nil {
			return ""
		}
		return n.Parent.Name()
	case "path":
		var path []string
		for cur := n; cur != nil; cur = cur.Parent {
			path = append([]string{cur.Name()}, path...)
		}
		return path
	case "units":
		return f.units
	default:
		return ""
	}
}

func formatTime(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseFormatFlag parses the -format flag
func ParseFormatFlag(flagValue string) (OutputFormat, error) {
	switch strings.ToLower(flagValue) {
	case "text":
		return OutputFormatText, nil
	case "fields":
		return OutputFormatFields, nil
	case "json":
		return OutputFormatJSON, nil
	case "jsonl":
		return OutputFormatJSONL, nil
	default:
		return OutputFormatText, fmt.Errorf("invalid format: %s (valid options: text, fields, json, jsonl)", flagValue)
	}
}

// ParseFieldsFlag parses the -fields flag into a list of field names
func ParseFieldsFlag(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	var fields []string
	for _, field := range strings.Split(flagValue, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}
