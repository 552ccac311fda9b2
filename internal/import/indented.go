package import_parser

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

// NoType stands for a node without a type in the indented format
const NoType = "-"

// IndentedTextParser imports plain text traces where indentation gives the
// hierarchy. Every node line reads
//
//	<start> <duration> <type> <name> {color=...; pattern=...; badge=...}
//
// with the braces optional. "# title: x" and "# units: x" set the dataset
// header and other lines starting with # are comments.
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

// Parse converts indented text to a dataset
func (p *IndentedTextParser) Parse(content string) (*model.Dataset, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	ds := &model.Dataset{}
	var stack []*model.Node // open parent at each level
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		text := strings.TrimSpace(line)

		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			parseHeader(ds, text)
			continue
		}

		node, err := parseNode(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		// A line indented deeper than one level below its parent still
		// becomes a child of the last node
		level := min(getIndentLevel(line), len(stack))
		stack = stack[:level]
		if level == 0 {
			ds.Nodes = append(ds.Nodes, node)
		} else {
			stack[level-1].AddChild(node)
		}
		stack = append(stack, node)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return ds, nil
}

func parseHeader(ds *model.Dataset, line string) {
	key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "#")), ":")
	if !ok {
		return
	}
	switch strings.TrimSpace(key) {
	case "title":
		ds.Title = strings.TrimSpace(value)
	case "units":
		ds.Units = strings.TrimSpace(value)
	}
}

func parseNode(text string) (*model.Node, error) {
	var hints string
	if strings.HasSuffix(text, "}") {
		if i := strings.LastIndex(text, "{"); i >= 0 {
			text, hints = strings.TrimSpace(text[:i]), text[i+1:len(text)-1]
		}
	}

	fields := strings.Fields(text)
	if len(fields) < 4 {
		return nil, fmt.Errorf("want <start> <duration> <type> <name>, got %q", text)
	}
	start, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid start %q", fields[0])
	}
	duration, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q", fields[1])
	}
	typ := fields[2]
	if typ == NoType {
		typ = ""
	}

	node := model.NewNode(strings.Join(fields[3:], " "), typ, start, duration)
	for _, hint := range strings.Split(hints, ";") {
		key, value, ok := strings.Cut(hint, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "color":
			node.Color = value
		case "pattern":
			node.Pattern = value
		case "badge":
			node.Badge = value
		default:
			return nil, fmt.Errorf("unknown hint %q", strings.TrimSpace(key))
		}
	}
	return node, nil
}

// getIndentLevel calculates the indentation level (0-based)
// Counts tabs and spaces (tab = 2 spaces)
func getIndentLevel(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	// Convert to level (2 spaces = 1 level)
	return indent / 2
}
