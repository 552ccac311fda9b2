// Package export writes datasets in formats meant for people rather than
// for loading back
package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

// ExportToMarkdown writes the dataset as a nested bullet list. Each bullet
// shows the name, type, start, duration and self time of a node.
func ExportToMarkdown(ds *model.Dataset, filePath string) error {
	if err := os.WriteFile(filePath, []byte(Markdown(ds)), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// Markdown renders the report written by ExportToMarkdown
func Markdown(ds *model.Dataset) string {
	var sb strings.Builder

	if ds.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(ds.Title)
		sb.WriteString("\n\n")
	}

	units := ""
	if ds.Units != "" {
		units = " " + ds.Units
	}
	for _, n := range ds.Nodes {
		writeNodeAsMarkdown(&sb, n, 0, units)
	}
	return sb.String()
}

// writeNodeAsMarkdown writes a node and its children, indented two spaces
// per level
func writeNodeAsMarkdown(sb *strings.Builder, n *model.Node, depth int, units string) {
	if n == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString("- **")
	sb.WriteString(n.Name)
	sb.WriteString("**")
	if n.Type != "" {
		sb.WriteString(" `")
		sb.WriteString(n.Type)
		sb.WriteString("`")
	}
	fmt.Fprintf(sb, " %s +%s%s", num(n.Start), num(n.Duration), units)
	if len(n.Children) > 0 {
		fmt.Fprintf(sb, " (self %s%s)", num(n.SelfTime()), units)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		writeNodeAsMarkdown(sb, child, depth+1, units)
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
