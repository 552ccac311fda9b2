package export

import (
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

// Indented renders the dataset in the indented text format, two spaces per
// level. The output parses back to the same dataset.
func Indented(ds *model.Dataset) []byte {
	var sb strings.Builder

	if ds.Title != "" {
		sb.WriteString("# title: " + ds.Title + "\n")
	}
	if ds.Units != "" {
		sb.WriteString("# units: " + ds.Units + "\n")
	}

	model.Walk(ds.Nodes, func(n *model.Node, level int) {
		typ := n.Type
		if typ == "" {
			typ = "-"
		}
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString(strconv.FormatFloat(n.Start, 'g', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(n.Duration, 'g', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		sb.WriteByte(' ')
		sb.WriteString(n.Name)

		var hints []string
		if n.Color != "" {
			hints = append(hints, "color="+n.Color)
		}
		if n.Pattern != "" {
			hints = append(hints, "pattern="+n.Pattern)
		}
		if n.Badge != "" {
			hints = append(hints, "badge="+n.Badge)
		}
		if len(hints) > 0 {
			sb.WriteString(" {" + strings.Join(hints, "; ") + "}")
		}
		sb.WriteByte('\n')
	})

	return []byte(sb.String())
}
