// Command cluster-dump prints how a dataset is clustered at a given width,
// which helps when tuning the merge thresholds.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/pstuifzand/tui-flamechart/internal/cluster"
	"github.com/pstuifzand/tui-flamechart/internal/config"
	"github.com/pstuifzand/tui-flamechart/internal/flat"
	"github.com/pstuifzand/tui-flamechart/internal/storage"
)

func main() {
	width := flag.Float64("width", 80, "Width of the chart in pixels")
	from := flag.Float64("from", 0, "Start of the visible window (default: dataset start)")
	to := flag.Float64("to", 0, "End of the visible window (default: dataset end)")
	configPath := flag.String("config", "", "Config file providing the thresholds")
	dump := flag.Bool("spew", false, "Dump the full cluster structures")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: cluster-dump [flags] <dataset>\n")
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *width, *from, *to, *configPath, *dump); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, width, from, to float64, configPath string, dump bool) error {
	if width <= 0 {
		return fmt.Errorf("width must be positive")
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(configPath); err != nil {
			return err
		}
	}
	th := cfg.Thresholds()

	ds, err := storage.Load(path)
	if err != nil {
		return err
	}
	tree := flat.Build(ds.Nodes)
	lo, hi := tree.MinMax()
	if from == 0 && to == 0 {
		from, to = lo, hi
	}
	if to <= from {
		return fmt.Errorf("empty window %g - %g", from, to)
	}

	order := tree.RowOrder()
	if cfg.EffectiveChart().MergeOrder == config.MergeOrderPreorder {
		order = tree.Nodes()
	}
	// The static pass uses the zoom that fits the whole dataset
	metas := cluster.Metaclusterize(order)
	static := cluster.Clusterize(metas, width/max(hi-lo, 1e-9), th)
	zoom := width / (to - from)
	visible := cluster.Reclusterize(static, zoom, from, to, th)

	fmt.Printf("nodes:    %d\n", tree.Len())
	fmt.Printf("levels:   %d\n", tree.MaxLevel()+1)
	fmt.Printf("metas:    %d\n", len(metas))
	fmt.Printf("static:   %d clusters at zoom %g\n", static.Len(), static.Zoom())
	fmt.Printf("viewport: %d clusters at zoom %g for %g - %g\n", len(visible), zoom, from, to)

	if dump {
		cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, MaxDepth: 3}
		cs.Dump(visible)
		return nil
	}

	for _, c := range visible {
		name := c.Nodes[0].Name()
		if c.Merged() {
			name = fmt.Sprintf("%d nodes", len(c.Nodes))
		}
		fmt.Printf("L%-3d %12g %12g  %-6s %s\n", c.Level, c.Start, c.Duration(), c.Type, name)
	}
	return nil
}
