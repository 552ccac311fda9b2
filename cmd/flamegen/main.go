package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/pstuifzand/tui-flamechart/internal/model"
	"github.com/pstuifzand/tui-flamechart/internal/storage"
)

var (
	names = []string{
		"parse", "layout", "paint", "composite", "script", "style",
		"gc", "fetch", "decode", "compile", "timer", "idle",
	}
	types = []string{"cpu", "gpu", "io", "net", "gc"}
)

func main() {
	numNodes := flag.Int("nodes", 1000, "Number of nodes to generate")
	output := flag.String("output", "large_test.json", "Output file path (.json, .yaml, .yml, .toml)")
	depth := flag.Int("depth", 6, "Maximum nesting depth")
	span := flag.Float64("span", 1000, "Duration of the whole dataset")
	seed := flag.Uint64("seed", 1, "Random seed")
	flag.Parse()

	if *numNodes < 1 {
		fmt.Fprintf(os.Stderr, "nodes must be at least 1\n")
		os.Exit(1)
	}
	if *span <= 0 {
		fmt.Fprintf(os.Stderr, "span must be positive\n")
		os.Exit(1)
	}

	g := &generator{
		rnd:       rand.New(rand.NewPCG(*seed, *seed)),
		remaining: *numNodes,
		maxDepth:  *depth,
	}
	ds := &model.Dataset{
		Title: fmt.Sprintf("Generated trace (%d nodes)", *numNodes),
		Units: "ms",
	}
	// Roots share the span. Leftover nodes become more roots.
	start := 0.0
	for g.remaining > 0 {
		dur := *span / 4 * (0.5 + g.rnd.Float64())
		ds.Nodes = append(ds.Nodes, g.node(start, dur, 0))
		start += dur + *span/100*g.rnd.Float64()
	}

	if dir := filepath.Dir(*output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := storage.NewStore(*output).Save(ds); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated dataset with %d nodes\n", model.Count(ds.Nodes))
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
}

type generator struct {
	rnd       *rand.Rand
	remaining int
	maxDepth  int
	count     int
}

// node creates a node covering [start, start+dur) and fills it with
// children that never overlap and never leave the parent
func (g *generator) node(start, dur float64, level int) *model.Node {
	n := model.NewNode(
		fmt.Sprintf("%s #%d", names[g.count%len(names)], g.count),
		types[g.rnd.IntN(len(types))],
		start, dur,
	)
	g.count++
	g.remaining--

	if level >= g.maxDepth || g.remaining <= 0 {
		return n
	}

	children := childCount(g.remaining, g.maxDepth-level)
	if children == 0 {
		return n
	}
	// Each child gets a slot and uses part of it, leaving gaps for self time
	slot := dur / float64(children)
	for i := 0; i < children && g.remaining > 0; i++ {
		used := slot * (0.3 + 0.6*g.rnd.Float64())
		offset := (slot - used) * g.rnd.Float64()
		n.AddChild(g.node(start+float64(i)*slot+offset, used, level+1))
	}
	if g.rnd.IntN(20) == 0 {
		n.Badge = "#f7768e"
	}
	return n
}

func childCount(remaining, depthLeft int) int {
	if depthLeft == 1 {
		if remaining > 10 {
			return 5
		}
		return remaining / 2
	}
	if remaining > 50 {
		return 3
	}
	return 2
}
