// Package render draws score-annotated graph diagrams via Graphviz.
//
// [ToDOT] converts a graph (optionally together with computed PageRank
// scores) to Graphviz DOT; [SVG] and [PNG] rasterize the DOT source.
// When scores are present, each node's circle is scaled by its score
// and the score is printed in the label, so the diagram doubles as a
// reading of the result.
//
//	dot := render.ToDOT(g, res.ByLabel(), render.Options{})
//	svg, err := render.SVG(ctx, dot)
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/surfrank/surfrank/pkg/graph"
)

// Node sizing bounds in inches. A node's diameter interpolates between
// the two based on its share of the total score mass.
const (
	minDiameter = 0.7
	maxDiameter = 2.2
)

// colors is the palette cycled through for node fills, one per node
// index. Matching edge colors make fan-outs readable.
var colors = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
	"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
}

// Options configures DOT generation.
type Options struct {
	// Title is drawn above the diagram when non-empty.
	Title string

	// Precision is the number of decimals for score labels (default 4).
	Precision int
}

// ToDOT converts a graph to Graphviz DOT. scores maps node labels to
// PageRank scores and may be nil, in which case all nodes are drawn at
// uniform size without score labels. Output is deterministic: nodes
// appear in index order, edges in source-then-target index order.
func ToDOT(g *graph.Graph, scores map[string]float64, opts Options) string {
	precision := opts.Precision
	if precision <= 0 {
		precision = 4
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, fontsize=14, penwidth=2];\n")
	buf.WriteString("  edge [arrowsize=0.8, penwidth=1.5];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=20;\n", opts.Title)
	}
	buf.WriteString("\n")

	labels := g.Labels()
	for i, label := range labels {
		fill := colors[i%len(colors)]
		nodeLabel := label
		diameter := minDiameter
		if score, ok := scores[label]; ok {
			nodeLabel = fmt.Sprintf("%s\\n%.*f", label, precision, score)
			// A score of 2/N (twice the uniform share) maxes out the size.
			diameter = minDiameter + score*(maxDiameter-minDiameter)*float64(len(labels))/2
			if diameter > maxDiameter {
				diameter = maxDiameter
			}
		}
		fmt.Fprintf(&buf, "  %q [label=\"%s\", width=%.2f, fillcolor=%q];\n",
			label, nodeLabel, diameter, fill)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		i, _ := g.Index(e[0])
		fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", e[0], e[1], colors[i%len(colors)])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders DOT source to SVG bytes using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders DOT source to PNG bytes using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
