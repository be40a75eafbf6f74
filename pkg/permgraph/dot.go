// Package permgraph renders permutations as Graphviz functional graphs.
//
// A permutation is drawn as a directed graph with one node per position and
// an edge from each element's source position to its destination. The cycle
// structure is visible by construction: a cyclic permutation renders as a
// single ring, a derangement has no self-loops, and fixed points of an
// unrestricted shuffle show up as self-loops.
package permgraph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Options configures DOT generation.
type Options struct {
	// Labels annotates nodes with element values; index i labels position i.
	// When nil or too short, bare position numbers are used.
	Labels []string

	// Title is rendered as the graph label below the drawing.
	Title string
}

// ToDOT converts a position mapping (idx[i] is the source position of the
// element now at position i, the convention of [shuffle.IndexShuffle]) to
// Graphviz DOT. The resulting string can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(idx []int, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph permutation {\n")
	buf.WriteString("  layout=circo;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
	}
	buf.WriteString("\n")

	for i := range idx {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", i, nodeLabel(i, opts.Labels))
	}

	buf.WriteString("\n")
	for i, src := range idx {
		if src == i {
			// Fixed point: a self-loop, drawn dashed so it stands out.
			fmt.Fprintf(&buf, "  %d -> %d [style=dashed];\n", i, i)
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", src, i)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(i int, labels []string) string {
	if i < len(labels) && strings.TrimSpace(labels[i]) != "" {
		return fmt.Sprintf("%d: %s", i, labels[i])
	}
	return fmt.Sprint(i)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
