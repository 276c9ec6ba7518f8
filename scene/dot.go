// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/wasiq-nisar/passthrough/hit"
	"github.com/wasiq-nisar/passthrough/layer"
)

// DOT returns the layer tree rooted at root as a Graphviz digraph. Edges
// point from parents to children; siblings are ordered front to back.
// Layers deciding hits for their subtree are drawn dashed, layers that take
// no part in hit testing are grayed out.
func DOT(root layer.Layer) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layers {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Go, Helvetica, sans-serif\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")
	if root != nil {
		writeDOTNode(&buf, root, 0)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, l layer.Layer, id int) int {
	next := id + 1
	label := fmt.Sprintf("%s\n%v", layer.Name(l), l.Bounds())
	attrs := ""
	if _, ok := l.(hit.Tester); ok {
		attrs += ", style=\"filled,rounded,dashed\""
	}
	if !layer.HitTestable(l) {
		attrs += ", fontcolor=gray, color=gray"
	}
	fmt.Fprintf(buf, "  n%d [label=%q%s];\n", id, label, attrs)
	for _, c := range l.Children() {
		fmt.Fprintf(buf, "  n%d -> n%d;\n", id, next)
		next = writeDOTNode(buf, c, next)
	}
	return next
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG
// document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("scene: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("scene: parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("scene: render SVG: %w", err)
	}
	return buf.Bytes(), nil
}
