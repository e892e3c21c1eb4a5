package modelfile

import (
	"fmt"
	"strings"

	"github.com/ha1tch/codecanvas/pkg/canvas"
)

// GenerateDOT converts a model to Graphviz DOT. Node positions become pinned
// pos attributes (points, y flipped) so `neato -n` reproduces the canvas
// layout. Dangling connections are left out.
func GenerateDOT(m canvas.Model, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph canvas {\n")
	sb.WriteString("    node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=12, fontcolor=white, color=white];\n")
	sb.WriteString("    edge [color=\"#666666\"];\n")
	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
	}
	sb.WriteString("\n")

	for _, n := range m.Nodes {
		c := canvas.CategoryColor(n.Type)
		a := n.Anchor()
		sb.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", fillcolor=\"#%02x%02x%02x\", pos=\"%g,%g!\"];\n",
			escapeDOT(n.ID), escapeDOT(n.Name), c.R, c.G, c.B, a.X, -a.Y))
	}
	sb.WriteString("\n")

	idx := m.Index()
	for _, c := range m.Connections {
		if _, ok := idx[c.Source]; !ok {
			continue
		}
		if _, ok := idx[c.Target]; !ok {
			continue
		}
		attrs := ""
		if c.Type != "" {
			attrs = fmt.Sprintf(" [label=\"%s\"]", escapeDOT(c.Type))
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\"%s;\n", escapeDOT(c.Source), escapeDOT(c.Target), attrs))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
