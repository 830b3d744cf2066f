package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/cityforest/pkg/graph"
)

// DOTOptions configures DOT generation.
type DOTOptions struct {
	// Labels shows "City, ST" instead of only the vertex id.
	Labels bool
	// Weights labels connections with their distance in miles.
	Weights bool
	// Scale multiplies projected coordinates into Graphviz points.
	// Zero means 10.
	Scale float64
}

var tagColors = map[string]string{
	"forest": "darkgreen",
	"bridge": "purple",
}

// ToDOT converts g to an undirected Graphviz graph. Each vertex is pinned at
// its projected position so the drawing resembles a map.
func ToDOT(g *graph.Graph, opts DOTOptions) string {
	if opts.Scale == 0 {
		opts.Scale = 10
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.2, fixedsize=false];\n")
	buf.WriteString("  edge [fontsize=8];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		label := fmt.Sprint(v.ID)
		if opts.Labels {
			label = v.Label()
		}
		x, y := v.Point.X*opts.Scale, v.Point.Y*opts.Scale
		fmt.Fprintf(&buf, "  %d [label=%q, pos=\"%.2f,%.2f!\"];\n", v.ID, label, x, y)
	}

	buf.WriteString("\n")
	for _, e := range g.UndirectedEdges() {
		var attrs []string
		if color, ok := tagColors[e.Tag]; ok {
			attrs = append(attrs, "color="+color)
		}
		if opts.Weights {
			attrs = append(attrs, fmt.Sprintf("label=\"%.1f\"", e.Weight))
		}
		if e.Directed {
			attrs = append(attrs, "dir=forward")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}
