package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/phylo"
)

// Rank directions accepted by Options.Direction.
const (
	DirectionLR = "LR"
	DirectionTB = "TB"
)

// Node classes used for styling. Classification is derived from the graph:
// a node with two or more parents is recombinant, a node with a recombinant
// ancestor is a recombinant descendant, everything else is default.
const (
	classDefault     = "default"
	classRecombinant = "recombinant"
	classDescendant  = "recombinant_descendant"
)

// Colors of the classic style, one per node class.
const (
	colorDefault     = "#1f77b4"
	colorRecombinant = "#ff7f0e"
	colorDescendant  = "#ffbb78"
)

// Options configures diagram rendering.
type Options struct {
	// Direction is the layout direction, DirectionLR (default) or DirectionTB.
	Direction string

	// Style selects the color scheme: graph.StyleClassic (default) colors
	// nodes and connections by recombination class, graph.StylePlain leaves
	// coloring to the output medium.
	Style string

	// ShowLengths labels every connection with its branch length.
	ShowLengths bool
}

func (o Options) withDefaults() Options {
	if o.Direction == "" {
		o.Direction = DirectionLR
	}
	if o.Style == "" {
		o.Style = graph.StyleClassic
	}
	return o
}

// ToDOT converts a phylogeny to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
//
// Branches into recombination nodes are drawn dashed, everything else
// solid. Branch lengths feed the edge weight so longer branches pull nodes
// apart, and appear as edge labels when Options.ShowLengths is set.
func ToDOT(g *phylo.Tree, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph ARG {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.Direction)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		label, _ := g.Label(id)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if opts.Style == graph.StyleClassic {
			attrs = append(attrs, fmt.Sprintf("color=%q", colorOf(classify(g, id))))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, br := range g.Branches() {
		style := "solid"
		if br.Recombinant {
			style = "dashed"
		}
		attrs := []string{
			fmt.Sprintf("style=%s", style),
			fmt.Sprintf("weight=%s", formatLength(br.Length)),
		}
		if opts.Style == graph.StyleClassic {
			color := colorDefault
			if br.Recombinant {
				color = colorRecombinant
			}
			attrs = append(attrs, fmt.Sprintf("color=%q", color))
		}
		if opts.ShowLengths {
			attrs = append(attrs, fmt.Sprintf("label=%q", formatLength(br.Length)))
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", br.Parent, br.Child, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ToMermaid converts a phylogeny to a Mermaid flowchart with a legend.
// Recombination branches are drawn as dotted links, and the classic style
// colors every node and link by recombination class.
//
// Options.Direction controls the direction of the phylogeny subgraph; the
// top-level chart keeps the TD orientation that embeds well in documents.
func ToMermaid(g *phylo.Tree, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("graph TD;\n\n")

	var defaultLinks, recombinantLinks []int
	link := 0

	buf.WriteString("  subgraph Legend\n")
	buf.WriteString("    direction LR;\n")
	buf.WriteString("    D1[ ] --->|Non-Recombination| D2[ ];\n")
	defaultLinks = append(defaultLinks, link)
	link++
	buf.WriteString("    style D1 height:0px;\n")
	buf.WriteString("    style D2 height:0px;\n")
	buf.WriteString("    D3[ ] -..->|Recombination| R1[ ];\n")
	recombinantLinks = append(recombinantLinks, link)
	link++
	buf.WriteString("    style D3 height:0px;\n")
	buf.WriteString("    style R1 height:0px;\n")
	buf.WriteString("  end\n\n")

	buf.WriteString("  subgraph Phylogeny\n")
	fmt.Fprintf(&buf, "    direction %s;\n", opts.Direction)

	seen := make(map[phylo.NodeID]bool)
	for _, root := range g.Roots() {
		mermaidWalk(&buf, g, root, opts, seen, &defaultLinks, &recombinantLinks, &link)
	}
	// Isolated nodes never appear in a link line, give them one of their own.
	for _, id := range g.Nodes() {
		if g.InDegree(id) == 0 && g.OutDegree(id) == 0 {
			fmt.Fprintf(&buf, "    %s;\n", mermaidNode(g, id))
		}
	}

	buf.WriteString("  end\n\n")

	fmt.Fprintf(&buf, "classDef %s stroke:%s\n", classDefault, colorDefault)
	fmt.Fprintf(&buf, "classDef %s stroke:%s\n", classRecombinant, colorRecombinant)
	fmt.Fprintf(&buf, "classDef %s stroke:%s\n\n", classDescendant, colorDescendant)

	if len(defaultLinks) > 0 {
		fmt.Fprintf(&buf, "linkStyle %s stroke:%s\n", joinInts(defaultLinks), colorDefault)
	}
	if len(recombinantLinks) > 0 {
		fmt.Fprintf(&buf, "linkStyle %s stroke:%s\n", joinInts(recombinantLinks), colorRecombinant)
	}

	return buf.String()
}

// mermaidWalk emits the outgoing links of id in branch insertion order and
// then descends, so every branch appears exactly once.
func mermaidWalk(buf *bytes.Buffer, g *phylo.Tree, id phylo.NodeID, opts Options, seen map[phylo.NodeID]bool, defaultLinks, recombinantLinks *[]int, link *int) {
	if seen[id] {
		return
	}
	seen[id] = true

	children, _ := g.Children(id)
	for _, child := range children {
		br, _ := g.Branch(id, child)
		arrow := "-->"
		if br.Recombinant {
			arrow = "-.->"
		}
		if opts.ShowLengths {
			arrow += fmt.Sprintf("|%s|", formatLength(br.Length))
		}
		fmt.Fprintf(buf, "    %s%s%s;\n", mermaidNode(g, id), arrow, mermaidNode(g, child))

		if br.Recombinant {
			*recombinantLinks = append(*recombinantLinks, *link)
		} else {
			*defaultLinks = append(*defaultLinks, *link)
		}
		*link++
	}
	for _, child := range children {
		mermaidWalk(buf, g, child, opts, seen, defaultLinks, recombinantLinks, link)
	}
}

func mermaidNode(g *phylo.Tree, id phylo.NodeID) string {
	label, _ := g.Label(id)
	label = strings.ReplaceAll(label, `"`, "")
	return fmt.Sprintf("%d[%q]:::%s", id, label, classify(g, id))
}

func classify(g *phylo.Tree, id phylo.NodeID) string {
	if g.InDegree(id) >= 2 {
		return classRecombinant
	}
	if _, ok, _ := g.RecombinantAncestor(id); ok {
		return classDescendant
	}
	return classDefault
}

func colorOf(class string) string {
	switch class {
	case classRecombinant:
		return colorRecombinant
	case classDescendant:
		return colorDescendant
	default:
		return colorDefault
	}
}

func formatLength(l float32) string {
	return strconv.FormatFloat(float64(l), 'g', -1, 32)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
