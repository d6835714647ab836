// Package render converts phylogenies to visual formats.
//
// # Overview
//
// Two textual formats are produced directly from a [phylo.Tree]:
//
//   - [ToDOT] emits Graphviz DOT for layout engines.
//   - [ToMermaid] emits a Mermaid flowchart for embedding in Markdown.
//
// DOT output can be rasterized without leaving the process: [RenderSVG]
// runs the Graphviz layout engine through a WASM build, so no system
// Graphviz installation is needed. [RenderPNG] and [ToPNG] additionally
// shell out to rsvg-convert and require librsvg.
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(dot)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Styling
//
// Nodes and connections are classified by recombination: a node with two
// or more parents is recombinant, a node below one is a recombinant
// descendant. The classic style colors the three classes blue, orange and
// light orange; the plain style skips coloring and leaves presentation to
// the consumer. Branches into recombination nodes are always drawn dashed
// (DOT) or dotted (Mermaid) regardless of style.
//
// # Options
//
// [Options] controls layout direction, style and whether branch lengths
// are shown as link labels. The zero value renders left to right in the
// classic style without lengths.
package render
