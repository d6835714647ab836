package pipeline

import (
	"fmt"

	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/phylo"
	"github.com/arborlab/phylograph/pkg/render"
)

// Render generates output artifacts in the requested formats.
//
// DOT and Mermaid outputs are plain text diagrams, SVG and PNG render the
// DOT form through graphviz, and JSON is the canonical graph document.
func Render(g *phylo.Tree, opts Options) (map[string][]byte, error) {
	renderOpts := opts.RenderOptions()
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case graph.FormatDOT:
			data = []byte(render.ToDOT(g, renderOpts))
		case graph.FormatMermaid:
			data = []byte(render.ToMermaid(g, renderOpts))
		case graph.FormatSVG:
			data, err = render.RenderSVG(render.ToDOT(g, renderOpts))
		case graph.FormatPNG:
			data, err = render.RenderPNG(render.ToDOT(g, renderOpts), DefaultPNGScale)
		case graph.FormatJSON:
			data, err = graph.MarshalGraph(g)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
