package io

import (
	"fmt"
	"io"

	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/newick"
	"github.com/arborlab/phylograph/pkg/phylo"
)

// Write encodes g in the given format and writes it to w.
// The format must be [graph.FormatNewick] or [graph.FormatJSON]; any other
// value returns [ErrUnknownFormat]. Output written in either format can be
// re-imported with [Read] for round-trip processing.
func Write(g *phylo.Tree, w io.Writer, format string) error {
	switch format {
	case graph.FormatNewick:
		return newick.Write(g, w)
	case graph.FormatJSON:
		return graph.WriteGraph(g, w)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes g to the file at path in the format implied by the file
// extension. Unlike [Load] there is no content to sniff, so an extension
// that identifies neither format returns [ErrUnknownFormat].
func Save(g *phylo.Tree, path string) error {
	format := Detect(path)
	if format == "" {
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	switch format {
	case graph.FormatNewick:
		return newick.WriteFile(g, path)
	default:
		return graph.WriteGraphFile(g, path)
	}
}
