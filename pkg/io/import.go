package io

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/newick"
	"github.com/arborlab/phylograph/pkg/phylo"
)

// ErrUnknownFormat is returned when neither the file extension nor the
// content identifies the graph format.
var ErrUnknownFormat = errors.New("unknown graph format")

// Detect returns the graph format implied by the extension of path, either
// [graph.FormatNewick] or [graph.FormatJSON], or an empty string when the
// extension identifies neither. Recognized newick extensions are .nwk,
// .newick, .tree, and .treefile.
func Detect(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nwk", ".newick", ".tree", ".treefile":
		return graph.FormatNewick
	case ".json":
		return graph.FormatJSON
	}
	return ""
}

// DetectData sniffs the graph format from raw content: data whose first
// non-space byte opens a JSON object is JSON, data that starts a newick
// group or a bare label is newick. Returns an empty string for empty input.
func DetectData(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' {
		return graph.FormatJSON
	}
	return graph.FormatNewick
}

// Read decodes a phylogeny from r in the given format.
//
// The format must be [graph.FormatNewick] or [graph.FormatJSON]; any other
// value returns [ErrUnknownFormat]. Read does not close r.
//
// Read returns an error if:
//   - The input is malformed for the chosen format
//   - A node has a duplicate label
//   - A branch references an unknown node label
//   - Adding a branch would create a cycle
//
// Errors are wrapped with context describing which node or branch caused
// the problem. Use errors.Is to check for specific phylo errors.
//
// The returned phylogeny is independent of r and can be modified safely
// after Read returns.
func Read(r io.Reader, format string) (*phylo.Tree, error) {
	switch format {
	case graph.FormatNewick:
		return newick.Parse(r)
	case graph.FormatJSON:
		return graph.ReadGraph(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Load reads a phylogeny from the file at path, picking the format from
// the file extension and falling back to content sniffing when the
// extension is not recognized.
//
// Load returns the same validation errors as [Read] for malformed input.
func Load(path string) (*phylo.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	format := Detect(path)
	if format == "" {
		format = DetectData(data)
	}
	if format == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	g, err := Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}
