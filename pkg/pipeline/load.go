package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/arborlab/phylograph/pkg/cache"
	"github.com/arborlab/phylograph/pkg/httputil"
	phyloio "github.com/arborlab/phylograph/pkg/io"
	"github.com/arborlab/phylograph/pkg/phylo"
)

// Load reads a recombination graph from the input configured in opts.
//
// Inputs are resolved in precedence order: raw document data, then an
// http(s) URL fetched through the cache, then a local file path. The
// returned bool reports whether a remote document came from cache; file
// and raw-data loads never hit the cache.
func Load(ctx context.Context, c cache.Cache, k cache.Keyer, opts Options) (*phylo.Tree, bool, error) {
	switch {
	case len(opts.Data) > 0:
		g, err := readDocument(opts.Data, "")
		return g, false, err

	case httputil.IsURL(opts.Input):
		client := httputil.NewClient(c, k, nil)
		data, hit, err := client.Fetch(ctx, opts.Input, opts.Refresh)
		if err != nil {
			return nil, false, fmt.Errorf("fetch %s: %w", opts.Input, err)
		}
		g, err := readDocument(data, opts.Input)
		if err != nil {
			return nil, false, fmt.Errorf("load %s: %w", opts.Input, err)
		}
		return g, hit, nil

	default:
		g, err := phyloio.Load(opts.Input)
		return g, false, err
	}
}

// readDocument parses a raw document, sniffing the format from the path
// extension when one is available and from the content otherwise.
func readDocument(data []byte, path string) (*phylo.Tree, error) {
	format := ""
	if path != "" {
		format = phyloio.Detect(path)
	}
	if format == "" {
		format = phyloio.DetectData(data)
	}
	if format == "" {
		return nil, fmt.Errorf("empty document")
	}
	return phyloio.Read(bytes.NewReader(data), format)
}
