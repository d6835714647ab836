// Package pkg provides the core libraries for Phylograph recombination
// graph visualization.
//
// # Overview
//
// Phylograph parses, analyzes, and renders ancestral recombination graphs:
// rooted directed acyclic graphs in which a node with two or more parents
// marks a recombination event. The pkg directory is organized into four
// main areas:
//
//  1. [phylo] - Domain logic (graph structure, traversal, recombination queries)
//  2. [newick], [graph], [io] - Document formats (parse and write)
//  3. [render] - Visualization (DOT, Mermaid, SVG, PNG)
//  4. [pipeline] - Orchestration (load → analyze → render) with caching
//
// # Architecture
//
// The typical data flow through Phylograph:
//
//	Newick/JSON document (file, URL, stdin)
//	         ↓
//	    [io] package (format detection + parsing)
//	         ↓
//	    [phylo] package (graph structure + traversal)
//	         ↓
//	    [render] package (DOT/Mermaid/SVG/PNG)
//	         ↓
//	    artifacts, cached by [cache], persisted by [store]
//
// # Quick Start
//
// Parse a document and render it:
//
//	import (
//	    "github.com/arborlab/phylograph/pkg/io"
//	    "github.com/arborlab/phylograph/pkg/render"
//	)
//
//	// 1. Load a graph (format detected from the extension)
//	g, _ := io.Load("arg.nwk")
//
//	// 2. Query its structure
//	recombinants := g.Recombinants()
//	mrca, _ := g.MRCA(g.Leaves()...)
//
//	// 3. Render to SVG
//	dot := render.ToDOT(g, render.Options{})
//	svg, _ := render.RenderSVG(dot)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [phylo] - Generic phylogeny container over label and length types. Nodes
// may have multiple parents, which is what distinguishes a recombination
// graph from a tree. Traversal operations cover ancestors, descendants,
// paths, common ancestors, and recombinant classification.
//
// [newick] - Newick parser and writer extended with shared-node references
// so recombination nodes survive a round trip through tree syntax.
//
// [graph] - Serialization types for graphs (JSON node-link format) shared
// by the io package, the store, and the HTTP API.
//
// [io] - Format detection and unified reading/writing of Newick and JSON
// documents.
//
// ## Visualization
//
// [render] - DOT and Mermaid generation plus in-process SVG rasterization
// through a WASM build of Graphviz. Recombination nodes and the branches
// into them are styled distinctly.
//
// ## Infrastructure
//
// [pipeline] - Complete visualization pipeline (load → analyze → render)
// used by the CLI and the HTTP API. Ensures consistent behavior across
// entry points and layers source and render caching underneath.
//
// [cache] - Content-addressed artifact cache with file, Redis, and null
// backends.
//
// [store] - Named graph persistence with file and MongoDB backends.
//
// [httputil] - HTTP client with retry and backoff for fetching remote
// documents.
//
// [errors] - Coded errors shared between the CLI and the API so failures
// map cleanly to exit codes and HTTP statuses.
//
// [observability], [buildinfo] - Logging hooks and build metadata.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/phylo/...    # Specific package
//	go test -run Example       # Examples only
//
// [phylo]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/phylo
// [newick]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/newick
// [graph]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/graph
// [io]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/io
// [render]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/cache
// [store]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/store
// [httputil]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/arborlab/phylograph/pkg/buildinfo
package pkg
