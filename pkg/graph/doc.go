// Package graph provides serialization types for phylogenies.
//
// This package defines the canonical wire format for phylograph's graph
// data, used for JSON files, API responses, storage, and caching.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory
// representation and external formats:
//
//   - [Graph], [Node], [Branch]: Serialization types (this package)
//   - pkg/phylo.Tree: Internal graph representation
//
// Use [FromPhylogeny]/[ToPhylogeny] to convert between them. The newick
// text format has its own codec in pkg/newick.
//
// # Graph Serialization
//
// Graphs use a simple node-branch JSON format:
//
//	{
//	  "nodes": [{"label": "A"}, {"label": "B"}],
//	  "branches": [{"parent": "A", "child": "B", "length": 1}]
//	}
//
// Nodes and branches are written in insertion order, so reading a file back
// reproduces parent and child adjacency order exactly. The recombinant
// flags in the output are derived and are recomputed on import.
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("arg.json")     // File → Phylogeny
//	graph.WriteGraphFile(g, "output.json")      // Phylogeny → File
//	data, _ := graph.MarshalGraph(g)            // Phylogeny → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// # Constants
//
// This package is the single source of truth for output format and style
// names used by the renderer, pipeline, CLI, and API:
//
//	graph.FormatDOT       // "dot"
//	graph.FormatMermaid   // "mermaid"
//	graph.FormatSVG       // "svg"
//	graph.FormatPNG       // "png"
//	graph.FormatJSON      // "json"
//	graph.FormatNewick    // "newick"
//	graph.StyleClassic    // "classic"
//	graph.StylePlain      // "plain"
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
