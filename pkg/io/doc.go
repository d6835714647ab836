// Package io loads and saves phylogenies across the supported file formats.
//
// # Overview
//
// This package is the format-agnostic entry point the CLI and pipeline use
// for graph files. It dispatches between:
//
//   - newick text (pkg/newick): .nwk, .newick, .tree, .treefile
//   - node-branch JSON (pkg/graph): .json
//
// # Detection
//
// [Detect] maps a file extension to a format name. [Load] falls back to
// [DetectData] when the extension is unrecognized, sniffing the first
// non-space byte: '{' opens a JSON object, anything else is treated as
// newick. [Save] relies on the extension alone and fails with
// [ErrUnknownFormat] rather than guessing where to write.
//
// # Import
//
// Use [Load] to read a graph from a file path, or [Read] to read from any
// io.Reader with an explicit format:
//
//	g, err := io.Load("arg.nwk")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate graph constraints (no cycles, no duplicate
// labels). Errors are wrapped with context about which node or branch
// caused the problem.
//
// # Export
//
// Use [Save] to write a graph to a file, or [Write] to write to any
// io.Writer:
//
//	err := io.Save(g, "output.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both formats round-trip node and branch insertion order, so import,
// transform, export, and re-import reproduce adjacency order identically.
//
// # Concurrency
//
// All functions are safe to call concurrently with other readers of the
// same phylogeny, but not with concurrent modifications. [Read] and [Load]
// create independent instances that can be modified freely after import.
package io
