package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/arborlab/phylograph/pkg/phylo"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a phylogeny to JSON bytes.
// Nodes and branches keep their insertion order for deterministic output.
func MarshalGraph(g *phylo.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a phylogeny to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *phylo.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a phylogeny as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g *phylo.Tree, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded phylogeny.
// Returns validation errors for malformed graphs or cycle violations.
func ReadGraphFile(path string) (*phylo.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader into a phylogeny.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (*phylo.Tree, error) {
	return readGraphFrom(r)
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Phylogeny ↔ Graph Conversion
// =============================================================================

// FromPhylogeny converts a phylogeny to its serialization format.
// Node order and branch order follow insertion order, and the derived
// Recombinant flags are filled in for consumers that read the JSON without
// rebuilding the graph.
func FromPhylogeny(g *phylo.Tree) Graph {
	out := Graph{
		Nodes:    make([]Node, 0, g.NodeCount()),
		Branches: make([]Branch, 0, g.BranchCount()),
	}

	for _, id := range g.Nodes() {
		label, _ := g.Label(id)
		out.Nodes = append(out.Nodes, Node{
			Label:       label,
			Recombinant: g.InDegree(id) >= 2,
		})
	}

	for _, br := range g.Branches() {
		parent, _ := g.Label(br.Parent)
		child, _ := g.Label(br.Child)
		out.Branches = append(out.Branches, Branch{
			Parent:      parent,
			Child:       child,
			Length:      br.Length,
			Recombinant: br.Recombinant,
		})
	}

	return out
}

// ToPhylogeny converts a Graph to a phylogeny.
// Returns an error for duplicate labels, branches referencing unlisted
// nodes, and branches that would create a cycle. Recombinant flags in the
// input are ignored and recomputed from branch structure.
func ToPhylogeny(gj Graph) (*phylo.Tree, error) {
	g := phylo.New[string, float32]()

	for _, nj := range gj.Nodes {
		if _, err := g.AddNode(nj.Label); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.Label, err)
		}
	}

	for _, bj := range gj.Branches {
		parent, ok := g.Find(bj.Parent)
		if !ok {
			return nil, fmt.Errorf("branch %s -> %s: parent: %w", bj.Parent, bj.Child, phylo.ErrUnknownNode)
		}
		child, ok := g.Find(bj.Child)
		if !ok {
			return nil, fmt.Errorf("branch %s -> %s: child: %w", bj.Parent, bj.Child, phylo.ErrUnknownNode)
		}
		if err := g.AddBranch(parent, child, bj.Length); err != nil {
			return nil, fmt.Errorf("branch %s -> %s: %w", bj.Parent, bj.Child, err)
		}
	}

	return g, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *phylo.Tree, w io.Writer) error {
	out := FromPhylogeny(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*phylo.Tree, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToPhylogeny(data)
}
