package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/arborlab/phylograph/pkg/phylo"
)

func TestMarshalGraph(t *testing.T) {
	tests := []struct {
		name         string
		build        func() *phylo.Tree
		wantNodes    int
		wantBranches int
		check        func(t *testing.T, g Graph)
	}{
		{
			name:         "Empty",
			build:        func() *phylo.Tree { return phylo.New[string, float32]() },
			wantNodes:    0,
			wantBranches: 0,
		},
		{
			name:         "Chain",
			build:        phylo.Chain,
			wantNodes:    3,
			wantBranches: 2,
			check: func(t *testing.T, g Graph) {
				if g.Nodes[0].Label != "A" {
					t.Errorf("first node = %q, want A", g.Nodes[0].Label)
				}
				if g.Branches[0].Length != 1 {
					t.Errorf("length = %v, want 1", g.Branches[0].Length)
				}
			},
		},
		{
			name:         "Recombination",
			build:        phylo.Toy1,
			wantNodes:    8,
			wantBranches: 10,
			check: func(t *testing.T, g Graph) {
				recombinant := make(map[string]bool)
				for _, n := range g.Nodes {
					if n.Recombinant {
						recombinant[n.Label] = true
					}
				}
				if !recombinant["D"] || !recombinant["G"] || len(recombinant) != 2 {
					t.Errorf("recombinant nodes = %v, want D and G", recombinant)
				}
				for _, b := range g.Branches {
					want := b.Child == "D" || b.Child == "G"
					if b.Recombinant != want {
						t.Errorf("branch %s -> %s recombinant = %v, want %v", b.Parent, b.Child, b.Recombinant, want)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalGraph(tt.build())
			if err != nil {
				t.Fatalf("MarshalGraph: %v", err)
			}

			var result Graph
			if err := json.Unmarshal(data, &result); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if got := len(result.Nodes); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := len(result.Branches); got != tt.wantBranches {
				t.Errorf("branches = %d, want %d", got, tt.wantBranches)
			}

			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantNodes    int
		wantBranches int
		wantErr      error
		check        func(t *testing.T, g *phylo.Tree)
	}{
		{
			name: "Valid",
			input: `{
				"nodes": [
					{"label": "A"},
					{"label": "B"}
				],
				"branches": [
					{"parent": "A", "child": "B", "length": 2.5}
				]
			}`,
			wantNodes:    2,
			wantBranches: 1,
			check: func(t *testing.T, g *phylo.Tree) {
				a, ok := g.Find("A")
				if !ok {
					t.Fatal("node A not found")
				}
				b, _ := g.Find("B")
				br, ok := g.Branch(a, b)
				if !ok {
					t.Fatal("branch A -> B not found")
				}
				if br.Length != 2.5 {
					t.Errorf("length = %v, want 2.5", br.Length)
				}
			},
		},
		{
			name: "RecomputesClassification",
			input: `{
				"nodes": [{"label": "A"}, {"label": "B"}, {"label": "C"}],
				"branches": [
					{"parent": "A", "child": "C", "length": 1},
					{"parent": "B", "child": "C", "length": 1, "recombinant": false}
				]
			}`,
			wantNodes:    3,
			wantBranches: 2,
			check: func(t *testing.T, g *phylo.Tree) {
				c, _ := g.Find("C")
				ok, err := g.IsRecombinant(c)
				if err != nil {
					t.Fatalf("IsRecombinant: %v", err)
				}
				if !ok {
					t.Error("C not classified recombinant after import")
				}
			},
		},
		{
			name: "Empty",
			input: `{
				"nodes": [],
				"branches": []
			}`,
			wantNodes:    0,
			wantBranches: 0,
		},
		{
			name:    "InvalidJSON",
			input:   `{invalid json}`,
			wantErr: errInvalidJSON,
		},
		{
			name: "DuplicateLabel",
			input: `{
				"nodes": [{"label": "A"}, {"label": "A"}],
				"branches": []
			}`,
			wantErr: phylo.ErrDuplicateLabel,
		},
		{
			name: "UnknownBranchEndpoint",
			input: `{
				"nodes": [{"label": "A"}],
				"branches": [{"parent": "A", "child": "B", "length": 1}]
			}`,
			wantErr: phylo.ErrUnknownNode,
		},
		{
			name: "Cycle",
			input: `{
				"nodes": [{"label": "A"}, {"label": "B"}],
				"branches": [
					{"parent": "A", "child": "B", "length": 1},
					{"parent": "B", "child": "A", "length": 1}
				]
			}`,
			wantErr: phylo.ErrCycleDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input))

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != errInvalidJSON && !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ReadGraph: %v", err)
			}

			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := g.BranchCount(); got != tt.wantBranches {
				t.Errorf("branches = %d, want %d", got, tt.wantBranches)
			}

			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

// errInvalidJSON marks table cases where any decode error is acceptable.
var errInvalidJSON = errors.New("invalid json")

func TestToPhylogenyInvalidLength(t *testing.T) {
	gj := Graph{
		Nodes: []Node{{Label: "A"}, {Label: "B"}},
		Branches: []Branch{
			{Parent: "A", Child: "B", Length: float32(math.NaN())},
		},
	}
	if _, err := ToPhylogeny(gj); !errors.Is(err, phylo.ErrInvalidBranchLength) {
		t.Errorf("error = %v, want ErrInvalidBranchLength", err)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	first := phylo.Toy1()

	data, err := MarshalGraph(first)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	second, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	if first.NodeCount() != second.NodeCount() {
		t.Fatalf("nodes = %d, want %d", second.NodeCount(), first.NodeCount())
	}
	if first.BranchCount() != second.BranchCount() {
		t.Fatalf("branches = %d, want %d", second.BranchCount(), first.BranchCount())
	}

	// Adjacency order survives the round trip.
	for _, label := range []string{"A", "C", "D", "G"} {
		a, _ := first.Find(label)
		b, ok := second.Find(label)
		if !ok {
			t.Fatalf("node %q missing after round trip", label)
		}
		firstParents, firstParentsErr := first.Parents(a)
		secondParents, secondParentsErr := second.Parents(b)
		wantParents := labelsOf(t, first, adjacency(t, firstParents, firstParentsErr))
		gotParents := labelsOf(t, second, adjacency(t, secondParents, secondParentsErr))
		if !slices.Equal(gotParents, wantParents) {
			t.Errorf("parents of %s = %v, want %v", label, gotParents, wantParents)
		}
		firstChildren, firstChildrenErr := first.Children(a)
		secondChildren, secondChildrenErr := second.Children(b)
		wantChildren := labelsOf(t, first, adjacency(t, firstChildren, firstChildrenErr))
		gotChildren := labelsOf(t, second, adjacency(t, secondChildren, secondChildrenErr))
		if !slices.Equal(gotChildren, wantChildren) {
			t.Errorf("children of %s = %v, want %v", label, gotChildren, wantChildren)
		}
	}
}

func adjacency(t *testing.T, ids []phylo.NodeID, err error) []phylo.NodeID {
	t.Helper()
	if err != nil {
		t.Fatalf("adjacency: %v", err)
	}
	return ids
}

func labelsOf(t *testing.T, g *phylo.Tree, ids []phylo.NodeID) []string {
	t.Helper()
	out := make([]string, len(ids))
	for i, id := range ids {
		label, err := g.Label(id)
		if err != nil {
			t.Fatalf("Label(%d): %v", id, err)
		}
		out[i] = label
	}
	return out
}

func TestReadGraphFile(t *testing.T) {
	content := `{
		"nodes": [{"label": "A"}],
		"branches": []
	}`

	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}

	if g.NodeCount() != 1 {
		t.Errorf("nodes = %d, want 1", g.NodeCount())
	}
}

func TestReadGraphFileNotFound(t *testing.T) {
	_, err := ReadGraphFile("nonexistent.json")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestWriteGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteGraphFile(phylo.Chain(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("nodes = %d, want 3", g.NodeCount())
	}
}
