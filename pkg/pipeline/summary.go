package pipeline

import (
	"github.com/arborlab/phylograph/pkg/phylo"
)

// Summary describes the structure of a loaded graph. It is embedded in
// pipeline results and returned by the API alongside rendered artifacts.
type Summary struct {
	Name         string   `json:"name,omitempty"`
	NodeCount    int      `json:"node_count"`
	BranchCount  int      `json:"branch_count"`
	Roots        []string `json:"roots"`
	Leaves       []string `json:"leaves"`
	Recombinants []string `json:"recombinants"`
	Depth        int      `json:"depth"`
}

// Summarize computes structural statistics for a graph. Node lists keep
// insertion order.
func Summarize(g *phylo.Tree) Summary {
	return Summary{
		NodeCount:    g.NodeCount(),
		BranchCount:  g.BranchCount(),
		Roots:        labelsOf(g, g.Roots()),
		Leaves:       labelsOf(g, g.Leaves()),
		Recombinants: labelsOf(g, g.Recombinants()),
		Depth:        depth(g),
	}
}

func labelsOf(g *phylo.Tree, ids []phylo.NodeID) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if label, err := g.Label(id); err == nil {
			labels = append(labels, label)
		}
	}
	return labels
}

// depth returns the number of branches on the longest root-to-leaf path.
func depth(g *phylo.Tree) int {
	memo := make(map[phylo.NodeID]int, g.NodeCount())

	var walk func(id phylo.NodeID) int
	walk = func(id phylo.NodeID) int {
		if d, ok := memo[id]; ok {
			return d
		}
		best := 0
		children, _ := g.Children(id)
		for _, child := range children {
			if d := walk(child) + 1; d > best {
				best = d
			}
		}
		memo[id] = best
		return best
	}

	best := 0
	for _, root := range g.Roots() {
		if d := walk(root); d > best {
			best = d
		}
	}
	return best
}
