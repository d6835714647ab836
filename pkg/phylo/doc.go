// Package phylo provides an in-memory ancestral recombination graph (ARG):
// a directed acyclic graph over generic node labels and branch lengths in
// which most nodes descend from a single parent but recombination nodes
// inherit from two or more ancestral lineages.
//
// # Overview
//
// Conventional tree libraries assume every node has at most one parent.
// Recombination breaks that assumption: a recombination node has in-degree
// two or more, its incoming branches are classified recombinant, and
// ancestor or descendant queries must traverse converging paths without
// looping or double counting. Package phylo keeps the familiar tree surface
// (parents, children, ancestors, roots, leaves) but implements it with
// DAG-aware, visited-set-guarded traversal throughout.
//
// The graph owns all node and branch storage for the lifetime of one
// analysis. Nodes are addressed by dense [NodeID] handles that stay stable
// across removals and are never reused; labels are unique per graph and map
// back to handles via [Phylogeny.Find]. Query results are newly allocated
// and never alias internal storage, so they remain valid across later
// mutations.
//
// # Basic Usage
//
// Create a graph with [New] (built-in numeric branch lengths) or [NewWith]
// (custom length type plus conversion), then insert nodes and branches:
//
//	g := phylo.New[string, float32]()
//	a, _ := g.AddNode("A")
//	b, _ := g.AddNode("B")
//	c, _ := g.AddNode("C")
//	g.AddBranch(a, b, 1)
//	g.AddBranch(a, c, 1)
//
// Branch insertion is atomic: inserting a branch that would create a cycle
// fails with [ErrCycleDetected] and leaves the graph exactly as it was.
//
// # Recombination
//
// A node acquires recombinant status the moment its second incoming branch
// is inserted; all of its incoming branches (the new one included) are then
// classified recombinant. Removing parents demotes the status symmetrically.
// [Phylogeny.IsRecombinant], [Phylogeny.Recombinants] and
// [Phylogeny.RecombinantAncestor] expose the classification;
// [Phylogeny.Ancestors] and [Phylogeny.Descendants] return deduplicated
// transitive closures that are correct in the presence of recombination
// diamonds.
//
// # Branch Lengths
//
// Lengths are stored as the caller's type B and converted to float32 only
// when aggregated, through the [LengthFunc] supplied at construction.
// Conversion failures surface as [ErrInvalidBranchLength], never as a
// silent zero. [Phylogeny.PathLength] sums converted lengths along the
// first discovered path; when recombination creates several paths the
// choice is documented as implementation-defined.
//
// # Concurrency
//
// Phylogeny instances are not safe for concurrent mutation. Queries are
// pure and may run concurrently with each other, but callers must not
// mutate the graph while any query is in flight; embedding applications
// that need shared access must impose their own read-write discipline.
// The package itself performs no I/O and no logging; every failure is a
// typed error returned to the caller.
package phylo
