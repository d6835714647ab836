package phylo

import "slices"

// Ancestors returns every node reachable from id by following parent
// branches transitively, across all paths through every parent. Each
// ancestor appears exactly once no matter how many recombination paths
// reach it, the result never contains id itself, and a root yields an
// empty set. Discovery is breadth-first, so nearer ancestors come first.
// Returns ErrUnknownNode if id does not exist.
func (p *Phylogeny[N, B]) Ancestors(id NodeID) ([]NodeID, error) {
	return p.walk(id, p.incoming, func(b *Branch[B]) NodeID { return b.Parent })
}

// Descendants returns every node reachable from id by following child
// branches transitively, with the same deduplication and self-exclusion
// guarantees as Ancestors. A leaf yields an empty set.
// Returns ErrUnknownNode if id does not exist.
func (p *Phylogeny[N, B]) Descendants(id NodeID) ([]NodeID, error) {
	return p.walk(id, p.outgoing, func(b *Branch[B]) NodeID { return b.Child })
}

// walk is the visited-set-guarded breadth-first traversal shared by
// Ancestors and Descendants. The visited guard is what keeps diamond
// shaped recombination subgraphs from duplicating nodes or looping.
func (p *Phylogeny[N, B]) walk(id NodeID, adjacency map[NodeID][]*Branch[B], next func(*Branch[B]) NodeID) ([]NodeID, error) {
	if !p.HasNode(id) {
		return nil, ErrUnknownNode
	}
	visited := map[NodeID]bool{id: true}
	result := []NodeID{}
	queue := []NodeID{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, b := range adjacency[current] {
			n := next(b)
			if !visited[n] {
				visited[n] = true
				result = append(result, n)
				queue = append(queue, n)
			}
		}
	}
	return result, nil
}

// IsRecombinant reports whether the node has two or more parents.
// Returns ErrUnknownNode if id does not exist.
func (p *Phylogeny[N, B]) IsRecombinant(id NodeID) (bool, error) {
	if !p.HasNode(id) {
		return false, ErrUnknownNode
	}
	return len(p.incoming[id]) >= 2, nil
}

// Recombinants returns all recombination nodes (in-degree >= 2) in
// insertion order.
func (p *Phylogeny[N, B]) Recombinants() []NodeID {
	var ids []NodeID
	for _, id := range p.order {
		if len(p.incoming[id]) >= 2 {
			ids = append(ids, id)
		}
	}
	return ids
}

// NonRecombinants returns all nodes with in-degree <= 1 in insertion order.
func (p *Phylogeny[N, B]) NonRecombinants() []NodeID {
	var ids []NodeID
	for _, id := range p.order {
		if len(p.incoming[id]) < 2 {
			ids = append(ids, id)
		}
	}
	return ids
}

// RecombinantAncestor returns the recombination node closest to id on the
// rootward walk, if any. Closeness follows the breadth-first discovery
// order of Ancestors; among equally near recombinant ancestors the first
// discovered wins. The second return is false when no ancestor is
// recombinant. Returns ErrUnknownNode if id does not exist.
func (p *Phylogeny[N, B]) RecombinantAncestor(id NodeID) (NodeID, bool, error) {
	ancestors, err := p.Ancestors(id)
	if err != nil {
		return 0, false, err
	}
	for _, a := range ancestors {
		if len(p.incoming[a]) >= 2 {
			return a, true, nil
		}
	}
	return 0, false, nil
}

// PathLength returns the sum of converted branch lengths along a directed
// path from ancestor to descendant. When recombination creates several
// paths, the length of the first path discovered by the depth-first
// traversal (children in branch insertion order) is returned; the choice
// is implementation-defined, not shortest or longest. PathLength(x, x)
// is 0 for any live node.
//
// Returns ErrUnknownNode if either node does not exist, ErrUnreachable if
// both exist but no directed path connects them, and
// ErrInvalidBranchLength if a length on the path fails conversion.
func (p *Phylogeny[N, B]) PathLength(ancestor, descendant NodeID) (float32, error) {
	if !p.HasNode(ancestor) || !p.HasNode(descendant) {
		return 0, ErrUnknownNode
	}
	sum, found, err := p.firstPath(ancestor, descendant, map[NodeID]bool{ancestor: true})
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrUnreachable
	}
	return sum, nil
}

// firstPath runs the depth-first search behind PathLength, accumulating
// converted lengths along the first path that reaches to.
func (p *Phylogeny[N, B]) firstPath(from, to NodeID, visited map[NodeID]bool) (float32, bool, error) {
	if from == to {
		return 0, true, nil
	}
	for _, b := range p.outgoing[from] {
		if visited[b.Child] {
			continue
		}
		visited[b.Child] = true
		sum, found, err := p.firstPath(b.Child, to, visited)
		if err != nil {
			return 0, false, err
		}
		if found {
			length, err := p.ConvertLength(b.Length)
			if err != nil {
				return 0, false, err
			}
			return length + sum, true, nil
		}
	}
	return 0, false, nil
}

// Paths returns every simple directed path from ancestor to descendant,
// each path listing its nodes from ancestor to descendant inclusive.
// Paths(x, x) is a single one-node path. The first returned path is the
// one PathLength measures.
//
// Returns ErrUnknownNode if either node does not exist and ErrUnreachable
// if no path connects them.
func (p *Phylogeny[N, B]) Paths(ancestor, descendant NodeID) ([][]NodeID, error) {
	if !p.HasNode(ancestor) || !p.HasNode(descendant) {
		return nil, ErrUnknownNode
	}
	var paths [][]NodeID
	p.collectPaths(ancestor, descendant, []NodeID{ancestor}, map[NodeID]bool{ancestor: true}, &paths)
	if len(paths) == 0 {
		return nil, ErrUnreachable
	}
	return paths, nil
}

// collectPaths enumerates simple paths by depth-first search with an
// on-path guard, backtracking after each child.
func (p *Phylogeny[N, B]) collectPaths(current, target NodeID, path []NodeID, onPath map[NodeID]bool, paths *[][]NodeID) {
	if current == target {
		*paths = append(*paths, slices.Clone(path))
		return
	}
	for _, b := range p.outgoing[current] {
		if onPath[b.Child] {
			continue
		}
		onPath[b.Child] = true
		p.collectPaths(b.Child, target, append(path, b.Child), onPath, paths)
		delete(onPath, b.Child)
	}
}

// CommonAncestors returns the nodes that are ancestors of every queried
// node, where each node counts as an ancestor of itself. The result keeps
// the discovery order of the first queried node and may therefore include
// queried nodes. Returns ErrUnknownNode if any id does not exist.
func (p *Phylogeny[N, B]) CommonAncestors(ids ...NodeID) ([]NodeID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sets := make([]map[NodeID]bool, len(ids))
	for i, id := range ids {
		ancestors, err := p.Ancestors(id)
		if err != nil {
			return nil, err
		}
		set := map[NodeID]bool{id: true}
		for _, a := range ancestors {
			set[a] = true
		}
		sets[i] = set
	}

	first, err := p.Ancestors(ids[0])
	if err != nil {
		return nil, err
	}
	candidates := append([]NodeID{ids[0]}, first...)

	var common []NodeID
	for _, c := range candidates {
		inAll := true
		for _, set := range sets[1:] {
			if !set[c] {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, c)
		}
	}
	return common, nil
}

// MRCA returns the most recent common ancestor of the queried nodes: a
// common ancestor none of whose descendants is also a common ancestor.
// Recombination can make several ancestors equally recent; the first in
// CommonAncestors order is returned, implementation-defined. A node that
// is an ancestor of all the others is its own MRCA.
//
// Returns ErrUnknownNode if any id does not exist and ErrNoCommonAncestor
// if the nodes live in disjoint trees of a forest.
func (p *Phylogeny[N, B]) MRCA(ids ...NodeID) (NodeID, error) {
	common, err := p.CommonAncestors(ids...)
	if err != nil {
		return 0, err
	}
	if len(common) == 0 {
		return 0, ErrNoCommonAncestor
	}
	isCommon := make(map[NodeID]bool, len(common))
	for _, c := range common {
		isCommon[c] = true
	}
	for _, c := range common {
		descendants, err := p.Descendants(c)
		if err != nil {
			return 0, err
		}
		recent := true
		for _, d := range descendants {
			if isCommon[d] {
				recent = false
				break
			}
		}
		if recent {
			return c, nil
		}
	}
	// Unreachable for a valid DAG: an acyclic common-ancestor set always
	// has a node with no common-ancestor descendant.
	return common[len(common)-1], nil
}
