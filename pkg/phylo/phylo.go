package phylo

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrDuplicateLabel is returned by [Phylogeny.AddNode] when a node with
	// the same label already exists in the graph. Labels must be unique.
	ErrDuplicateLabel = errors.New("duplicate node label")

	// ErrUnknownNode is returned when an operation references a node ID that
	// is not present in the graph. It is never silently ignored.
	ErrUnknownNode = errors.New("unknown node")

	// ErrCycleDetected is returned by [Phylogeny.AddBranch] when the branch
	// would create a directed cycle. The graph is left unchanged.
	ErrCycleDetected = errors.New("branch would create a cycle")

	// ErrInvalidBranchLength is returned when a branch length cannot be
	// converted to a float32 magnitude, either at insertion or at first
	// aggregate use. Lengths are never silently coerced.
	ErrInvalidBranchLength = errors.New("invalid branch length")

	// ErrUnreachable is returned by [Phylogeny.PathLength], [Phylogeny.Paths]
	// and [Phylogeny.LengthOf] when both nodes exist but no directed path (or
	// branch, for LengthOf) connects them. Distinct from ErrUnknownNode.
	ErrUnreachable = errors.New("no directed path between nodes")

	// ErrNoCommonAncestor is returned by [Phylogeny.MRCA] when the queried
	// nodes share no common ancestor (possible in a forest).
	ErrNoCommonAncestor = errors.New("nodes share no common ancestor")
)

// NodeID is a dense integer handle identifying a node within one Phylogeny.
// Handles are assigned sequentially, are stable for the lifetime of the graph,
// and are never reused after removal. External references are always by
// handle, never by pointer into graph storage.
type NodeID int

// Tree is the Phylogeny instantiation used by the codec and rendering
// packages in this module: string labels with float32 branch lengths.
type Tree = Phylogeny[string, float32]

// LengthFunc converts a branch length payload to its float32 magnitude.
// A conversion failure surfaces as ErrInvalidBranchLength to callers.
type LengthFunc[B any] func(B) (float32, error)

// Number covers the built-in numeric types accepted by [New].
// Custom length types use [NewWith] with an explicit conversion.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumericLength returns the default conversion for built-in numeric types.
// NaN and infinities are rejected since they cannot be aggregated into a
// path length; all finite values convert with standard float32 rounding.
func NumericLength[B Number]() LengthFunc[B] {
	return func(v B) (float32, error) {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %v is not a finite magnitude", ErrInvalidBranchLength, v)
		}
		return float32(f), nil
	}
}

// Branch is a directed edge from a parent node to a child node carrying a
// length payload. Recombinant reports the classification at the time the
// branch was read: true iff the child node had in-degree >= 2.
type Branch[B any] struct {
	Parent NodeID // Source node handle
	Child  NodeID // Target node handle
	Length B      // Caller-chosen length payload

	// Recombinant is maintained by the graph: all incoming branches of a
	// node with two or more parents are recombinant, every other branch
	// is not. It is updated on branch insertion and node removal.
	Recombinant bool
}

// Phylogeny is an ancestral recombination graph: a DAG over generic node
// labels N and branch lengths B in which most nodes have a single parent but
// recombination nodes have two or more. The graph owns all node and branch
// storage; queries return newly allocated values that never alias internal
// state.
//
// The zero value is not usable - use New or NewWith to create an instance.
// A Phylogeny is not safe for concurrent mutation; embedding applications
// that share one across goroutines must serialize writes themselves.
type Phylogeny[N comparable, B any] struct {
	labels   map[NodeID]N
	index    map[N]NodeID
	order    []NodeID // node insertion order
	branches []*Branch[B]
	outgoing map[NodeID][]*Branch[B] // parent -> branches to children, insertion order
	incoming map[NodeID][]*Branch[B] // child -> branches from parents, insertion order
	length   LengthFunc[B]
	next     NodeID
}

// New creates an empty Phylogeny for built-in numeric branch lengths.
func New[N comparable, B Number]() *Phylogeny[N, B] {
	return NewWith[N](NumericLength[B]())
}

// NewWith creates an empty Phylogeny with an explicit length conversion.
// A nil conversion disables length validation; PathLength then fails with
// ErrInvalidBranchLength on first use.
func NewWith[N comparable, B any](length LengthFunc[B]) *Phylogeny[N, B] {
	return &Phylogeny[N, B]{
		labels:   make(map[NodeID]N),
		index:    make(map[N]NodeID),
		outgoing: make(map[NodeID][]*Branch[B]),
		incoming: make(map[NodeID][]*Branch[B]),
		length:   length,
	}
}

// AddNode adds a node with the given label and returns its handle.
// Returns ErrDuplicateLabel if the label already exists; callers should
// then use Find to obtain the existing handle.
func (p *Phylogeny[N, B]) AddNode(label N) (NodeID, error) {
	if _, exists := p.index[label]; exists {
		return 0, ErrDuplicateLabel
	}
	id := p.next
	p.next++
	p.labels[id] = label
	p.index[label] = id
	p.order = append(p.order, id)
	return id, nil
}

// AddBranch adds a directed branch from parent to child.
//
// Returns ErrUnknownNode if either endpoint does not exist,
// ErrInvalidBranchLength if the length fails conversion, and
// ErrCycleDetected if the branch would create a directed cycle (checked by
// reachability: the insert fails when child can already reach parent,
// including parent == child). On any failure the graph is unchanged.
//
// If a branch between the same pair already exists its length is updated in
// place; the topology and classification are unaffected.
//
// Side effect: the child's incoming branches are reclassified. When its
// in-degree reaches two or more, all of them (including the new one) become
// recombinant; a sole incoming branch is non-recombinant.
func (p *Phylogeny[N, B]) AddBranch(parent, child NodeID, length B) error {
	if !p.HasNode(parent) || !p.HasNode(child) {
		return ErrUnknownNode
	}
	if p.length != nil {
		if _, err := p.length(length); err != nil {
			return err
		}
	}
	if existing := p.branch(parent, child); existing != nil {
		existing.Length = length
		return nil
	}
	if p.reaches(child, parent) {
		return ErrCycleDetected
	}

	b := &Branch[B]{Parent: parent, Child: child, Length: length}
	p.branches = append(p.branches, b)
	p.outgoing[parent] = append(p.outgoing[parent], b)
	p.incoming[child] = append(p.incoming[child], b)
	p.reclassify(child)
	return nil
}

// RemoveNode removes a node and all of its incident branches.
// Returns ErrUnknownNode if the node does not exist.
//
// Side effect: children that lose an incoming branch are reclassified;
// dropping below in-degree two demotes their remaining incoming branches
// to non-recombinant. The node's handle is retired and never reused.
func (p *Phylogeny[N, B]) RemoveNode(id NodeID) error {
	label, ok := p.labels[id]
	if !ok {
		return ErrUnknownNode
	}

	var affected []NodeID
	for _, b := range p.outgoing[id] {
		p.incoming[b.Child] = slices.DeleteFunc(p.incoming[b.Child], func(x *Branch[B]) bool { return x == b })
		affected = append(affected, b.Child)
	}
	for _, b := range p.incoming[id] {
		p.outgoing[b.Parent] = slices.DeleteFunc(p.outgoing[b.Parent], func(x *Branch[B]) bool { return x == b })
	}
	p.branches = slices.DeleteFunc(p.branches, func(b *Branch[B]) bool { return b.Parent == id || b.Child == id })
	delete(p.outgoing, id)
	delete(p.incoming, id)
	delete(p.labels, id)
	delete(p.index, label)
	p.order = slices.DeleteFunc(p.order, func(n NodeID) bool { return n == id })

	for _, child := range affected {
		p.reclassify(child)
	}
	return nil
}

// Label returns the label stored for the node.
// The value is a copy; mutating it does not affect the graph.
func (p *Phylogeny[N, B]) Label(id NodeID) (N, error) {
	label, ok := p.labels[id]
	if !ok {
		var zero N
		return zero, ErrUnknownNode
	}
	return label, nil
}

// Find returns the handle for a label, if present.
func (p *Phylogeny[N, B]) Find(label N) (NodeID, bool) {
	id, ok := p.index[label]
	return id, ok
}

// HasNode reports whether the handle refers to a live node.
func (p *Phylogeny[N, B]) HasNode(id NodeID) bool {
	_, ok := p.labels[id]
	return ok
}

// Parents returns the parents of the node in branch insertion order.
// Returns ErrUnknownNode if the node does not exist. The slice is newly
// allocated and safe to retain.
func (p *Phylogeny[N, B]) Parents(id NodeID) ([]NodeID, error) {
	if !p.HasNode(id) {
		return nil, ErrUnknownNode
	}
	in := p.incoming[id]
	parents := make([]NodeID, len(in))
	for i, b := range in {
		parents[i] = b.Parent
	}
	return parents, nil
}

// Children returns the children of the node in branch insertion order.
// Returns ErrUnknownNode if the node does not exist. The slice is newly
// allocated and safe to retain.
func (p *Phylogeny[N, B]) Children(id NodeID) ([]NodeID, error) {
	if !p.HasNode(id) {
		return nil, ErrUnknownNode
	}
	out := p.outgoing[id]
	children := make([]NodeID, len(out))
	for i, b := range out {
		children[i] = b.Child
	}
	return children, nil
}

// InDegree returns the number of incoming branches, or 0 for unknown nodes.
func (p *Phylogeny[N, B]) InDegree(id NodeID) int { return len(p.incoming[id]) }

// OutDegree returns the number of outgoing branches, or 0 for unknown nodes.
func (p *Phylogeny[N, B]) OutDegree(id NodeID) int { return len(p.outgoing[id]) }

// Nodes returns all node handles in insertion order.
func (p *Phylogeny[N, B]) Nodes() []NodeID { return slices.Clone(p.order) }

// Branches returns copies of all branches in insertion order.
// Modifications to the returned values do not affect the graph.
func (p *Phylogeny[N, B]) Branches() []Branch[B] {
	out := make([]Branch[B], len(p.branches))
	for i, b := range p.branches {
		out[i] = *b
	}
	return out
}

// Branch returns a copy of the branch from parent to child, if present.
func (p *Phylogeny[N, B]) Branch(parent, child NodeID) (Branch[B], bool) {
	if b := p.branch(parent, child); b != nil {
		return *b, true
	}
	return Branch[B]{}, false
}

// HasBranch reports whether a branch from parent to child exists.
func (p *Phylogeny[N, B]) HasBranch(parent, child NodeID) bool {
	return p.branch(parent, child) != nil
}

// LengthOf returns the length of the branch from parent to child, converted
// through the graph's length conversion at query time.
// Returns ErrUnknownNode if either node is absent and ErrUnreachable if both
// exist but no branch connects them.
func (p *Phylogeny[N, B]) LengthOf(parent, child NodeID) (float32, error) {
	if !p.HasNode(parent) || !p.HasNode(child) {
		return 0, fmt.Errorf("branch %d -> %d: %w", parent, child, ErrUnknownNode)
	}
	b := p.branch(parent, child)
	if b == nil {
		return 0, fmt.Errorf("branch %d -> %d: %w", parent, child, ErrUnreachable)
	}
	return p.ConvertLength(b.Length)
}

// NodeCount returns the number of nodes in the graph.
func (p *Phylogeny[N, B]) NodeCount() int { return len(p.labels) }

// BranchCount returns the number of branches in the graph.
func (p *Phylogeny[N, B]) BranchCount() int { return len(p.branches) }

// IsEmpty reports whether the graph has no nodes.
func (p *Phylogeny[N, B]) IsEmpty() bool { return len(p.labels) == 0 }

// Roots returns all nodes with in-degree 0 in insertion order.
// A phylogeny may have several roots; forests are permitted.
func (p *Phylogeny[N, B]) Roots() []NodeID {
	var roots []NodeID
	for _, id := range p.order {
		if len(p.incoming[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns all nodes with out-degree 0 in insertion order.
func (p *Phylogeny[N, B]) Leaves() []NodeID {
	var leaves []NodeID
	for _, id := range p.order {
		if len(p.outgoing[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// ConvertLength converts a length payload through the graph's conversion.
// Returns ErrInvalidBranchLength if no conversion is configured or the
// value fails to convert.
func (p *Phylogeny[N, B]) ConvertLength(length B) (float32, error) {
	if p.length == nil {
		return 0, fmt.Errorf("%w: no length conversion configured", ErrInvalidBranchLength)
	}
	return p.length(length)
}

// Clone returns a deep copy sharing no mutable state with the original.
// The length conversion function is shared.
func (p *Phylogeny[N, B]) Clone() *Phylogeny[N, B] {
	c := NewWith[N](p.length)
	c.next = p.next
	c.order = slices.Clone(p.order)
	for id, label := range p.labels {
		c.labels[id] = label
		c.index[label] = id
	}
	for _, b := range p.branches {
		nb := *b
		c.branches = append(c.branches, &nb)
		c.outgoing[nb.Parent] = append(c.outgoing[nb.Parent], &nb)
		c.incoming[nb.Child] = append(c.incoming[nb.Child], &nb)
	}
	return c
}

// branch returns the stored branch from parent to child, or nil.
func (p *Phylogeny[N, B]) branch(parent, child NodeID) *Branch[B] {
	for _, b := range p.outgoing[parent] {
		if b.Child == child {
			return b
		}
	}
	return nil
}

// reclassify updates the recombinant flag on all incoming branches of child:
// recombinant iff the child has two or more parents.
func (p *Phylogeny[N, B]) reclassify(child NodeID) {
	recombinant := len(p.incoming[child]) >= 2
	for _, b := range p.incoming[child] {
		b.Recombinant = recombinant
	}
}

// reaches reports whether to is reachable from from by following child
// branches, counting the empty path (from == to). Used for the pre-insert
// cycle check.
func (p *Phylogeny[N, B]) reaches(from, to NodeID) bool {
	if from == to {
		return true
	}
	visited := map[NodeID]bool{from: true}
	stack := []NodeID{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, b := range p.outgoing[id] {
			if b.Child == to {
				return true
			}
			if !visited[b.Child] {
				visited[b.Child] = true
				stack = append(stack, b.Child)
			}
		}
	}
	return false
}
