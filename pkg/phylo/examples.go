package phylo

// Toy1 returns the toy recombination graph used throughout documentation
// and tests: eight nodes A through H, ten unit-length branches, and two
// recombination nodes (D with parents A and B, G with parents C, E and F).
//
//	A -> B, C, D
//	B -> D
//	C -> F, G
//	D -> E
//	E -> G, H
//	F -> G
func Toy1() *Tree {
	g := New[string, float32]()
	ids := make(map[string]NodeID, 8)
	for _, label := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		id, err := g.AddNode(label)
		must(err)
		ids[label] = id
	}
	for _, pair := range [][2]string{
		{"A", "B"}, {"A", "C"}, {"A", "D"}, {"B", "D"}, {"C", "F"},
		{"C", "G"}, {"D", "E"}, {"E", "G"}, {"E", "H"}, {"F", "G"},
	} {
		must(g.AddBranch(ids[pair[0]], ids[pair[1]], 1))
	}
	return g
}

// Chain returns a minimal linear phylogeny A -> B -> C with unit branch
// lengths and no recombination.
func Chain() *Tree {
	g := New[string, float32]()
	a, err := g.AddNode("A")
	must(err)
	b, err := g.AddNode("B")
	must(err)
	c, err := g.AddNode("C")
	must(err)
	must(g.AddBranch(a, b, 1))
	must(g.AddBranch(b, c, 1))
	return g
}

// must panics on error. The example builders only perform inserts that
// cannot fail on an empty graph.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
