// Package newick reads and writes phylogenies in newick tree format.
//
// # Format
//
// The parser accepts the common dialect of nested parentheses with bare
// labels and colon-separated branch attributes:
//
//	(A:0.1,B:0.2,(C:0.3,D:0.4)E:0.5)F;
//
// The first attribute after a label is the branch length of the node's
// incoming branch; a missing length defaults to zero. A second attribute
// is read as a confidence value, validated, and discarded, since branches
// carry a length only. Several ';'-terminated trees in one input form a
// forest with one root per tree.
//
// # Synthetic Labels
//
// Internal nodes without a label receive synthetic NODE_<n> labels,
// numbered from zero in the order the nodes are inserted. Parsing "(A,B);"
// therefore yields a root labeled NODE_0 with children A and B.
//
// # Hybrid Nodes
//
// Extended newick expresses recombination by repeating a tagged label:
//
//	(A,B,((C,(Y)x#H1)c,(x#H1,D)d)e)f;
//
// Every node that shares a label merges into a single graph node, so x#H1
// above ends up with parents c and d and is classified as a recombination
// node. The writer inverts this by expanding a recombination node under
// its first parent and emitting bare label references under the rest, so
// graphs survive a write and re-parse with their topology intact.
//
// # Limitations
//
// Quoted labels and bracketed comments are not supported. Labels may not
// contain parentheses, commas, colons, semicolons, or whitespace.
package newick
