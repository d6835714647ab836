package graph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Render output formats.
const (
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatJSON    = "json"
	FormatNewick  = "newick"
)

// Visual styles for rendering.
const (
	StyleClassic = "classic"
	StylePlain   = "plain"
)

// =============================================================================
// Graph - Phylogeny Serialization
// =============================================================================

// Graph is the canonical serialization format for phylogenies.
// Used for JSON files, API responses, storage, and caching.
//
// Nodes and branches appear in insertion order so that a round trip through
// the format reproduces parent and child adjacency order exactly.
type Graph struct {
	Nodes    []Node   `json:"nodes" bson:"nodes"`
	Branches []Branch `json:"branches" bson:"branches"`
}

// =============================================================================
// Node - Labeled Vertex
// =============================================================================

// Node is one labeled vertex. Recombinant is derived from branch structure
// on export and ignored on import, where it is recomputed.
type Node struct {
	Label       string `json:"label" bson:"label"`
	Recombinant bool   `json:"recombinant,omitempty" bson:"recombinant,omitempty"`
}

// =============================================================================
// Branch - Directed Connection
// =============================================================================

// Branch is a directed parent-to-child connection with a length.
// Recombinant mirrors the classification of the branch on export and is
// ignored on import.
type Branch struct {
	Parent      string  `json:"parent" bson:"parent"`
	Child       string  `json:"child" bson:"child"`
	Length      float32 `json:"length" bson:"length"`
	Recombinant bool    `json:"recombinant,omitempty" bson:"recombinant,omitempty"`
}
