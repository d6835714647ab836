package cache

// RenderKeyOpts are the options that change a rendered artifact. Two runs
// with equal graph hashes and equal RenderKeyOpts produce byte-identical
// output, so they share a cache entry.
type RenderKeyOpts struct {
	Format      string `json:"format"`
	Style       string `json:"style"`
	Direction   string `json:"direction"`
	ShowLengths bool   `json:"show_lengths"`
}

// Keyer generates cache keys for the pipeline stages.
// Both CLI and API use the same keyer so they share cached entries.
type Keyer interface {
	// SourceKey generates a key for a fetched remote input document.
	SourceKey(url string) string

	// RenderKey generates a key for an artifact rendered from the graph
	// with the given content hash.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates hash-based keys with a stage prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// SourceKey generates a key for remote input caching.
func (k *DefaultKeyer) SourceKey(url string) string {
	return hashKey("source", url)
}

// RenderKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
