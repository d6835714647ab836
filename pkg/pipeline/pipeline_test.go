package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/arborlab/phylograph/pkg/cache"
	"github.com/arborlab/phylograph/pkg/phylo"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"mermaid", false},
		{"svg", false},
		{"png", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"classic", false},
		{"plain", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateDirection(t *testing.T) {
	tests := []struct {
		direction string
		wantErr   bool
	}{
		{"LR", false},
		{"TB", false},
		{"lr", true}, // case-sensitive
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDirection(tt.direction)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDirection(%q) error = %v, wantErr %v", tt.direction, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// Missing input and data
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing input should fail")
	}

	// Valid with input
	opts = Options{Input: "arg.nwk"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid input options should pass: %v", err)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}

	// Valid with raw data
	opts = Options{Data: []byte("(A:1);")}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid data options should pass: %v", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
	if opts.Direction != DefaultDirection {
		t.Errorf("Direction should be %s, got %s", DefaultDirection, opts.Direction)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "arg.nwk"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := len(opts.Formats)
	originalStyle := opts.Style
	originalDirection := opts.Direction

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
	if opts.Direction != originalDirection {
		t.Error("Direction changed on second call")
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{Formats: []string{"bogus"}}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("Invalid format should fail")
	}

	opts = Options{Style: "bogus"}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("Invalid style should fail")
	}

	opts = Options{Direction: "bogus"}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("Invalid direction should fail")
	}

	opts = Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(phylo.Toy1())

	if s.NodeCount != 8 {
		t.Errorf("NodeCount = %d, want 8", s.NodeCount)
	}
	if s.BranchCount != 10 {
		t.Errorf("BranchCount = %d, want 10", s.BranchCount)
	}
	if len(s.Roots) != 1 || s.Roots[0] != "A" {
		t.Errorf("Roots = %v, want [A]", s.Roots)
	}
	if len(s.Leaves) != 2 || s.Leaves[0] != "G" || s.Leaves[1] != "H" {
		t.Errorf("Leaves = %v, want [G H]", s.Leaves)
	}
	if len(s.Recombinants) != 2 || s.Recombinants[0] != "D" || s.Recombinants[1] != "G" {
		t.Errorf("Recombinants = %v, want [D G]", s.Recombinants)
	}
	if s.Depth != 4 {
		t.Errorf("Depth = %d, want 4", s.Depth)
	}
}

func TestSummarizeChain(t *testing.T) {
	s := Summarize(phylo.Chain())

	if s.Depth != 2 {
		t.Errorf("Depth = %d, want 2", s.Depth)
	}
	if len(s.Recombinants) != 0 {
		t.Errorf("Recombinants = %v, want none", s.Recombinants)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(phylo.New[string, float32]())

	if s.NodeCount != 0 || s.BranchCount != 0 || s.Depth != 0 {
		t.Errorf("empty graph summary = %+v, want zeros", s)
	}
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestRunnerLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.nwk")
	if err := os.WriteFile(path, []byte("((C:1)B:1)A;"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	g, hit, err := runner.LoadWithCacheInfo(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("LoadWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("file loads should not report a cache hit")
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
}

func TestRunnerLoadData(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	g, err := runner.Load(context.Background(), Options{Data: []byte("((A:1,B:2)R:0);")})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount = %d, want 4", g.NodeCount())
	}
}

func TestRunnerLoadMissingInput(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	if _, err := runner.Load(context.Background(), Options{}); err == nil {
		t.Error("Load() without input should fail")
	}
}

func TestRunnerExecute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toy.nwk")
	if err := os.WriteFile(path, []byte("((B:1,C:1)A:1);"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, testLogger())
	defer runner.Close()

	opts := Options{
		Input:   path,
		Formats: []string{"dot", "mermaid", "json"},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.CacheInfo.RenderHit {
		t.Error("first run should not hit the render cache")
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if len(result.Artifacts) != 3 {
		t.Errorf("Artifacts = %d formats, want 3", len(result.Artifacts))
	}
	if !strings.Contains(string(result.Artifacts["dot"]), "digraph ARG") {
		t.Error("dot artifact should contain digraph header")
	}
	if !strings.Contains(string(result.Artifacts["mermaid"]), "graph TD") {
		t.Error("mermaid artifact should contain graph header")
	}
	if !strings.Contains(string(result.Artifacts["json"]), "\"nodes\"") {
		t.Error("json artifact should contain nodes")
	}
	if result.Summary.NodeCount != 4 {
		t.Errorf("Summary.NodeCount = %d, want 4", result.Summary.NodeCount)
	}

	// Second run serves every artifact from cache.
	result2, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !result2.CacheInfo.RenderHit {
		t.Error("second run should hit the render cache")
	}
	if string(result2.Artifacts["dot"]) != string(result.Artifacts["dot"]) {
		t.Error("cached dot artifact should match the rendered one")
	}
}

func TestRunnerRenderUnsupportedFormat(t *testing.T) {
	runner := NewRunner(nil, nil, testLogger())
	defer runner.Close()

	_, err := runner.Render(context.Background(), phylo.Chain(), Options{Formats: []string{"pdf"}})
	if err == nil {
		t.Error("Render() with unsupported format should fail")
	}
}

func TestRenderKeyOptsVaryByFormat(t *testing.T) {
	opts := Options{Style: "classic", Direction: "LR"}

	svgKey := opts.RenderKeyOpts("svg")
	dotKey := opts.RenderKeyOpts("dot")

	if svgKey == dotKey {
		t.Error("different formats should produce different key options")
	}
	if svgKey.Style != "classic" || svgKey.Direction != "LR" {
		t.Errorf("key opts should carry style and direction: %+v", svgKey)
	}
}
