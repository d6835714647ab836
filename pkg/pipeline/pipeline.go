// Package pipeline provides the core visualization pipeline for Phylograph.
//
// This package implements the complete load → render pipeline that can be
// used by CLI, API, and worker components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read an ancestral recombination graph from a file, URL, or
//     raw document (Newick or JSON)
//  2. Render: Generate output in various formats (DOT, Mermaid, SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "testdata/arg.nwk",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	g, err := runner.Load(ctx, opts)
//
//	// Render an existing graph
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arborlab/phylograph/pkg/cache"
	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/phylo"
	"github.com/arborlab/phylograph/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleClassic

// DefaultDirection is the default layout direction.
const DefaultDirection = render.DirectionLR

// DefaultPNGScale is the rasterization factor for PNG output.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	graph.FormatDOT:     true,
	graph.FormatMermaid: true,
	graph.FormatSVG:     true,
	graph.FormatPNG:     true,
	graph.FormatJSON:    true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	graph.StyleClassic: true,
	graph.StylePlain:   true,
}

// ValidDirections is the set of supported layout directions.
var ValidDirections = map[string]bool{
	render.DirectionLR: true,
	render.DirectionTB: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input   string `json:"input,omitempty"` // File path or http(s) URL
	Data    []byte `json:"data,omitempty"`  // Raw document, takes precedence over Input
	Name    string `json:"name,omitempty"`  // Display name for the graph
	Refresh bool   `json:"refresh,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Direction   string   `json:"direction,omitempty"`
	ShowLengths bool     `json:"show_lengths,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded recombination graph.
	Graph *phylo.Tree

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Summary describes the graph structure.
	Summary Summary

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	BranchCount int
	LoadTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SourceHit bool // Whether a remote input came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, mermaid, svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return fmt.Errorf("invalid style: %q (must be one of: classic, plain)", style)
	}
	return nil
}

// ValidateDirection checks that a layout direction is valid.
func ValidateDirection(direction string) error {
	if !ValidDirections[direction] {
		return fmt.Errorf("invalid direction: %q (must be one of: LR, TB)", direction)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && len(o.Data) == 0 {
		return fmt.Errorf("input or data is required")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{graph.FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return ValidateDirection(o.Direction)
}

// RenderOptions returns the diagram options implied by the pipeline options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Direction:   o.Direction,
		Style:       o.Style,
		ShowLengths: o.ShowLengths,
	}
}

// RenderKeyOpts returns cache key options for artifact rendering.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	return cache.RenderKeyOpts{
		Format:      format,
		Style:       o.Style,
		Direction:   o.Direction,
		ShowLengths: o.ShowLengths,
	}
}
