package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborlab/phylograph/pkg/pipeline"
)

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a recombination graph to DOT, Mermaid, SVG, PNG, or JSON",
		Long: `Render a recombination graph to one or more output formats.

The input is a Newick or JSON document given as a file path, an http(s)
URL, or "-" for standard input. The format is detected from the file
extension or the content.

Rendered artifacts are cached locally, keyed by graph content and render
options, so re-rendering an unchanged graph is instant.

Examples:
  phylograph render arg.nwk
  phylograph render arg.nwk -f dot,svg -o out/arg
  phylograph render https://example.org/arg.newick -f png
  cat arg.nwk | phylograph render - -f mermaid -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyRenderConfig(cmd, cfg.Render, &opts)

			opts.Formats = parseFormats(formatsStr, cfg.Render.Format)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if opts.Style != "" {
				if err := pipeline.ValidateStyle(opts.Style); err != nil {
					return err
				}
			}
			if opts.Direction != "" {
				if err := pipeline.ValidateDirection(opts.Direction); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, \"-\" for stdout) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, mermaid, png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: classic (default), plain")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "layout direction: LR (default), TB")
	cmd.Flags().BoolVar(&opts.ShowLengths, "show-lengths", false, "label branches with their lengths")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "display name for the graph")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the source cache for URL inputs")

	return cmd
}

// applyRenderConfig fills render options from the config file where the
// corresponding flag was not set on the command line.
func applyRenderConfig(cmd *cobra.Command, cfg RenderConfig, opts *pipeline.Options) {
	if !cmd.Flags().Changed("style") && cfg.Style != "" {
		opts.Style = cfg.Style
	}
	if !cmd.Flags().Changed("direction") && cfg.Direction != "" {
		opts.Direction = cfg.Direction
	}
	if !cmd.Flags().Changed("show-lengths") && cfg.ShowLengths {
		opts.ShowLengths = true
	}
}

// runRender executes the pipeline for input and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if input == stdinPath {
		data, err := readStdin()
		if err != nil {
			return err
		}
		opts.Data = data
	} else {
		opts.Input = input
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     result.Stats.NodeCount,
		branches:  result.Stats.BranchCount,
		cacheHit:  result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}

	if output != stdinPath && input != stdinPath {
		printNewline()
		printNextStep("Inspect", appName+" inspect "+input)
	}
	return nil
}
