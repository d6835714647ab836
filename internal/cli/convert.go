package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arborlab/phylograph/pkg/graph"
	phyloio "github.com/arborlab/phylograph/pkg/io"
	"github.com/arborlab/phylograph/pkg/phylo"
)

// convertCommand creates the convert command for document conversion.
func (c *CLI) convertCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert between Newick and JSON documents",
		Long: `Convert a recombination graph between Newick and JSON documents.

The input format is detected from the file extension or content. The
output format follows the output file extension; use --format to force
it when writing to stdout ("-").

Examples:
  phylograph convert arg.nwk arg.json
  phylograph convert arg.json arg.nwk
  cat arg.nwk | phylograph convert - - --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], args[1], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: newick or json (default: from output extension)")

	return cmd
}

// runConvert reads input in its detected format and writes output in the
// requested one.
func (c *CLI) runConvert(input, output, format string) error {
	prog := newProgress(c.Logger)

	g, err := loadDocument(input)
	if err != nil {
		return err
	}

	if format == "" {
		format = phyloio.Detect(output)
	}
	if format == "" {
		return fmt.Errorf("cannot infer output format from %q (use --format)", output)
	}
	if format != graph.FormatNewick && format != graph.FormatJSON {
		return fmt.Errorf("invalid format: %q (must be one of: newick, json)", format)
	}

	out, err := openOutput(output)
	if err != nil {
		return fmt.Errorf("open output %s: %w", output, err)
	}
	defer out.Close()

	if err := phyloio.Write(g, out, format); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Converted %d nodes to %s", g.NodeCount(), format))
	if output != stdinPath {
		printSuccess("Wrote %s", output)
	}
	return nil
}

// loadDocument reads a phylogeny from a file path or stdin ("-"), sniffing
// the format.
func loadDocument(input string) (*phylo.Tree, error) {
	if input != stdinPath {
		return phyloio.Load(input)
	}

	data, err := readStdin()
	if err != nil {
		return nil, err
	}
	format := phyloio.DetectData(data)
	if format == "" {
		return nil, fmt.Errorf("stdin: %w", phyloio.ErrUnknownFormat)
	}
	return phyloio.Read(bytes.NewReader(data), format)
}
