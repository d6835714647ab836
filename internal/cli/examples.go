package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arborlab/phylograph/pkg/graph"
	phyloio "github.com/arborlab/phylograph/pkg/io"
	"github.com/arborlab/phylograph/pkg/phylo"
)

// builtinExamples maps example names to their constructors and a short
// description for the listing.
var builtinExamples = map[string]struct {
	build func() *phylo.Tree
	desc  string
}{
	"toy1":  {phylo.Toy1, "eight nodes with two recombination events"},
	"chain": {phylo.Chain, "linear three-node chain"},
}

// examplesCommand creates the examples command for emitting built-in graphs.
func (c *CLI) examplesCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "examples [name]",
		Short: "Emit a built-in example graph",
		Long: `Emit one of the built-in example graphs as a Newick or JSON document.

Without a name, the available examples are listed. The documents are handy
as render and inspect inputs when trying the tool out.

Examples:
  phylograph examples
  phylograph examples toy1
  phylograph examples toy1 --format json -o toy1.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listExamples()
				return nil
			}
			return writeExample(args[0], format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", graph.FormatNewick, "output format: newick or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// listExamples prints the available examples sorted by name.
func listExamples() {
	names := make([]string, 0, len(builtinExamples))
	for name := range builtinExamples {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(StyleTitle.Render("Built-in Examples"))
	for _, name := range names {
		ex := builtinExamples[name]
		g := ex.build()
		printKeyValue(name, fmt.Sprintf("%s (%d nodes, %d branches)", ex.desc, g.NodeCount(), g.BranchCount()))
	}
	printNewline()
	printNextStep("Render one", appName+" examples toy1 | "+appName+" render - -f svg -o toy1.svg")
}

// writeExample emits the named example in the requested format.
func writeExample(name, format, output string) error {
	ex, ok := builtinExamples[name]
	if !ok {
		return fmt.Errorf("unknown example: %q (available: chain, toy1)", name)
	}
	if format != graph.FormatNewick && format != graph.FormatJSON {
		return fmt.Errorf("invalid format: %q (must be one of: newick, json)", format)
	}

	out, err := openOutput(output)
	if err != nil {
		return fmt.Errorf("open output %s: %w", output, err)
	}
	defer out.Close()

	if err := phyloio.Write(ex.build(), out, format); err != nil {
		return fmt.Errorf("write example: %w", err)
	}

	if output != "" && output != stdinPath {
		printSuccess("Wrote %s", output)
	}
	return nil
}
