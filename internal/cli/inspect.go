package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/arborlab/phylograph/pkg/phylo"
	"github.com/arborlab/phylograph/pkg/pipeline"
)

// inspectCommand creates the inspect command for summarizing graph structure.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		nodeLabel string
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Summarize a recombination graph",
		Long: `Summarize the structure of a recombination graph.

Without flags, inspect prints node and branch counts, roots, leaves,
recombinant nodes, and the depth of the graph. With --node, it prints the
neighborhood of a single node: parents, children, ancestors, descendants,
and the closest recombinant ancestor.

Examples:
  phylograph inspect arg.nwk
  phylograph inspect arg.nwk --node D`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], nodeLabel, noCache, refresh)
		},
	}

	cmd.Flags().StringVar(&nodeLabel, "node", "", "show detail for the node with this label")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the source cache for URL inputs")

	return cmd
}

// runInspect loads the graph and prints either the summary or node detail.
func (c *CLI) runInspect(ctx context.Context, input, nodeLabel string, noCache, refresh bool) error {
	opts := pipeline.Options{Refresh: refresh}
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

	g, cacheHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}

	if nodeLabel != "" {
		return inspectNode(g, nodeLabel)
	}

	summary := pipeline.Summarize(g)

	fmt.Println(StyleTitle.Render("Graph Summary"))
	printKeyValue("Nodes", strconv.Itoa(summary.NodeCount))
	printKeyValue("Branches", strconv.Itoa(summary.BranchCount))
	printKeyValue("Roots", labelList(summary.Roots))
	printKeyValue("Leaves", labelList(summary.Leaves))
	printRecombinants("Recombinants", summary.Recombinants)
	printKeyValue("Depth", strconv.Itoa(summary.Depth))
	printStats(summary.NodeCount, summary.BranchCount, cacheHit)

	return nil
}

// inspectNode prints the neighborhood of the node with the given label.
func inspectNode(g *phylo.Tree, label string) error {
	id, ok := g.Find(label)
	if !ok {
		return fmt.Errorf("node %q not found", label)
	}

	parents, _ := g.Parents(id)
	children, _ := g.Children(id)
	ancestors, _ := g.Ancestors(id)
	descendants, _ := g.Descendants(id)

	fmt.Println(StyleTitle.Render("Node " + label))
	printKeyValue("Class", nodeClass(g, id))
	printKeyValue("In-degree", strconv.Itoa(g.InDegree(id)))
	printKeyValue("Out-degree", strconv.Itoa(g.OutDegree(id)))
	printKeyValue("Parents", labelList(labelsOf(g, parents)))
	printKeyValue("Children", labelList(labelsOf(g, children)))
	printKeyValue("Ancestors", labelList(labelsOf(g, ancestors)))
	printKeyValue("Descendants", labelList(labelsOf(g, descendants)))

	if anc, found, _ := g.RecombinantAncestor(id); found {
		ancLabel, _ := g.Label(anc)
		printRecombinants("Recomb. origin", []string{ancLabel})
	} else {
		printKeyValue("Recomb. origin", "none")
	}

	return nil
}

// nodeClass names the recombination class of a node.
func nodeClass(g *phylo.Tree, id phylo.NodeID) string {
	if g.InDegree(id) >= 2 {
		return "recombinant"
	}
	if _, ok, _ := g.RecombinantAncestor(id); ok {
		return "recombinant descendant"
	}
	return "default"
}

// labelsOf maps node ids to their labels, keeping order.
func labelsOf(g *phylo.Tree, ids []phylo.NodeID) []string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		label, err := g.Label(id)
		if err != nil {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// labelList joins labels for display, with a placeholder for none.
func labelList(labels []string) string {
	if len(labels) == 0 {
		return "none"
	}
	return strings.Join(labels, ", ")
}

// printRecombinants prints a key-value line with the recombinant color.
func printRecombinants(key string, labels []string) {
	if len(labels) == 0 {
		printKeyValue(key, "none")
		return
	}
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleRecombinant.Render(labelList(labels)))
}
