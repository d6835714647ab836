package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperrors "github.com/arborlab/phylograph/pkg/errors"
	"github.com/arborlab/phylograph/pkg/graph"
	phyloio "github.com/arborlab/phylograph/pkg/io"
	"github.com/arborlab/phylograph/pkg/store"
)

// storeCommand creates the store command with subcommands.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save, load, list, and delete named graphs",
		Long: `Persist recombination graphs under a name for later retrieval.

Graphs are stored as JSON documents in ~/.config/phylograph/graphs/ by
default; the config file can switch the backend to MongoDB for shared
deployments.`,
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeLoadCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// storeSaveCommand creates the "store save" subcommand.
func (c *CLI) storeSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save <input>",
		Short: "Save a graph under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if name == "" {
				name = outputBase(input)
			}
			if err := apperrors.ValidateName(name); err != nil {
				return err
			}

			g, err := loadDocument(input)
			if err != nil {
				return err
			}

			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			rec := store.Record{Name: name, Graph: graph.FromPhylogeny(g)}
			if err := st.Save(cmd.Context(), &rec); err != nil {
				return fmt.Errorf("save graph: %w", err)
			}

			printSuccess("Saved %q", name)
			printKeyValue("ID", rec.ID)
			printStats(g.NodeCount(), g.BranchCount(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "name for the stored graph (default: input file name)")

	return cmd
}

// storeLoadCommand creates the "store load" subcommand.
func (c *CLI) storeLoadCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Load a stored graph and write it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != graph.FormatNewick && format != graph.FormatJSON {
				return fmt.Errorf("invalid format: %q (must be one of: newick, json)", format)
			}

			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			rec, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load graph: %w", err)
			}

			g, err := graph.ToPhylogeny(rec.Graph)
			if err != nil {
				return fmt.Errorf("stored graph %s is invalid: %w", rec.ID, err)
			}

			out, err := openOutput(output)
			if err != nil {
				return fmt.Errorf("open output %s: %w", output, err)
			}
			defer out.Close()

			if err := phyloio.Write(g, out, format); err != nil {
				return fmt.Errorf("write graph: %w", err)
			}

			if output != "" && output != stdinPath {
				printSuccess("Wrote %q to %s", rec.Name, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", graph.FormatNewick, "output format: newick or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			records, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list graphs: %w", err)
			}
			if len(records) == 0 {
				printInfo("Store is empty")
				printNextStep("Save a graph", appName+" store save arg.nwk --name my-arg")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.ID,
					rec.Name,
					strconv.Itoa(len(rec.Graph.Nodes)),
					strconv.Itoa(len(rec.Graph.Branches)),
					formatRelativeTime(rec.UpdatedAt),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Name", "Nodes", "Branches", "Updated").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
					}
					if col == 1 {
						return StyleValue
					}
					return StyleDim
				})

			fmt.Println(t.Render())
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete graph: %w", err)
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// formatRelativeTime renders a timestamp as a short relative age for
// recent times and a date for older ones.
func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
