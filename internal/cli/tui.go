package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/arborlab/phylograph/pkg/phylo"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for interactive graph exploration.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui <input>",
		Short: "Explore a recombination graph interactively",
		Long: `Open an interactive node explorer for a recombination graph.

Navigate the node list with the arrow keys; the pane below shows the
selected node's neighborhood. Press r to jump between recombinant nodes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if g.IsEmpty() {
				return fmt.Errorf("%s: graph has no nodes", args[0])
			}

			model := newNodeExplorerModel(g)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// =============================================================================
// NodeExplorerModel - Interactive node browsing
// =============================================================================

// NodeExplorerModel is the bubbletea model for browsing graph nodes.
type NodeExplorerModel struct {
	Graph  *phylo.Tree
	Nodes  []phylo.NodeID
	Cursor int
	Height int
	Offset int
}

// newNodeExplorerModel creates an explorer over the nodes of g in
// insertion order.
func newNodeExplorerModel(g *phylo.Tree) NodeExplorerModel {
	return NodeExplorerModel{
		Graph:  g,
		Nodes:  g.Nodes(),
		Height: 15,
	}
}

func (m NodeExplorerModel) Init() tea.Cmd {
	return nil
}

func (m NodeExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "r":
			m.Cursor = m.nextRecombinant()
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 14
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// nextRecombinant returns the index of the next recombinant node after the
// cursor, wrapping around. Without recombinants the cursor stays put.
func (m NodeExplorerModel) nextRecombinant() int {
	for step := 1; step <= len(m.Nodes); step++ {
		i := (m.Cursor + step) % len(m.Nodes)
		if m.Graph.InDegree(m.Nodes[i]) >= 2 {
			return i
		}
	}
	return m.Cursor
}

func (m NodeExplorerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Node Explorer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r next recombinant  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		id := m.Nodes[i]
		label, _ := m.Graph.Label(id)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			label,
			nodeClass(m.Graph, id),
			strconv.Itoa(m.Graph.InDegree(id)),
			strconv.Itoa(m.Graph.OutDegree(id)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Class", "In", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Nodes) {
				return lipgloss.NewStyle()
			}
			id := m.Nodes[actualIdx]

			base := lipgloss.NewStyle()
			if m.Graph.InDegree(id) >= 2 {
				base = base.Foreground(colorOrange)
			}
			if actualIdx == m.Cursor {
				return base.Bold(true)
			}
			if col >= 3 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))

	return b.String()
}

// detailView renders the neighborhood of the node under the cursor.
func (m NodeExplorerModel) detailView() string {
	id := m.Nodes[m.Cursor]
	label, _ := m.Graph.Label(id)

	parents, _ := m.Graph.Parents(id)
	children, _ := m.Graph.Children(id)
	ancestors, _ := m.Graph.Ancestors(id)
	descendants, _ := m.Graph.Descendants(id)

	origin := "none"
	if anc, found, _ := m.Graph.RecombinantAncestor(id); found {
		origin, _ = m.Graph.Label(anc)
	}

	var b strings.Builder
	b.WriteString(listSelectedStyle.Render("  " + label))
	b.WriteString(listDimStyle.Render("  (" + nodeClass(m.Graph, id) + ")"))
	b.WriteString("\n")
	b.WriteString(detailLine("parents", labelList(labelsOf(m.Graph, parents))))
	b.WriteString(detailLine("children", labelList(labelsOf(m.Graph, children))))
	b.WriteString(detailLine("ancestors", labelList(labelsOf(m.Graph, ancestors))))
	b.WriteString(detailLine("descendants", labelList(labelsOf(m.Graph, descendants))))
	b.WriteString(detailLine("recomb. origin", origin))
	return b.String()
}

func detailLine(key, value string) string {
	return listDimStyle.Render("  "+key+": ") + StyleValue.Render(value) + "\n"
}
