package newick

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arborlab/phylograph/pkg/phylo"
)

// FormatString renders g as newick text, one ';'-terminated line per root
// in node insertion order. Every non-root node carries an explicit :length
// field. A recombination node is expanded under the first parent that
// reaches it and written as a bare reference under every later parent;
// ParseString merges the references back into a single node.
func FormatString(g *phylo.Tree) (string, error) {
	var b strings.Builder
	seen := make(map[phylo.NodeID]bool)
	for _, root := range g.Roots() {
		if err := writeSubtree(&b, g, root, nil, seen); err != nil {
			return "", err
		}
		b.WriteString(";\n")
	}
	return b.String(), nil
}

// Write renders g with FormatString and writes the result to w.
func Write(g *phylo.Tree, w io.Writer) error {
	s, err := FormatString(g)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// WriteFile writes g as a newick file.
// The file is created with 0644 permissions.
func WriteFile(g *phylo.Tree, path string) error {
	s, err := FormatString(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeSubtree emits id and, on its first visit, the parenthesized group of
// its children in branch insertion order. length is nil for roots.
func writeSubtree(b *strings.Builder, g *phylo.Tree, id phylo.NodeID, length *float32, seen map[phylo.NodeID]bool) error {
	label, err := g.Label(id)
	if err != nil {
		return err
	}
	first := !seen[id]
	seen[id] = true
	if first {
		children, err := g.Children(id)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			b.WriteByte('(')
			for i, child := range children {
				if i > 0 {
					b.WriteByte(',')
				}
				br, _ := g.Branch(id, child)
				l := br.Length
				if err := writeSubtree(b, g, child, &l, seen); err != nil {
					return err
				}
			}
			b.WriteByte(')')
		}
	}
	b.WriteString(label)
	if length != nil {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(float64(*length), 'g', -1, 32))
	}
	return nil
}
