package newick

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/arborlab/phylograph/pkg/phylo"
)

// ErrSyntax wraps every parse error caused by malformed input. Errors from
// graph construction, such as a self-referential tree, surface as the
// corresponding phylo sentinel instead.
var ErrSyntax = errors.New("malformed newick")

// =============================================================================
// Parsing API
// =============================================================================

// ParseString parses newick text into a phylogeny. The input may contain
// several ';'-terminated trees; each becomes one root in the resulting
// graph. Unlabeled internal nodes receive synthetic NODE_<n> labels in the
// order they are reached. Nodes that share a label merge into one graph
// node, which is how extended newick hybrid tags such as x#H1 turn into
// recombination nodes with several parents.
func ParseString(s string) (*phylo.Tree, error) {
	p := &parser{input: s}
	roots, err := p.parseForest()
	if err != nil {
		return nil, err
	}
	return build(roots)
}

// Parse reads all of r and parses it with ParseString.
func Parse(r io.Reader) (*phylo.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return ParseString(string(data))
}

// ParseFile reads a newick file and returns the parsed phylogeny.
func ParseFile(path string) (*phylo.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// =============================================================================
// Internal Implementation
// =============================================================================

// node is one parsed tree vertex before graph construction. A missing
// branch length field defaults to zero.
type node struct {
	label    string
	length   float32
	children []*node
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseForest() ([]*node, error) {
	var roots []*node
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return roots, nil
		}
		if p.input[p.pos] == ';' {
			p.pos++
			continue
		}
		root, err := p.parseSubtree()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos < len(p.input) {
			if p.input[p.pos] != ';' {
				return nil, p.errorf("expected ';' after tree, found %q", p.input[p.pos])
			}
			p.pos++
		}
		if root != nil {
			roots = append(roots, root)
		}
	}
}

// parseSubtree parses one node: an optional parenthesized child group
// followed by an optional label and optional :length[:confidence] fields.
// A completely empty entry, as in "(A,,B)", returns nil and is skipped.
func (p *parser) parseSubtree() (*node, error) {
	p.skipSpace()
	n := &node{}
	if p.peek() == '(' {
		p.pos++
		for {
			child, err := p.parseSubtree()
			if err != nil {
				return nil, err
			}
			if child != nil {
				n.children = append(n.children, child)
			}
			p.skipSpace()
			c := p.peek()
			if c == ',' {
				p.pos++
				continue
			}
			if c == ')' {
				p.pos++
				break
			}
			if c == 0 {
				return nil, p.errorf("unclosed group")
			}
			return nil, p.errorf("unexpected %q inside group", c)
		}
	}
	n.label = p.scanToken()
	length, present, err := p.parseLength()
	if err != nil {
		return nil, err
	}
	n.length = length
	if n.label == "" && n.children == nil && !present {
		return nil, nil
	}
	return n, nil
}

// parseLength parses the :length field and, when present, a trailing
// :confidence field. Confidence values are validated and discarded since
// branches carry no confidence.
func (p *parser) parseLength() (float32, bool, error) {
	p.skipSpace()
	if p.peek() != ':' {
		return 0, false, nil
	}
	p.pos++
	tok := p.scanToken()
	if tok == "" {
		return 0, false, p.errorf("missing branch length after ':'")
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, false, p.errorf("invalid branch length %q", tok)
	}
	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		conf := p.scanToken()
		if conf == "" {
			return 0, false, p.errorf("missing confidence after ':'")
		}
		if _, err := strconv.ParseFloat(conf, 32); err != nil {
			return 0, false, p.errorf("invalid confidence %q", conf)
		}
	}
	return float32(v), true, nil
}

// scanToken consumes a run of label characters. Delimiters are ASCII, so
// scanning bytes keeps multi-byte labels intact.
func (p *parser) scanToken() string {
	start := p.pos
	for p.pos < len(p.input) && !isDelim(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", ErrSyntax, fmt.Sprintf(format, args...), p.pos)
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', ',', ':', ';':
		return true
	}
	return isSpace(c)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// build converts parsed trees into one phylogeny, assigning synthetic
// labels to unlabeled nodes in insertion order across the whole forest.
func build(roots []*node) (*phylo.Tree, error) {
	g := phylo.New[string, float32]()
	synth := 0
	for _, root := range roots {
		if _, err := insert(g, root, -1, &synth); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// insert adds nd and its subtree to g, attaching nd to parent unless parent
// is negative. Labels already present in the graph reuse the existing node.
func insert(g *phylo.Tree, nd *node, parent phylo.NodeID, synth *int) (phylo.NodeID, error) {
	label := nd.label
	if label == "" {
		label = fmt.Sprintf("NODE_%d", *synth)
		*synth++
	}
	id, ok := g.Find(label)
	if !ok {
		var err error
		if id, err = g.AddNode(label); err != nil {
			return 0, err
		}
	}
	if parent >= 0 {
		if err := g.AddBranch(parent, id, nd.length); err != nil {
			from, _ := g.Label(parent)
			return 0, fmt.Errorf("branch %s -> %s: %w", from, label, err)
		}
	}
	for _, child := range nd.children {
		if _, err := insert(g, child, id, synth); err != nil {
			return 0, err
		}
	}
	return id, nil
}
