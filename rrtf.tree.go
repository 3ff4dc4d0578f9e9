package rrtf

import (
	"fmt"
	"strings"
)

// Tree holds the root node parsed from one markup source.
// A tree serves one construct then build/encode sequence at a time.
type Tree[O any] struct {
	portfolio     *Portfolio[O]
	root          *Node[O]
	source        string
	malformations []Malformation
}

// NewTree creates an unconstructed tree bound to a portfolio
func NewTree[O any](p *Portfolio[O]) *Tree[O] {
	return &Tree[O]{portfolio: p}
}

// Construct parses markup into a node tree rooted at the portfolio's root kind.
// On failure the tree is left unconstructed.
func (t *Tree[O]) Construct(markup string) error {
	root, malformations, err := t.portfolio.construct(markup)
	t.malformations = malformations
	if err != nil {
		t.root = nil
		t.source = StringValueEmpty
		return err
	}
	t.root = root
	t.source = markup
	return nil
}

// IsConstructed reports whether Construct has succeeded
func (t *Tree[O]) IsConstructed() bool {
	return t.root != nil
}

// Root returns the root node, or nil before Construct
func (t *Tree[O]) Root() *Node[O] {
	return t.root
}

// Source returns the markup the tree was constructed from
func (t *Tree[O]) Source() string {
	return t.source
}

// Portfolio returns the portfolio the tree parses with
func (t *Tree[O]) Portfolio() *Portfolio[O] {
	return t.portfolio
}

// Malformations returns bracket text seen during the last Construct that did not form a tag
func (t *Tree[O]) Malformations() []Malformation {
	return t.malformations
}

// ToOutput builds the root node
func (t *Tree[O]) ToOutput() (O, error) {
	if t.root == nil {
		var zero O
		return zero, NewTreeNotConstructedError()
	}
	return t.root.Build()
}

// ToMarkup encodes the root node
func (t *Tree[O]) ToMarkup() (string, error) {
	if t.root == nil {
		return StringValueEmpty, NewTreeNotConstructedError()
	}
	return t.root.Encode(), nil
}

// Dump returns an indented outline of the tree for debugging
func (t *Tree[O]) Dump() string {
	if t.root == nil {
		return StringValueEmpty
	}
	var b strings.Builder
	t.root.Walk(func(n *Node[O]) bool {
		dumpNode(&b, n)
		return true
	})
	return b.String()
}

func dumpNode[O any](b *strings.Builder, n *Node[O]) {
	b.WriteString(strings.Repeat(DumpIndent, n.Depth()))
	b.WriteString(n.Identifier())
	if n.tag != StringValueEmpty && n.tag != n.Identifier() {
		fmt.Fprintf(b, " <%s>", n.tag)
	}
	if serialized := n.Options.Serialize(); serialized != StringValueEmpty {
		b.WriteString(StrOptionsOpen)
		b.WriteString(serialized)
		b.WriteString(StrOptionsClose)
	}
	if n.IsLeaf() {
		fmt.Fprintf(b, " %q", truncate(n.Content, DumpMaxContent))
	}
	fmt.Fprintf(b, " @%s\n", n.pos)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + DumpTruncSuffix
}
