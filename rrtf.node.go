package rrtf

import (
	"strings"
)

// Node is one element of a parsed tree.
// Children are owned by their parent; the parent link is set once when the
// parent is created and never changes.
type Node[O any] struct {
	// Content is the raw inner text; only leaves rely on it for encoding
	Content  string
	Options  *OptionSet
	Children []*Node[O]

	parent  *Node[O]
	kind    Kind[O]
	tag     string
	pos     Position
	dropped []RawOption
}

// Parent returns the node containing this one, or nil for a root
func (n *Node[O]) Parent() *Node[O] {
	return n.parent
}

// Kind returns the kind that resolved this node
func (n *Node[O]) Kind() Kind[O] {
	return n.kind
}

// Identifier returns the identifier of the node's kind
func (n *Node[O]) Identifier() string {
	if n.kind == nil {
		return StringValueEmpty
	}
	return n.kind.Identifier()
}

// Tag returns the identifier as written in markup; empty for plain text and roots
func (n *Node[O]) Tag() string {
	return n.tag
}

// Pos returns where the node's segment starts in the source markup
func (n *Node[O]) Pos() Position {
	return n.pos
}

// IsRoot returns true if the node has no parent
func (n *Node[O]) IsRoot() bool {
	return n.parent == nil
}

// IsLeaf returns true if the node has no children
func (n *Node[O]) IsLeaf() bool {
	return len(n.Children) == 0
}

// Depth returns the number of ancestors
func (n *Node[O]) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// DroppedOptions returns option keys the kind does not declare, in markup order
func (n *Node[O]) DroppedOptions() []RawOption {
	return n.dropped
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the visited node's children.
func (n *Node[O]) Walk(fn func(node *Node[O]) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Build computes the node's output through its kind.
// Errors from the kind are returned unchanged.
func (n *Node[O]) Build() (O, error) {
	if n.kind == nil {
		var zero O
		return zero, NewBuildError(StringValueEmpty, n.pos, nil)
	}
	return n.kind.Build(n)
}

// BuildChildren builds every child in order, stopping at the first error
func (n *Node[O]) BuildChildren() ([]O, error) {
	outputs := make([]O, 0, len(n.Children))
	for _, child := range n.Children {
		out, err := child.Build()
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// Encode renders the node as markup, using the kind's Encoder when it has one
func (n *Node[O]) Encode() string {
	if enc, ok := n.kind.(Encoder[O]); ok {
		return enc.Encode(n)
	}
	return n.DefaultEncode()
}

// DefaultEncode renders [id(options)]inner[/id].
// The option group is omitted when no option has a value.
func (n *Node[O]) DefaultEncode() string {
	id := n.Identifier()
	var b strings.Builder
	b.WriteString(StrTagOpen)
	b.WriteString(id)
	if serialized := n.Options.Serialize(); serialized != StringValueEmpty {
		b.WriteString(StrOptionsOpen)
		b.WriteString(serialized)
		b.WriteString(StrOptionsClose)
	}
	b.WriteString(StrTagClose)
	b.WriteString(n.InnerMarkup())
	b.WriteString(StrCloseTagOpen)
	b.WriteString(id)
	b.WriteString(StrTagClose)
	return b.String()
}

// InnerMarkup returns the raw content for leaves, otherwise the children's encodings concatenated
func (n *Node[O]) InnerMarkup() string {
	if n.IsLeaf() {
		return n.Content
	}
	var b strings.Builder
	for _, child := range n.Children {
		b.WriteString(child.Encode())
	}
	return b.String()
}
