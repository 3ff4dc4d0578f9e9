// Package rrtf parses bracket-tag markup into a typed tree of pluggable node
// kinds, computes caller-defined output from it, and re-encodes it as canonical markup.
//
// Markup is made of tags and plain text:
//
//	[a(name="VAR",suffix="!!")]42[/a]
//
// # Basic Usage
//
// Register kinds in a portfolio, then render or canonicalize markup:
//
//	root := &rrtf.KindSpec[string]{
//	    ID: "root",
//	    BuildFunc: func(n *rrtf.Node[string]) (string, error) {
//	        if n.IsLeaf() {
//	            return n.Content, nil
//	        }
//	        parts, err := n.BuildChildren()
//	        return strings.Join(parts, "\n"), err
//	    },
//	    EncodeFunc: func(n *rrtf.Node[string]) string { return n.InnerMarkup() },
//	}
//	p := rrtf.MustNewPortfolio([]rrtf.Kind[string]{root, a, b}, nil)
//	out, err := p.Render("[a]42[/a]")
//
// # Kinds
//
// A kind declares an identifier, the options it accepts and how to build a
// node. Kinds implement Kind directly or are described as data with KindSpec.
// Kinds that need custom markup implement Encoder.
//
// # Options
//
// Option values are validated by their OptionType. A rejected value is
// replaced by the type's fallback, or becomes absent when there is none;
// absent options are omitted from encoded markup. Option types can be
// declared in code or loaded from YAML with LoadOptionSchema.
//
// # Plain Text and Unknown Tags
//
// Text between tags and tags with no registered kind resolve to the
// portfolio's fallback kind. Without a fallback they fail with an
// unresolvable tag error.
//
// # Nesting
//
// By default a closing marker matches its opener by nesting depth, so
// same-named tags nest. WithClosingMode(ClosingFirstMatch) ends each tag at
// the first textual closing marker instead.
//
// # Malformed Markup
//
// Unterminated tags, stray brackets and broken option lists are kept as
// text (MalformedLiteral), stripped of brackets (MalformedDrop) or rejected
// with a positioned parse error (MalformedStrict).
//
// # Storage
//
// Documents can be stored in memory or in PostgreSQL through
// DocumentStorage; SaveCanonical and LoadTree connect storage to a portfolio.
package rrtf
