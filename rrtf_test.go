package rrtf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Toy kinds shared by the package tests

var leadingNumber = regexp.MustCompile(`\d+`)

func rootKind() *KindSpec[string] {
	return &KindSpec[string]{
		ID: DefaultRootIdentifier,
		BuildFunc: func(n *Node[string]) (string, error) {
			if n.IsLeaf() {
				return n.Content, nil
			}
			parts, err := n.BuildChildren()
			if err != nil {
				return StringValueEmpty, err
			}
			return strings.Join(parts, "\n"), nil
		},
		EncodeFunc: func(n *Node[string]) string {
			return n.InnerMarkup()
		},
	}
}

func aKind() *KindSpec[string] {
	return &KindSpec[string]{
		ID: "a",
		Decl: OptionDecl{
			Optional: []OptionType{
				{Identifier: "name"},
				{Identifier: "suffix"},
			},
		},
		BuildFunc: func(n *Node[string]) (string, error) {
			name, ok := n.Options.ValueOf("name")
			if !ok {
				name = "A"
			}
			suffix, _ := n.Options.ValueOf("suffix")
			return fmt.Sprintf("The value of %s is %s%s", name, n.Content, suffix), nil
		},
	}
}

func bKind() *KindSpec[string] {
	return NewKind("b", func(n *Node[string]) (string, error) {
		parts, err := n.BuildChildren()
		if err != nil {
			return StringValueEmpty, err
		}
		product := 1
		for _, part := range parts {
			if m := leadingNumber.FindString(part); m != StringValueEmpty {
				v, _ := strconv.Atoi(m)
				product *= v
			}
		}
		return fmt.Sprintf("The product B is %d", product), nil
	})
}

func textKind() *KindSpec[string] {
	return &KindSpec[string]{
		ID: "text",
		BuildFunc: func(n *Node[string]) (string, error) {
			return n.Content, nil
		},
		EncodeFunc: func(n *Node[string]) string {
			return n.Content
		},
	}
}

func toyKinds() []Kind[string] {
	return []Kind[string]{rootKind(), aKind(), bKind()}
}

func toyPortfolio(t *testing.T, opts ...ConfigOption) *Portfolio[string] {
	t.Helper()
	p, err := NewPortfolio(toyKinds(), nil, opts...)
	require.NoError(t, err)
	return p
}

func toyPortfolioWithFallback(t *testing.T, opts ...ConfigOption) *Portfolio[string] {
	t.Helper()
	p, err := NewPortfolio(toyKinds(), Kind[string](textKind()), opts...)
	require.NoError(t, err)
	return p
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		output string
	}{
		{
			name:   "single tag",
			markup: "[a]42[/a]",
			output: "The value of A is 42",
		},
		{
			name:   "tag with options",
			markup: `[a(name="VAR",suffix="!!")]42[/a]`,
			output: "The value of VAR is 42!!",
		},
		{
			name:   "nested product",
			markup: "[b][a]42[/a][a]2[/a][a]3[/a][/b]",
			output: "The product B is 252",
		},
		{
			name:   "sibling groups joined by root",
			markup: "[b][a]42[/a][a]2[/a][a]3[/a][/b][b][a]24[/a][a]10[/a][/b]",
			output: "The product B is 252\nThe product B is 240",
		},
		{
			name:   "adjacent tags",
			markup: "[a]42[/a][a]2[/a][a]3[/a]",
			output: "The value of A is 42\nThe value of A is 2\nThe value of A is 3",
		},
		{
			name:   "empty content",
			markup: "[a][/a]",
			output: "The value of A is ",
		},
		{
			name:   "empty input",
			markup: "",
			output: "",
		},
	}

	for _, mode := range []ClosingMode{ClosingNested, ClosingFirstMatch} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				p := toyPortfolio(t, WithClosingMode(mode))

				tree := NewTree(p)
				require.NoError(t, tree.Construct(tt.markup))

				out, err := tree.ToOutput()
				require.NoError(t, err)
				assert.Equal(t, tt.output, out)

				encoded, err := tree.ToMarkup()
				require.NoError(t, err)
				assert.Equal(t, tt.markup, encoded)
			})
		}
	}
}

func TestScenarios_OnlyRootRegistered(t *testing.T) {
	p, err := NewPortfolio([]Kind[string]{rootKind()}, nil)
	require.NoError(t, err)

	out, err := p.Render("")
	require.NoError(t, err)
	assert.Equal(t, "", out)

	encoded, err := p.Canonicalize("")
	require.NoError(t, err)
	assert.Equal(t, "", encoded)
}

func TestRoundTrip_WithTextAndFallback(t *testing.T) {
	p := toyPortfolioWithFallback(t)

	markups := []string{
		"Intro: [a]1[/a] and [b][a]2[/a] x [a]3[/a][/b] outro",
		"line one\n[a(name=\"N\")]7[/a]\nline three",
		"[b]\n  [a]4[/a]\n  [a]5[/a]\n[/b]",
		"plain text only",
	}
	for _, m := range markups {
		encoded, err := p.Canonicalize(m)
		require.NoError(t, err)
		assert.Equal(t, m, encoded)
	}
}
