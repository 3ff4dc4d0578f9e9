package rrtf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_NotConstructed(t *testing.T) {
	tree := NewTree(toyPortfolio(t))
	assert.False(t, tree.IsConstructed())
	assert.Nil(t, tree.Root())
	assert.Empty(t, tree.Dump())

	_, err := tree.ToOutput()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgTreeNotConstructed)

	_, err = tree.ToMarkup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgTreeNotConstructed)
}

func TestTree_ConstructFailureResets(t *testing.T) {
	p := toyPortfolio(t)
	tree := NewTree(p)

	require.NoError(t, tree.Construct("[a]1[/a]"))
	assert.True(t, tree.IsConstructed())
	assert.Equal(t, "[a]1[/a]", tree.Source())
	assert.Same(t, p, tree.Portfolio())

	require.Error(t, tree.Construct("[zzz]1[/zzz]"))
	assert.False(t, tree.IsConstructed())
	assert.Empty(t, tree.Source())

	_, err := tree.ToOutput()
	require.Error(t, err)
}

func TestTree_Reconstruct(t *testing.T) {
	tree := NewTree(toyPortfolio(t))

	require.NoError(t, tree.Construct("[a]1[/a]"))
	require.NoError(t, tree.Construct("[a]2[/a]"))

	out, err := tree.ToOutput()
	require.NoError(t, err)
	assert.Equal(t, "The value of A is 2", out)
}

func TestTree_Structure(t *testing.T) {
	p := toyPortfolioWithFallback(t)
	tree, err := p.Parse("x[b][a]1[/a][/b]")
	require.NoError(t, err)

	root := tree.Root()
	assert.True(t, root.IsRoot())
	assert.Equal(t, DefaultRootIdentifier, root.Identifier())
	assert.Empty(t, root.Tag())
	require.Len(t, root.Children, 2)

	text := root.Children[0]
	assert.Equal(t, "text", text.Identifier())
	assert.Empty(t, text.Tag())
	assert.Equal(t, "x", text.Content)

	b := root.Children[1]
	assert.Same(t, root, b.Parent())
	assert.Equal(t, 1, b.Depth())
	assert.Equal(t, Position{Offset: 1, Line: 1, Column: 2}, b.Pos())
	assert.False(t, b.IsLeaf())

	a := b.Children[0]
	assert.Same(t, b, a.Parent())
	assert.Equal(t, 2, a.Depth())
	assert.True(t, a.IsLeaf())
	assert.Equal(t, "1", a.Content)
	assert.Equal(t, Position{Offset: 4, Line: 1, Column: 5}, a.Pos())
}

func TestTree_Walk(t *testing.T) {
	tree, err := toyPortfolio(t).Parse("[b][a]1[/a][/b][a]2[/a]")
	require.NoError(t, err)

	var visited []string
	tree.Root().Walk(func(n *Node[string]) bool {
		visited = append(visited, n.Identifier())
		return true
	})
	assert.Equal(t, []string{"root", "b", "a", "a"}, visited)

	visited = nil
	tree.Root().Walk(func(n *Node[string]) bool {
		visited = append(visited, n.Identifier())
		return n.Identifier() != "b"
	})
	assert.Equal(t, []string{"root", "b", "a"}, visited)
}

func TestTree_BuildError(t *testing.T) {
	errBoom := errors.New("boom")
	failing := NewKind("f", func(n *Node[string]) (string, error) {
		return StringValueEmpty, errBoom
	})
	p, err := NewPortfolio([]Kind[string]{rootKind(), aKind(), failing}, nil)
	require.NoError(t, err)

	tree, err := p.Parse("[a]1[/a][f]x[/f]")
	require.NoError(t, err)

	_, err = tree.ToOutput()
	assert.ErrorIs(t, err, errBoom)
}

func TestTree_Dump(t *testing.T) {
	p := toyPortfolioWithFallback(t)
	tree, err := p.Parse("[b][a(name=\"N\")]42[/a][/b]\n[zzz]q[/zzz]")
	require.NoError(t, err)

	expected := "root @line 1, column 1\n" +
		"  b @line 1, column 1\n" +
		"    a(name=\"N\") \"42\" @line 1, column 4\n" +
		"  text \"\\n\" @line 1, column 27\n" +
		"  text <zzz> \"q\" @line 2, column 1\n"
	assert.Equal(t, expected, tree.Dump())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "äö...", truncate("äöü", 2))
}
