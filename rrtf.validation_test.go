package rrtf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsatony/go-rrtf/internal"
)

func requiredKind() *KindSpec[string] {
	return &KindSpec[string]{
		ID: "r",
		Decl: OptionDecl{
			Required: []OptionType{{Identifier: "name", Validate: NotEmpty()}},
			Optional: []OptionType{{Identifier: "level", Validate: IntRange(1, 3)}},
		},
		BuildFunc: func(n *Node[string]) (string, error) {
			return n.Content, nil
		},
	}
}

func validationPortfolio(t *testing.T, fallback bool, opts ...ConfigOption) *Portfolio[string] {
	t.Helper()
	kinds := append(toyKinds(), requiredKind())
	var fb Kind[string]
	if fallback {
		fb = textKind()
	}
	p, err := NewPortfolio(kinds, fb, opts...)
	require.NoError(t, err)
	return p
}

func findIssue(issues []ValidationIssue, msg string) (ValidationIssue, bool) {
	for _, issue := range issues {
		if issue.Message == msg {
			return issue, true
		}
	}
	return ValidationIssue{}, false
}

func TestValidate_Clean(t *testing.T) {
	p := validationPortfolio(t, true)
	result := p.Validate(`[b][a]1[/a] and [r(name="x",level="2")]y[/r][/b]`)

	assert.True(t, result.IsValid())
	assert.False(t, result.HasWarnings())
	assert.Empty(t, result.Issues())
}

func TestValidate_UnknownTagWithFallback(t *testing.T) {
	p := validationPortfolio(t, true)
	result := p.Validate("[zzz]x[/zzz]")

	assert.True(t, result.IsValid())
	issue, ok := findIssue(result.Warnings(), ValidationMsgUnknownTag)
	require.True(t, ok)
	assert.Equal(t, "zzz", issue.TagName)
	assert.Equal(t, 1, issue.Position.Column)

	_, ok = findIssue(result.Warnings(), ValidationMsgRoundTripDrift)
	assert.True(t, ok)
}

func TestValidate_Unresolvable(t *testing.T) {
	p := validationPortfolio(t, false)

	t.Run("unknown tag", func(t *testing.T) {
		result := p.Validate("[a]1[/a][zzz]x[/zzz]")
		require.True(t, result.HasErrors())

		issue, ok := findIssue(result.Errors(), ValidationMsgUnresolvableTag)
		require.True(t, ok)
		assert.Equal(t, "zzz", issue.TagName)
		assert.Equal(t, Position{Offset: 8, Line: 1, Column: 9}, issue.Position)
	})

	t.Run("plain text", func(t *testing.T) {
		result := p.Validate("hi [a]1[/a]")
		_, ok := findIssue(result.Errors(), ValidationMsgTextNeedFallback)
		assert.True(t, ok)
	})
}

func TestValidate_Options(t *testing.T) {
	p := validationPortfolio(t, true)

	t.Run("missing required", func(t *testing.T) {
		result := p.Validate("[r]y[/r]")
		require.True(t, result.HasErrors())

		issue, ok := findIssue(result.Errors(), ValidationMsgMissingRequired)
		require.True(t, ok)
		assert.Equal(t, "r", issue.TagName)
		assert.Equal(t, "name", issue.Option)
	})

	t.Run("rejected value", func(t *testing.T) {
		result := p.Validate(`[r(name="x",level="9")]y[/r]`)
		assert.True(t, result.IsValid())

		issue, ok := findIssue(result.Warnings(), ValidationMsgFallbackApplied+StrValueSeparator+"9")
		require.True(t, ok)
		assert.Equal(t, "level", issue.Option)

		_, ok = findIssue(result.Warnings(), ValidationMsgRoundTripDrift)
		assert.True(t, ok)
	})

	t.Run("dropped option", func(t *testing.T) {
		result := p.Validate(`[a(color="red")]1[/a]`)
		assert.True(t, result.IsValid())

		issue, ok := findIssue(result.Warnings(), ValidationMsgDroppedOption)
		require.True(t, ok)
		assert.Equal(t, "a", issue.TagName)
		assert.Equal(t, "color", issue.Option)
	})
}

func TestValidate_Malformed(t *testing.T) {
	markup := "[a]1[/a] ]"

	t.Run("literal reports a warning", func(t *testing.T) {
		result := validationPortfolio(t, true).Validate(markup)
		assert.True(t, result.IsValid())
		require.Len(t, result.Issues(), 1)

		issue := result.Issues()[0]
		assert.Equal(t, SeverityWarning, issue.Severity)
		assert.Equal(t, ValidationMsgMalformed+StrValueSeparator+internal.ReasonStrayBracket, issue.Message)
		assert.Equal(t, 10, issue.Position.Column)
	})

	t.Run("strict reports one error", func(t *testing.T) {
		result := validationPortfolio(t, true, WithMalformedPolicy(MalformedStrict)).Validate(markup)
		require.Len(t, result.Issues(), 1)
		assert.Equal(t, SeverityError, result.Issues()[0].Severity)
		assert.False(t, result.IsValid())
	})
}

func TestValidate_ParseFailure(t *testing.T) {
	p := validationPortfolio(t, true, WithMaxDepth(1))
	result := p.Validate("[b][a]1[/a][/b]")

	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0].Message, ValidationMsgParseFailed)
	assert.Equal(t, "a", result.Errors()[0].TagName)
}
