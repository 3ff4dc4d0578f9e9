// Package kit provides ready-made rrtf kinds that build string output.
//
//	p, err := kit.Default(kit.DefaultSeparator)
//	out, err := p.Render(`[md]# Total: [num(style="comma")]1234567[/num][/md]`)
//
// Text is the fallback: plain text renders as itself and unknown tags keep
// their markup, including options, when re-encoded.
package kit

import (
	"bytes"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	rrtf "github.com/itsatony/go-rrtf"
)

// Specs returns every kit kind except the Text fallback.
// sep is the root separator used when the root carries no sep option.
func Specs(sep string) []*rrtf.KindSpec[string] {
	return []*rrtf.KindSpec[string]{
		Root(sep),
		Markdown(),
		HTML(),
		Number(),
		Join(),
	}
}

// New creates a portfolio from specs with Text as the fallback kind
func New(specs []*rrtf.KindSpec[string], opts ...rrtf.ConfigOption) (*rrtf.Portfolio[string], error) {
	kinds := make([]rrtf.Kind[string], len(specs))
	for i, s := range specs {
		kinds[i] = s
	}
	return rrtf.NewPortfolio(kinds, rrtf.Kind[string](Text()), opts...)
}

// Default creates a portfolio holding every kit kind
func Default(sep string, opts ...rrtf.ConfigOption) (*rrtf.Portfolio[string], error) {
	return New(Specs(sep), opts...)
}

// Root joins built children with the sep option, or with sep when the option is absent.
// Trees built by Parse give the root no options; the sep option applies to roots
// created with Portfolio.CreateNode. It encodes as its inner markup so documents
// carry no root wrapper.
func Root(sep string) *rrtf.KindSpec[string] {
	return &rrtf.KindSpec[string]{
		ID: KindRoot,
		Decl: rrtf.OptionDecl{
			Optional: []rrtf.OptionType{
				{Identifier: OptionSeparator, Description: DescSeparator},
			},
		},
		BuildFunc: func(n *rrtf.Node[string]) (string, error) {
			if v, ok := n.Options.ValueOf(OptionSeparator); ok {
				return joined(n, v)
			}
			return joined(n, sep)
		},
		EncodeFunc: func(n *rrtf.Node[string]) string {
			return n.InnerMarkup()
		},
	}
}

// Text builds plain text as itself. Nodes routed here from unknown tags
// re-encode with their original tag and options.
func Text() *rrtf.KindSpec[string] {
	return &rrtf.KindSpec[string]{
		ID: KindText,
		BuildFunc: func(n *rrtf.Node[string]) (string, error) {
			return joined(n, stringValueEmpty)
		},
		EncodeFunc: encodeText,
	}
}

func encodeText(n *rrtf.Node[string]) string {
	tag := n.Tag()
	if tag == stringValueEmpty {
		return n.Content
	}

	var b strings.Builder
	b.WriteString(rrtf.StrTagOpen)
	b.WriteString(tag)
	if dropped := n.DroppedOptions(); len(dropped) > 0 {
		b.WriteString(rrtf.StrOptionsOpen)
		for i, o := range dropped {
			if i > 0 {
				b.WriteString(rrtf.StrOptionSep)
			}
			b.WriteString(o.Key)
			b.WriteString(rrtf.StrOptionAssign)
			b.WriteString(o.Value)
			b.WriteString(rrtf.StrOptionQuote)
		}
		b.WriteString(rrtf.StrOptionsClose)
	}
	b.WriteString(rrtf.StrTagClose)
	b.WriteString(n.InnerMarkup())
	b.WriteString(rrtf.StrCloseTagOpen)
	b.WriteString(tag)
	b.WriteString(rrtf.StrTagClose)
	return b.String()
}

// Markdown renders its inner output as HTML
func Markdown() *rrtf.KindSpec[string] {
	return &rrtf.KindSpec[string]{
		ID: KindMarkdown,
		Decl: rrtf.OptionDecl{
			Optional: []rrtf.OptionType{
				{
					Identifier:  OptionFlavor,
					Description: DescFlavor,
					Validate:    rrtf.OneOf(FlavorCommonMark, FlavorGFM),
					Fallback:    FlavorCommonMark,
					HasFallback: true,
				},
			},
		},
		BuildFunc: func(n *rrtf.Node[string]) (string, error) {
			source, err := joined(n, stringValueEmpty)
			if err != nil {
				return stringValueEmpty, err
			}
			flavor, _ := n.Options.ValueOf(OptionFlavor)

			var buf bytes.Buffer
			if err := markdown(flavor).Convert([]byte(source), &buf); err != nil {
				return stringValueEmpty, err
			}
			return buf.String(), nil
		},
	}
}

var (
	commonMarkOnce sync.Once
	commonMark     goldmark.Markdown
	gfmOnce        sync.Once
	gfm            goldmark.Markdown
)

// markdown returns a shared converter for flavor
func markdown(flavor string) goldmark.Markdown {
	if flavor == FlavorGFM {
		gfmOnce.Do(func() {
			gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))
		})
		return gfm
	}
	commonMarkOnce.Do(func() {
		commonMark = goldmark.New()
	})
	return commonMark
}

// HTML sanitizes its inner output
func HTML() *rrtf.KindSpec[string] {
	return &rrtf.KindSpec[string]{
		ID: KindHTML,
		Decl: rrtf.OptionDecl{
			Optional: []rrtf.OptionType{
				{
					Identifier:  OptionPolicy,
					Description: DescPolicy,
					Validate:    rrtf.OneOf(PolicyStrict, PolicyUGC),
					Fallback:    PolicyStrict,
					HasFallback: true,
				},
			},
		},
		BuildFunc: func(n *rrtf.Node[string]) (string, error) {
			inner, err := joined(n, stringValueEmpty)
			if err != nil {
				return stringValueEmpty, err
			}
			policy, _ := n.Options.ValueOf(OptionPolicy)
			return sanitizer(policy).Sanitize(inner), nil
		},
	}
}

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
	ugcOnce      sync.Once
	ugcPolicy    *bluemonday.Policy
)

func sanitizer(policy string) *bluemonday.Policy {
	if policy == PolicyUGC {
		ugcOnce.Do(func() {
			ugcPolicy = bluemonday.UGCPolicy()
		})
		return ugcPolicy
	}
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Number formats an integer leaf. Content that is not an integer passes through.
func Number() *rrtf.KindSpec[string] {
	return &rrtf.KindSpec[string]{
		ID: KindNumber,
		Decl: rrtf.OptionDecl{
			Optional: []rrtf.OptionType{
				{
					Identifier:  OptionStyle,
					Description: DescStyle,
					Validate:    rrtf.OneOf(StyleComma, StyleBytes, StyleOrdinal),
					Fallback:    StyleComma,
					HasFallback: true,
				},
			},
		},
		BuildFunc: func(n *rrtf.Node[string]) (string, error) {
			inner, err := joined(n, stringValueEmpty)
			if err != nil {
				return stringValueEmpty, err
			}
			v, err := strconv.ParseInt(strings.TrimSpace(inner), 10, 64)
			if err != nil {
				return inner, nil
			}
			style, _ := n.Options.ValueOf(OptionStyle)
			return formatNumber(v, style), nil
		},
	}
}

func formatNumber(v int64, style string) string {
	switch style {
	case StyleBytes:
		if v >= 0 {
			return humanize.Bytes(uint64(v))
		}
	case StyleOrdinal:
		return humanize.Ordinal(int(v))
	}
	return humanize.Comma(v)
}

// Join concatenates built children with the with option
func Join() *rrtf.KindSpec[string] {
	return &rrtf.KindSpec[string]{
		ID: KindJoin,
		Decl: rrtf.OptionDecl{
			Optional: []rrtf.OptionType{
				{Identifier: OptionWith, Description: DescWith},
			},
		},
		BuildFunc: func(n *rrtf.Node[string]) (string, error) {
			with, _ := n.Options.ValueOf(OptionWith)
			return joined(n, with)
		},
	}
}

// joined returns the content of a leaf or the built children joined by sep
func joined(n *rrtf.Node[string], sep string) (string, error) {
	if n.IsLeaf() {
		return n.Content, nil
	}
	parts, err := n.BuildChildren()
	if err != nil {
		return stringValueEmpty, err
	}
	return strings.Join(parts, sep), nil
}
