package rrtf

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/itsatony/go-rrtf/internal"
)

// Portfolio maps tag identifiers to kinds and parses markup into node trees.
// It is immutable after construction and safe for concurrent use.
type Portfolio[O any] struct {
	registry *internal.Registry[Kind[O]]
	fallback Kind[O]
	config   *config
	logger   *zap.Logger
}

// NewPortfolio registers kinds in order. fallback resolves plain text and
// unknown tags; it may be nil, in which case those fail to resolve.
// A duplicate identifier keeps the first kind and fails construction.
func NewPortfolio[O any](kinds []Kind[O], fallback Kind[O], opts ...ConfigOption) (*Portfolio[O], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := internal.NewRegistry[Kind[O]](logger)
	for _, k := range kinds {
		if err := registry.Register(k); err != nil {
			return nil, registryError(err)
		}
	}

	p := &Portfolio[O]{
		registry: registry,
		fallback: fallback,
		config:   cfg,
		logger:   logger,
	}

	logger.Debug(LogMsgPortfolioCreated,
		zap.Int(LogFieldKinds, registry.Count()),
		zap.Bool(LogFieldFallback, fallback != nil),
		zap.String(LogFieldRoot, cfg.rootIdentifier),
		zap.String(LogFieldClosing, cfg.closing.String()),
		zap.String(LogFieldMalformed, cfg.malformed.String()),
	)
	return p, nil
}

// MustNewPortfolio creates a portfolio and panics on error
func MustNewPortfolio[O any](kinds []Kind[O], fallback Kind[O], opts ...ConfigOption) *Portfolio[O] {
	p, err := NewPortfolio(kinds, fallback, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// HasNodeType reports whether a kind is registered for id
func (p *Portfolio[O]) HasNodeType(id string) bool {
	return p.registry.Has(id)
}

// Kind returns the kind registered for id
func (p *Portfolio[O]) Kind(id string) (Kind[O], bool) {
	return p.registry.Get(id)
}

// Kinds returns the registered identifiers in sorted order
func (p *Portfolio[O]) Kinds() []string {
	return p.registry.List()
}

// Fallback returns the fallback kind, or nil
func (p *Portfolio[O]) Fallback() Kind[O] {
	return p.fallback
}

// RootIdentifier returns the kind identifier used for tree roots
func (p *Portfolio[O]) RootIdentifier() string {
	return p.config.rootIdentifier
}

// CreateNode creates a detached node. An empty id marks untagged text.
// content is parsed for children when it contains at least one tag.
func (p *Portfolio[O]) CreateNode(id string, options []RawOption, content string) (*Node[O], error) {
	if err := p.checkSize(content); err != nil {
		return nil, err
	}
	raw := make([]internal.RawOption, len(options))
	for i, o := range options {
		raw[i] = internal.RawOption{Key: o.Key, Value: o.Value}
	}
	ps := p.newParse(content)
	return ps.parseNode(id, id, raw, 0, len(content), 0, nil, 0)
}

// Render parses markup and builds the root output
func (p *Portfolio[O]) Render(markup string) (O, error) {
	tree, err := p.Parse(markup)
	if err != nil {
		var zero O
		return zero, err
	}
	return tree.ToOutput()
}

// Canonicalize parses markup and returns its canonical encoding
func (p *Portfolio[O]) Canonicalize(markup string) (string, error) {
	tree, err := p.Parse(markup)
	if err != nil {
		return StringValueEmpty, err
	}
	return tree.ToMarkup()
}

// Parse constructs a tree from markup
func (p *Portfolio[O]) Parse(markup string) (*Tree[O], error) {
	tree := NewTree(p)
	if err := tree.Construct(markup); err != nil {
		return nil, err
	}
	return tree, nil
}

func (p *Portfolio[O]) checkSize(source string) error {
	if p.config.maxSourceBytes > 0 && len(source) > p.config.maxSourceBytes {
		return NewSourceTooLargeError(len(source), p.config.maxSourceBytes)
	}
	return nil
}

// resolve returns the kind for tag, routing unknown tags and plain text to the fallback
func (p *Portfolio[O]) resolve(tag string, pos Position) (Kind[O], error) {
	if tag != StringValueEmpty {
		if k, ok := p.registry.Get(tag); ok {
			return k, nil
		}
	}
	if p.fallback == nil {
		return nil, NewUnresolvableTagError(tag, pos)
	}
	if tag != StringValueEmpty {
		p.logger.Debug(LogMsgFallbackRouted,
			zap.String(LogFieldTag, tag),
			zap.String(LogFieldKind, p.fallback.Identifier()),
		)
	}
	return p.fallback, nil
}

// construct parses markup under the root identifier. The root carries no markup tag.
func (p *Portfolio[O]) construct(markup string) (*Node[O], []Malformation, error) {
	if err := p.checkSize(markup); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	p.logger.Debug(LogMsgParseStart, zap.Int(LogFieldSource, len(markup)))

	ps := p.newParse(markup)
	root, err := ps.parseNode(p.config.rootIdentifier, StringValueEmpty, nil, 0, len(markup), 0, nil, 0)
	malformations := ps.malformations()
	if err != nil {
		return nil, malformations, err
	}

	p.logger.Debug(LogMsgParseEnd,
		zap.Int(LogFieldNodes, ps.nodes),
		zap.Duration(LogFieldDuration, time.Since(start)),
	)
	return root, malformations, nil
}

// parse holds the state of one parse over a single source
type parse[O any] struct {
	portfolio *Portfolio[O]
	scanner   *internal.Scanner
	nodes     int
}

func (p *Portfolio[O]) newParse(source string) *parse[O] {
	return &parse[O]{
		portfolio: p,
		scanner:   internal.NewScanner(source, p.config.scannerConfig(), p.logger),
	}
}

// parseNode creates the node for source[start:end] and parses its children.
// id selects the kind; tag is recorded as written in markup.
func (ps *parse[O]) parseNode(id, tag string, raw []internal.RawOption, start, end, offset int, parent *Node[O], depth int) (*Node[O], error) {
	node, err := ps.newNode(id, tag, raw, ps.scanner.Source()[start:end], offset, parent, depth)
	if err != nil {
		return nil, err
	}
	children, err := ps.children(node, start, end, depth)
	if err != nil {
		return nil, err
	}
	node.Children = children
	return node, nil
}

// newNode resolves the kind, binds options and links the parent; children are left empty
func (ps *parse[O]) newNode(id, tag string, raw []internal.RawOption, content string, offset int, parent *Node[O], depth int) (*Node[O], error) {
	pos := positionFrom(ps.scanner.Position(offset))
	p := ps.portfolio

	if limit := p.config.maxDepth; limit > 0 && depth > limit {
		return nil, NewMaxDepthError(id, depth, limit, pos)
	}

	kind, err := p.resolve(id, pos)
	if err != nil {
		return nil, err
	}

	options, dropped := bindOptions(kind.Options(), raw)
	for _, d := range dropped {
		p.logger.Debug(LogMsgOptionDropped, zap.String(LogFieldKind, kind.Identifier()), zap.String(LogFieldOption, d.Key))
	}
	for _, o := range options.Options() {
		if _, rejected := o.Rejected(); rejected {
			p.logger.Debug(LogMsgOptionFallback, zap.String(LogFieldKind, kind.Identifier()), zap.String(LogFieldOption, o.Identifier()))
		}
	}

	ps.nodes++
	return &Node[O]{
		Content: content,
		Options: options,
		parent:  parent,
		kind:    kind,
		tag:     tag,
		pos:     pos,
		dropped: dropped,
	}, nil
}

// children decomposes source[start:end]. Content without any tag yields no children;
// under MalformedDrop the parent's content then loses its stray brackets.
func (ps *parse[O]) children(parent *Node[O], start, end, depth int) ([]*Node[O], error) {
	segments, err := ps.scanner.Scan(start, end)
	if err != nil {
		var scanErr *internal.ScanError
		if errors.As(err, &scanErr) {
			return nil, NewMalformedMarkupError(scanErr.Reason, scanErr.Text, positionFrom(scanErr.Position))
		}
		return nil, NewParseError(ErrMsgParseFailed, parent.pos, err)
	}
	if !internal.HasTag(segments) {
		if ps.portfolio.config.malformed == MalformedDrop {
			parent.Content = joinText(segments)
		}
		return nil, nil
	}

	children := make([]*Node[O], 0, len(segments))
	for _, seg := range segments {
		var child *Node[O]
		if seg.IsTag() {
			child, err = ps.parseNode(seg.Identifier, seg.Identifier, seg.Options, seg.InnerOffset, seg.InnerOffset+len(seg.Content), seg.Offset, parent, depth+1)
		} else {
			child, err = ps.newNode(StringValueEmpty, StringValueEmpty, nil, seg.Content, seg.Offset, parent, depth+1)
		}
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func joinText(segments []internal.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Content)
	}
	return b.String()
}

func (ps *parse[O]) malformations() []Malformation {
	found := ps.scanner.Malformations()
	if len(found) == 0 {
		return nil
	}
	out := make([]Malformation, len(found))
	for i, m := range found {
		out[i] = Malformation{Reason: m.Reason, Text: m.Text, Pos: positionFrom(m.Position)}
	}
	return out
}

// bindOptions keeps declared keys in markup order and drops the rest.
// A repeated key keeps its first position and takes the last value.
func bindOptions(decl OptionDecl, raw []internal.RawOption) (*OptionSet, []RawOption) {
	var dropped []RawOption
	var bound []RawOption
	index := make(map[string]int, len(raw))

	for _, r := range raw {
		if _, ok := decl.Lookup(r.Key); !ok {
			dropped = append(dropped, RawOption{Key: r.Key, Value: r.Value})
			continue
		}
		if i, seen := index[r.Key]; seen {
			bound[i].Value = r.Value
			continue
		}
		index[r.Key] = len(bound)
		bound = append(bound, RawOption{Key: r.Key, Value: r.Value})
	}

	set := &OptionSet{}
	for _, b := range bound {
		t, _ := decl.Lookup(b.Key)
		set.Add(NewOption(t, b.Value))
	}
	return set, dropped
}

// Malformation is bracket text that did not form a tag
type Malformation struct {
	Reason string
	Text   string
	Pos    Position
}
