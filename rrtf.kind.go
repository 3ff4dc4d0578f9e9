package rrtf

// Kind is a node type plug-in: it names a tag, declares the options the
// tag accepts, and computes the output of nodes of its type.
type Kind[O any] interface {
	// Identifier returns the tag name used in markup
	Identifier() string
	// Options returns the declared option types
	Options() OptionDecl
	// Build computes the output of n, usually from its content, options and built children
	Build(n *Node[O]) (O, error)
}

// Encoder is implemented by kinds that override the default markup encoding.
type Encoder[O any] interface {
	Encode(n *Node[O]) string
}

// OptionDecl lists the option types a kind accepts
type OptionDecl struct {
	Required []OptionType
	Optional []OptionType
}

// Lookup returns the declared option type with the given identifier
func (d OptionDecl) Lookup(id string) (OptionType, bool) {
	for _, t := range d.Required {
		if t.Identifier == id {
			return t, true
		}
	}
	for _, t := range d.Optional {
		if t.Identifier == id {
			return t, true
		}
	}
	return OptionType{}, false
}

// IsRequired reports whether id is a required option
func (d OptionDecl) IsRequired(id string) bool {
	for _, t := range d.Required {
		if t.Identifier == id {
			return true
		}
	}
	return false
}

// All returns required then optional option types
func (d OptionDecl) All() []OptionType {
	all := make([]OptionType, 0, len(d.Required)+len(d.Optional))
	all = append(all, d.Required...)
	return append(all, d.Optional...)
}

// KindSpec is a Kind described as plain data.
type KindSpec[O any] struct {
	ID         string
	Decl       OptionDecl
	BuildFunc  func(n *Node[O]) (O, error)
	EncodeFunc func(n *Node[O]) string
}

// NewKind creates a kind with no declared options
func NewKind[O any](id string, build func(n *Node[O]) (O, error)) *KindSpec[O] {
	return &KindSpec[O]{ID: id, BuildFunc: build}
}

// Identifier implements Kind
func (k *KindSpec[O]) Identifier() string {
	return k.ID
}

// Options implements Kind
func (k *KindSpec[O]) Options() OptionDecl {
	return k.Decl
}

// Build implements Kind. A spec without BuildFunc yields the zero output.
func (k *KindSpec[O]) Build(n *Node[O]) (O, error) {
	if k.BuildFunc == nil {
		var zero O
		return zero, nil
	}
	return k.BuildFunc(n)
}

// Encode implements Encoder, falling back to the default encoding
func (k *KindSpec[O]) Encode(n *Node[O]) string {
	if k.EncodeFunc == nil {
		return n.DefaultEncode()
	}
	return k.EncodeFunc(n)
}

// WithDecl returns a copy of k using decl as its option declaration
func (k *KindSpec[O]) WithDecl(decl OptionDecl) *KindSpec[O] {
	cp := *k
	cp.Decl = decl
	return &cp
}
