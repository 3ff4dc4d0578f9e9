package rrtf

import (
	"math"
	"regexp"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-rrtf/internal"
)

// OptionSchema holds option declarations for kinds, loaded from YAML.
//
//	kinds:
//	  num:
//	    optional:
//	      - id: style
//	        enum: [comma, bytes, ordinal]
//	        fallback: comma
type OptionSchema struct {
	Kinds map[string]KindSchema `yaml:"kinds"`

	decls map[string]OptionDecl
}

// KindSchema lists the option entries of one kind
type KindSchema struct {
	Required []OptionSchemaEntry `yaml:"required,omitempty"`
	Optional []OptionSchemaEntry `yaml:"optional,omitempty"`
}

// OptionSchemaEntry describes one option type and its constraints.
// Constraints combine: a value must satisfy all of them.
type OptionSchemaEntry struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description,omitempty"`
	Fallback    *string  `yaml:"fallback,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Enum        []string `yaml:"enum,omitempty"`
	Min         *int     `yaml:"min,omitempty"`
	Max         *int     `yaml:"max,omitempty"`
	MaxLength   *int     `yaml:"max_length,omitempty"`
	NotEmpty    bool     `yaml:"not_empty,omitempty"`
}

// LoadOptionSchema parses and compiles a YAML option schema
func LoadOptionSchema(data []byte) (*OptionSchema, error) {
	return LoadOptionSchemaWithLogger(data, nil)
}

// LoadOptionSchemaWithLogger is LoadOptionSchema with debug logging
func LoadOptionSchemaWithLogger(data []byte, logger *zap.Logger) (*OptionSchema, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var schema OptionSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, NewSchemaError(ErrMsgSchemaInvalid, StringValueEmpty, StringValueEmpty, err)
	}

	schema.decls = make(map[string]OptionDecl, len(schema.Kinds))
	for kind, ks := range schema.Kinds {
		required, err := compileEntries(kind, ks.Required)
		if err != nil {
			return nil, err
		}
		optional, err := compileEntries(kind, ks.Optional)
		if err != nil {
			return nil, err
		}
		schema.decls[kind] = OptionDecl{Required: required, Optional: optional}
	}

	logger.Debug(LogMsgSchemaLoaded, zap.Int(LogFieldKinds, len(schema.decls)))
	return &schema, nil
}

// Decl returns the compiled declaration for a kind
func (s *OptionSchema) Decl(kind string) (OptionDecl, bool) {
	if s == nil {
		return OptionDecl{}, false
	}
	d, ok := s.decls[kind]
	return d, ok
}

// KindNames returns the kinds the schema declares, sorted
func (s *OptionSchema) KindNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.decls))
	for name := range s.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply returns spec with its declaration replaced by the schema's entry for it, if any
func Apply[O any](s *OptionSchema, spec *KindSpec[O]) *KindSpec[O] {
	if d, ok := s.Decl(spec.Identifier()); ok {
		return spec.WithDecl(d)
	}
	return spec
}

func compileEntries(kind string, entries []OptionSchemaEntry) ([]OptionType, error) {
	types := make([]OptionType, 0, len(entries))
	for _, e := range entries {
		t, err := e.compile(kind)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// compile turns an entry into an OptionType whose validator combines every constraint
func (e OptionSchemaEntry) compile(kind string) (OptionType, error) {
	if e.ID == StringValueEmpty {
		return OptionType{}, NewSchemaError(ErrMsgSchemaEmptyID, kind, StringValueEmpty, nil)
	}
	if !internal.IsIdentifier(e.ID) {
		return OptionType{}, NewSchemaError(ErrMsgSchemaInvalidID, kind, e.ID, nil)
	}

	var validators []func(string) bool
	if e.Pattern != StringValueEmpty {
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			return OptionType{}, NewSchemaError(ErrMsgSchemaPattern, kind, e.ID, err)
		}
		validators = append(validators, matchRegexp(re))
	}
	if len(e.Enum) > 0 {
		validators = append(validators, OneOf(e.Enum...))
	}
	if e.Min != nil || e.Max != nil {
		lo, hi := math.MinInt, math.MaxInt
		if e.Min != nil {
			lo = *e.Min
		}
		if e.Max != nil {
			hi = *e.Max
		}
		if lo > hi {
			return OptionType{}, NewSchemaError(ErrMsgSchemaInvalidRange, kind, e.ID, nil)
		}
		validators = append(validators, IntRange(lo, hi))
	}
	if e.MaxLength != nil {
		validators = append(validators, MaxLength(*e.MaxLength))
	}
	if e.NotEmpty {
		validators = append(validators, NotEmpty())
	}

	t := OptionType{
		Identifier:  e.ID,
		Description: e.Description,
	}
	if len(validators) > 0 {
		t.Validate = AllOf(validators...)
	}
	if e.Fallback != nil {
		t.Fallback = *e.Fallback
		t.HasFallback = true
		if t.Validate != nil && !t.Validate(t.Fallback) {
			return OptionType{}, NewSchemaError(ErrMsgSchemaFallbackValue, kind, e.ID, nil)
		}
	}
	return t, nil
}
