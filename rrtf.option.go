package rrtf

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// OptionType describes one named option a kind accepts.
// It is plain data shared by every Option bound to it.
// Fallback replaces values rejected by Validate when HasFallback is set;
// a nil Validate accepts anything.
type OptionType struct {
	Identifier  string
	Description string
	Fallback    string
	HasFallback bool
	Validate    func(string) bool
}

// RawOption is one key="value" pair as written in markup
type RawOption struct {
	Key   string
	Value string
}

// Option is a validated value bound to an OptionType.
type Option struct {
	Type     OptionType
	value    string
	present  bool
	rejected string
	wasBad   bool
}

// NewOption binds candidate to t
func NewOption(t OptionType, candidate string) *Option {
	o := &Option{Type: t}
	o.SetValue(candidate)
	return o
}

// NewUnsetOption binds t with no candidate
func NewUnsetOption(t OptionType) *Option {
	o := &Option{Type: t}
	o.Unset()
	return o
}

// Identifier returns the option type identifier
func (o *Option) Identifier() string {
	return o.Type.Identifier
}

// SetValue stores candidate if the type accepts it, otherwise the type's fallback.
func (o *Option) SetValue(candidate string) {
	o.rejected, o.wasBad = StringValueEmpty, false
	if o.Type.Validate == nil || o.Type.Validate(candidate) {
		o.value, o.present = candidate, true
		return
	}
	o.rejected, o.wasBad = candidate, true
	o.applyFallback()
}

// Unset resolves an absent candidate.
// Without a validator the option stays absent; otherwise it takes the fallback.
// Validators only see present values, so a type cannot accept absence while
// also declaring a validator. Parsing never calls Unset: only keys written in
// markup are bound.
func (o *Option) Unset() {
	o.rejected, o.wasBad = StringValueEmpty, false
	if o.Type.Validate == nil {
		o.value, o.present = StringValueEmpty, false
		return
	}
	o.applyFallback()
}

func (o *Option) applyFallback() {
	if o.Type.HasFallback {
		o.value, o.present = o.Type.Fallback, true
		return
	}
	o.value, o.present = StringValueEmpty, false
}

// Value returns the stored value and whether one is present
func (o *Option) Value() (string, bool) {
	return o.value, o.present
}

// Rejected returns the candidate that was replaced by the fallback, if any
func (o *Option) Rejected() (string, bool) {
	return o.rejected, o.wasBad
}

// OptionSet is an ordered list of options belonging to one node.
// Lookups return the first option with a matching identifier.
type OptionSet struct {
	options []*Option
}

// NewOptionSet creates a set holding options in the given order
func NewOptionSet(options ...*Option) *OptionSet {
	s := &OptionSet{}
	for _, o := range options {
		s.Add(o)
	}
	return s
}

// Add appends an option; nil options are ignored
func (s *OptionSet) Add(o *Option) {
	if o != nil {
		s.options = append(s.options, o)
	}
}

// Len returns the number of options, including absent ones
func (s *OptionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.options)
}

// Options returns a copy of the option list
func (s *OptionSet) Options() []*Option {
	if s == nil {
		return nil
	}
	out := make([]*Option, len(s.options))
	copy(out, s.options)
	return out
}

// Get returns the first option with the given identifier
func (s *OptionSet) Get(id string) (*Option, bool) {
	if s == nil {
		return nil, false
	}
	for _, o := range s.options {
		if o.Identifier() == id {
			return o, true
		}
	}
	return nil, false
}

// Has reports whether an option with the given identifier exists, present or not
func (s *OptionSet) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// ValueOf returns the value of the first option with the given identifier.
// The bool is false when no such option exists or its value is absent.
func (s *OptionSet) ValueOf(id string) (string, bool) {
	o, ok := s.Get(id)
	if !ok {
		return StringValueEmpty, false
	}
	return o.Value()
}

// Pairs returns the present values in list order
func (s *OptionSet) Pairs() []RawOption {
	if s == nil {
		return nil
	}
	pairs := make([]RawOption, 0, len(s.options))
	for _, o := range s.options {
		if v, ok := o.Value(); ok {
			pairs = append(pairs, RawOption{Key: o.Identifier(), Value: v})
		}
	}
	return pairs
}

// ToMap returns identifier to value for present values.
// On duplicate identifiers the first one wins, matching ValueOf.
func (s *OptionSet) ToMap() map[string]string {
	m := make(map[string]string)
	for _, p := range s.Pairs() {
		if _, seen := m[p.Key]; !seen {
			m[p.Key] = p.Value
		}
	}
	return m
}

// Serialize renders present values as key="value" joined by commas.
// Absent options are omitted entirely.
func (s *OptionSet) Serialize() string {
	pairs := s.Pairs()
	if len(pairs) == 0 {
		return StringValueEmpty
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(StrOptionSep)
		}
		b.WriteString(p.Key)
		b.WriteString(StrOptionAssign)
		b.WriteString(p.Value)
		b.WriteString(StrOptionQuote)
	}
	return b.String()
}

// Validator helpers

// OneOf accepts only the listed values
func OneOf(values ...string) func(string) bool {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(candidate string) bool {
		_, ok := allowed[candidate]
		return ok
	}
}

// Matches accepts values matching pattern. It panics if pattern does not compile.
func Matches(pattern string) func(string) bool {
	return matchRegexp(regexp.MustCompile(pattern))
}

func matchRegexp(re *regexp.Regexp) func(string) bool {
	return re.MatchString
}

// IntRange accepts base-10 integers within [lo, hi]
func IntRange(lo, hi int) func(string) bool {
	return func(candidate string) bool {
		n, err := strconv.Atoi(strings.TrimSpace(candidate))
		if err != nil {
			return false
		}
		return n >= lo && n <= hi
	}
}

// MaxLength accepts values of at most n characters
func MaxLength(n int) func(string) bool {
	return func(candidate string) bool {
		return utf8.RuneCountInString(candidate) <= n
	}
}

// NotEmpty rejects the empty string
func NotEmpty() func(string) bool {
	return func(candidate string) bool {
		return candidate != StringValueEmpty
	}
}

// AllOf accepts values every validator accepts; nil validators are skipped
func AllOf(validators ...func(string) bool) func(string) bool {
	return func(candidate string) bool {
		for _, v := range validators {
			if v != nil && !v(candidate) {
				return false
			}
		}
		return true
	}
}
