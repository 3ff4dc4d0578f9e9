package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// RawOption is one key="value" pair as written in a tag header
type RawOption struct {
	Key   string
	Value string
}

// Segment is one piece of a decomposed markup span
type Segment struct {
	Kind        SegmentKind
	Identifier  string      // Tag identifier (tag segments only)
	Options     []RawOption // Header options in source order (tag segments only)
	Content     string      // Inner content for tags, literal text for text segments
	Offset      int         // Absolute byte offset of the segment start
	InnerOffset int         // Absolute byte offset of Content (tag segments only)
	End         int         // Absolute byte offset just past the segment
}

// IsTag returns true if this is a tag segment
func (s Segment) IsTag() bool {
	return s.Kind == SegmentTag
}

// Malformation records bracket text that did not form a tag
type Malformation struct {
	Offset   int
	Position Position
	Reason   string
	Text     string
}

// ScanError is returned by the scanner under MalformedStrict
type ScanError struct {
	Reason   string
	Text     string
	Position Position
}

func (e *ScanError) Error() string {
	return fmt.Sprintf(ErrFmtAtPosition, e.Reason, e.Position)
}

// ScannerConfig holds scanner configuration
type ScannerConfig struct {
	Closing   ClosingMode
	Malformed MalformedPolicy
}

// DefaultScannerConfig returns nested closing with literal fallback for malformed text
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		Closing:   ClosingNested,
		Malformed: MalformedLiteral,
	}
}

// Scanner decomposes spans of one markup source into tag and text segments.
// All offsets are absolute byte offsets into the source the scanner was created with.
type Scanner struct {
	source        string
	config        ScannerConfig
	lines         *LineIndex
	malformations []Malformation
	logger        *zap.Logger
}

// NewScanner creates a scanner over source
func NewScanner(source string, config ScannerConfig, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated, zap.Int(LogFieldSource, len(source)))
	return &Scanner{
		source: source,
		config: config,
		lines:  NewLineIndex(source),
		logger: logger,
	}
}

// Source returns the full source being scanned
func (s *Scanner) Source() string {
	return s.source
}

// Position returns the line/column position of an absolute offset
func (s *Scanner) Position(offset int) Position {
	return s.lines.Position(offset)
}

// Malformations returns every malformed construct seen by Scan so far
func (s *Scanner) Malformations() []Malformation {
	return s.malformations
}

// Scan decomposes source[start:end] left to right into tag and text segments.
// Adjacent text, including bracket text kept under MalformedLiteral, is merged into one segment.
func (s *Scanner) Scan(start, end int) ([]Segment, error) {
	if start < 0 {
		start = 0
	}
	if end > len(s.source) {
		end = len(s.source)
	}
	s.logger.Debug(LogMsgScanSpan, zap.Int(LogFieldOffset, start), zap.Int(LogFieldEnd, end))

	var segments []Segment
	var text strings.Builder
	textStart := -1

	appendText := func(at int, str string) {
		if str == StringValueEmpty {
			return
		}
		if textStart < 0 {
			textStart = at
		}
		text.WriteString(str)
	}
	flush := func(at int) {
		if text.Len() > 0 {
			segments = append(segments, Segment{
				Kind:    SegmentText,
				Content: text.String(),
				Offset:  textStart,
				End:     at,
			})
		}
		text.Reset()
		textStart = -1
	}

	i := start
	for i < end {
		ch := s.source[i]

		if ch != CharOpenBracket && ch != CharCloseBracket {
			j := i
			for j < end && s.source[j] != CharOpenBracket && s.source[j] != CharCloseBracket {
				j++
			}
			appendText(i, s.source[i:j])
			i = j
			continue
		}

		if ch == CharCloseBracket {
			if err := s.malformed(i, i+1, ReasonStrayBracket, appendText); err != nil {
				return nil, err
			}
			i++
			continue
		}

		h, ok := s.scanHeader(i, end)
		if !ok {
			if err := s.malformed(i, i+1, h.reason, appendText); err != nil {
				return nil, err
			}
			i++
			continue
		}

		if h.closing {
			if err := s.malformed(i, h.end, ReasonStrayClose, appendText); err != nil {
				return nil, err
			}
			i = h.end
			continue
		}

		closeAt := s.findClose(h.identifier, h.end, end)
		if closeAt < 0 {
			if err := s.malformed(i, h.end, ReasonUnterminatedTag, appendText); err != nil {
				return nil, err
			}
			i = h.end
			continue
		}

		flush(i)
		closeEnd := closeAt + len(CloseMarker(h.identifier))
		segments = append(segments, Segment{
			Kind:        SegmentTag,
			Identifier:  h.identifier,
			Options:     h.options,
			Content:     s.source[h.end:closeAt],
			Offset:      i,
			InnerOffset: h.end,
			End:         closeEnd,
		})
		i = closeEnd
	}
	flush(end)

	s.logger.Debug(LogMsgScanComplete, zap.Int(LogFieldSegments, len(segments)))
	return segments, nil
}

// HasTag reports whether segments contain at least one tag segment
func HasTag(segments []Segment) bool {
	for _, seg := range segments {
		if seg.IsTag() {
			return true
		}
	}
	return false
}

// CloseMarker returns the closing marker for an identifier (e.g., "[/a]" for "a")
func CloseMarker(identifier string) string {
	return StrCloseTagOpen + identifier + StrTagClose
}

// IsIdentifier reports whether s is a valid tag or option identifier
func IsIdentifier(s string) bool {
	if s == StringValueEmpty {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// malformed records bracket text in source[from:to] and applies the policy
func (s *Scanner) malformed(from, to int, reason string, appendText func(int, string)) error {
	raw := s.source[from:to]
	pos := s.Position(from)
	s.malformations = append(s.malformations, Malformation{
		Offset:   from,
		Position: pos,
		Reason:   reason,
		Text:     raw,
	})
	s.logger.Debug(LogMsgMalformedSpan, zap.String(LogFieldReason, reason), zap.Int(LogFieldOffset, from))

	switch s.config.Malformed {
	case MalformedStrict:
		return &ScanError{Reason: reason, Text: raw, Position: pos}
	case MalformedDrop:
		appendText(from, stripBrackets(raw))
	default:
		appendText(from, raw)
	}
	return nil
}

// tagHeader is an opening ("[id(...)]") or closing ("[/id]") marker
type tagHeader struct {
	identifier string
	options    []RawOption
	closing    bool
	end        int    // offset just past the header
	reason     string // why the header is invalid
}

// scanHeader reads the header starting at the '[' at offset i, staying inside end
func (s *Scanner) scanHeader(i, end int) (tagHeader, bool) {
	h := tagHeader{reason: ReasonInvalidHeader}
	j := i + 1

	if j < end && s.source[j] == CharSlash {
		h.closing = true
		j++
	}

	idStart := j
	for j < end && isIdentChar(s.source[j]) {
		j++
	}
	if j == idStart {
		return h, false
	}
	h.identifier = s.source[idStart:j]

	if !h.closing && j < end && s.source[j] == CharOpenParen {
		k := j + 1
		for k < end && s.source[k] != CharCloseParen {
			switch s.source[k] {
			case CharOpenBracket, CharCloseBracket, CharOpenParen:
				return h, false
			}
			k++
		}
		if k >= end {
			return h, false
		}
		opts, ok := ParseOptionList(s.source[j+1 : k])
		if !ok {
			h.reason = ReasonInvalidOptions
			return h, false
		}
		h.options = opts
		j = k + 1
	}

	if j < end && s.source[j] == CharCloseBracket {
		h.end = j + 1
		return h, true
	}
	return h, false
}

// findClose returns the offset of the marker closing identifier within [from, end), or -1
func (s *Scanner) findClose(identifier string, from, end int) int {
	if s.config.Closing == ClosingFirstMatch {
		idx := strings.Index(s.source[from:end], CloseMarker(identifier))
		if idx < 0 {
			return -1
		}
		return from + idx
	}

	// open identifiers nested inside the tag being closed
	var stack []string
	k := from
	for k < end {
		rel := strings.IndexByte(s.source[k:end], CharOpenBracket)
		if rel < 0 {
			return -1
		}
		k += rel

		h, ok := s.scanHeader(k, end)
		if !ok {
			k++
			continue
		}
		if !h.closing {
			stack = append(stack, h.identifier)
			k = h.end
			continue
		}
		if idx := lastIndex(stack, h.identifier); idx >= 0 {
			// openers above idx were never closed
			stack = stack[:idx]
			k = h.end
			continue
		}
		if h.identifier == identifier {
			return k
		}
		k = h.end
	}
	return -1
}

// ParseOptionList parses `key="value"` pairs separated by commas.
// Whitespace around keys, equals signs and separators is ignored; values may be empty.
func ParseOptionList(text string) ([]RawOption, bool) {
	var opts []RawOption
	k := skipSpace(text, 0)

	for k < len(text) {
		keyStart := k
		for k < len(text) && isIdentChar(text[k]) {
			k++
		}
		if k == keyStart {
			return nil, false
		}
		key := text[keyStart:k]

		k = skipSpace(text, k)
		if k >= len(text) || text[k] != CharEquals {
			return nil, false
		}
		k = skipSpace(text, k+1)
		if k >= len(text) || text[k] != CharDoubleQuote {
			return nil, false
		}
		k++

		valueStart := k
		for k < len(text) && text[k] != CharDoubleQuote {
			k++
		}
		if k >= len(text) {
			return nil, false
		}
		opts = append(opts, RawOption{Key: key, Value: text[valueStart:k]})

		k = skipSpace(text, k+1)
		if k >= len(text) {
			break
		}
		if text[k] != CharComma {
			return nil, false
		}
		k = skipSpace(text, k+1)
	}

	return opts, true
}

// Helper functions

func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == CharHyphen
}

func isSpace(ch byte) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet
}

func skipSpace(text string, k int) int {
	for k < len(text) && isSpace(text[k]) {
		k++
	}
	return k
}

func stripBrackets(s string) string {
	return strings.NewReplacer(string(CharOpenBracket), StringValueEmpty, string(CharCloseBracket), StringValueEmpty).Replace(s)
}

func lastIndex(stack []string, identifier string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == identifier {
			return i
		}
	}
	return -1
}
