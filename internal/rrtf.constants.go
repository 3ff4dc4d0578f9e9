package internal

// Markup characters
const (
	CharOpenBracket  = '['
	CharCloseBracket = ']'
	CharOpenParen    = '('
	CharCloseParen   = ')'
	CharSlash        = '/'
	CharEquals       = '='
	CharDoubleQuote  = '"'
	CharComma        = ','
	CharHyphen       = '-'
	CharNewline      = '\n'
	CharSpace        = ' '
	CharTab          = '\t'
	CharCarriageRet  = '\r'
)

// String constants for delimiter matching
const (
	StrCloseTagOpen = "[/"
	StrTagClose     = "]"
)

// ClosingMode selects how a tag finds its closing marker.
type ClosingMode int

const (
	// ClosingNested matches closing markers by nesting depth.
	ClosingNested ClosingMode = iota
	// ClosingFirstMatch ends a tag at the first textual closing marker with the same identifier.
	ClosingFirstMatch
)

// MalformedPolicy selects what happens to bracket text that does not form a tag.
type MalformedPolicy int

const (
	// MalformedLiteral keeps the bracket text as plain text.
	MalformedLiteral MalformedPolicy = iota
	// MalformedDrop discards the bracket characters and keeps the rest as text.
	MalformedDrop
	// MalformedStrict fails the scan.
	MalformedStrict
)

// SegmentKind identifies scanned segment types
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentTag
)

// Segment kind names for debugging
const (
	SegmentKindNameText = "TEXT"
	SegmentKindNameTag  = "TAG"
)

// String returns the string representation of the segment kind
func (k SegmentKind) String() string {
	if k == SegmentTag {
		return SegmentKindNameTag
	}
	return SegmentKindNameText
}

// Malformed reasons
const (
	ReasonUnterminatedTag = "unterminated tag"
	ReasonStrayClose      = "closing tag without opener"
	ReasonInvalidHeader   = "invalid tag header"
	ReasonStrayBracket    = "stray bracket"
	ReasonInvalidOptions  = "invalid option list"
)

// Log message constants
const (
	LogMsgScannerCreated    = "scanner created"
	LogMsgScanSpan          = "scanning span"
	LogMsgScanComplete      = "span scanned"
	LogMsgMalformedSpan     = "malformed markup"
	LogMsgRegistryCreated   = "registry created"
	LogMsgEntryRegistered   = "kind registered"
	LogMsgRegistryCollision = "kind registration collision - first-come-wins"
)

// Log field names
const (
	LogFieldSource     = "source_length"
	LogFieldOffset     = "offset"
	LogFieldEnd        = "end"
	LogFieldSegments   = "segment_count"
	LogFieldReason     = "reason"
	LogFieldIdentifier = "identifier"
	LogFieldExisting   = "existing"
)

// Registry error message constants
const (
	ErrMsgNilEntry          = "kind cannot be nil"
	ErrMsgEmptyIdentifier   = "kind identifier cannot be empty"
	ErrMsgInvalidIdentifier = "kind identifier must match [A-Za-z0-9-]+"
	ErrMsgEntryExists       = "kind already registered for identifier"
)

// Error format strings
const (
	ErrFmtIdentifierMessage = "%s: %s"
	ErrFmtAtPosition        = "%s at %s"
)

// StringValueEmpty is the empty string
const StringValueEmpty = ""
