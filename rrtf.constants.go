package rrtf

import "time"

// Markup delimiters used when encoding
const (
	StrTagOpen        = "["
	StrTagClose       = "]"
	StrCloseTagOpen   = "[/"
	StrOptionsOpen    = "("
	StrOptionsClose   = ")"
	StrOptionAssign   = `="`
	StrOptionQuote    = `"`
	StrOptionSep      = ","
	StrValueSeparator = ": "
)

// Defaults
const (
	// DefaultRootIdentifier is the kind identifier used for the tree root
	DefaultRootIdentifier = "root"
	// DefaultMaxDepth bounds node nesting; 0 disables the limit
	DefaultMaxDepth = 100
	// DefaultMaxSourceBytes bounds markup size; 0 disables the limit
	DefaultMaxSourceBytes = 0
)

// ClosingMode selects how a tag finds its closing marker
type ClosingMode int

const (
	// ClosingNested matches closing markers by nesting depth, so same-named tags nest
	ClosingNested ClosingMode = iota
	// ClosingFirstMatch ends a tag at the first textual "[/id]", whatever the nesting
	ClosingFirstMatch
)

// MalformedPolicy selects what happens to bracket text that does not form a tag
type MalformedPolicy int

const (
	// MalformedLiteral keeps the offending bracket text as plain text
	MalformedLiteral MalformedPolicy = iota
	// MalformedDrop discards the bracket characters and keeps the remaining text
	MalformedDrop
	// MalformedStrict fails parsing with a positioned parse error
	MalformedStrict
)

// Policy and mode names
const (
	ClosingNameNested     = "nested"
	ClosingNameFirstMatch = "first-match"
	PolicyNameLiteral     = "literal"
	PolicyNameDrop        = "drop"
	PolicyNameStrict      = "strict"
)

// String returns the closing mode name
func (m ClosingMode) String() string {
	if m == ClosingFirstMatch {
		return ClosingNameFirstMatch
	}
	return ClosingNameNested
}

// String returns the policy name
func (p MalformedPolicy) String() string {
	switch p {
	case MalformedDrop:
		return PolicyNameDrop
	case MalformedStrict:
		return PolicyNameStrict
	default:
		return PolicyNameLiteral
	}
}

// ParseMalformedPolicy converts a policy name into a MalformedPolicy
func ParseMalformedPolicy(name string) (MalformedPolicy, bool) {
	switch name {
	case PolicyNameLiteral:
		return MalformedLiteral, true
	case PolicyNameDrop:
		return MalformedDrop, true
	case PolicyNameStrict:
		return MalformedStrict, true
	default:
		return MalformedLiteral, false
	}
}

// ValidationSeverity indicates how serious a validation issue is
type ValidationSeverity int

const (
	SeverityError ValidationSeverity = iota
	SeverityWarning
	SeverityInfo
)

// Severity names
const (
	SeverityNameError   = "error"
	SeverityNameWarning = "warning"
	SeverityNameInfo    = "info"
)

// String returns the severity name
func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return SeverityNameError
	case SeverityWarning:
		return SeverityNameWarning
	default:
		return SeverityNameInfo
	}
}

// Validation messages
const (
	ValidationMsgUnknownTag       = "unknown tag routed to fallback kind"
	ValidationMsgUnresolvableTag  = "unknown tag and no fallback kind"
	ValidationMsgMissingRequired  = "required option missing"
	ValidationMsgFallbackApplied  = "option value rejected, fallback applied"
	ValidationMsgDroppedOption    = "undeclared option dropped"
	ValidationMsgMalformed        = "malformed markup"
	ValidationMsgRoundTripDrift   = "canonical encoding differs from input"
	ValidationMsgParseFailed      = "markup parsing failed"
	ValidationMsgTextNeedFallback = "plain text segment requires a fallback kind"
)

// Error codes for categorization
const (
	ErrCodeParse    = "RRTF_PARSE"
	ErrCodeRegistry = "RRTF_REGISTRY"
	ErrCodeTree     = "RRTF_TREE"
	ErrCodeBuild    = "RRTF_BUILD"
	ErrCodeSchema   = "RRTF_SCHEMA"
	ErrCodeStorage  = "RRTF_STORAGE"
)

// Error message constants
const (
	// Parse errors
	ErrMsgParseFailed      = "markup parsing failed"
	ErrMsgMalformedMarkup  = "malformed markup"
	ErrMsgMaxDepthExceeded = "maximum nesting depth exceeded"
	ErrMsgSourceTooLarge   = "markup exceeds maximum size"

	// Registry errors
	ErrMsgUnresolvableTag = "no kind registered for tag and no fallback kind"
	ErrMsgKindExists      = "kind already registered"
	ErrMsgInvalidKind     = "invalid kind"
	ErrMsgNilKind         = "kind cannot be nil"

	// Tree errors
	ErrMsgTreeNotConstructed = "tree not constructed; call Construct first"

	// Build errors
	ErrMsgBuildFailed = "node build failed"

	// Schema errors
	ErrMsgSchemaInvalid       = "invalid option schema"
	ErrMsgSchemaPattern       = "invalid option pattern"
	ErrMsgSchemaEmptyID       = "option identifier cannot be empty"
	ErrMsgSchemaInvalidID     = "option identifier must match [A-Za-z0-9-]+"
	ErrMsgSchemaInvalidRange  = "option min is greater than max"
	ErrMsgSchemaFallbackValue = "fallback value fails its own constraints"
)

// Storage error messages
const (
	ErrMsgDocumentNotFound         = "document not found"
	ErrMsgDocumentVersionNotFound  = "document version not found"
	ErrMsgInvalidDocumentName      = "document name cannot be empty"
	ErrMsgStorageClosed            = "storage is closed"
	ErrMsgStorageDriverNotFound    = "storage driver not found"
	ErrMsgNilStorageDriver         = "storage driver cannot be nil"
	ErrMsgDriverAlreadyRegistered  = "storage driver already registered"
	ErrMsgPostgresConnectionFailed = "failed to connect to PostgreSQL"
	ErrMsgPostgresQueryFailed      = "PostgreSQL query failed"
	ErrMsgPostgresTransaction      = "PostgreSQL transaction failed"
	ErrMsgPostgresMarshalFailed    = "failed to marshal data for PostgreSQL"
	ErrMsgPostgresUnmarshalFailed  = "failed to unmarshal PostgreSQL data"
	ErrMsgPostgresMigrationFailed  = "PostgreSQL migration failed"
	ErrMsgPostgresEmptyConnString  = "PostgreSQL connection string is empty"
)

// Metadata keys for error context
const (
	MetaKeyLine       = "line"
	MetaKeyColumn     = "column"
	MetaKeyOffset     = "offset"
	MetaKeyTag        = "tag"
	MetaKeyKind       = "kind"
	MetaKeyReason     = "reason"
	MetaKeyText       = "text"
	MetaKeyDepth      = "depth"
	MetaKeyMaxDepth   = "max_depth"
	MetaKeySize       = "size"
	MetaKeyMaxSize    = "max_size"
	MetaKeyOption     = "option"
	MetaKeyName       = "name"
	MetaKeyVersion    = "version"
	MetaKeyDriver     = "driver"
	MetaKeyDocument   = "document"
	MetaKeyRootID     = "root_identifier"
	MetaKeyNodeKind   = "node_kind"
	MetaKeySchemaPath = "schema_path"
)

// Log message constants
const (
	LogMsgPortfolioCreated = "portfolio created"
	LogMsgParseStart       = "starting parse"
	LogMsgParseEnd         = "parse complete"
	LogMsgNodeCreated      = "node created"
	LogMsgFallbackRouted   = "tag routed to fallback kind"
	LogMsgOptionDropped    = "undeclared option dropped"
	LogMsgOptionFallback   = "option value rejected, fallback applied"
	LogMsgSchemaLoaded     = "option schema loaded"
)

// Log field names
const (
	LogFieldSource    = "source_length"
	LogFieldTag       = "tag"
	LogFieldKind      = "kind"
	LogFieldKinds     = "kind_count"
	LogFieldNodes     = "node_count"
	LogFieldDepth     = "depth"
	LogFieldOption    = "option"
	LogFieldRoot      = "root_identifier"
	LogFieldFallback  = "fallback"
	LogFieldClosing   = "closing_mode"
	LogFieldMalformed = "malformed_policy"
	LogFieldDuration  = "duration"
)

// Storage driver names
const (
	StorageDriverNameMemory   = "memory"
	StorageDriverNamePostgres = "postgres"
)

// Document ID prefix
const DocumentIDPrefix = "doc_"

// PostgreSQL defaults
const (
	PostgresTablePrefix            = "rrtf_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Debug dump formatting
const (
	DumpIndent      = "  "
	DumpMaxContent  = 40
	DumpTruncSuffix = "..."
)

// StringValueEmpty is the empty string
const StringValueEmpty = ""
