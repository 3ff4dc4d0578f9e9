package kit

// Kind identifiers
const (
	KindRoot     = "root"
	KindText     = "text"
	KindMarkdown = "md"
	KindHTML     = "html"
	KindNumber   = "num"
	KindJoin     = "join"
)

// Option identifiers
const (
	OptionSeparator = "sep"
	OptionFlavor    = "flavor"
	OptionPolicy    = "policy"
	OptionStyle     = "style"
	OptionWith      = "with"
)

// Markdown flavors
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Sanitizer policies
const (
	PolicyStrict = "strict"
	PolicyUGC    = "ugc"
)

// Number styles
const (
	StyleComma   = "comma"
	StyleBytes   = "bytes"
	StyleOrdinal = "ordinal"
)

// DefaultSeparator joins root children when no separator is configured
const DefaultSeparator = "\n"

// Option descriptions
const (
	DescSeparator = "separator placed between built children"
	DescFlavor    = "markdown dialect: commonmark or gfm"
	DescPolicy    = "sanitizer policy: strict drops all tags, ugc keeps safe formatting"
	DescStyle     = "number format: comma, bytes or ordinal"
	DescWith      = "separator placed between built children"
)

const stringValueEmpty = ""
