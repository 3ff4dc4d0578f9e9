package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameEncode   = "encode"
	CmdNameValidate = "validate"
	CmdNameDump     = "dump"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagInput      = "input"
	FlagOutput     = "output"
	FlagSchema     = "schema"
	FlagSeparator  = "sep"
	FlagLegacy     = "legacy"
	FlagPolicy     = "policy"
	FlagMaxDepth   = "max-depth"
	FlagVerbose    = "verbose"
	FlagFormat     = "format"
	FlagStrictMode = "strict"
)

// Flag names - short form
const (
	FlagInputShort   = "i"
	FlagOutputShort  = "o"
	FlagVerboseShort = "v"
	FlagFormatShort  = "F"
)

// Flag default values
const (
	FlagDefaultOutput    = "-" // stdout
	FlagDefaultFormat    = "text"
	FlagDefaultSeparator = "\n"
	FlagDefaultPolicy    = "literal"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingInput      = "input source required"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgInvalidPolicy     = "invalid malformed policy"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgSchemaFailed      = "failed to load option schema"
	ErrMsgPortfolioFailed   = "failed to create portfolio"
	ErrMsgRenderFailed      = "markup rendering failed"
	ErrMsgEncodeFailed      = "markup encoding failed"
	ErrMsgParseFailed       = "markup parsing failed"
)

// Help text templates
const (
	HelpMainUsage = `rrtf - bracket-tag markup renderer

Usage:
    rrtf <command> [options]

Commands:
    render      Render markup to output
    encode      Re-encode markup in canonical form
    validate    Report markup problems without rendering
    dump        Print the parsed node tree
    version     Show version information
    help        Show help for a command

Use "rrtf help <command>" for more information about a command.`

	helpCommonOptions = `
    -i, --input <file>      Markup file (use "-" for stdin)
    --schema <file>         YAML option schema applied to the built-in kinds
    --sep <text>            Separator between top-level outputs (default: newline)
    --legacy                Close tags at the first matching close marker
    --policy <name>         Malformed markup: literal, drop, strict (default: literal)
    --max-depth <n>         Maximum nesting depth, 0 for unlimited (default: 100)
    -v, --verbose           Log parsing details to stderr`

	HelpRenderUsage = `Render markup to output

Usage:
    rrtf render [options]

Options:` + helpCommonOptions + `
    -o, --output <file>     Output file (default: stdout)

Examples:
    rrtf render -i report.rrtf
    echo '[num]1234567[/num]' | rrtf render -i -
    rrtf render -i report.rrtf --schema options.yaml -o report.html`

	HelpEncodeUsage = `Re-encode markup in canonical form

Usage:
    rrtf encode [options]

Options:` + helpCommonOptions + `
    -o, --output <file>     Output file (default: stdout)

Examples:
    rrtf encode -i report.rrtf -o report.canonical.rrtf`

	HelpValidateUsage = `Report markup problems without rendering

Usage:
    rrtf validate [options]

Options:` + helpCommonOptions + `
    -F, --format <format>   Output format: text, json (default: text)
    --strict                Treat warnings as errors

Examples:
    rrtf validate -i report.rrtf
    rrtf validate -i report.rrtf --strict -F json`

	HelpDumpUsage = `Print the parsed node tree

Usage:
    rrtf dump [options]

Options:` + helpCommonOptions + `

Examples:
    rrtf dump -i report.rrtf`

	HelpVersionUsage = `Show version information

Usage:
    rrtf version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    rrtf help [command]

Commands:
    render      Show help for render command
    encode      Show help for encode command
    validate    Show help for validate command
    dump        Show help for dump command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "rrtf version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Validation output format templates
const (
	ValidationTextSuccess      = "Markup is valid"
	ValidationTextIssueHeader  = "Validation issues:"
	ValidationTextIssueFormat  = "  [%s] %s at line %d, column %d"
	ValidationTextErrorSummary = "%d error(s), %d warning(s)"
)

// Severity names for output
const (
	SeverityNameError   = "ERROR"
	SeverityNameWarning = "WARNING"
	SeverityNameInfo    = "INFO"
)

// CLI metadata
const (
	CLIName = "rrtf"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
	JSONIndent         = "  "
)
