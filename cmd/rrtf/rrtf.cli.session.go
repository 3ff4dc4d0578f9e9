package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rrtf "github.com/itsatony/go-rrtf"
	"github.com/itsatony/go-rrtf/kit"
)

// markupFlags holds the flags shared by every command that parses markup
type markupFlags struct {
	inputPath  string
	schemaPath string
	separator  string
	policy     string
	legacy     bool
	maxDepth   int
	verbose    bool
}

func (m *markupFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&m.inputPath, FlagInput, "", "")
	fs.StringVar(&m.inputPath, FlagInputShort, "", "")
	fs.StringVar(&m.schemaPath, FlagSchema, "", "")
	fs.StringVar(&m.separator, FlagSeparator, FlagDefaultSeparator, "")
	fs.StringVar(&m.policy, FlagPolicy, FlagDefaultPolicy, "")
	fs.BoolVar(&m.legacy, FlagLegacy, false, "")
	fs.IntVar(&m.maxDepth, FlagMaxDepth, rrtf.DefaultMaxDepth, "")
	fs.BoolVar(&m.verbose, FlagVerbose, false, "")
	fs.BoolVar(&m.verbose, FlagVerboseShort, false, "")
}

func (m *markupFlags) check() error {
	if m.inputPath == "" {
		return errors.New(ErrMsgMissingInput)
	}
	if _, ok := rrtf.ParseMalformedPolicy(m.policy); !ok {
		return errors.New(ErrMsgInvalidPolicy)
	}
	return nil
}

// session is a portfolio plus the markup it should process
type session struct {
	portfolio *rrtf.Portfolio[string]
	markup    string
	logger    *zap.Logger
}

// openSession reads the input and builds the kit portfolio described by m.
// On failure it reports to stderr and returns the exit code to use.
func openSession(m *markupFlags, stdin io.Reader, stderr io.Writer) (*session, int) {
	var markup []byte
	var err error
	if m.inputPath == InputSourceStdin {
		markup, err = io.ReadAll(stdin)
	} else {
		markup, err = os.ReadFile(m.inputPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return nil, ExitCodeInputError
	}

	logger := zap.NewNop()
	if m.verbose {
		logger = newStderrLogger(stderr)
	}

	specs := kit.Specs(m.separator)
	if m.schemaPath != "" {
		data, err := os.ReadFile(m.schemaPath)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return nil, ExitCodeInputError
		}
		schema, err := rrtf.LoadOptionSchemaWithLogger(data, logger)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSchemaFailed, err)
			return nil, ExitCodeInputError
		}
		for i, s := range specs {
			specs[i] = rrtf.Apply(schema, s)
		}
	}

	policy, _ := rrtf.ParseMalformedPolicy(m.policy)
	opts := []rrtf.ConfigOption{
		rrtf.WithLogger(logger),
		rrtf.WithMalformedPolicy(policy),
		rrtf.WithMaxDepth(m.maxDepth),
	}
	if m.legacy {
		opts = append(opts, rrtf.WithClosingMode(rrtf.ClosingFirstMatch))
	}

	p, err := kit.New(specs, opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgPortfolioFailed, err)
		return nil, ExitCodeError
	}

	return &session{portfolio: p, markup: string(markup), logger: logger}, ExitCodeSuccess
}

// newStderrLogger builds a development-style debug logger writing to w
func newStderrLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}

// newFlagSet creates a quiet flag set for a command
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
