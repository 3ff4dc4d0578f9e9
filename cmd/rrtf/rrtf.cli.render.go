package main

import (
	"fmt"
	"io"
)

// renderConfig holds parsed render and encode command configuration
type renderConfig struct {
	markupFlags
	outputPath string
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return runTransform(CmdNameRender, args, stdin, stdout, stderr, func(s *session) (string, string, error) {
		out, err := s.portfolio.Render(s.markup)
		return out, ErrMsgRenderFailed, err
	})
}

func runEncode(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return runTransform(CmdNameEncode, args, stdin, stdout, stderr, func(s *session) (string, string, error) {
		out, err := s.portfolio.Canonicalize(s.markup)
		return out, ErrMsgEncodeFailed, err
	})
}

// runTransform parses flags, opens a session and writes what transform produces
func runTransform(name string, args []string, stdin io.Reader, stdout, stderr io.Writer, transform func(*session) (string, string, error)) int {
	cfg, err := parseRenderFlags(name, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	s, code := openSession(&cfg.markupFlags, stdin, stderr)
	if s == nil {
		return code
	}
	defer func() { _ = s.logger.Sync() }()

	result, failMsg, err := transform(s)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, failMsg, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(name string, args []string) (*renderConfig, error) {
	fs := newFlagSet(name)

	cfg := &renderConfig{}
	cfg.register(fs)
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}

	return cfg, nil
}
