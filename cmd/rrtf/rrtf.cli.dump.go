package main

import (
	"fmt"
	"io"
)

func runDump(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := &markupFlags{}
	fs := newFlagSet(CmdNameDump)
	cfg.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}
	if err := cfg.check(); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	s, code := openSession(cfg, stdin, stderr)
	if s == nil {
		return code
	}
	defer func() { _ = s.logger.Sync() }()

	tree, err := s.portfolio.Parse(s.markup)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseFailed, err)
		return ExitCodeError
	}

	fmt.Fprint(stdout, tree.Dump())
	return ExitCodeSuccess
}
