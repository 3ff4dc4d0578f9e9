package rrtf

import (
	"go.uber.org/zap"

	"github.com/itsatony/go-rrtf/internal"
)

// ConfigOption is a functional option for configuring a Portfolio.
type ConfigOption func(*config)

// config holds the internal configuration for a Portfolio.
type config struct {
	rootIdentifier string
	maxDepth       int
	maxSourceBytes int
	closing        ClosingMode
	malformed      MalformedPolicy
	logger         *zap.Logger
}

// defaultConfig returns the default portfolio configuration.
func defaultConfig() *config {
	return &config{
		rootIdentifier: DefaultRootIdentifier,
		maxDepth:       DefaultMaxDepth,
		maxSourceBytes: DefaultMaxSourceBytes,
		closing:        ClosingNested,
		malformed:      MalformedLiteral,
		logger:         nil,
	}
}

// WithLogger sets the logger for the portfolio.
// Default: no-op logger
func WithLogger(logger *zap.Logger) ConfigOption {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxDepth sets the maximum node nesting depth.
// Use 0 for unlimited depth.
// Default: 100
func WithMaxDepth(depth int) ConfigOption {
	return func(c *config) {
		if depth >= 0 {
			c.maxDepth = depth
		}
	}
}

// WithMaxSourceBytes rejects markup longer than n bytes.
// Default: 0 (unlimited)
func WithMaxSourceBytes(n int) ConfigOption {
	return func(c *config) {
		if n >= 0 {
			c.maxSourceBytes = n
		}
	}
}

// WithRootIdentifier sets the kind used for the tree root.
// Default: "root"
func WithRootIdentifier(id string) ConfigOption {
	return func(c *config) {
		if id != StringValueEmpty {
			c.rootIdentifier = id
		}
	}
}

// WithClosingMode sets how closing markers are matched.
// Default: ClosingNested
func WithClosingMode(mode ClosingMode) ConfigOption {
	return func(c *config) {
		c.closing = mode
	}
}

// WithMalformedPolicy sets how bracket text that does not form a tag is handled.
// Default: MalformedLiteral
func WithMalformedPolicy(policy MalformedPolicy) ConfigOption {
	return func(c *config) {
		c.malformed = policy
	}
}

// scannerConfig translates the portfolio configuration for the scanner
func (c *config) scannerConfig() internal.ScannerConfig {
	sc := internal.DefaultScannerConfig()
	if c.closing == ClosingFirstMatch {
		sc.Closing = internal.ClosingFirstMatch
	}
	switch c.malformed {
	case MalformedDrop:
		sc.Malformed = internal.MalformedDrop
	case MalformedStrict:
		sc.Malformed = internal.MalformedStrict
	}
	return sc
}
