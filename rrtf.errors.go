package rrtf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-rrtf/internal"
)

// Position represents a location in the markup source
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

func positionFrom(p internal.Position) Position {
	return Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewParseError creates a parse error with position context
func NewParseError(msg string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeParse, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeParse, msg)
	}
	return withPosition(err, pos)
}

// NewMalformedMarkupError creates a parse error for bracket text that does not form a tag
func NewMalformedMarkupError(reason, text string, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgMalformedMarkup), pos).
		WithMetadata(MetaKeyReason, reason).
		WithMetadata(MetaKeyText, text)
}

// NewMaxDepthError creates an error for markup nested deeper than allowed
func NewMaxDepthError(tag string, depth, maxDepth int, pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgMaxDepthExceeded), pos).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth)).
		WithMetadata(MetaKeyMaxDepth, strconv.Itoa(maxDepth))
}

// NewSourceTooLargeError creates an error for markup over the configured size limit
func NewSourceTooLargeError(size, maxSize int) error {
	return cuserr.NewValidationError(ErrCodeParse, ErrMsgSourceTooLarge).
		WithMetadata(MetaKeySize, strconv.Itoa(size)).
		WithMetadata(MetaKeyMaxSize, strconv.Itoa(maxSize))
}

// NewUnresolvableTagError creates an error for a tag with no registered kind and no fallback
func NewUnresolvableTagError(tag string, pos Position) error {
	return withPosition(cuserr.NewNotFoundError(MetaKeyKind, ErrMsgUnresolvableTag), pos).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyReason, ErrMsgUnresolvableTag)
}

// NewKindExistsError creates a kind collision error
func NewKindExistsError(tag string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgKindExists).
		WithMetadata(MetaKeyTag, tag)
}

// NewInvalidKindError creates an error for a kind that cannot be registered
func NewInvalidKindError(tag, reason string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgInvalidKind).
		WithMetadata(MetaKeyTag, tag).
		WithMetadata(MetaKeyReason, reason)
}

// NewTreeNotConstructedError creates an error for tree use before Construct
func NewTreeNotConstructedError() error {
	return cuserr.NewValidationError(ErrCodeTree, ErrMsgTreeNotConstructed)
}

// NewBuildError wraps a failure raised by a kind's Build
func NewBuildError(kind string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeBuild, ErrMsgBuildFailed)
	} else {
		err = cuserr.NewInternalError(ErrCodeBuild, nil)
	}
	return withPosition(err, pos).WithMetadata(MetaKeyKind, kind)
}

// NewSchemaError creates an option schema error
func NewSchemaError(msg, kind, option string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeSchema, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeSchema, msg)
	}
	if kind != StringValueEmpty {
		err = err.WithMetadata(MetaKeyKind, kind)
	}
	if option != StringValueEmpty {
		err = err.WithMetadata(MetaKeyOption, option)
	}
	return err
}

// errorMetadata returns a metadata value carried by a custom error
func errorMetadata(err error, key string) (string, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return StringValueEmpty, false
	}
	return customErr.GetMetadata(key)
}

// errorPosition recovers the position metadata of a custom error
func errorPosition(err error) Position {
	var pos Position
	if v, ok := errorMetadata(err, MetaKeyLine); ok {
		pos.Line, _ = strconv.Atoi(v)
	}
	if v, ok := errorMetadata(err, MetaKeyColumn); ok {
		pos.Column, _ = strconv.Atoi(v)
	}
	if v, ok := errorMetadata(err, MetaKeyOffset); ok {
		pos.Offset, _ = strconv.Atoi(v)
	}
	return pos
}

// registryError converts an internal registry failure into a registry error
func registryError(err error) error {
	regErr, ok := err.(*internal.RegistryError)
	if !ok {
		return err
	}
	if regErr.Message == internal.ErrMsgEntryExists {
		return NewKindExistsError(regErr.Identifier)
	}
	return NewInvalidKindError(regErr.Identifier, regErr.Message)
}
