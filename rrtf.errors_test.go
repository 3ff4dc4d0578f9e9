package rrtf

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParseError(t *testing.T) {
	pos := Position{Offset: 10, Line: 2, Column: 5}

	t.Run("with position", func(t *testing.T) {
		err := NewParseError(ErrMsgParseFailed, pos, nil)
		require.Error(t, err)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))

		line, ok := customErr.GetMetadata(MetaKeyLine)
		assert.True(t, ok)
		assert.Equal(t, "2", line)

		column, ok := customErr.GetMetadata(MetaKeyColumn)
		assert.True(t, ok)
		assert.Equal(t, "5", column)

		offset, ok := customErr.GetMetadata(MetaKeyOffset)
		assert.True(t, ok)
		assert.Equal(t, "10", offset)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := NewParseError(ErrMsgParseFailed, pos, cause)
		assert.ErrorIs(t, err, cause)
	})
}

func TestErrorPosition(t *testing.T) {
	pos := Position{Offset: 3, Line: 1, Column: 4}
	assert.Equal(t, pos, errorPosition(NewMaxDepthError("a", 5, 4, pos)))
	assert.Equal(t, Position{}, errorPosition(errors.New("plain")))
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "line 3, column 7", Position{Line: 3, Column: 7}.String())
}

func TestNewBuildError(t *testing.T) {
	pos := Position{Line: 1, Column: 1}

	err := NewBuildError("a", pos, nil)
	assert.Equal(t, "a", metadata(t, err, MetaKeyKind))

	cause := errors.New("bad")
	err = NewBuildError("a", pos, cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), ErrMsgBuildFailed)
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError(ErrMsgSchemaPattern, "num", "style", nil)
	assert.Equal(t, "num", metadata(t, err, MetaKeyKind))
	assert.Equal(t, "style", metadata(t, err, MetaKeyOption))

	err = NewSchemaError(ErrMsgSchemaInvalid, StringValueEmpty, StringValueEmpty, nil)
	_, ok := errorMetadata(err, MetaKeyKind)
	assert.False(t, ok)
}

func TestErrorMetadata_NonCustom(t *testing.T) {
	_, ok := errorMetadata(errors.New("plain"), MetaKeyTag)
	assert.False(t, ok)
}
