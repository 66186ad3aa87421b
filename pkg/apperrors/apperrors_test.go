package apperrors

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("ErrorString_CarriesCodeMessageAndCause", func(t *testing.T) {
		err := InvalidArgument("quantity cannot be negative")
		assert.Contains(t, err.Error(), string(CodeInvalidArgument))
		assert.Contains(t, err.Error(), "quantity cannot be negative")

		wrapped := IOFailure("failed to read file", os.ErrNotExist)
		assert.Contains(t, wrapped.Error(), "failed to read file")
		assert.Contains(t, wrapped.Error(), os.ErrNotExist.Error())
	})

	t.Run("Unwrap_ExposesCause", func(t *testing.T) {
		err := IOFailure("failed to read file", os.ErrNotExist)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("WithCause_PreservesCodeAndMessage", func(t *testing.T) {
		base := ParseFailure("bad payload", nil)
		cause := errors.New("unexpected token")

		err := base.WithCause(cause)

		assert.Equal(t, CodeParseFailure, GetCode(err))
		assert.ErrorIs(t, err, cause)
		assert.Nil(t, base.Cause, "original error must stay untouched")
	})
}

func TestClassification(t *testing.T) {
	notFound := NotFound("recipe", "rec_123")
	require.Contains(t, notFound.Error(), "rec_123")

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(InvalidArgument("nope")))
	assert.True(t, IsInvalidArgument(InvalidArgument("nope")))
	assert.True(t, IsParseFailure(ParseFailure("bad", nil)))
	assert.False(t, IsParseFailure(errors.New("plain")))

	assert.Equal(t, CodeNotFound, GetCode(notFound))
	assert.Equal(t, CodeInvalidArgument, GetCode(errors.New("plain")), "unclassified errors default to validation failures")
}
