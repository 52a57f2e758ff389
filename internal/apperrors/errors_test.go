package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := E(NotFound, "user not found")
	assert.Equal(t, NotFound, KindOf(err))
	assert.True(t, IsKind(err, NotFound))
	assert.False(t, IsKind(err, Conflict))

	// Kind survives wrapping with %w
	wrapped := fmt.Errorf("looking up account: %w", err)
	assert.Equal(t, NotFound, KindOf(wrapped))

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain error")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(StoreUnavailable, "failed to save user", cause)

	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "store_unavailable: failed to save user: connection refused")
}

func TestError_Message(t *testing.T) {
	err := E(Unauthorized, "invalid email or password")
	assert.EqualError(t, err, "unauthorized: invalid email or password")
}
