package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHelpers_ThroughWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"validation", NewValidationError("bad price"), IsValidationError},
		{"not found", NewNotFoundError("no offer"), IsNotFoundError},
		{"conflict", NewConflictError("dup key"), IsConflictError},
		{"permission", NewPermissionError("admins only"), IsPermissionError},
		{"state", NewStateError("not submitted"), IsStateError},
		{"provider", WrapProviderError(stderrors.New("timeout"), "telegram down"), IsProviderError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("failed to do thing: %w", tt.err)

			assert.True(t, tt.is(tt.err))
			assert.True(t, tt.is(wrapped))
		})
	}
}

func TestIsHelpers_DoNotCrossMatch(t *testing.T) {
	err := NewStateError("payment is not submitted")

	assert.False(t, IsNotFoundError(err))
	assert.False(t, IsValidationError(err))
	assert.False(t, IsStateError(stderrors.New("plain")))
	assert.False(t, IsPermissionError(stderrors.New("plain")))
}

func TestWrapProviderError_KeepsCause(t *testing.T) {
	cause := stderrors.New("Bad Request: not enough rights")
	err := WrapProviderError(cause, "failed to create invite link for %s", "-100123")

	assert.True(t, IsProviderError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create invite link for -100123: Bad Request: not enough rights", err.Error())
}
