package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs_MatchesAnyTarget(t *testing.T) {
	require.True(t, Is(ErrEventNotFound, ErrMentorNotFound, ErrEventNotFound))
	require.False(t, Is(ErrEventNotFound, ErrMentorNotFound, ErrCommentNotFound))
	require.False(t, Is(nil, ErrEventNotFound))
}

func TestIs_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading event: %w", ErrEventNotFound)
	require.True(t, Is(wrapped, ErrMentorNotFound, ErrEventNotFound))
}

func TestCustomError_UnwrapsToSentinel(t *testing.T) {
	err := NewValidationError("title is required")
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Equal(t, "title is required", err.Error())
}

func TestCustomError_FallsBackToSentinelMessage(t *testing.T) {
	err := &CustomError{Err: ErrConflict}
	require.Equal(t, ErrConflict.Error(), err.Error())
}

func TestCustomError_As(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewForbiddenError("not yours"))

	var custom *CustomError
	require.True(t, errors.As(wrapped, &custom))
	require.Equal(t, "not yours", custom.Message)
}
