package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	withCause := Wrap(ErrKindConnectionFailed, "cannot reach server", cause)
	assert.Equal(t, "[connection_failed] cannot reach server: dial tcp: connection refused", withCause.Error())

	withoutCause := New(ErrKindUnsupportedType, "MongoDB support coming soon")
	assert.Equal(t, "[unsupported_type] MongoDB support coming soon", withoutCause.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrKindQueryFailed, "query failed", cause)

	require.ErrorIs(t, err, cause)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		kind      ErrKind
		predicate func(error) bool
	}{
		{ErrKindConnectionFailed, IsConnectionFailed},
		{ErrKindQueryFailed, IsQueryFailed},
		{ErrKindAuthenticationFailed, IsAuthenticationFailed},
		{ErrKindDatabaseNotFound, IsDatabaseNotFound},
		{ErrKindTimeout, IsTimeout},
		{ErrKindUnsupportedType, IsUnsupportedType},
		{ErrKindInternal, IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := New(tt.kind, "boom")
			assert.True(t, tt.predicate(err))

			other := New(ErrKindUnknown, "other")
			assert.False(t, tt.predicate(other))
		})
	}
}

func TestPredicates_WrappedChain(t *testing.T) {
	inner := New(ErrKindTimeout, "query timed out")
	outer := fmt.Errorf("running report: %w", inner)

	assert.True(t, IsTimeout(outer))
	assert.False(t, IsQueryFailed(outer))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrKindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrKindUnknown, KindOf(nil))
}
