package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewCommandFailedError("chainctl exited with status 1", nil)
	assert.Equal(t, "command_failed: chainctl exited with status 1", err.Error())

	cause := stderrors.New("exit status 1")
	err = NewCommandFailedError("chainctl exited with status 1", cause)
	assert.Equal(t, "command_failed: chainctl exited with status 1: exit status 1", err.Error())
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("underlying")
	err := NewCommandTimeoutError("timed out after 30s", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestTypePredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
	}{
		{"command not found", NewCommandNotFoundError("chainctl not on PATH", nil), IsCommandNotFound},
		{"command failed", NewCommandFailedError("exit status 1", nil), IsCommandFailed},
		{"command timeout", NewCommandTimeoutError("timed out", nil), IsCommandTimeout},
		{"output parse", NewOutputParseError("missing Password line", nil), IsOutputParse},
		{"missing config", NewMissingConfigError("CHAINCTL_PARENT not set", nil), IsMissingConfig},
		{"read-only backend", NewReadOnlyBackendError("set not supported"), IsReadOnlyBackend},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.predicate(tt.err))

			// Each predicate should reject errors of every other type.
			for _, other := range tests {
				if other.name == tt.name {
					continue
				}
				assert.False(t, tt.predicate(other.err),
					"%s predicate should not match %s", tt.name, other.name)
			}
		})
	}
}

func TestPredicatesMatchWrappedErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("resolving credential: %w", NewCommandTimeoutError("timed out", nil))
	assert.True(t, IsCommandTimeout(wrapped))
	assert.False(t, IsCommandFailed(wrapped))
}

func TestPredicatesRejectPlainErrors(t *testing.T) {
	t.Parallel()

	err := stderrors.New("some other error")
	assert.False(t, IsCommandNotFound(err))
	assert.False(t, IsCommandFailed(err))
	assert.False(t, IsReadOnlyBackend(err))
	assert.False(t, IsCommandNotFound(nil))
}
