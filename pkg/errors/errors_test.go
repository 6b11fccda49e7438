package errors

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStoreMapsOutages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"deadline", context.DeadlineExceeded, 503},
		{"canceled", context.Canceled, 503},
		{"bad conn", driver.ErrBadConn, 503},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}, 503},
		{"wrapped deadline", fmt.Errorf("query docentes: %w", context.DeadlineExceeded), 503},
		{"other", errors.New("syntax error"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromStore(tc.err, "store failed")
			assert.Equal(t, tc.want, appErr.Status)
			assert.Equal(t, "store failed", appErr.Message)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}

func TestFromStoreNil(t *testing.T) {
	assert.Nil(t, FromStore(nil, "whatever"))
}

func TestFromErrorPassesTyped(t *testing.T) {
	appErr := FromError(Clone(ErrNotFound, "docente no existe"))
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "docente no existe", appErr.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, 500, appErr.Status)
	assert.Equal(t, ErrInternal.Message, appErr.Message)
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrValidation, "otro mensaje")
	assert.Equal(t, "otro mensaje", clone.Message)
	assert.Equal(t, "datos inválidos", ErrValidation.Message)
	assert.Equal(t, ErrValidation.Code, clone.Code)
}

func TestIsUnavailableTimeout(t *testing.T) {
	err := &net.OpError{Op: "read", Err: &timeoutErr{}}
	assert.True(t, isUnavailable(err))
}

type timeoutErr struct{}

func (*timeoutErr) Error() string   { return "timeout" }
func (*timeoutErr) Timeout() bool   { return true }
func (*timeoutErr) Temporary() bool { return true }
