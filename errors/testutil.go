package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertCode checks the code of err, see Code.
func AssertCode(t *testing.T, err error, code int) {
	t.Helper()
	assert.Equal(t, code, Code(err), "code should be equal, error: %v", err)
}

// AssertReason checks the reason carried by err.
func AssertReason(t *testing.T, err error, reason string) {
	t.Helper()

	var e Error
	if !assert.True(t, stderrors.As(err, &e), "error should be an Error, got %T", err) {
		return
	}
	assert.Equal(t, reason, e.Reason(), "reason should be equal")
}
