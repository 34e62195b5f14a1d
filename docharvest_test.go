package docharvest_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/docharvest"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docharvest.Errorf(docharvest.ENOTFOUND, "target %q not found", "test")

	assert.Equal(t, docharvest.ENOTFOUND, docharvest.ErrorCode(err))
	assert.Equal(t, "target \"test\" not found", docharvest.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docharvest.ErrorCode(nil))
}

func TestErrorCode_NonAppError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docharvest.EINTERNAL, docharvest.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docharvest.ErrorMessage(nil))
}

func TestErrorMessage_NonAppError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", docharvest.ErrorMessage(errors.New("boom")))
}
