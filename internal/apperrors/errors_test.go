package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapsCause(t *testing.T) {
	err := apperrors.NewAppError(500, "failed to insert ledger entry", apperrors.ErrDuplicate)

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Equal(t, "failed to insert ledger entry: resource already exists", err.Error())
}

func TestAppError_NilCause(t *testing.T) {
	err := apperrors.NewAppError(400, "bad input", nil)

	assert.Equal(t, "bad input", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestWrappedSentinels(t *testing.T) {
	err := fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
