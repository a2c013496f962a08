package dto_test

import (
	"testing"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators(t *testing.T) {
	require.NoError(t, dto.RegisterValidators())

	valid := dto.ManualTransactionRequest{EntryType: domain.EntryExpense, Amount: "10", Description: "paint"}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	dues := valid
	dues.EntryType = domain.EntryIncomeDues
	err := binding.Validator.ValidateStruct(&dues)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"EntryType": "manualentrytype"}, dto.ValidationDetails(err))

	status := dto.UpdateProjectStatusRequest{Status: "Paused"}
	err = binding.Validator.ValidateStruct(&status)
	require.Error(t, err)
	assert.Equal(t, "projectstatus", dto.ValidationDetails(err)["Status"])
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, dto.ValidationDetails(assert.AnError))
}
