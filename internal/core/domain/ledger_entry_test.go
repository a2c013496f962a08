package domain_test

import (
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func pendingDues() domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:   "entry-1",
		EntryType: domain.EntryIncomeDues,
		Amount:    decimal.NewFromInt(50),
		Status:    domain.StatusPending,
		MemberID:  stringPtr("member-1"),
		SlotID:    stringPtr("slot-1"),
	}
}

func TestLedgerEntry_Approve(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	e := pendingDues()
	changed, err := e.Approve("admin", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusApproved, e.Status)
	assert.Equal(t, "admin", e.LastUpdatedBy)

	changed, err = e.Approve("admin", now)
	require.NoError(t, err)
	assert.False(t, changed, "approving twice is a no-op")

	r := pendingDues()
	r.Status = domain.StatusRejected
	_, err = r.Approve("admin", now)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLedgerEntry_Reject(t *testing.T) {
	now := time.Now()

	e := pendingDues()
	_, err := e.Reject("  ", "admin", now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	changed, err := e.Reject("blurry slip", "admin", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusRejected, e.Status)
	require.NotNil(t, e.RejectionReason)
	assert.Equal(t, "blurry slip", *e.RejectionReason)

	changed, err = e.Reject("again", "admin", now)
	require.NoError(t, err)
	assert.False(t, changed)

	a := pendingDues()
	a.Status = domain.StatusApproved
	_, err = a.Reject("late", "admin", now)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLedgerEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *domain.LedgerEntry)
		wantErr bool
	}{
		{name: "valid dues", mutate: func(e *domain.LedgerEntry) {}},
		{name: "negative amount", mutate: func(e *domain.LedgerEntry) { e.Amount = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "zero amount", mutate: func(e *domain.LedgerEntry) { e.Amount = decimal.Zero }},
		{name: "dues without slot", mutate: func(e *domain.LedgerEntry) { e.SlotID = nil }, wantErr: true},
		{name: "dues with project", mutate: func(e *domain.LedgerEntry) { e.ProjectID = stringPtr("p") }, wantErr: true},
		{name: "unknown type", mutate: func(e *domain.LedgerEntry) { e.EntryType = "refund" }, wantErr: true},
		{name: "expense without member", mutate: func(e *domain.LedgerEntry) {
			e.EntryType = domain.EntryExpense
			e.MemberID = nil
			e.SlotID = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := pendingDues()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryType_IsIncome(t *testing.T) {
	assert.True(t, domain.EntryIncomeDues.IsIncome())
	assert.True(t, domain.EntryIncomeDonation.IsIncome())
	assert.False(t, domain.EntryExpense.IsIncome())
}
