package mapping

import (
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDomainLedgerEntry_NormalizesDate(t *testing.T) {
	slot := "slot-1"
	m := models.LedgerEntry{
		EntryID:   "e1",
		EntryType: "income_dues",
		Amount:    decimal.RequireFromString("50.00"),
		EntryDate: time.Date(2024, 1, 3, 0, 0, 0, 0, time.FixedZone("UTC+7", 7*3600)),
		Status:    "pending",
		SlotID:    &slot,
	}

	d := ToDomainLedgerEntry(m)
	assert.Equal(t, domain.EntryIncomeDues, d.EntryType)
	assert.Equal(t, domain.StatusPending, d.Status)
	assert.Equal(t, "2024-01-03", d.EntryDate.Format(domain.DateLayout))
	assert.Equal(t, time.UTC, d.EntryDate.Location())
	assert.Equal(t, &slot, d.SlotID)
}

func TestMemberMapping_EmptyEmailIsNull(t *testing.T) {
	m := ToModelMember(domain.Member{MemberID: "m1", Role: domain.RoleMember})
	assert.Nil(t, m.Email)

	email := "a@example.com"
	m.Email = &email
	assert.Equal(t, "a@example.com", ToDomainMember(m).Email)
}
