package accounting

import (
	"testing"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t domain.EntryType, status domain.EntryStatus, amount int64) domain.LedgerEntry {
	return domain.LedgerEntry{EntryType: t, Status: status, Amount: decimal.NewFromInt(amount)}
}

func TestSummarizeEntries(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(domain.EntryIncomeDues, domain.StatusApproved, 50),
		entry(domain.EntryIncomeDonation, domain.StatusApproved, 100),
		entry(domain.EntryExpense, domain.StatusApproved, 30),
		entry(domain.EntryIncomeDues, domain.StatusPending, 999),
		entry(domain.EntryExpense, domain.StatusRejected, 999),
	}

	b := SummarizeEntries(entries)
	assert.True(t, b.Income.Equal(decimal.NewFromInt(150)), "income was %s", b.Income)
	assert.True(t, b.Expense.Equal(decimal.NewFromInt(30)), "expense was %s", b.Expense)
	assert.True(t, b.Net.Equal(decimal.NewFromInt(120)), "net was %s", b.Net)
}

func TestSummarizeEntries_Empty(t *testing.T) {
	b := SummarizeEntries(nil)
	assert.True(t, b.Income.IsZero())
	assert.True(t, b.Expense.IsZero())
	assert.True(t, b.Net.IsZero())
}

func TestSummarizeEntries_NetIsIncomeMinusExpense(t *testing.T) {
	var entries []domain.LedgerEntry
	for i := int64(1); i <= 20; i++ {
		typ := domain.EntryIncomeDues
		if i%3 == 0 {
			typ = domain.EntryExpense
		}
		entries = append(entries, entry(typ, domain.StatusApproved, i*7))
	}
	b := SummarizeEntries(entries)
	assert.True(t, b.Net.Equal(b.Income.Sub(b.Expense)))
}

func TestSignedAmount(t *testing.T) {
	got, err := SignedAmount(entry(domain.EntryExpense, domain.StatusApproved, 30))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-30)))

	got, err = SignedAmount(entry(domain.EntryIncomeDonation, domain.StatusApproved, 30))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(30)))

	_, err = SignedAmount(entry("refund", domain.StatusApproved, 1))
	assert.Error(t, err)
}

func TestSumDues(t *testing.T) {
	total := SumDues([]domain.LedgerEntry{
		entry(domain.EntryIncomeDues, domain.StatusApproved, 50),
		entry(domain.EntryIncomeDues, domain.StatusPending, 50),
		entry(domain.EntryIncomeDonation, domain.StatusApproved, 10),
	})
	assert.True(t, total.Equal(decimal.NewFromInt(50)))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "50", want: "50"},
		{in: "12.50", want: "12.5"},
		{in: "0", want: "0"},
		{in: "-1", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
