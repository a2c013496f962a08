package accounting

import (
	"fmt"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns the entry amount signed by its effect on the balance:
// positive for income types, negative for expenses.
func SignedAmount(e domain.LedgerEntry) (decimal.Decimal, error) {
	switch {
	case !e.EntryType.IsValid():
		return decimal.Zero, fmt.Errorf("unknown entry type '%s' for entry %s", e.EntryType, e.EntryID)
	case e.EntryType.IsIncome():
		return e.Amount, nil
	default:
		return e.Amount.Neg(), nil
	}
}

// SummarizeEntries folds approved entries into a balance. Pending and
// rejected entries never contribute.
func SummarizeEntries(entries []domain.LedgerEntry) domain.Balance {
	b := domain.ZeroBalance()
	for _, e := range entries {
		if !e.IsApproved() {
			continue
		}
		if e.EntryType.IsIncome() {
			b.Income = b.Income.Add(e.Amount)
		} else if e.EntryType == domain.EntryExpense {
			b.Expense = b.Expense.Add(e.Amount)
		}
	}
	b.Net = b.Income.Sub(b.Expense)
	return b
}

// SumDues totals the approved dues among entries.
func SumDues(entries []domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.IsApproved() && e.EntryType == domain.EntryIncomeDues {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// ParseAmount parses a non-negative monetary amount with at most two decimals.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, fmt.Errorf("amount %s has more than two decimal places", d)
	}
	return d, nil
}
