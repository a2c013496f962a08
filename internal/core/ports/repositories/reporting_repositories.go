package repositories

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines aggregate queries over the ledger
type ReportingRepository interface {
	// SumBalance aggregates approved entries matching filter.
	SumBalance(ctx context.Context, filter domain.LedgerFilter) (domain.Balance, error)

	// SumDues totals approved dues entries matching filter.
	SumDues(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error)

	// CountEntries counts entries matching filter.
	CountEntries(ctx context.Context, filter domain.LedgerFilter) (int, error)
}
