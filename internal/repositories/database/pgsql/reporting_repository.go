package pgsql

import (
	"context"
	"fmt"

	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SumBalance aggregates approved entries; income is every type prefixed "income".
func (r *reportingRepository) SumBalance(ctx context.Context, filter domain.LedgerFilter) (domain.Balance, error) {
	where, args := ledgerWhere(filter.ApprovedOnly(), nil)
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN entry_type LIKE 'income%' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN entry_type = 'expense' THEN amount ELSE 0 END), 0) AS expense
		FROM ledger_entries ` + where + `;`

	b := domain.ZeroBalance()
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&b.Income, &b.Expense); err != nil {
		return domain.Balance{}, fmt.Errorf("error querying balance: %w", err)
	}
	b.Net = b.Income.Sub(b.Expense)
	return b, nil
}

func (r *reportingRepository) SumDues(ctx context.Context, filter domain.LedgerFilter) (decimal.Decimal, error) {
	dues := domain.EntryIncomeDues
	filter.Type = &dues
	where, args := ledgerWhere(filter.ApprovedOnly(), nil)

	total := decimal.Zero
	if err := r.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries `+where+`;`, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying dues total: %w", err)
	}
	return total, nil
}

func (r *reportingRepository) CountEntries(ctx context.Context, filter domain.LedgerFilter) (int, error) {
	where, args := ledgerWhere(filter, nil)
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries `+where+`;`, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting ledger entries: %w", err)
	}
	return n, nil
}
