package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/clubtreasury/treasury/internal/models"
	"github.com/clubtreasury/treasury/internal/utils/mapping"
	"github.com/clubtreasury/treasury/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `entry_id, entry_type, amount, description, entry_date, status, rejection_reason,
	member_id, slot_id, project_id, semester_id, evidence_ref,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryType,
		&m.Amount,
		&m.Description,
		&m.EntryDate,
		&m.Status,
		&m.RejectionReason,
		&m.MemberID,
		&m.SlotID,
		&m.ProjectID,
		&m.SemesterID,
		&m.EvidenceRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectLedgerRows(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()
	out := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return out, nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries WHERE entry_id = $1;`, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	e := mapping.ToDomainLedgerEntry(m)
	return &e, nil
}

func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	where, args := ledgerWhere(filter, nil)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries ` + where +
		` ORDER BY entry_date ASC, created_at ASC, entry_id ASC;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	ms, err := collectLedgerRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}

// ListEntriesPage fetches one row beyond limit to learn whether another page exists.
func (r *PgxLedgerRepository) ListEntriesPage(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	fetchLimit := limit + 1

	where, args := ledgerWhere(filter, nil)
	if nextToken != nil && *nextToken != "" {
		cur, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		args = append(args, cur.EntryDate, cur.CreatedAt, cur.EntryID)
		n := len(args)
		where += fmt.Sprintf(" AND (entry_date, created_at, entry_id) < ($%d, $%d, $%d)", n-2, n-1, n)
	}
	args = append(args, fetchLimit)
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries ` + where +
		` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query ledger page", err)
	}
	ms, err := collectLedgerRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		next = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainLedgerEntrySlice(ms), next, nil
}

func (r *PgxLedgerRepository) FindOpenDues(ctx context.Context, memberID, slotID string) (*domain.LedgerEntry, error) {
	m, err := scanLedgerEntry(r.Pool.QueryRow(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE member_id = $1 AND slot_id = $2 AND entry_type = 'income_dues' AND status IN ('pending', 'approved')
		ORDER BY entry_date DESC, created_at DESC LIMIT 1;
	`, memberID, slotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open dues: %w", err)
	}
	e := mapping.ToDomainLedgerEntry(m)
	return &e, nil
}

func (r *PgxLedgerRepository) ListEvidenceRefs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT evidence_ref FROM ledger_entries WHERE evidence_ref IS NOT NULL;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query evidence refs: %w", err)
	}
	refs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect evidence refs: %w", err)
	}
	return refs, nil
}

func (r *PgxLedgerRepository) CreateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := r.Pool.Exec(ctx, `INSERT INTO ledger_entries (`+ledgerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
		m.EntryID, m.EntryType, m.Amount, m.Description, m.EntryDate, m.Status, m.RejectionReason,
		m.MemberID, m.SlotID, m.ProjectID, m.SemesterID, m.EvidenceRef,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%w: dues for this week were already submitted", apperrors.ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: referenced member, slot, project or semester no longer exists", apperrors.ErrNotFound)
	default:
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
}

func (r *PgxLedgerRepository) TransitionStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, reason *string, updatedBy string, updatedAt time.Time) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE ledger_entries
		SET status = $3, rejection_reason = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1 AND status = $2;
	`, entryID, string(from), string(to), reason, updatedAt, updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("%w: another open dues entry exists for this week", apperrors.ErrConflict)
		}
		return false, fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}
	return requireAffected(tag)
}
