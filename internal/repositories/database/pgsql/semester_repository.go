package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/clubtreasury/treasury/internal/models"
	"github.com/clubtreasury/treasury/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const semesterColumns = `semester_id, name, start_date, end_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const slotColumns = `slot_id, semester_id, week_number, start_date, end_date`

type PgxSemesterRepository struct {
	BaseRepository
}

func newPgxSemesterRepository(db *pgxpool.Pool) portsrepo.SemesterRepositoryFacade {
	return &PgxSemesterRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.SemesterRepositoryFacade = (*PgxSemesterRepository)(nil)

func scanSemester(row pgx.Row) (domain.Semester, error) {
	var m models.Semester
	if err := row.Scan(
		&m.SemesterID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		return domain.Semester{}, err
	}
	return mapping.ToDomainSemester(m), nil
}

func scanSlot(row pgx.Row) (domain.Slot, error) {
	var m models.WeeklySlot
	if err := row.Scan(&m.SlotID, &m.SemesterID, &m.WeekNumber, &m.StartDate, &m.EndDate); err != nil {
		return domain.Slot{}, err
	}
	return mapping.ToDomainSlot(m), nil
}

func (r *PgxSemesterRepository) FindSemesterByID(ctx context.Context, semesterID string) (*domain.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE semester_id = $1;`
	s, err := scanSemester(r.Pool.QueryRow(ctx, query, semesterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find semester %s: %w", semesterID, err)
	}
	return &s, nil
}

func (r *PgxSemesterRepository) FindActiveSemester(ctx context.Context) (*domain.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE is_active ORDER BY start_date DESC LIMIT 1;`
	s, err := scanSemester(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active semester: %w", err)
	}
	return &s, nil
}

func (r *PgxSemesterRepository) ListSemesters(ctx context.Context) ([]domain.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters ORDER BY start_date DESC, created_at DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query semesters: %w", err)
	}
	defer rows.Close()

	semesters := []domain.Semester{}
	for rows.Next() {
		s, err := scanSemester(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan semester row: %w", err)
		}
		semesters = append(semesters, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating semester rows: %w", err)
	}
	return semesters, nil
}

func (r *PgxSemesterRepository) ListSlots(ctx context.Context, semesterID string) ([]domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM weekly_slots WHERE semester_id = $1 ORDER BY week_number ASC;`
	rows, err := r.Pool.Query(ctx, query, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query slots for semester %s: %w", semesterID, err)
	}
	defer rows.Close()

	slots := []domain.Slot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot rows: %w", err)
	}
	return slots, nil
}

func (r *PgxSemesterRepository) FindSlotByID(ctx context.Context, slotID string) (*domain.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM weekly_slots WHERE slot_id = $1;`
	s, err := scanSlot(r.Pool.QueryRow(ctx, query, slotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find slot %s: %w", slotID, err)
	}
	return &s, nil
}

// deactivateOthers is the only place that clears is_active on behalf of an activation.
func deactivateOthers(ctx context.Context, tx pgx.Tx, semesterID, updatedBy string, updatedAt time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE semesters SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE is_active AND semester_id <> $1;
	`, semesterID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate semesters: %w", err)
	}
	return nil
}

func (r *PgxSemesterRepository) CreateSemesterWithSlots(ctx context.Context, semester domain.Semester, slots []domain.Slot) error {
	m := mapping.ToModelSemester(semester)
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if m.IsActive {
			// Serialise concurrent activations on the semesters table.
			if _, err := tx.Exec(ctx, `LOCK TABLE semesters IN SHARE ROW EXCLUSIVE MODE;`); err != nil {
				return fmt.Errorf("failed to lock semesters: %w", err)
			}
			if err := deactivateOthers(ctx, tx, m.SemesterID, m.CreatedBy, m.CreatedAt); err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, `INSERT INTO semesters (`+semesterColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			m.SemesterID, m.Name, m.StartDate, m.EndDate, m.IsActive,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert semester: %w", err)
		}

		batch := &pgx.Batch{}
		for _, s := range slots {
			ms := mapping.ToModelSlot(s)
			batch.Queue(`INSERT INTO weekly_slots (`+slotColumns+`) VALUES ($1, $2, $3, $4, $5);`,
				ms.SlotID, ms.SemesterID, ms.WeekNumber, ms.StartDate, ms.EndDate)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert slots: %w", err)
		}
		return nil
	})
}

func (r *PgxSemesterRepository) UpdateSemester(ctx context.Context, semester domain.Semester) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE semesters SET name = $2, start_date = $3, end_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE semester_id = $1;
	`, semester.SemesterID, semester.Name, semester.StartDate, semester.EndDate, semester.LastUpdatedAt, semester.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update semester %s: %w", semester.SemesterID, err)
	}
	return requireAffected(tag)
}

func (r *PgxSemesterRepository) SetSemesterActive(ctx context.Context, semesterID string, active bool, updatedBy string, updatedAt time.Time) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if active {
			if _, err := tx.Exec(ctx, `LOCK TABLE semesters IN SHARE ROW EXCLUSIVE MODE;`); err != nil {
				return fmt.Errorf("failed to lock semesters: %w", err)
			}
			if err := deactivateOthers(ctx, tx, semesterID, updatedBy, updatedAt); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, `
			UPDATE semesters SET is_active = $2, last_updated_at = $3, last_updated_by = $4
			WHERE semester_id = $1;
		`, semesterID, active, updatedAt, updatedBy)
		if err != nil {
			return fmt.Errorf("failed to set semester %s active=%t: %w", semesterID, active, err)
		}
		return requireAffected(tag)
	})
}

// DeleteSemester relies on weekly_slots ON DELETE CASCADE and the ledger's
// ON DELETE SET NULL links to slots and semesters.
func (r *PgxSemesterRepository) DeleteSemester(ctx context.Context, semesterID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM semesters WHERE semester_id = $1;`, semesterID)
	if err != nil {
		return fmt.Errorf("failed to delete semester %s: %w", semesterID, err)
	}
	return requireAffected(tag)
}
