package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/clubtreasury/treasury/internal/models"
	"github.com/clubtreasury/treasury/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const memberColumns = `member_id, username, password_hash, real_name, department, email, role,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxMemberRepository struct {
	BaseRepository
}

func newPgxMemberRepository(db *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

func scanMember(row pgx.Row) (domain.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID,
		&m.Username,
		&m.PasswordHash,
		&m.RealName,
		&m.Department,
		&m.Email,
		&m.Role,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Member{}, err
	}
	return mapping.ToDomainMember(m), nil
}

func (r *PgxMemberRepository) findOne(ctx context.Context, where string, arg any) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE ` + where + `;`
	member, err := scanMember(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return &member, nil
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	return r.findOne(ctx, "member_id = $1", memberID)
}

func (r *PgxMemberRepository) FindMemberByUsername(ctx context.Context, username string) (*domain.Member, error) {
	return r.findOne(ctx, "username = $1", username)
}

func (r *PgxMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *PgxMemberRepository) ListMembersByRole(ctx context.Context, role domain.Role) ([]domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE role = $1 ORDER BY username ASC;`
	rows, err := r.Pool.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

func (r *PgxMemberRepository) CountMembersByRole(ctx context.Context, role domain.Role) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE role = $1;`, string(role)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return n, nil
}

func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MemberID, m.Username, m.PasswordHash, m.RealName, m.Department, m.Email, m.Role,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		UPDATE members
		SET real_name = $2, department = $3, email = $4, role = $5, password_hash = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE member_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.MemberID, m.RealName, m.Department, m.Email, m.Role, m.PasswordHash,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update member %s: %w", member.MemberID, err)
	}
	return requireAffected(tag)
}

// DeleteMember relies on ledger_entries.member_id ON DELETE SET NULL.
func (r *PgxMemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM members WHERE member_id = $1;`, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete member %s: %w", memberID, err)
	}
	return requireAffected(tag)
}
