package repositories

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// MemberReader defines read operations for member data
type MemberReader interface {
	// FindMemberByID retrieves a member by ID. Missing members yield apperrors.ErrNotFound.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByUsername retrieves a member by unique username.
	FindMemberByUsername(ctx context.Context, username string) (*domain.Member, error)

	// FindMemberByEmail retrieves a member by email, used by Google sign-in.
	FindMemberByEmail(ctx context.Context, email string) (*domain.Member, error)

	// ListMembersByRole lists members holding role, ordered by username.
	ListMembersByRole(ctx context.Context, role domain.Role) ([]domain.Member, error)

	// CountMembersByRole counts members holding role.
	CountMembersByRole(ctx context.Context, role domain.Role) (int, error)
}

// MemberWriter defines write operations for member data
type MemberWriter interface {
	// SaveMember inserts a new member. A taken username yields apperrors.ErrDuplicate.
	SaveMember(ctx context.Context, member domain.Member) error

	// UpdateMember updates profile fields, role and password hash.
	UpdateMember(ctx context.Context, member domain.Member) error

	// DeleteMember removes a member. Ledger entries keep their history with the member link nulled.
	DeleteMember(ctx context.Context, memberID string) error
}

// MemberRepositoryFacade combines all member-related repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
