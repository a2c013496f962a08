package services

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/dto"
)

// MemberReaderSvc defines read operations for member data
type MemberReaderSvc interface {
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// ListMembers lists every member holding the member role. Admins are excluded.
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

// MemberWriterSvc defines write operations for member data
type MemberWriterSvc interface {
	// Register creates a member with the member role. A taken username yields apperrors.ErrDuplicate.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Member, error)

	// UpdateProfile changes the caller's own profile and, optionally, password.
	UpdateProfile(ctx context.Context, memberID string, req dto.UpdateProfileRequest) (*domain.Member, error)
}

// MemberAdminSvc defines the roster operations reserved for admins
type MemberAdminSvc interface {
	// ResetPassword sets the member's password to the configured default.
	// Admin targets yield apperrors.ErrConflict.
	ResetPassword(ctx context.Context, memberID string, adminID string) error

	// DeleteMember removes a member and detaches their ledger history.
	// Admin targets yield apperrors.ErrConflict and nothing changes.
	DeleteMember(ctx context.Context, memberID string, adminID string) error

	// EnsureBootstrapAdmin creates the first admin when none exists.
	EnsureBootstrapAdmin(ctx context.Context, username, password string) error
}

// MemberAuthSvc defines credential checks
type MemberAuthSvc interface {
	// AuthenticateMember checks username and password. Any mismatch yields apperrors.ErrUnauthorized.
	AuthenticateMember(ctx context.Context, username, password string) (*domain.Member, error)

	// FindOrCreateByEmail returns the member owning email, registering one when absent.
	FindOrCreateByEmail(ctx context.Context, email, realName string) (*domain.Member, error)
}

// MemberSvcFacade combines all member-related service interfaces
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
	MemberAdminSvc
	MemberAuthSvc
}
