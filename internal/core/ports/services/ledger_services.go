package services

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/dto"
)

// DuesSvc defines the member side of the approval workflow
type DuesSvc interface {
	// SubmitDuesPayment records a pending dues entry for (member, slot) with its slip.
	// An open entry for the same pair yields apperrors.ErrConflict.
	SubmitDuesPayment(ctx context.Context, memberID, slotID string, req dto.SubmitDuesRequest, slip *dto.Upload) (*domain.LedgerEntry, error)

	// MemberDuesOverview lists the active semester's slots with the member's status for each.
	MemberDuesOverview(ctx context.Context, memberID string) (*domain.DuesOverview, error)
}

// ApprovalSvc defines the admin side of the approval workflow
type ApprovalSvc interface {
	// ListPendingDues lists pending dues entries, oldest first.
	ListPendingDues(ctx context.Context) ([]domain.LedgerEntry, error)

	// ApproveEntry moves a pending entry to approved. Approving twice is a no-op.
	ApproveEntry(ctx context.Context, entryID string, adminID string) (*domain.LedgerEntry, error)

	// RejectEntry moves a pending entry to rejected with a reason. Approved entries are final.
	RejectEntry(ctx context.Context, entryID string, req dto.RejectEntryRequest, adminID string) (*domain.LedgerEntry, error)
}

// TreasurySvc defines direct bookkeeping by admins
type TreasurySvc interface {
	GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// RecordManualTransaction records an approved donation or expense.
	RecordManualTransaction(ctx context.Context, req dto.ManualTransactionRequest, evidence *dto.Upload, adminID string) (*domain.LedgerEntry, error)

	// RecordManualDues records approved dues on behalf of a member.
	RecordManualDues(ctx context.Context, req dto.ManualDuesRequest, adminID string) (*domain.LedgerEntry, error)

	// DeleteEntry hard-deletes an entry.
	DeleteEntry(ctx context.Context, entryID string, adminID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	DuesSvc
	ApprovalSvc
	TreasurySvc
}
