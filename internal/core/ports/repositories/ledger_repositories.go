package repositories

import (
	"context"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries returns every entry matching filter ordered by entry date
	// then creation time, ascending.
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)

	// ListEntriesPage returns one page of matching entries, newest first,
	// and a token for the next page when more rows exist.
	ListEntriesPage(ctx context.Context, filter domain.LedgerFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindOpenDues returns the pending or approved dues entry for (member, slot), or apperrors.ErrNotFound.
	FindOpenDues(ctx context.Context, memberID, slotID string) (*domain.LedgerEntry, error)

	// ListEvidenceRefs returns every evidence handle referenced by a ledger entry.
	ListEvidenceRefs(ctx context.Context) ([]string, error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// CreateEntry inserts an entry. A second open dues entry for the same
	// (member, slot) yields apperrors.ErrConflict.
	CreateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// TransitionStatus moves an entry from one status to another only if it
	// is still in the from status. It reports whether a row changed.
	TransitionStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, reason *string, updatedBy string, updatedAt time.Time) (bool, error)

	// DeleteEntry hard-deletes an entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
