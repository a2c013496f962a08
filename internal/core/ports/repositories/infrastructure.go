package repositories

import (
	"context"
	"io"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// EvidenceStore persists uploaded proof files and hands back opaque refs.
type EvidenceStore interface {
	// Save stores content under a uniquified form of name and returns its ref.
	Save(ctx context.Context, name string, content io.Reader) (string, error)

	// Open returns the stored content and its MIME type. Unknown refs yield apperrors.ErrNotFound.
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)

	// Delete removes the stored object. Deleting a missing ref is not an error.
	Delete(ctx context.Context, ref string) error

	// List enumerates every stored object.
	List(ctx context.Context) ([]domain.EvidenceObject, error)
}

// BalanceCache memoises balance aggregates. Implementations are best effort:
// a miss or a backend failure falls through to the repository.
type BalanceCache interface {
	// GetBalance also returns the cache version the lookup ran under. A
	// balance computed after a miss must be stored with that version.
	GetBalance(ctx context.Context, key string) (*domain.Balance, int64, bool)

	// SetBalance stores balance only while version is still current, so a sum
	// computed before an Invalidate is never served afterwards.
	SetBalance(ctx context.Context, key string, version int64, balance domain.Balance)

	// Invalidate discards every cached balance. Called after each ledger mutation.
	Invalidate(ctx context.Context)
}
