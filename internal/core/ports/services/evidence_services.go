package services

import (
	"context"
	"io"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// EvidenceSvc guards access to stored evidence files
type EvidenceSvc interface {
	// OpenEvidence returns a stored file and its MIME type. Members may open
	// their own slips and announcement images. Admins may open anything.
	OpenEvidence(ctx context.Context, ref string, requesterID string, role domain.Role) (io.ReadCloser, string, error)

	// SweepOrphans removes stored files older than grace that nothing references.
	SweepOrphans(ctx context.Context, grace time.Duration) (*domain.SweepResult, error)
}
