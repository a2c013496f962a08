package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
)

type evidenceService struct {
	BaseService
	store       portsrepo.EvidenceStore
	ledgerRepo  portsrepo.LedgerReader
	contentRepo portsrepo.AnnouncementRepository
}

// NewEvidenceService creates the evidence access and sweep service.
func NewEvidenceService(store portsrepo.EvidenceStore, repos portsrepo.RepositoryProvider, opts ...ServiceOption) portssvc.EvidenceSvc {
	return &evidenceService{
		BaseService: newBaseService(opts...),
		store:       store,
		ledgerRepo:  repos.LedgerRepo,
		contentRepo: repos.ContentRepo,
	}
}

func contains(refs []string, ref string) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}

// mayOpen reports whether a non-admin may read ref: their own slips and announcement images.
func (s *evidenceService) mayOpen(ctx context.Context, ref, requesterID string) (bool, error) {
	images, err := s.contentRepo.ListAnnouncementImageRefs(ctx)
	if err != nil {
		return false, err
	}
	if contains(images, ref) {
		return true, nil
	}
	own, err := s.ledgerRepo.ListEntries(ctx, domain.LedgerFilter{MemberID: &requesterID})
	if err != nil {
		return false, err
	}
	for _, e := range own {
		if e.EvidenceRef != nil && *e.EvidenceRef == ref {
			return true, nil
		}
	}
	return false, nil
}

func (s *evidenceService) OpenEvidence(ctx context.Context, ref string, requesterID string, role domain.Role) (io.ReadCloser, string, error) {
	if role != domain.RoleAdmin {
		ok, err := s.mayOpen(ctx, ref, requesterID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to check evidence access: %w", err)
		}
		if !ok {
			return nil, "", fmt.Errorf("%w: evidence %s", apperrors.ErrForbidden, ref)
		}
	}
	rc, contentType, err := s.store.Open(ctx, ref)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open evidence: %w", err)
	}
	return rc, contentType, nil
}

func (s *evidenceService) SweepOrphans(ctx context.Context, grace time.Duration) (*domain.SweepResult, error) {
	ledgerRefs, err := s.ledgerRepo.ListEvidenceRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger evidence: %w", err)
	}
	imageRefs, err := s.contentRepo.ListAnnouncementImageRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcement images: %w", err)
	}
	referenced := make(map[string]struct{}, len(ledgerRefs)+len(imageRefs))
	for _, r := range append(ledgerRefs, imageRefs...) {
		referenced[r] = struct{}{}
	}

	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored evidence: %w", err)
	}

	cutoff := s.Now().Add(-grace)
	result := &domain.SweepResult{Scanned: len(objects), Removed: []string{}}
	for _, obj := range objects {
		if _, ok := referenced[obj.Ref]; ok || obj.StoredAt.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, obj.Ref); err != nil {
			s.LogError(ctx, err, "Failed to delete orphaned evidence", slog.String("ref", obj.Ref))
			continue
		}
		result.Removed = append(result.Removed, obj.Ref)
	}
	s.LogInfo(ctx, "Evidence sweep finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("removed", len(result.Removed)))
	return result, nil
}
