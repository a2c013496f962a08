package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/utils"
	"github.com/clubtreasury/treasury/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService implements portssvc.LedgerSvcFacade: dues submission, the
// approval workflow and direct bookkeeping.
type ledgerService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	semesterRepo portsrepo.SemesterReader
	memberRepo   portsrepo.MemberReader
	projectRepo  portsrepo.ProjectRepositoryFacade
	evidence     portsrepo.EvidenceStore
	balanceCache portsrepo.BalanceCache
}

// NewLedgerService creates a ledger service.
func NewLedgerService(
	repos portsrepo.RepositoryProvider,
	evidence portsrepo.EvidenceStore,
	cache portsrepo.BalanceCache,
	opts ...ServiceOption,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService:  newBaseService(opts...),
		ledgerRepo:   repos.LedgerRepo,
		semesterRepo: repos.SemesterRepo,
		memberRepo:   repos.MemberRepo,
		projectRepo:  repos.ProjectRepo,
		evidence:     evidence,
		balanceCache: cache,
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := accounting.ParseAmount(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return amount, nil
}

// storeEvidence writes an upload ahead of the entry that will reference it.
func (s *ledgerService) storeEvidence(ctx context.Context, upload *dto.Upload) (*string, error) {
	if upload == nil {
		return nil, nil
	}
	ref, err := s.evidence.Save(ctx, upload.Filename, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to store evidence: %w", err)
	}
	return &ref, nil
}

// createWithEvidence inserts entry and removes its evidence again when the insert fails.
func (s *ledgerService) createWithEvidence(ctx context.Context, entry domain.LedgerEntry) error {
	err := s.ledgerRepo.CreateEntry(ctx, entry)
	if err == nil {
		s.balanceCache.Invalidate(ctx)
		return nil
	}
	if entry.EvidenceRef != nil {
		if derr := s.evidence.Delete(ctx, *entry.EvidenceRef); derr != nil {
			s.LogError(ctx, derr, "Failed to remove evidence of failed entry, leaving it for the sweep",
				slog.String("evidence_ref", *entry.EvidenceRef))
		}
	}
	return err
}

func (s *ledgerService) SubmitDuesPayment(ctx context.Context, memberID, slotID string, req dto.SubmitDuesRequest, slip *dto.Upload) (*domain.LedgerEntry, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if slip == nil {
		return nil, fmt.Errorf("%w: a transfer slip is required", apperrors.ErrValidation)
	}

	slot, err := s.semesterRepo.FindSlotByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	if open, err := s.ledgerRepo.FindOpenDues(ctx, memberID, slotID); err == nil {
		return nil, fmt.Errorf("%w: week %d already has a %s payment (%s)",
			apperrors.ErrConflict, slot.WeekNumber, open.Status, open.EntryID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing dues: %w", err)
	}

	ref, err := s.storeEvidence(ctx, slip)
	if err != nil {
		s.LogError(ctx, err, "Failed to store dues slip", slog.String("slot_id", slotID))
		return nil, err
	}

	now := s.Now()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EntryType:   domain.EntryIncomeDues,
		Amount:      amount,
		Description: domain.DuesDescription(slot.WeekNumber),
		EntryDate:   domain.NormalizeDate(now),
		Status:      domain.StatusPending,
		MemberID:    &memberID,
		SlotID:      &slot.SlotID,
		SemesterID:  &slot.SemesterID,
		EvidenceRef: ref,
		AuditFields: domain.NewAuditFields(memberID, now),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.createWithEvidence(ctx, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to create dues entry", slog.String("slot_id", slotID))
		}
		return nil, fmt.Errorf("failed to submit dues: %w", err)
	}

	s.LogInfo(ctx, "Dues submitted",
		slog.String("entry_id", entry.EntryID),
		slog.String("slot_id", slotID),
		slog.String("amount", amount.String()))
	s.Track(memberID, utils.EventDuesSubmitted, map[string]any{
		"slot_id": slotID,
		"week":    slot.WeekNumber,
	})
	return &entry, nil
}

func (s *ledgerService) MemberDuesOverview(ctx context.Context, memberID string) (*domain.DuesOverview, error) {
	overview := &domain.DuesOverview{Slots: []domain.DuesSlot{}}

	semester, err := s.semesterRepo.FindActiveSemester(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return overview, nil
		}
		return nil, fmt.Errorf("failed to find active semester: %w", err)
	}
	overview.Semester = semester

	slots, err := s.semesterRepo.ListSlots(ctx, semester.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	duesType := domain.EntryIncomeDues
	entries, err := s.ledgerRepo.ListEntries(ctx, domain.LedgerFilter{
		SemesterID: &semester.SemesterID,
		MemberID:   &memberID,
		Type:       &duesType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list member dues: %w", err)
	}

	bySlot := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		if e.SlotID != nil {
			bySlot[*e.SlotID] = append(bySlot[*e.SlotID], e)
		}
	}
	for _, slot := range slots {
		overview.Slots = append(overview.Slots, domain.DuesSlot{
			Slot: slot,
			Cell: domain.ResolveDues(slot, bySlot[slot.SlotID]),
		})
	}
	return overview, nil
}

func (s *ledgerService) ListPendingDues(ctx context.Context) ([]domain.LedgerEntry, error) {
	duesType := domain.EntryIncomeDues
	pending := domain.StatusPending
	entries, err := s.ledgerRepo.ListEntries(ctx, domain.LedgerFilter{Type: &duesType, Status: &pending})
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending dues")
		return nil, fmt.Errorf("failed to list pending dues: %w", err)
	}
	return entries, nil
}

// transition applies a domain status change and persists it with a
// conditional update so concurrent reviewers cannot both succeed.
func (s *ledgerService) transition(
	ctx context.Context,
	entryID string,
	apply func(e *domain.LedgerEntry) (bool, error),
) (*domain.LedgerEntry, bool, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find entry: %w", err)
	}
	from := entry.Status
	changed, err := apply(entry)
	if err != nil || !changed {
		return entry, false, err
	}

	ok, err := s.ledgerRepo.TransitionStatus(ctx, entryID, from, entry.Status, entry.RejectionReason, entry.LastUpdatedBy, entry.LastUpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update entry status: %w", err)
	}
	if ok {
		return entry, true, nil
	}

	// Someone else moved the entry first. Re-evaluate against what they left.
	current, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to reload entry: %w", err)
	}
	probe := *current
	if _, err := apply(&probe); err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (s *ledgerService) ApproveEntry(ctx context.Context, entryID string, adminID string) (*domain.LedgerEntry, error) {
	now := s.Now()
	entry, changed, err := s.transition(ctx, entryID, func(e *domain.LedgerEntry) (bool, error) {
		return e.Approve(adminID, now)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.balanceCache.Invalidate(ctx)
		s.LogInfo(ctx, "Entry approved", slog.String("entry_id", entryID), slog.String("admin_id", adminID))
		s.Track(adminID, utils.EventEntryApproved, map[string]any{"entry_id": entryID})
	}
	return entry, nil
}

func (s *ledgerService) RejectEntry(ctx context.Context, entryID string, req dto.RejectEntryRequest, adminID string) (*domain.LedgerEntry, error) {
	now := s.Now()
	entry, changed, err := s.transition(ctx, entryID, func(e *domain.LedgerEntry) (bool, error) {
		return e.Reject(req.Reason, adminID, now)
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.balanceCache.Invalidate(ctx)
		s.LogInfo(ctx, "Entry rejected", slog.String("entry_id", entryID), slog.String("admin_id", adminID))
		s.Track(adminID, utils.EventEntryRejected, map[string]any{"entry_id": entryID})
	}
	return entry, nil
}

func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	return entry, nil
}

// activeSemesterID returns the active semester's id, or nil when none is active.
func (s *ledgerService) activeSemesterID(ctx context.Context) (*string, error) {
	semester, err := s.semesterRepo.FindActiveSemester(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active semester: %w", err)
	}
	return &semester.SemesterID, nil
}

func (s *ledgerService) RecordManualTransaction(ctx context.Context, req dto.ManualTransactionRequest, evidence *dto.Upload, adminID string) (*domain.LedgerEntry, error) {
	if !req.EntryType.IsManual() {
		return nil, fmt.Errorf("%w: only donations and expenses can be recorded directly", apperrors.ErrValidation)
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	now := s.Now()
	entryDate := domain.NormalizeDate(now)
	if req.EntryDate != "" {
		if entryDate, err = domain.ParseDate(req.EntryDate); err != nil {
			return nil, err
		}
	}

	var projectID *string
	if req.ProjectID != nil && *req.ProjectID != "" {
		project, err := s.projectRepo.FindProjectByID(ctx, *req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		if !project.IsSelectable() {
			return nil, fmt.Errorf("%w: project %q is cancelled", apperrors.ErrValidation, project.Name)
		}
		projectID = &project.ProjectID
	}

	semesterID, err := s.activeSemesterID(ctx)
	if err != nil {
		return nil, err
	}

	ref, err := s.storeEvidence(ctx, evidence)
	if err != nil {
		s.LogError(ctx, err, "Failed to store transaction evidence")
		return nil, err
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EntryType:   req.EntryType,
		Amount:      amount,
		Description: description,
		EntryDate:   entryDate,
		Status:      domain.StatusApproved,
		ProjectID:   projectID,
		SemesterID:  semesterID,
		EvidenceRef: ref,
		AuditFields: domain.NewAuditFields(adminID, now),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := s.createWithEvidence(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record transaction", slog.String("type", string(req.EntryType)))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.LogInfo(ctx, "Manual transaction recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.EntryType)),
		slog.String("amount", amount.String()))
	s.Track(adminID, utils.EventManualTransaction, map[string]any{
		"entry_type": string(entry.EntryType),
		"project":    projectID != nil,
	})
	return &entry, nil
}

func (s *ledgerService) RecordManualDues(ctx context.Context, req dto.ManualDuesRequest, adminID string) (*domain.LedgerEntry, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member.IsAdmin() {
		return nil, fmt.Errorf("%w: admins do not pay dues", apperrors.ErrValidation)
	}
	slot, err := s.semesterRepo.FindSlotByID(ctx, req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = domain.DuesDescription(slot.WeekNumber)
	}

	now := s.Now()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		EntryType:   domain.EntryIncomeDues,
		Amount:      amount,
		Description: description,
		EntryDate:   domain.NormalizeDate(now),
		Status:      domain.StatusApproved,
		MemberID:    &member.MemberID,
		SlotID:      &slot.SlotID,
		SemesterID:  &slot.SemesterID,
		AuditFields: domain.NewAuditFields(adminID, now),
	}
	if err := s.createWithEvidence(ctx, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to record manual dues", slog.String("member_id", member.MemberID))
		}
		return nil, fmt.Errorf("failed to record dues: %w", err)
	}

	s.LogInfo(ctx, "Manual dues recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("member_id", member.MemberID),
		slog.Int("week", slot.WeekNumber))
	return &entry, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string, adminID string) error {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry: %w", err)
	}
	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	s.balanceCache.Invalidate(ctx)

	if entry.EvidenceRef != nil {
		if err := s.evidence.Delete(ctx, *entry.EvidenceRef); err != nil {
			s.LogError(ctx, err, "Failed to delete evidence of removed entry", slog.String("evidence_ref", *entry.EvidenceRef))
		}
	}
	s.LogInfo(ctx, "Entry deleted", slog.String("entry_id", entryID), slog.String("admin_id", adminID))
	return nil
}
