package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/utils"
	"github.com/google/uuid"
)

// semesterService implements portssvc.SemesterSvcFacade
type semesterService struct {
	BaseService
	semesterRepo portsrepo.SemesterRepositoryFacade
	balanceCache portsrepo.BalanceCache
}

// NewSemesterService creates a semester service.
func NewSemesterService(repo portsrepo.SemesterRepositoryFacade, cache portsrepo.BalanceCache, opts ...ServiceOption) portssvc.SemesterSvcFacade {
	return &semesterService{
		BaseService:  newBaseService(opts...),
		semesterRepo: repo,
		balanceCache: cache,
	}
}

func parseSemesterInput(name, start, end string) (domain.Semester, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Semester{}, fmt.Errorf("%w: semester name is required", apperrors.ErrValidation)
	}
	startDate, err := domain.ParseDate(start)
	if err != nil {
		return domain.Semester{}, err
	}
	endDate, err := domain.ParseDate(end)
	if err != nil {
		return domain.Semester{}, err
	}
	if err := domain.ValidateDateRange(startDate, endDate); err != nil {
		return domain.Semester{}, err
	}
	return domain.Semester{Name: name, StartDate: startDate, EndDate: endDate}, nil
}

func (s *semesterService) CreateSemester(ctx context.Context, req dto.CreateSemesterRequest, actorID string) (*domain.Semester, []domain.Slot, error) {
	semester, err := parseSemesterInput(req.Name, req.StartDate, req.EndDate)
	if err != nil {
		return nil, nil, err
	}

	semester.SemesterID = uuid.NewString()
	semester.IsActive = true
	semester.AuditFields = domain.NewAuditFields(actorID, s.Now())

	slots, err := domain.GenerateSlots(semester.SemesterID, semester.StartDate, semester.EndDate, uuid.NewString)
	if err != nil {
		return nil, nil, err
	}

	if err := s.semesterRepo.CreateSemesterWithSlots(ctx, semester, slots); err != nil {
		s.LogError(ctx, err, "Failed to create semester", slog.String("name", semester.Name))
		return nil, nil, fmt.Errorf("failed to create semester: %w", err)
	}

	s.LogInfo(ctx, "Semester created",
		slog.String("semester_id", semester.SemesterID),
		slog.Int("slots", len(slots)))
	s.Track(actorID, utils.EventSemesterCreated, map[string]any{
		"semester_id": semester.SemesterID,
		"slots":       len(slots),
	})
	return &semester, slots, nil
}

func (s *semesterService) UpdateSemester(ctx context.Context, semesterID string, req dto.UpdateSemesterRequest, actorID string) (*domain.Semester, error) {
	input, err := parseSemesterInput(req.Name, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	semester, err := s.semesterRepo.FindSemesterByID(ctx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find semester: %w", err)
	}

	semester.Name = input.Name
	semester.StartDate = input.StartDate
	semester.EndDate = input.EndDate
	semester.Touch(actorID, s.Now())

	if err := s.semesterRepo.UpdateSemester(ctx, *semester); err != nil {
		s.LogError(ctx, err, "Failed to update semester", slog.String("semester_id", semesterID))
		return nil, fmt.Errorf("failed to update semester: %w", err)
	}
	return semester, nil
}

func (s *semesterService) ToggleActive(ctx context.Context, semesterID string, actorID string) (*domain.Semester, error) {
	semester, err := s.semesterRepo.FindSemesterByID(ctx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to find semester: %w", err)
	}
	next := !semester.IsActive
	now := s.Now()
	if err := s.semesterRepo.SetSemesterActive(ctx, semesterID, next, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to toggle semester", slog.String("semester_id", semesterID))
		return nil, fmt.Errorf("failed to toggle semester: %w", err)
	}
	semester.IsActive = next
	semester.Touch(actorID, now)
	s.LogInfo(ctx, "Semester toggled", slog.String("semester_id", semesterID), slog.Bool("active", next))
	return semester, nil
}

func (s *semesterService) DeleteSemester(ctx context.Context, semesterID string) error {
	if err := s.semesterRepo.DeleteSemester(ctx, semesterID); err != nil {
		return fmt.Errorf("failed to delete semester: %w", err)
	}
	// Entries lose their semester link, so per-semester balances change.
	s.balanceCache.Invalidate(ctx)
	s.LogInfo(ctx, "Semester deleted", slog.String("semester_id", semesterID))
	return nil
}

func (s *semesterService) ListSemesters(ctx context.Context) ([]domain.Semester, error) {
	semesters, err := s.semesterRepo.ListSemesters(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list semesters")
		return nil, fmt.Errorf("failed to list semesters: %w", err)
	}
	return semesters, nil
}

func (s *semesterService) GetActiveSemester(ctx context.Context) (*domain.Semester, error) {
	semester, err := s.semesterRepo.FindActiveSemester(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find active semester: %w", err)
	}
	return semester, nil
}

func (s *semesterService) GetSemester(ctx context.Context, semesterID string) (*domain.Semester, []domain.Slot, error) {
	semester, err := s.semesterRepo.FindSemesterByID(ctx, semesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find semester: %w", err)
	}
	slots, err := s.semesterRepo.ListSlots(ctx, semesterID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return semester, slots, nil
}

func (s *semesterService) ListSlots(ctx context.Context, semesterID string) ([]domain.Slot, error) {
	if _, err := s.semesterRepo.FindSemesterByID(ctx, semesterID); err != nil {
		return nil, fmt.Errorf("failed to find semester: %w", err)
	}
	slots, err := s.semesterRepo.ListSlots(ctx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}
