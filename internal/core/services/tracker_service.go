package services

import (
	"context"
	"fmt"

	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
)

type trackerService struct {
	BaseService
	semesterRepo portsrepo.SemesterReader
	memberRepo   portsrepo.MemberReader
	ledgerRepo   portsrepo.LedgerReader
}

// NewTrackerService creates the dues tracker service.
func NewTrackerService(repos portsrepo.RepositoryProvider, opts ...ServiceOption) portssvc.TrackerService {
	return &trackerService{
		BaseService:  newBaseService(opts...),
		semesterRepo: repos.SemesterRepo,
		memberRepo:   repos.MemberRepo,
		ledgerRepo:   repos.LedgerRepo,
	}
}

func (s *trackerService) BuildTracker(ctx context.Context, semesterID *string) (*domain.Tracker, error) {
	var (
		semester *domain.Semester
		err      error
	)
	if semesterID != nil {
		semester, err = s.semesterRepo.FindSemesterByID(ctx, *semesterID)
	} else {
		semester, err = s.semesterRepo.FindActiveSemester(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tracker semester: %w", err)
	}

	slots, err := s.semesterRepo.ListSlots(ctx, semester.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	members, err := s.memberRepo.ListMembersByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	duesType := domain.EntryIncomeDues
	entries, err := s.ledgerRepo.ListEntries(ctx, domain.LedgerFilter{SemesterID: &semester.SemesterID, Type: &duesType})
	if err != nil {
		return nil, fmt.Errorf("failed to list dues: %w", err)
	}

	tracker := domain.BuildTracker(*semester, slots, members, entries)
	s.LogDebug(ctx, "Tracker built", "semester_id", semester.SemesterID, "cells", tracker.CellCount())
	return &tracker, nil
}
