package services

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/dto"
)

// SemesterReaderSvc defines read operations for semesters
type SemesterReaderSvc interface {
	// ListSemesters lists semesters, newest start date first.
	ListSemesters(ctx context.Context) ([]domain.Semester, error)

	// GetActiveSemester returns the active semester or apperrors.ErrNotFound.
	GetActiveSemester(ctx context.Context) (*domain.Semester, error)

	// GetSemester returns one semester with its slots by ascending week.
	GetSemester(ctx context.Context, semesterID string) (*domain.Semester, []domain.Slot, error)

	// ListSlots lists a semester's slots by ascending week.
	ListSlots(ctx context.Context, semesterID string) ([]domain.Slot, error)
}

// SemesterWriterSvc defines write operations for semesters
type SemesterWriterSvc interface {
	// CreateSemester generates weekly slots and stores the semester as the only active one.
	CreateSemester(ctx context.Context, req dto.CreateSemesterRequest, actorID string) (*domain.Semester, []domain.Slot, error)

	// UpdateSemester changes name and dates. Slots are not regenerated.
	UpdateSemester(ctx context.Context, semesterID string, req dto.UpdateSemesterRequest, actorID string) (*domain.Semester, error)

	// ToggleActive flips the active flag. Activation deactivates every other semester.
	ToggleActive(ctx context.Context, semesterID string, actorID string) (*domain.Semester, error)

	// DeleteSemester deletes the semester and its slots. Ledger entries survive detached.
	DeleteSemester(ctx context.Context, semesterID string) error
}

// SemesterSvcFacade combines all semester-related service interfaces
type SemesterSvcFacade interface {
	SemesterReaderSvc
	SemesterWriterSvc
}
