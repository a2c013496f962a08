package repositories

import (
	"context"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// SemesterReader defines read operations for semesters and their slots
type SemesterReader interface {
	FindSemesterByID(ctx context.Context, semesterID string) (*domain.Semester, error)

	// FindActiveSemester returns the active semester or apperrors.ErrNotFound.
	FindActiveSemester(ctx context.Context) (*domain.Semester, error)

	// ListSemesters lists all semesters, newest start date first.
	ListSemesters(ctx context.Context) ([]domain.Semester, error)

	// ListSlots lists a semester's slots by ascending week number.
	ListSlots(ctx context.Context, semesterID string) ([]domain.Slot, error)

	FindSlotByID(ctx context.Context, slotID string) (*domain.Slot, error)
}

// SemesterWriter defines write operations for semesters
type SemesterWriter interface {
	// CreateSemesterWithSlots stores a semester and its slots atomically.
	// When the semester is active every other semester is deactivated in the same unit.
	CreateSemesterWithSlots(ctx context.Context, semester domain.Semester, slots []domain.Slot) error

	// UpdateSemester updates name and dates only. Slots are left as generated.
	UpdateSemester(ctx context.Context, semester domain.Semester) error

	// SetSemesterActive sets the active flag. Activating is exclusive: all
	// other semesters are deactivated atomically.
	SetSemesterActive(ctx context.Context, semesterID string, active bool, updatedBy string, updatedAt time.Time) error

	// DeleteSemester deletes the semester and its slots and detaches ledger entries.
	DeleteSemester(ctx context.Context, semesterID string) error
}

// SemesterRepositoryFacade combines all semester-related repository interfaces
type SemesterRepositoryFacade interface {
	SemesterReader
	SemesterWriter
}
