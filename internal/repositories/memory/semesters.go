package memory

import (
	"context"
	"sort"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
)

func (s *Store) FindSemesterByID(_ context.Context, semesterID string) (*domain.Semester, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sem, ok := s.semesters[semesterID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &sem, nil
}

func (s *Store) FindActiveSemester(_ context.Context) (*domain.Semester, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sem := range s.semesters {
		if sem.IsActive {
			return &sem, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListSemesters(_ context.Context) ([]domain.Semester, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Semester, 0, len(s.semesters))
	for _, sem := range s.semesters {
		out = append(out, sem)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) ListSlots(_ context.Context, semesterID string) ([]domain.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Slot{}
	for _, sl := range s.slots {
		if sl.SemesterID == semesterID {
			out = append(out, sl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}

func (s *Store) FindSlotByID(_ context.Context, slotID string) (*domain.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.slots[slotID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &sl, nil
}

func (s *Store) deactivateOthers(semesterID, updatedBy string, updatedAt time.Time) {
	for id, sem := range s.semesters {
		if id != semesterID && sem.IsActive {
			sem.IsActive = false
			sem.Touch(updatedBy, updatedAt)
			s.semesters[id] = sem
		}
	}
}

func (s *Store) CreateSemesterWithSlots(_ context.Context, semester domain.Semester, slots []domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if semester.IsActive {
		s.deactivateOthers(semester.SemesterID, semester.CreatedBy, semester.CreatedAt)
	}
	s.semesters[semester.SemesterID] = semester
	for _, sl := range slots {
		s.slots[sl.SlotID] = sl
	}
	return nil
}

func (s *Store) UpdateSemester(_ context.Context, semester domain.Semester) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.semesters[semester.SemesterID]
	if !ok {
		return apperrors.ErrNotFound
	}
	current.Name = semester.Name
	current.StartDate = semester.StartDate
	current.EndDate = semester.EndDate
	current.Touch(semester.LastUpdatedBy, semester.LastUpdatedAt)
	s.semesters[semester.SemesterID] = current
	return nil
}

func (s *Store) SetSemesterActive(_ context.Context, semesterID string, active bool, updatedBy string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sem, ok := s.semesters[semesterID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if active {
		s.deactivateOthers(semesterID, updatedBy, updatedAt)
	}
	sem.IsActive = active
	sem.Touch(updatedBy, updatedAt)
	s.semesters[semesterID] = sem
	return nil
}

// DeleteSemester deletes the slots and detaches entries from both the
// semester and its slots.
func (s *Store) DeleteSemester(_ context.Context, semesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.semesters[semesterID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.semesters, semesterID)

	removed := map[string]bool{}
	for id, sl := range s.slots {
		if sl.SemesterID == semesterID {
			removed[id] = true
			delete(s.slots, id)
		}
	}
	s.detach(
		func(e *domain.LedgerEntry) bool { return e.SlotID != nil && removed[*e.SlotID] },
		func(e *domain.LedgerEntry) { e.SlotID = nil },
	)
	s.detach(
		func(e *domain.LedgerEntry) bool { return eq(e.SemesterID, semesterID) },
		func(e *domain.LedgerEntry) { e.SemesterID = nil },
	)
	return nil
}
