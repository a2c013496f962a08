package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
)

func (s *Store) SaveProject(_ context.Context, project domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ProjectID]; ok {
		return fmt.Errorf("%w: project %s", apperrors.ErrDuplicate, project.ProjectID)
	}
	s.projects[project.ProjectID] = project
	return nil
}

func (s *Store) FindProjectByID(_ context.Context, projectID string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[projectID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListProjects(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ProjectID > out[j].ProjectID
	})
	return out, nil
}

func (s *Store) UpdateProjectStatus(_ context.Context, projectID string, status domain.ProjectStatus, updatedBy string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.Status = status
	p.Touch(updatedBy, updatedAt)
	s.projects[projectID] = p
	return nil
}

func (s *Store) DeleteProject(_ context.Context, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.projects, projectID)
	s.detach(
		func(e *domain.LedgerEntry) bool { return eq(e.ProjectID, projectID) },
		func(e *domain.LedgerEntry) { e.ProjectID = nil },
	)
	return nil
}
