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
	"github.com/google/uuid"
)

type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewProjectService creates a project service.
func NewProjectService(repo portsrepo.ProjectRepositoryFacade, opts ...ServiceOption) portssvc.ProjectSvcFacade {
	return &projectService{BaseService: newBaseService(opts...), projectRepo: repo}
}

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, actorID string) (*domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", apperrors.ErrValidation)
	}
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      domain.ProjectActive,
		AuditFields: domain.NewAuditFields(actorID, s.Now()),
	}
	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("name", name))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

func (s *projectService) UpdateProjectStatus(ctx context.Context, projectID string, req dto.UpdateProjectStatusRequest, actorID string) (*domain.Project, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, req.Status)
	}
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	now := s.Now()
	if err := s.projectRepo.UpdateProjectStatus(ctx, projectID, req.Status, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to update project status", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	project.Status = req.Status
	project.Touch(actorID, now)
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context) (map[domain.ProjectStatus][]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	groups := map[domain.ProjectStatus][]domain.Project{
		domain.ProjectActive:    {},
		domain.ProjectCompleted: {},
		domain.ProjectCancelled: {},
	}
	for _, p := range projects {
		groups[p.Status] = append(groups[p.Status], p)
	}
	return groups, nil
}

func (s *projectService) ListSelectableProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	selectable := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if p.IsSelectable() {
			selectable = append(selectable, p)
		}
	}
	return selectable, nil
}

func (s *projectService) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.LogInfo(ctx, "Project deleted", slog.String("project_id", projectID))
	return nil
}
