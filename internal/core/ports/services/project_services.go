package services

import (
	"context"

	"github.com/clubtreasury/treasury/internal/core/domain"
	"github.com/clubtreasury/treasury/internal/dto"
)

// ProjectSvcFacade defines operations on cost-center projects
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, actorID string) (*domain.Project, error)
	UpdateProjectStatus(ctx context.Context, projectID string, req dto.UpdateProjectStatusRequest, actorID string) (*domain.Project, error)

	// ListProjects buckets every project by status.
	ListProjects(ctx context.Context) (map[domain.ProjectStatus][]domain.Project, error)

	// ListSelectableProjects lists projects that may receive new entries.
	ListSelectableProjects(ctx context.Context) ([]domain.Project, error)

	// DeleteProject deletes a project. Its entries keep counting toward balances.
	DeleteProject(ctx context.Context, projectID string) error
}
