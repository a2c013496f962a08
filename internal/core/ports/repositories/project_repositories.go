package repositories

import (
	"context"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// ProjectRepositoryFacade defines persistence for projects
type ProjectRepositoryFacade interface {
	SaveProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects lists projects newest first.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedBy string, updatedAt time.Time) error

	// DeleteProject deletes the project and detaches its ledger entries.
	DeleteProject(ctx context.Context, projectID string) error
}
