package dto

import (
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
)

// CreateProjectRequest defines the data needed to open a project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateProjectStatusRequest moves a project between Active, Completed and Cancelled.
type UpdateProjectStatusRequest struct {
	Status domain.ProjectStatus `json:"status" binding:"required,projectstatus"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID   string               `json:"projectID"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// ToListProjectResponse converts a slice of projects.
func ToListProjectResponse(projects []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return res
}

// GroupedProjectsResponse lists projects bucketed by status.
type GroupedProjectsResponse struct {
	Active    []ProjectResponse `json:"active"`
	Completed []ProjectResponse `json:"completed"`
	Cancelled []ProjectResponse `json:"cancelled"`
}

// ToGroupedProjectsResponse converts the status buckets returned by the project service.
func ToGroupedProjectsResponse(groups map[domain.ProjectStatus][]domain.Project) GroupedProjectsResponse {
	return GroupedProjectsResponse{
		Active:    ToListProjectResponse(groups[domain.ProjectActive]),
		Completed: ToListProjectResponse(groups[domain.ProjectCompleted]),
		Cancelled: ToListProjectResponse(groups[domain.ProjectCancelled]),
	}
}
