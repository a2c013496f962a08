package handlers

import (
	"net/http"

	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

// registerProjectRoutes registers project routes under the admin group.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := &projectHandler{projectService: projectService}

	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/selectable", h.listSelectable)
		projects.POST("", h.createProject)
		projects.PUT("/:projectID/status", h.updateStatus)
		projects.DELETE("/:projectID", h.deleteProject)
	}
}

// listProjects godoc
// @Summary List projects by status
// @Tags projects
// @Produce json
// @Success 200 {object} dto.GroupedProjectsResponse
// @Security BearerAuth
// @Router /admin/projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groups, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupedProjectsResponse(groups))
}

// listSelectable godoc
// @Summary Projects open for new entries
// @Description Lists projects that are not cancelled.
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Security BearerAuth
// @Router /admin/projects/selectable [get]
func (h *projectHandler) listSelectable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projects, err := h.projectService.ListSelectableProjects(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// createProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	project, err := h.projectService.CreateProject(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// updateStatus godoc
// @Summary Change a project's status
// @Tags projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param status body dto.UpdateProjectStatusRequest true "New status"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/projects/{projectID}/status [put]
func (h *projectHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	project, err := h.projectService.UpdateProjectStatus(c.Request.Context(), c.Param("projectID"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deleteProject godoc
// @Summary Delete a project
// @Description Deletes the project. Its entries keep counting toward balances.
// @Tags projects
// @Param projectID path string true "Project ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/projects/{projectID} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.projectService.DeleteProject(c.Request.Context(), c.Param("projectID")); err != nil {
		respondError(c, logger, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}
