package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// semesterHandler handles semester administration.
type semesterHandler struct {
	semesterService portssvc.SemesterSvcFacade
}

// registerSemesterRoutes registers semester routes under the admin group.
func registerSemesterRoutes(rg *gin.RouterGroup, semesterService portssvc.SemesterSvcFacade) {
	h := &semesterHandler{semesterService: semesterService}

	semesters := rg.Group("/semesters")
	{
		semesters.GET("", h.listSemesters)
		semesters.POST("", h.createSemester)
		semesters.GET("/active", h.getActiveSemester)
		semesters.GET("/:semesterID", h.getSemester)
		semesters.PUT("/:semesterID", h.updateSemester)
		semesters.POST("/:semesterID/toggle", h.toggleActive)
		semesters.DELETE("/:semesterID", h.deleteSemester)
	}
}

// listSemesters godoc
// @Summary List semesters
// @Description Lists semesters, newest start date first.
// @Tags semesters
// @Produce json
// @Success 200 {array} dto.SemesterResponse
// @Security BearerAuth
// @Router /admin/semesters [get]
func (h *semesterHandler) listSemesters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	semesters, err := h.semesterService.ListSemesters(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list semesters")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSemesterResponse(semesters))
}

// createSemester godoc
// @Summary Create a semester
// @Description Creates a semester, generates its weekly slots and makes it the only active semester.
// @Tags semesters
// @Accept json
// @Produce json
// @Param semester body dto.CreateSemesterRequest true "Semester details"
// @Success 201 {object} dto.SemesterResponse
// @Failure 400 {object} ErrorResponse "Start must precede end"
// @Security BearerAuth
// @Router /admin/semesters [post]
func (h *semesterHandler) createSemester(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	semester, slots, err := h.semesterService.CreateSemester(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create semester")
		return
	}
	logger.Info("Semester created", slog.String("semester_id", semester.SemesterID), slog.Int("slots", len(slots)))
	c.JSON(http.StatusCreated, dto.ToSemesterResponse(semester, slots))
}

// getActiveSemester godoc
// @Summary Active semester
// @Tags semesters
// @Produce json
// @Success 200 {object} dto.SemesterResponse
// @Failure 404 {object} ErrorResponse "No active semester"
// @Security BearerAuth
// @Router /admin/semesters/active [get]
func (h *semesterHandler) getActiveSemester(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	semester, err := h.semesterService.GetActiveSemester(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve active semester")
		return
	}
	c.JSON(http.StatusOK, dto.ToSemesterResponse(semester, nil))
}

// getSemester godoc
// @Summary Get a semester with its slots
// @Tags semesters
// @Produce json
// @Param semesterID path string true "Semester ID"
// @Success 200 {object} dto.SemesterResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/semesters/{semesterID} [get]
func (h *semesterHandler) getSemester(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	semester, slots, err := h.semesterService.GetSemester(c.Request.Context(), c.Param("semesterID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve semester")
		return
	}
	c.JSON(http.StatusOK, dto.ToSemesterResponse(semester, slots))
}

// updateSemester godoc
// @Summary Update a semester
// @Description Changes name and dates. Existing slots are kept as they are.
// @Tags semesters
// @Accept json
// @Produce json
// @Param semesterID path string true "Semester ID"
// @Param semester body dto.UpdateSemesterRequest true "Semester details"
// @Success 200 {object} dto.SemesterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/semesters/{semesterID} [put]
func (h *semesterHandler) updateSemester(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	semester, err := h.semesterService.UpdateSemester(c.Request.Context(), c.Param("semesterID"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update semester")
		return
	}
	c.JSON(http.StatusOK, dto.ToSemesterResponse(semester, nil))
}

// toggleActive godoc
// @Summary Toggle the active flag
// @Description Activating deactivates every other semester. Deactivating leaves no semester active.
// @Tags semesters
// @Produce json
// @Param semesterID path string true "Semester ID"
// @Success 200 {object} dto.SemesterResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/semesters/{semesterID}/toggle [post]
func (h *semesterHandler) toggleActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	semester, err := h.semesterService.ToggleActive(c.Request.Context(), c.Param("semesterID"), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to toggle semester")
		return
	}
	logger.Info("Semester toggled", slog.String("semester_id", semester.SemesterID), slog.Bool("active", semester.IsActive))
	c.JSON(http.StatusOK, dto.ToSemesterResponse(semester, nil))
}

// deleteSemester godoc
// @Summary Delete a semester
// @Description Deletes the semester and its slots. Ledger entries are kept and detached.
// @Tags semesters
// @Param semesterID path string true "Semester ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/semesters/{semesterID} [delete]
func (h *semesterHandler) deleteSemester(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.semesterService.DeleteSemester(c.Request.Context(), c.Param("semesterID")); err != nil {
		respondError(c, logger, err, "Failed to delete semester")
		return
	}
	c.Status(http.StatusNoContent)
}
