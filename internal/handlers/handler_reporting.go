package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler serves aggregate views of the ledger.
type reportingHandler struct {
	reportingService portssvc.ReportingService
	trackerService   portssvc.TrackerService
}

// registerReportingRoutes registers dashboard, report and tracker routes under the admin group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, trackerService portssvc.TrackerService) {
	h := &reportingHandler{reportingService: reportingService, trackerService: trackerService}

	rg.GET("/dashboard", h.dashboard)
	rg.GET("/tracker", h.tracker)

	reports := rg.Group("/reports")
	{
		reports.GET("", h.report)
		reports.GET("/export.xlsx", h.exportReport)
	}
}

// registerTransparencyRoutes registers the public balance view.
func registerTransparencyRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}
	rg.GET("/transparency", h.transparency)
}

// transparency godoc
// @Summary Public balance
// @Description Income, expense and net over approved entries, optionally within one semester.
// @Tags public
// @Produce json
// @Param semesterID query string false "Semester filter"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /transparency [get]
func (h *reportingHandler) transparency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	balance, err := h.reportingService.Balance(c.Request.Context(), params.SemesterID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// dashboard godoc
// @Summary Admin dashboard
// @Description Balance, pending dues count, member count and the active semester.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dashboard, err := h.reportingService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}

// report godoc
// @Summary Ledger report
// @Description Approved entries by ascending date with their totals, filtered by project and/or semester.
// @Tags reports
// @Produce json
// @Param projectID query string false "Project filter"
// @Param semesterID query string false "Semester filter"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/reports [get]
func (h *reportingHandler) report(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	entries, balance, err := h.reportingService.Report(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, dto.ReportResponse{
		Entries: dto.ToListLedgerEntryResponse(entries),
		Balance: dto.ToBalanceResponse(balance),
	})
}

// exportReport godoc
// @Summary Export the ledger report
// @Description The same report as /admin/reports as an XLSX workbook.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param projectID query string false "Project filter"
// @Param semesterID query string false "Semester filter"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/reports/export.xlsx [get]
func (h *reportingHandler) exportReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	// Buffer the workbook so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.reportingService.ExportReportXLSX(c.Request.Context(), params, &buf); err != nil {
		respondError(c, logger, err, "Failed to export report")
		return
	}
	filename := fmt.Sprintf("treasury-report-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// tracker godoc
// @Summary Dues tracker
// @Description Members by weekly slots grid for a semester, the active one by default.
// @Tags reports
// @Produce json
// @Param semesterID query string false "Semester ID"
// @Success 200 {object} domain.Tracker
// @Failure 404 {object} ErrorResponse "No active semester"
// @Security BearerAuth
// @Router /admin/tracker [get]
func (h *reportingHandler) tracker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TrackerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	tracker, err := h.trackerService.BuildTracker(c.Request.Context(), params.SemesterID)
	if err != nil {
		respondError(c, logger, err, "Failed to build tracker")
		return
	}
	c.JSON(http.StatusOK, tracker)
}
