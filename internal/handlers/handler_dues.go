package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/clubtreasury/treasury/internal/core/domain"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// duesHandler serves the member side of the payment workflow.
type duesHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	evidenceService portssvc.EvidenceSvc
}

// registerDuesRoutes registers member dues and evidence routes.
func registerDuesRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, evidenceService portssvc.EvidenceSvc) {
	h := &duesHandler{ledgerService: ledgerService, evidenceService: evidenceService}

	dues := rg.Group("/dues")
	{
		dues.GET("", h.overview)
		dues.POST("/:slotID", h.submit)
	}
	rg.GET("/evidence/:ref", h.openEvidence)
}

// overview godoc
// @Summary My dues
// @Description Lists the active semester's weekly slots with the caller's payment status for each.
// @Tags dues
// @Produce json
// @Success 200 {object} domain.DuesOverview
// @Security BearerAuth
// @Router /dues [get]
func (h *duesHandler) overview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	overview, err := h.ledgerService.MemberDuesOverview(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, logger, err, "Failed to load dues")
		return
	}
	c.JSON(http.StatusOK, overview)
}

// submit godoc
// @Summary Submit a dues payment
// @Description Records a pending dues payment for one weekly slot with its transfer slip.
// @Tags dues
// @Accept multipart/form-data
// @Produce json
// @Param slotID path string true "Slot ID"
// @Param amount formData string true "Amount paid"
// @Param slip formData file true "Transfer slip image"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Slot not found"
// @Failure 409 {object} ErrorResponse "Week already paid or pending"
// @Security BearerAuth
// @Router /dues/{slotID} [post]
func (h *duesHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.SubmitDuesRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	slip, closer, err := formUpload(c, "slip", true)
	defer closer.Close()
	if err != nil {
		respondError(c, logger, err, "Failed to read slip")
		return
	}

	slotID := c.Param("slotID")
	entry, err := h.ledgerService.SubmitDuesPayment(c.Request.Context(), memberID, slotID, req, slip)
	if err != nil {
		respondError(c, logger, err, "Failed to submit dues")
		return
	}
	logger.Info("Dues submitted", slog.String("entry_id", entry.EntryID), slog.String("slot_id", slotID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// openEvidence godoc
// @Summary Download evidence
// @Description Streams a stored slip or announcement image. Members may only open their own slips.
// @Tags dues
// @Produce octet-stream
// @Param ref path string true "Evidence reference"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /evidence/{ref} [get]
func (h *duesHandler) openEvidence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	role, _ := middleware.GetRoleFromContext(c)
	streamEvidence(c, h.evidenceService, memberID, role)
}

// streamEvidence copies an evidence file to the response after the service
// has checked that requesterID may read it.
func streamEvidence(c *gin.Context, evidenceService portssvc.EvidenceSvc, requesterID string, role domain.Role) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rc, contentType, err := evidenceService.OpenEvidence(c.Request.Context(), c.Param("ref"), requesterID, role)
	if err != nil {
		respondError(c, logger, err, "Failed to open evidence")
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "private, max-age=3600")
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.Error("Failed to stream evidence", slog.String("error", err.Error()))
	}
}

// evidenceAdminHandler exposes the orphan sweep.
type evidenceAdminHandler struct {
	evidenceService portssvc.EvidenceSvc
	grace           time.Duration
}

func registerEvidenceAdminRoutes(rg *gin.RouterGroup, evidenceService portssvc.EvidenceSvc, grace time.Duration) {
	h := &evidenceAdminHandler{evidenceService: evidenceService, grace: grace}
	rg.POST("/evidence/sweep", h.sweep)
}

// sweep godoc
// @Summary Sweep orphaned evidence
// @Description Deletes stored files older than the configured grace period that no entry or announcement references.
// @Tags admin
// @Produce json
// @Success 200 {object} domain.SweepResult
// @Security BearerAuth
// @Router /admin/evidence/sweep [post]
func (h *evidenceAdminHandler) sweep(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	result, err := h.evidenceService.SweepOrphans(c.Request.Context(), h.grace)
	if err != nil {
		respondError(c, logger, err, "Failed to sweep evidence")
		return
	}
	c.JSON(http.StatusOK, result)
}
