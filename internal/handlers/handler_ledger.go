package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the admin approval queue and direct bookkeeping.
type ledgerHandler struct {
	ledgerService    portssvc.LedgerSvcFacade
	reportingService portssvc.ReportingService
}

// registerLedgerAdminRoutes registers approval and treasury routes under the admin group.
func registerLedgerAdminRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, reportingService portssvc.ReportingService) {
	h := &ledgerHandler{ledgerService: ledgerService, reportingService: reportingService}

	approvals := rg.Group("/approvals")
	{
		approvals.GET("", h.listPending)
		approvals.POST("/:entryID/approve", h.approve)
		approvals.POST("/:entryID/reject", h.reject)
	}

	treasury := rg.Group("/treasury")
	{
		treasury.GET("", h.listTreasury)
		treasury.POST("", h.recordTransaction)
		treasury.POST("/dues", h.recordDues)
		treasury.GET("/:entryID", h.getEntry)
		treasury.DELETE("/:entryID", h.deleteEntry)
	}
}

// listPending godoc
// @Summary Pending dues
// @Description Lists dues payments awaiting review, oldest first.
// @Tags approvals
// @Produce json
// @Success 200 {array} dto.LedgerEntryResponse
// @Security BearerAuth
// @Router /admin/approvals [get]
func (h *ledgerHandler) listPending(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entries, err := h.ledgerService.ListPendingDues(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list pending dues")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// approve godoc
// @Summary Approve an entry
// @Description Moves a pending entry to approved. Approving an approved entry is a no-op.
// @Tags approvals
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry was rejected"
// @Security BearerAuth
// @Router /admin/approvals/{entryID}/approve [post]
func (h *ledgerHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	entry, err := h.ledgerService.ApproveEntry(c.Request.Context(), c.Param("entryID"), adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to approve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// reject godoc
// @Summary Reject an entry
// @Description Moves a pending entry to rejected with a reason. Approved entries cannot be rejected.
// @Tags approvals
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param reject body dto.RejectEntryRequest true "Rejection reason"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Entry already approved"
// @Security BearerAuth
// @Router /admin/approvals/{entryID}/reject [post]
func (h *ledgerHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.RejectEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	entry, err := h.ledgerService.RejectEntry(c.Request.Context(), c.Param("entryID"), req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to reject entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// listTreasury godoc
// @Summary Treasury listing
// @Description Pages through approved entries, newest first, with the total of approved dues.
// @Tags treasury
// @Produce json
// @Param semesterID query string false "Semester filter"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.TreasuryPageResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/treasury [get]
func (h *ledgerHandler) listTreasury(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TreasuryListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	page, err := h.reportingService.TreasuryListing(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list treasury")
		return
	}
	c.JSON(http.StatusOK, dto.ToTreasuryPageResponse(page))
}

// recordTransaction godoc
// @Summary Record a donation or expense
// @Description Records an approved donation or expense, optionally against a project, with an optional evidence image.
// @Tags treasury
// @Accept json,multipart/form-data
// @Produce json
// @Param transaction body dto.ManualTransactionRequest true "Transaction details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /admin/treasury [post]
func (h *ledgerHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.ManualTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	evidence, closer, err := formUpload(c, "evidence", false)
	defer closer.Close()
	if err != nil {
		respondError(c, logger, err, "Failed to read evidence")
		return
	}

	entry, err := h.ledgerService.RecordManualTransaction(c.Request.Context(), req, evidence, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to record transaction")
		return
	}
	logger.Info("Transaction recorded", slog.String("entry_id", entry.EntryID), slog.String("type", string(entry.EntryType)))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// recordDues godoc
// @Summary Record dues for a member
// @Description Records approved dues on behalf of a member, e.g. for cash payments.
// @Tags treasury
// @Accept json
// @Produce json
// @Param dues body dto.ManualDuesRequest true "Dues details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Week already paid or pending"
// @Security BearerAuth
// @Router /admin/treasury/dues [post]
func (h *ledgerHandler) recordDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.ManualDuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	entry, err := h.ledgerService.RecordManualDues(c.Request.Context(), req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to record dues")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// getEntry godoc
// @Summary Get an entry
// @Tags treasury
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/treasury/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entry, err := h.ledgerService.GetEntry(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete an entry
// @Description Hard-deletes an entry and its evidence.
// @Tags treasury
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/treasury/{entryID} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	if err := h.ledgerService.DeleteEntry(c.Request.Context(), c.Param("entryID"), adminID); err != nil {
		respondError(c, logger, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}
