package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// memberHandler handles profile and roster requests.
type memberHandler struct {
	memberService portssvc.MemberSvcFacade
}

// registerProfileRoutes registers the caller's own profile routes.
func registerProfileRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade) {
	h := &memberHandler{memberService: memberService}

	me := rg.Group("/me")
	{
		me.GET("", h.getProfile)
		me.PUT("", h.updateProfile)
	}
}

// registerMemberAdminRoutes registers the roster routes under the admin group.
func registerMemberAdminRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade) {
	h := &memberHandler{memberService: memberService}

	members := rg.Group("/members")
	{
		members.GET("", h.listMembers)
		members.POST("/:memberID/reset-password", h.resetPassword)
		members.DELETE("/:memberID", h.deleteMember)
	}
}

// getProfile godoc
// @Summary Get own profile
// @Tags members
// @Produce json
// @Success 200 {object} dto.MemberResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *memberHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}

	member, err := h.memberService.GetMemberByID(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// updateProfile godoc
// @Summary Update own profile
// @Description Changes real name, department and optionally the password.
// @Tags members
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [put]
func (h *memberHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	member, err := h.memberService.UpdateProfile(c.Request.Context(), memberID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update profile")
		return
	}
	logger.Info("Profile updated", slog.Bool("password_changed", req.Password != nil))
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// listMembers godoc
// @Summary List members
// @Description Lists every account with the member role.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.ListMembersResponse
// @Security BearerAuth
// @Router /admin/members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	members, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// resetPassword godoc
// @Summary Reset a member's password
// @Description Sets the password to the configured default. Admin accounts cannot be reset.
// @Tags admin
// @Param memberID path string true "Member ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Target is an admin"
// @Security BearerAuth
// @Router /admin/members/{memberID}/reset-password [post]
func (h *memberHandler) resetPassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	if err := h.memberService.ResetPassword(c.Request.Context(), c.Param("memberID"), adminID); err != nil {
		respondError(c, logger, err, "Failed to reset password")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteMember godoc
// @Summary Delete a member
// @Description Deletes the member. Their ledger entries remain, detached. Admin accounts cannot be deleted.
// @Tags admin
// @Param memberID path string true "Member ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Target is an admin"
// @Security BearerAuth
// @Router /admin/members/{memberID} [delete]
func (h *memberHandler) deleteMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireMemberID(c, logger)
	if !ok {
		return
	}
	if err := h.memberService.DeleteMember(c.Request.Context(), c.Param("memberID"), adminID); err != nil {
		respondError(c, logger, err, "Failed to delete member")
		return
	}
	c.Status(http.StatusNoContent)
}
