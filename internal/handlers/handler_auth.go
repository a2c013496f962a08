package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration and sign-in.
type authHandler struct {
	authService   portssvc.AuthSvc
	memberService portssvc.MemberSvcFacade
}

// registerAuthRoutes sets up the public authentication routes. limit guards
// the credential endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvc, memberService portssvc.MemberSvcFacade, limit gin.HandlerFunc) {
	h := &authHandler{authService: authService, memberService: memberService}

	auth := rg.Group("/auth")
	{
		auth.POST("/register", limit, h.register)
		auth.POST("/login", limit, h.login)
		auth.POST("/google", limit, h.loginWithGoogle)
	}
}

// register godoc
// @Summary Register a member
// @Description Creates a member account with the member role.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email taken"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	member, err := h.memberService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register member")
		return
	}
	logger.Info("Member registered", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// login godoc
// @Summary Member login
// @Description Authenticates a member and returns a JWT carrying their role.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, res)
}

// loginWithGoogle godoc
// @Summary Sign in with Google
// @Description Exchanges a Google ID token for a session JWT, registering the member on first use.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Google sign-in disabled"
// @Router /auth/google [post]
func (h *authHandler) loginWithGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	res, err := h.authService.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to sign in with Google")
		return
	}
	c.JSON(http.StatusOK, res)
}
