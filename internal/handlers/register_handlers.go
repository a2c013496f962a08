package handlers

import (
	"github.com/clubtreasury/treasury/cmd/docs"
	portssvc "github.com/clubtreasury/treasury/internal/core/ports/services"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/clubtreasury/treasury/internal/platform/config"
	"github.com/clubtreasury/treasury/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	analytics *utils.PosthogClientWrapper,
) error {
	loginLimit, err := middleware.NewIPRateLimit(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1")
	v1.GET("/health", health)

	// Public routes
	registerAuthRoutes(v1, services.Auth, services.Member, loginLimit)
	registerTransparencyRoutes(v1, services.Reporting)
	registerPublicContentRoutes(v1, services.Content, services.Evidence)

	// Any signed-in member
	member := v1.Group("", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(analytics))
	registerProfileRoutes(member, services.Member)
	registerDuesRoutes(member, services.Ledger, services.Evidence)

	// Treasurers only
	admin := member.Group("/admin", middleware.RequireAdmin())
	registerMemberAdminRoutes(admin, services.Member)
	registerLedgerAdminRoutes(admin, services.Ledger, services.Reporting)
	registerSemesterRoutes(admin, services.Semester)
	registerProjectRoutes(admin, services.Project)
	registerReportingRoutes(admin, services.Reporting, services.Tracker)
	registerContentAdminRoutes(admin, services.Content)
	registerEvidenceAdminRoutes(admin, services.Evidence, cfg.EvidenceOrphanGrace)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
