package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/clubtreasury/treasury/internal/core/services"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/clubtreasury/treasury/internal/handlers"
	"github.com/clubtreasury/treasury/internal/middleware"
	"github.com/clubtreasury/treasury/internal/platform/cache"
	"github.com/clubtreasury/treasury/internal/platform/config"
	"github.com/clubtreasury/treasury/internal/platform/evidence"
	"github.com/clubtreasury/treasury/internal/repositories/database/pgsql"
	"github.com/clubtreasury/treasury/internal/repositories/memory"
	"github.com/clubtreasury/treasury/internal/utils"
	"github.com/clubtreasury/treasury/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Club Treasury API
// @version 1.0
// @description Dues collection, approvals and reporting for a student club treasury.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	balances := portsrepo.BalanceCache(cache.NoopBalanceCache{})
	if cfg.RedisAddr != "" {
		redisCache, closeRedis, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.BalanceCacheTTL, logger)
		if err != nil {
			// balances are always recomputable from the ledger
			logger.Warn("Redis unavailable, balance cache disabled", slog.String("error", err.Error()))
		} else {
			balances = redisCache
			defer func() {
				if cerr := closeRedis(); cerr != nil {
					logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
				}
			}()
		}
	}

	evidenceStore, err := evidence.NewDiskStore(cfg.EvidenceDir, cfg.EvidenceMaxWidth, cfg.EvidenceMaxBytes)
	if err != nil {
		logger.Error("Failed to prepare evidence directory", slog.String("dir", cfg.EvidenceDir), slog.String("error", err.Error()))
		os.Exit(1)
	}

	analytics := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer analytics.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, services.Infrastructure{
		Evidence:  evidenceStore,
		Balances:  balances,
		Analytics: analytics,
	})

	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = serviceContainer.Member.EnsureBootstrapAdmin(bootCtx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
	cancel()
	if err != nil {
		logger.Error("Failed to bootstrap admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = cfg.EvidenceMaxBytes

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, analytics); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories opens the configured storage backend and returns its
// repositories along with a cleanup func.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established")

	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
