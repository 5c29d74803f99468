package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Abd-ElghanyMohammed/myflash/internal/config"
	"github.com/Abd-ElghanyMohammed/myflash/internal/handler"
	"github.com/Abd-ElghanyMohammed/myflash/internal/infra"
	"github.com/Abd-ElghanyMohammed/myflash/internal/middleware"
	"github.com/Abd-ElghanyMohammed/myflash/internal/repository"
	"github.com/Abd-ElghanyMohammed/myflash/internal/service"
	"github.com/Abd-ElghanyMohammed/myflash/internal/worker"
)

// Deps carries the shared infrastructure the router wires handlers to.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Hub      *service.SnapshotHub
	NotifyCB *infra.CircuitBreaker
}

// New wires all dependencies and returns a configured Gin engine plus
// the migration service (the startup sweep runs it once before serving).
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, deps Deps) (*gin.Engine, service.MigrationService) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(deps.DB)
	unitRepo := repository.NewUnitRepository(deps.DB)
	activityRepo := repository.NewActivityRepository(deps.DB)
	customerRepo := repository.NewCustomerRepository(deps.DB)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(deps.Redis)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ledgerSvc := service.NewLedgerService(customerRepo)
	inventorySvc := service.NewInventoryService(unitRepo, activityRepo, ledgerSvc, deps.Hub, dispatcher)
	journalSvc := service.NewJournalService(activityRepo)
	migrationSvc := service.NewMigrationService(unitRepo, userRepo, deps.Hub)
	exportSvc := service.NewExportService(unitRepo, activityRepo, deps.Hub)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	unitsH := handler.NewUnitsHandler(inventorySvc, migrationSvc, deps.Hub)
	activityH := handler.NewActivityHandler(inventorySvc, journalSvc)
	customersH := handler.NewCustomersHandler(ledgerSvc)
	exportH := handler.NewExportHandler(exportSvc)
	notificationsH := handler.NewNotificationsHandler(dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(deps.DB, deps.Redis, deps.NotifyCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		units := v1.Group("/units")
		{
			units.GET("", unitsH.List)
			units.GET("/stream", unitsH.Stream)
			units.POST("", unitsH.Add)
			units.PUT("/:id", unitsH.Edit)
			units.DELETE("/:id", unitsH.Delete)
			units.POST("/delete-by-name", unitsH.DeleteByName)
			units.DELETE("", unitsH.DeleteAll)
			units.POST("/migrate", unitsH.Migrate)
		}

		transfers := v1.Group("/transfers")
		{
			transfers.POST("", activityH.CreateTransfer)
			transfers.GET("", activityH.ListTransfers)
			transfers.PUT("/:id", activityH.EditTransfer)
			transfers.DELETE("/:id", activityH.DeleteTransfer)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", activityH.CreateSale)
			sales.GET("", activityH.ListSales)
			sales.PUT("/:id", activityH.EditSale)
			sales.DELETE("/:id", activityH.DeleteSale)
		}

		v1.GET("/deletions", activityH.ListDeletions)
		v1.DELETE("/deletions/:id", activityH.DeleteDeletion)
		v1.GET("/modifications", activityH.ListModifications)
		v1.DELETE("/modifications/:id", activityH.DeleteModification)

		v1.GET("/customers", customersH.List)
		v1.GET("/customers/:name", customersH.GetHistory)

		export := v1.Group("/export")
		{
			export.GET("/units.csv", exportH.UnitsCSV)
			export.GET("/units.xlsx", exportH.UnitsXLSX)
			export.GET("/sales.csv", exportH.SalesCSV)
		}
		v1.POST("/import/units", exportH.ImportUnits)

		v1.POST("/notifications/test", notificationsH.Test)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, migrationSvc
}
