package router

import (
	"time"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/config"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/handler"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/middleware"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/repository"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	sessionRepo := repository.NewSessionRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	zreportRepo := repository.NewZReportRepository(db)
	userRepo := repository.NewUserRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	aggregator := service.NewSalesAggregator(orderRepo)
	ledgerSvc := service.NewLedgerService(sessionRepo, movementRepo, userRepo, cfg.LargeCashOut())
	zreportSvc := service.NewZReportService(zreportRepo, userRepo)
	sessionSvc := service.NewSessionService(
		sessionRepo,
		aggregator,
		ledgerSvc,
		zreportSvc,
		userRepo,
		rdb,
		cfg.LargeDiscrepancy(),
		time.Duration(cfg.OpenSessionCacheTTLSeconds)*time.Second,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	sessionsH := handler.NewSessionsHandler(sessionSvc)
	movementsH := handler.NewMovementsHandler(ledgerSvc)
	reportsH := handler.NewReportsHandler(zreportSvc)
	usersH := handler.NewUsersHandler(userRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, supervisor, admin — declared per-endpoint
		cash := v1.Group("/cash")
		{
			operator := middleware.RequireRole("cashier", "supervisor", "admin")

			cash.POST("/sessions", operator, sessionsH.Open)
			cash.GET("/sessions/open", operator, sessionsH.CurrentOpen)
			cash.GET("/sessions/:id", operator, sessionsH.Get)
			cash.POST("/sessions/:id/close", operator, sessionsH.Close)
			cash.GET("/sessions/:id/summary", operator, sessionsH.Summary)
			cash.GET("/sessions/:id/z-report", operator, reportsH.ZReport)
			cash.POST("/movements", operator, movementsH.Append)
			cash.GET("/movements", operator, movementsH.Ledger)

			cash.GET("/sessions", middleware.RequireRole("supervisor", "admin"), sessionsH.History)
		}

		v1.GET("/users", middleware.RequireRole("cashier", "supervisor", "admin"), usersH.List)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
