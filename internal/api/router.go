package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/govtrack/disbursement-system/internal/api/handler"
	"github.com/govtrack/disbursement-system/internal/api/middleware"
	"github.com/govtrack/disbursement-system/internal/core/access"
	"github.com/govtrack/disbursement-system/internal/core/domain"
	"github.com/govtrack/disbursement-system/internal/core/ports"
	"github.com/govtrack/disbursement-system/internal/core/service"
	"github.com/govtrack/disbursement-system/internal/core/session"
	mongorepo "github.com/govtrack/disbursement-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/govtrack/disbursement-system/internal/infrastructure/db/redis"
)

// Dependencies carries the shared infrastructure the router wires the
// handler stack around. Repositories and services are constructed here;
// anything with its own lifecycle (registry, audit dispatcher, store
// connections) is owned by the caller.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Registry  *session.Registry
	Audit     ports.AuditRecorder
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("disbursement"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(deps.DB)
	disbursementRepo := mongorepo.NewDisbursementRepository(deps.DB)
	ruleRepo := mongorepo.NewRuleRepository(deps.DB)
	auditRepo := mongorepo.NewAuditRepository(deps.DB)
	revocations := redisinfra.NewRevocationList(deps.Redis)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.Registry, revocations, deps.Audit, deps.JWTSecret, deps.TokenTTL, deps.Log)
	userService := service.NewUserService(userRepo, deps.Registry, revocations, deps.Audit, deps.Log)
	disbursementService := service.NewDisbursementService(disbursementRepo, deps.Audit, deps.Log)
	classificationService := service.NewClassificationService(ruleRepo, deps.Audit, deps.Log)
	reportService := service.NewReportService(disbursementRepo, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	navigationHandler := handler.NewNavigationHandler(access.DefaultNavigation())
	disbursementHandler := handler.NewDisbursementHandler(disbursementService)
	classificationHandler := handler.NewClassificationHandler(classificationService)
	reportHandler := handler.NewReportHandler(reportService)
	userHandler := handler.NewUserHandler(userService)
	sessionHandler := handler.NewSessionHandler(deps.Registry, authService, deps.Audit)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public auth route ---
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("/v1", middleware.Auth(deps.JWTSecret, authService))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/navigation", navigationHandler.Get)

	// Disbursements: reads for every role, writes for admin/encoder,
	// approval decisions and archival for admin only.
	view := authed.Group("/disbursements", middleware.RequireCapabilities(access.CanView))
	view.GET("", disbursementHandler.List)
	view.GET("/:id", disbursementHandler.Get)

	edit := authed.Group("/disbursements", middleware.RequireCapabilities(access.CanEdit))
	edit.POST("", disbursementHandler.Create)
	edit.PUT("/:id", disbursementHandler.Update)
	edit.DELETE("/:id", disbursementHandler.Delete)

	decide := authed.Group("/disbursements", middleware.RequireRoles(domain.RoleAdmin))
	decide.POST("/:id/approve", disbursementHandler.Approve)
	decide.POST("/:id/reject", disbursementHandler.Reject)
	decide.POST("/:id/archive", disbursementHandler.Archive)
	decide.POST("/:id/restore", disbursementHandler.Restore)

	// Classification: suggestions for anyone who can create entries,
	// rule management for admins.
	authed.POST("/classify/suggest", classificationHandler.Suggest, middleware.RequireCapabilities(access.CanEdit))

	rules := authed.Group("/classification-rules")
	rules.GET("", classificationHandler.ListRules, middleware.RequireCapabilities(access.CanView))
	rules.POST("", classificationHandler.CreateRule, middleware.RequireRoles(domain.RoleAdmin))
	rules.PUT("/:id", classificationHandler.UpdateRule, middleware.RequireRoles(domain.RoleAdmin))
	rules.DELETE("/:id", classificationHandler.DeleteRule, middleware.RequireRoles(domain.RoleAdmin))

	// Reports.
	reports := authed.Group("/reports", middleware.RequireCapabilities(access.CanView))
	reports.GET("/stats", reportHandler.Stats)
	reports.GET("/export", reportHandler.Export)

	// Administration.
	users := authed.Group("/users", middleware.RequireCapabilities(access.CanManageUsers))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.POST("/:id/deactivate", userHandler.Deactivate)
	users.POST("/:id/reactivate", userHandler.Reactivate)

	sessions := authed.Group("/sessions", middleware.RequireRoles(domain.RoleAdmin))
	sessions.GET("", sessionHandler.List)
	sessions.DELETE("/:id", sessionHandler.Revoke)

	authed.GET("/audit", auditHandler.List, middleware.RequireRoles(domain.RoleAdmin))

	return e
}
