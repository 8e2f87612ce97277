package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/relaydesk/handover-api/docs"
	"github.com/relaydesk/handover-api/internal/api/handler"
	"github.com/relaydesk/handover-api/internal/api/middleware"
	"github.com/relaydesk/handover-api/internal/core/service"
	"github.com/relaydesk/handover-api/internal/infrastructure/config"
	redisdb "github.com/relaydesk/handover-api/internal/infrastructure/db/redis"
	"github.com/relaydesk/handover-api/internal/infrastructure/http/handlers"

	pg "github.com/relaydesk/handover-api/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("handover"))

	// --- Dependencies ---
	userRepo := pg.NewUserRepository(db)
	sessionRepo := pg.NewSessionRepository(db)
	handoverRepo := pg.NewHandoverRepository(db)
	sessionCache := redisdb.NewSessionCache(rdb, cfg.Redis.SessionTTL)

	authService := service.NewAuthService(userRepo, sessionRepo, sessionCache, log)
	userService := service.NewUserService(userRepo, sessionCache, log)
	handoverService := service.NewHandoverService(handoverRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	handoverHandler := handler.NewHandoverHandler(handoverService)

	requireSession := middleware.Auth(authService)
	requireAdmin := middleware.RequireAdmin()

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/auth/session", authHandler.Session, requireSession)

	// --- User management (admin only) ---
	users := e.Group("/v1/users", requireSession, requireAdmin)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.DELETE("/:username", userHandler.Delete)

	// --- Handover documents (any authenticated session) ---
	handovers := e.Group("/v1/handovers", requireSession)
	handovers.GET("", handoverHandler.List)
	handovers.GET("/:id", handoverHandler.Get)
	handovers.PUT("/:id", handoverHandler.Put)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
