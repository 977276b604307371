package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ManuelTrajcev/SQAT-Project/internal/api/handler"
	"github.com/ManuelTrajcev/SQAT-Project/internal/api/middleware"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/domain"
	"github.com/ManuelTrajcev/SQAT-Project/internal/core/service"
	mongodb "github.com/ManuelTrajcev/SQAT-Project/internal/infrastructure/db/mongo"
	redisdb "github.com/ManuelTrajcev/SQAT-Project/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its collaborators.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("workspaces"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	workspaceRepo := mongodb.NewWorkspaceRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb)
	authService := service.NewAuthService(userRepo, assignmentRepo, tokens, throttle, log)
	workspaceService := service.NewWorkspaceService(workspaceRepo, assignmentRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
	requireAuth := middleware.Auth(tokens)

	// --- User routes ---
	user := e.Group("/api/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.GET("/logout", authHandler.Logout)
	user.DELETE("/delete/:username", authHandler.Delete, requireAuth)

	// --- Workspace routes ---
	ws := e.Group("/api/workspace")
	ws.GET("", workspaceHandler.List)
	ws.POST("", workspaceHandler.Create, requireAuth)
	ws.GET("/my-workspaces", workspaceHandler.MyWorkspaces, requireAuth)
	ws.GET("/:id", workspaceHandler.Open, requireAuth, middleware.RequireWorkspaceRole(domain.RoleVisitor))
	ws.POST("/edit/:id", workspaceHandler.Edit, requireAuth, middleware.RequireWorkspaceRole(domain.RoleAdmin))
	ws.POST("/:id/members", workspaceHandler.GrantRole, requireAuth, middleware.RequireWorkspaceRole(domain.RoleAdmin))
	ws.DELETE("/:id/members/:username", workspaceHandler.RevokeRole, requireAuth, middleware.RequireWorkspaceRole(domain.RoleAdmin))

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
