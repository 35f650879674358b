package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/superheromanager/hero-service/docs"
	"github.com/superheromanager/hero-service/internal/api/handler"
	"github.com/superheromanager/hero-service/internal/api/middleware"
	"github.com/superheromanager/hero-service/internal/core/domain"
	"github.com/superheromanager/hero-service/internal/core/service"
	"github.com/superheromanager/hero-service/internal/images"
	mongodb "github.com/superheromanager/hero-service/internal/infrastructure/db/mongo"
	redisdb "github.com/superheromanager/hero-service/internal/infrastructure/db/redis"
	"github.com/superheromanager/hero-service/internal/infrastructure/storage"
	"github.com/superheromanager/hero-service/internal/pkg/config"
)

// ImageCleaner is satisfied by cleanup.Sweeper; the router only needs the
// enqueue side.
type ImageCleaner interface {
	Enqueue(path string)
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cleaner ImageCleaner, store *storage.LocalStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("superhero"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Dependencies ---
	heroRepo := mongodb.NewHeroRepository(db)
	heroCache := redisdb.NewHeroCache(rdb)
	heroService := service.NewHeroService(heroRepo, cleaner, heroCache, log)
	resolver := images.Resolver{Origin: cfg.PublicOrigin}
	heroHandler := handler.NewHeroHandler(heroService, store, resolver)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	writers := middleware.RBAC(domain.RoleAdmin, domain.RoleEditor)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	apiGroup := e.Group("/api")

	// --- Auth routes ---
	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.PUT("/users/:id/role", authHandler.SetRole, authRequired, adminOnly)

	// --- Hero routes ---
	heroes := apiGroup.Group("/heroes")
	heroes.GET("", heroHandler.List)
	heroes.GET("/:id", heroHandler.Get)
	heroes.POST("", heroHandler.Create, authRequired, writers)
	heroes.PUT("/:id", heroHandler.Update, authRequired, writers)
	heroes.DELETE("/:id", heroHandler.Delete, authRequired, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	apiGroup.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	apiGroup.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Static assets ---
	e.Static("/uploads", cfg.UploadDir)
	e.Static("/images", cfg.ImagesDir)

	return e
}
