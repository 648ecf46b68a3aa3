// Package app wires repositories, services and handlers into one gin engine.
package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rentledger/internal/config"
	"rentledger/internal/middleware"
	"rentledger/internal/modules/assets"
	"rentledger/internal/modules/auth"
	"rentledger/internal/modules/dashboard"
	"rentledger/internal/modules/events"
	"rentledger/internal/modules/expenses"
	"rentledger/internal/modules/locations"
	"rentledger/internal/modules/templates"
	"rentledger/internal/modules/users"
	"rentledger/internal/pkg/cache"
	"rentledger/internal/pkg/jwt"
	"rentledger/internal/pkg/ratelimit"
	"rentledger/internal/repository"
)

const cleanupInterval = time.Minute

// App holds the HTTP engine and the long-lived components the server has to stop.
type App struct {
	Router      *gin.Engine
	Hub         *events.Hub
	Invalidator *events.Invalidator
	Stores      *cache.Manager
}

func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) *App {
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	hub := events.NewHub()
	invalidator := events.NewInvalidator(uuid.NewString(), hub, log)

	assetCache := cache.NewTagged[[]assets.AssetView](cfg.CacheTTL)
	summaryCache := cache.NewTagged[dashboard.Summary](cfg.CacheTTL)
	invalidator.Register(assetCache)
	invalidator.Register(summaryCache)

	limiter := ratelimit.New()
	stores := cache.NewManager()
	stores.Register(assetCache)
	stores.Register(summaryCache)
	stores.Register(limiter)

	jwtService := jwt.New(cfg.JWTSecret, cfg.SessionTTL)
	cookie := auth.SessionCookie{Name: cfg.CookieName, Secure: cfg.CookieSecure, TTL: cfg.SessionTTL}

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService), cookie)
	usersHandler := users.NewHandler(users.NewService(userRepo))
	assetsHandler := assets.NewHandler(assets.NewService(assetRepo, expenseRepo, assetCache, invalidator))
	locationsHandler := locations.NewHandler(locations.NewService(locationRepo, assetRepo, invalidator))
	expensesHandler := expenses.NewHandler(expenses.NewService(expenseRepo, templateRepo, locationRepo, invalidator))
	templatesHandler := templates.NewHandler(templates.NewService(templateRepo, invalidator))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(dashboardRepo, locationRepo, summaryCache))
	eventsHandler := events.NewHandler(hub, log, middleware.IsSameOrigin)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.SameOrigin())
	{
		authHandler.RegisterPublicRoutes(api,
			middleware.RateLimit(limiter, "login", cfg.LoginRateLimit, cfg.RateLimitWindow))

		protected := api.Group("")
		protected.Use(middleware.SessionAuth(jwtService, userRepo, cfg.CookieName))
		{
			authHandler.RegisterProtectedRoutes(protected)
			usersHandler.RegisterRoutes(protected,
				middleware.RateLimit(limiter, "users-create", cfg.SensitiveRateLimit, cfg.RateLimitWindow),
				middleware.RateLimit(limiter, "password-change", cfg.SensitiveRateLimit, cfg.RateLimitWindow),
			)
			assetsHandler.RegisterRoutes(protected)
			locationsHandler.RegisterRoutes(protected)
			templatesHandler.RegisterRoutes(protected)
			expensesHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
			eventsHandler.RegisterRoutes(protected)
		}
	}

	return &App{Router: r, Hub: hub, Invalidator: invalidator, Stores: stores}
}

// Start launches background sweeping of caches and rate limiter state.
func (a *App) Start() {
	a.Stores.StartCleanup(cleanupInterval)
}

func (a *App) Close() {
	a.Stores.Stop()
	a.Hub.Close()
}
