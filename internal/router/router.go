package router

import (
	"time"

	"visitorlog/internal/config"
	"visitorlog/internal/handler"
	"visitorlog/internal/middleware"
	"visitorlog/internal/model"
	"visitorlog/internal/repository"
	"visitorlog/internal/service"
	"visitorlog/internal/store"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store collections
func New(cfg *config.Config, users *store.Collection[model.User], visitors *store.Collection[model.Visitor]) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(users)
	visitorRepo := repository.NewVisitorRepository(visitors)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	visitorSvc := service.NewVisitorService(visitorRepo, userRepo)
	userSvc := service.NewUserService(userRepo, cfg)
	statsSvc := service.NewStatsService(visitorRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	visitorsH := handler.NewVisitorsHandler(visitorSvc)
	usersH := handler.NewUsersHandler(userSvc)
	statsH := handler.NewStatsHandler(statsSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(cfg.DataDir))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Visitor reads are open to every authenticated principal; mutations
		// go through the authorization policy inside the service.
		visitors := v1.Group("/visitors")
		{
			visitors.GET("", visitorsH.List)
			visitors.GET("/:id", visitorsH.Get)
			visitors.POST("", visitorsH.Create)
			visitors.PUT("/:id", visitorsH.Update)
			visitors.POST("/:id/exit", visitorsH.Exit)
			visitors.DELETE("/:id", visitorsH.Delete)
		}

		v1.GET("/stats", statsH.Get)

		users := v1.Group("/users", middleware.RequireAdmin())
		{
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.POST("", usersH.Create)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
