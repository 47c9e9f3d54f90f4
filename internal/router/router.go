package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/config"
	"github.com/stemsi/exstem-summary/internal/handler"
	"github.com/stemsi/exstem-summary/internal/middleware"
	"github.com/stemsi/exstem-summary/internal/response"
	"github.com/stemsi/exstem-summary/internal/service"
	"github.com/stemsi/exstem-summary/internal/web"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Summary *handler.SummaryHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background work owned by the router, such as rate limiter sweeps.
func SetupRouter(
	ctx context.Context,
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.Recovery(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Remaining"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request log can include it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.SetHTMLTemplate(web.Templates())

	// Embedded stylesheet, cached for a day.
	staticGroup := router.Group("/static")
	staticGroup.Use(middleware.CacheControl(86400))
	{
		staticGroup.StaticFS("/", web.Static())
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/summary")
	})

	// Every page view costs two upstream reads.
	limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute)

	// ─── 1. Pages ──────────────────────────────────────────────────────
	pages := router.Group("/summary")
	pages.Use(
		limiter.Middleware(),
		middleware.ForwardBearer(authService),
		middleware.NoStore(),
	)
	{
		pages.GET("", handlers.Summary.Page)
		pages.GET("/:course_id", handlers.Summary.Detail)
	}

	// ─── 2. JSON API ───────────────────────────────────────────────────
	api := router.Group("/api/v1/summary")
	api.Use(
		limiter.Middleware(),
		middleware.ForwardBearer(authService),
		middleware.NoStore(),
	)
	{
		api.GET("", handlers.Summary.GetSummary)
		api.GET("/filters", handlers.Summary.GetFilters)
		api.GET("/courses/:course_id", handlers.Summary.GetCourse)
	}

	return router
}
