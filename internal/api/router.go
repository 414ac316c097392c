package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amiyamandal-dev/newsdesk/internal/api/handlers"
	"github.com/amiyamandal-dev/newsdesk/internal/api/middleware"
	"github.com/amiyamandal-dev/newsdesk/internal/config"
	"github.com/amiyamandal-dev/newsdesk/internal/web"
	"github.com/amiyamandal-dev/newsdesk/pkg/logger"
	"github.com/amiyamandal-dev/newsdesk/pkg/response"
)

// Router sets up the HTTP router with all routes and middleware
type Router struct {
	engine         *gin.Engine
	articleHandler *handlers.ArticleHandler
	searchHandler  *handlers.SearchHandler
	healthHandler  *handlers.HealthHandler
	webHandler     *web.WebHandler
	limiter        *middleware.RateLimiter
	cfg            *config.Config
	logger         *logger.Logger
}

// NewRouter creates a new router
func NewRouter(
	articleHandler *handlers.ArticleHandler,
	searchHandler *handlers.SearchHandler,
	healthHandler *handlers.HealthHandler,
	webHandler *web.WebHandler,
	cfg *config.Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		articleHandler: articleHandler,
		searchHandler:  searchHandler,
		healthHandler:  healthHandler,
		webHandler:     webHandler,
		cfg:            cfg,
		logger:         logger,
	}
}

// Setup configures all routes and middleware
func (r *Router) Setup() (*gin.Engine, error) {
	gin.SetMode(r.cfg.Server.Mode)

	r.engine = gin.New()

	// Visitor identity comes from ClientIP, so only listed proxies may
	// override the socket address
	if err := r.engine.SetTrustedProxies(r.cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.LoggerMiddleware(r.logger))
	r.engine.Use(middleware.MetricsMiddleware())
	r.engine.Use(middleware.VisitorMiddleware())

	// Operational endpoints (no rate limiting)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Readiness)
	r.engine.GET("/health/live", r.healthHandler.Liveness)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Web UI routes
	if r.webHandler != nil {
		r.webHandler.RegisterRoutes(r.engine)
	}

	// API v1 routes (with rate limiting)
	v1 := r.engine.Group("/api/v1")
	r.limiter.Stop()
	r.limiter = nil
	if r.cfg.RateLimit.RequestsPerSecond > 0 {
		r.limiter = middleware.NewRateLimiter(r.cfg.RateLimit.RequestsPerSecond, r.cfg.RateLimit.Burst)
	}
	v1.Use(r.limiter.Middleware())
	{
		articles := v1.Group("/articles")
		{
			articles.GET("", r.articleHandler.List)
			articles.POST("", r.articleHandler.Create)
			articles.GET("/:id", r.articleHandler.Get)
			articles.POST("/:id/like", r.articleHandler.Like)
			articles.POST("/:id/favorite", r.articleHandler.Favorite)
		}

		v1.GET("/categories", r.articleHandler.Categories)
		v1.GET("/tags", r.articleHandler.Tags)
		v1.GET("/search", r.searchHandler.Search)
	}

	r.engine.NoRoute(r.noRoute)

	return r.engine, nil
}

// noRoute answers JSON under /api and the HTML 404 page elsewhere
func (r *Router) noRoute(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || r.webHandler == nil {
		response.NotFound(c, "Resource not found")
		return
	}
	r.webHandler.NotFound(c)
}

// Close releases the router's background resources
func (r *Router) Close() {
	r.limiter.Stop()
	r.limiter = nil
}
