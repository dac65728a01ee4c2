package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"yamdb/internal/microservices/http-api/middleware"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles what the router dispatches to.
type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Genres     service.GenreService
	Categories service.CategoryService
	Titles     service.TitleService
	Reviews    service.ReviewService
	Comments   service.CommentService
}

type RouterConfig struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	// TrustedProxies may set the client address through X-Forwarded-For;
	// empty means the peer address is always used.
	TrustedProxies []string
	RequestTimeout time.Duration
	// AuthLimiter throttles signup and token requests; nil disables it.
	AuthLimiter ratelimit.Limiter
	// Ping backs /healthz; nil reports healthy.
	Ping func(ctx context.Context) error
}

// NewRouter builds the engine serving /api/v1.
func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "not found"})
	})
	r.NoMethod(methodNotAllowed)

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.GET("/healthz", healthz(cfg.Ping))

	apiV1 := r.Group("/api/v1", middleware.Authenticate(svc.Auth))
	{
		NewAuthHandler(svc.Auth, cfg.AuthLimiter).RegisterRoutes(apiV1.Group("/auth"))
		NewUserHandler(svc.Users).RegisterRoutes(apiV1.Group("/users"))
		NewCategoryHandler(svc.Categories).RegisterRoutes(apiV1.Group("/categories"))
		NewGenreHandler(svc.Genres).RegisterRoutes(apiV1.Group("/genres"))

		titles := apiV1.Group("/titles")
		NewTitleHandler(svc.Titles).RegisterRoutes(titles)
		NewReviewHandler(svc.Reviews).RegisterRoutes(titles)
		NewCommentHandler(svc.Comments).RegisterRoutes(titles)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func healthz(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				middleware.Logger(c).WarnContext(c.Request.Context(), "health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
