package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yamdb/database"
	"yamdb/internal/config"
	"yamdb/internal/logging"
	"yamdb/internal/mailer"
	"yamdb/internal/microservices/http-api/handler"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/middleware/auth"
	"yamdb/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("api server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, logger); err != nil {
		return err
	}

	svc, err := buildServices(cfg, db, logger)
	if err != nil {
		return err
	}

	limiter, err := ratelimit.New(cfg.RedisURL, "yamdb:auth", cfg.AuthRateLimit, time.Minute)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		RequestTimeout: cfg.RequestTimeout,
		AuthLimiter:    limiter,
		Ping:           func(ctx context.Context) error { return database.Ping(ctx, db) },
	}, svc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildServices(cfg *config.Config, db *gorm.DB, logger *slog.Logger) (handler.Services, error) {
	mail, err := mailer.New(cfg, logger)
	if err != nil {
		return handler.Services{}, fmt.Errorf("mailer: %w", err)
	}
	codes, err := auth.NewCodeGenerator(cfg.JWTSecret, cfg.ConfirmationCodeTTL)
	if err != nil {
		return handler.Services{}, fmt.Errorf("confirmation codes: %w", err)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	users := repository.NewUserRepository(db)
	genres := repository.NewGenreRepo(db)
	categories := repository.NewCategoryRepository(db)
	titles := repository.NewTitleRepository(db)
	reviews := repository.NewReviewRepository(db)
	comments := repository.NewCommentRepository(db)

	return handler.Services{
		Auth:       service.NewAuthService(users, codes, tokens, mail, cfg, logger),
		Users:      service.NewUserService(users),
		Genres:     service.NewGenreService(genres),
		Categories: service.NewCategoryService(categories),
		Titles:     service.NewTitleService(titles, genres, categories),
		Reviews:    service.NewReviewService(reviews, titles),
		Comments:   service.NewCommentService(comments, reviews),
	}, nil
}
