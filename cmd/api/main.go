package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/portfolio-cms/backend/internal/api"
	"github.com/portfolio-cms/backend/internal/api/handlers"
	"github.com/portfolio-cms/backend/internal/api/middleware"
	"github.com/portfolio-cms/backend/internal/repository"
	"github.com/portfolio-cms/backend/internal/services"
	"github.com/portfolio-cms/backend/pkg/config"
	"github.com/portfolio-cms/backend/pkg/database"
	"github.com/portfolio-cms/backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting portfolio backend",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	log.Info("database connected")

	userRepo := repository.NewUserRepository(db)
	phoneRepo := repository.NewPhoneNumberRepository(db)
	socialRepo := repository.NewSocialLinkRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	downloadRepo := repository.NewDownloadLogRepository(db)

	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.AdminUserID)
	projectSvc := services.NewProjectService(projectRepo, commentRepo)

	limiter := middleware.NewRateLimiter(10, 20)

	router := api.NewRouter(api.Dependencies{
		HMACSecret:     []byte(cfg.JWTSecret),
		FrontendOrigin: cfg.FrontendOrigin,
		RateLimiter:    limiter,
		AuthHandler:    handlers.NewAuthHandler(authSvc, cfg.Production()),
		UserHandler:    handlers.NewUserHandler(userRepo),
		PhoneHandler:   handlers.NewPhoneHandler(phoneRepo),
		SocialHandler:  handlers.NewSocialHandler(socialRepo),
		SkillHandler:   handlers.NewSkillHandler(skillRepo),
		ProjectHandler: handlers.NewProjectHandler(projectSvc),
		VisitorHandler: handlers.NewVisitorHandler(downloadRepo, projectSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	limiter.Stop()
	if err := database.Close(db); err != nil {
		log.Error("database close error", zap.Error(err))
	} else {
		log.Info("database connection drained")
	}
	log.Info("server exited gracefully")
}
