package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/internal/config"
	"github.com/jhconstruction/backoffice/internal/repository/mongodb"
	"github.com/jhconstruction/backoffice/internal/repository/sheets"
	"github.com/jhconstruction/backoffice/internal/scheduler"
	"github.com/jhconstruction/backoffice/internal/server/handlers"
	"github.com/jhconstruction/backoffice/internal/server/middleware"
	"github.com/jhconstruction/backoffice/internal/server/router"
	authsvc "github.com/jhconstruction/backoffice/internal/service/auth"
	reportingsvc "github.com/jhconstruction/backoffice/internal/service/reporting"
	uploadsvc "github.com/jhconstruction/backoffice/internal/service/uploads"
	"github.com/jhconstruction/backoffice/pkg/clients/storage"
	"github.com/jhconstruction/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	var store storage.Client
	if cfg.StorageEnabled() {
		store = storage.NewClient(cfg.Storage)
		baseLogger.Info("object storage enabled", zap.String("folder", cfg.Storage.Folder))
	} else {
		baseLogger.Warn("object storage credentials missing, slip uploads disabled")
	}

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("summary export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, summary export disabled")
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			baseLogger.Warn("redis unreachable, report caching disabled", zap.Error(err))
			cache = nil
		} else {
			baseLogger.Info("report cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	tokens := authsvc.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	uploadsSvc := uploadsvc.NewService(store, repo, baseLogger.Named("svc.uploads"))
	reportingSvc := reportingsvc.NewService(repo, cache, baseLogger.Named("svc.reporting"))

	loginLimit, err := middleware.LoginRateLimit()
	if err != nil {
		baseLogger.Fatal("failed to init rate limiter", zap.Error(err))
	}

	handler := handlers.New(repo, tokens, uploadsSvc, reportingSvc, baseLogger.Named("handlers"))
	engine := router.New(router.Options{
		Handler:        handler,
		Tokens:         tokens,
		AllowedOrigin:  cfg.CORS.AllowedOrigin,
		LoginRateLimit: loginLimit,
		Logger:         baseLogger.Named("router"),
	})

	sched := scheduler.NewScheduler(cfg.Jobs, uploadsSvc, reportingSvc, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
