package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	"github.com/BruksfildServices01/weekly-availability/internal/cache"
	"github.com/BruksfildServices01/weekly-availability/internal/config"
	dbpkg "github.com/BruksfildServices01/weekly-availability/internal/db"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	infraRepo "github.com/BruksfildServices01/weekly-availability/internal/infra/repository"
	"github.com/BruksfildServices01/weekly-availability/internal/logger"
	"github.com/BruksfildServices01/weekly-availability/internal/routes"
	"github.com/BruksfildServices01/weekly-availability/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, lg)
	if err != nil {
		return err
	}

	var slotCache domain.SlotCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			lg.Warn("slot cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			slotCache = cache.NewRedisSlotCache(client, cfg.SlotCacheTTL, lg)
			lg.Info("slot cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	auditStore := audit.NewGormStore(db)
	dispatcher := audit.NewDispatcher(auditStore, lg)

	if err := validators.Register(); err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:     cfg,
		Log:        lg,
		Repository: infraRepo.NewAvailabilityGormRepository(db),
		Users:      infraRepo.NewUserGormRepository(db),
		SlotCache:  slotCache,
		Audit:      dispatcher,
		AuditLogs:  auditStore,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		lg.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		lg.Error("audit drain", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
