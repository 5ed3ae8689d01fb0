package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-report-gateway/internal/handler"
	"github.com/noah-isme/sma-report-gateway/internal/repository"
	"github.com/noah-isme/sma-report-gateway/internal/service"
	"github.com/noah-isme/sma-report-gateway/pkg/config"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
	"github.com/noah-isme/sma-report-gateway/pkg/logger"
)

// @title Student Report API
// @version 1.0.0
// @description Student report CRUD and company/daysorder lookups over a pooled SQL connection
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}

	metrics := service.NewMetricsService()
	pool := database.NewPool(db, cfg.Database.PoolLimit, cfg.Database.AcquireTimeout, metrics, logr)
	defer pool.Close() //nolint:errcheck
	metrics.RegisterPool(pool.Stats)
	exec := database.NewExecutor(pool, cfg.Database.QueryTimeout, metrics, logr)

	validate := validator.New()
	reportSvc := service.NewReportService(repository.NewReportRepository(exec), validate, logr)
	lookupSvc := service.NewLookupService(repository.NewCompanyRepository(exec), repository.NewDaysOrderRepository(exec), validate)

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Logger:         logr,
		Metrics:        metrics,
	}, handler.Handlers{
		Report:  handler.NewReportHandler(reportSvc),
		Lookup:  handler.NewLookupHandler(lookupSvc),
		Metrics: handler.NewMetricsHandler(metrics, pool),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Database.Driver, "poolLimit", pool.Limit())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logr.Sugar().Infow("shutting down", "signal", sig.String())
	case err := <-errCh:
		logr.Sugar().Errorw("server failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	logr.Info("server stopped", zap.Any("pool", pool.Stats()))
}
