package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-payroll/internal/config"
	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/connection"
	"go-payroll/internal/shared/migration"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewLogger builds the process logger for the configured environment.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// BuildApp connects infrastructure, applies migrations when enabled and registers
// every module on router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.Migrate {
		if err := runMigrations(sqlDB, logger); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			log.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			log.Warn("close database failed", zap.Error(err))
		}
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.NewHTTPMetrics(prometheus.DefaultRegisterer).Handler())
	router.Use(middleware.RateLimitByIP(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst))

	router.GET("/health", healthHandler(sqlDB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, logger); err != nil {
		cleanup()
		return nil, err
	}

	log.Info("application modules registered")
	return cleanup, nil
}

func runMigrations(db *sql.DB, logger *zap.Logger) error {
	m, err := migration.New(db, logger)
	if err != nil {
		return err
	}
	return m.Up()
}

func healthHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			status := "unavailable"
			if errors.Is(err, context.DeadlineExceeded) {
				status = "timeout"
			}
			response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database "+status, nil)
			return
		}
		response.Success(c, http.StatusOK, "OK", gin.H{"database": "up"}, nil)
	}
}
