package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"work-exchange-api/core/cache"
	"work-exchange-api/core/config"
	"work-exchange-api/core/database"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/middleware"
	"work-exchange-api/core/queue"
	"work-exchange-api/core/storage"
	"work-exchange-api/modules/application"
	"work-exchange-api/modules/media"
	"work-exchange-api/modules/notification"
	"work-exchange-api/modules/opportunity"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Run wires the infrastructure and modules, serves HTTP and the task
// worker, and blocks until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = db.Migrate(migrateCtx)
	cancel()
	if err != nil {
		return err
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisCache.Close()

	queueClient := queue.NewClient(cfg.Redis, cfg.Queue)
	defer queueClient.Close()
	worker := queue.NewWorker(cfg.Redis, cfg.Queue)

	store := storage.NewS3Store(cfg.Storage)
	mw := middleware.NewMiddleware(cfg.JWT.Secret)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.BodyLimit(fmt.Sprintf("%dM", cfg.Storage.MaxUploadMB+1)))

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := redisCache.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": err.Error()})
		}
		if err := db.SQLx().PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	opportunities := opportunity.Init(api, db, redisCache, queueClient, mw)
	application.Init(api, db, opportunities, redisCache, queueClient, mw)
	notification.Init(api, db, worker, mw)
	media.Init(api, store, cfg.Storage.MaxUploadMB, mw)

	if err := worker.Start(); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	defer worker.Shutdown()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.StartServer(httpServer); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("Server:Run:Shutdown", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	logger.Info("Server:Run:Stopped")
	return nil
}
