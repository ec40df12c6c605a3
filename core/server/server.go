package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"aeroclub/core/cache"
	"aeroclub/core/config"
	"aeroclub/core/database"
	"aeroclub/core/logger"
	"aeroclub/core/middleware"
	"aeroclub/modules/auth"
	"aeroclub/modules/notification"
	"aeroclub/modules/notification/worker"
	"aeroclub/modules/oil"
	"aeroclub/modules/schedule"
)

const schemaPath = "migrations/schema.sql"

// Run wires the whole service: config, storage, cache, task backend,
// HTTP, and every module. Dependencies are constructed once here and
// injected; nothing reaches for hidden globals.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Bootstrap(schemaPath); err != nil {
		return err
	}

	redisCache, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisCache.Close()

	mw := middleware.New(redisCache)

	e := echo.New()
	e.HideBanner = true
	e.Use(mw.RequestID())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Notification pipeline: producer for the schedule module, consumer
	// backed by the notification service.
	taskClient := worker.NewClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	defer taskClient.Close()

	notifSvc := notification.Init(e, db, mw)

	taskServer := worker.NewServer(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, cfg.Asynq.Concurrency, notifSvc)
	if err := taskServer.Start(); err != nil {
		return err
	}
	defer taskServer.Shutdown()

	auth.Init(e, db, mw, redisCache)
	schedule.Init(e, db, mw, taskClient)
	oil.Init(e, db, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:Start", err)
		}
	}()

	logger.Info("Server started", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
