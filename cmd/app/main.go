package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"todo_api/internal/config"
	httpServer "todo_api/internal/http"
	"todo_api/internal/http/middleware"
	"todo_api/internal/logger"
	"todo_api/internal/repository"
	"todo_api/internal/service"
	"todo_api/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(cfg.GinMode)

	limiter := middleware.NewRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer limiter.Close()
	limiter.StartCleanup(cfg.APIRateWindow())

	hub := ws.NewHub()
	tasks := service.NewTaskService(repository.NewTaskRepository(), hub, service.NewAuditService())

	r := httpServer.NewRouter(httpServer.Deps{
		Tasks:          tasks,
		Hub:            hub,
		Limiter:        limiter,
		RateLimit:      cfg.APIRateLimit,
		RateWindow:     cfg.APIRateWindow(),
		AllowedOrigins: cfg.AllowedOrigins,
		Version:        version,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: c.Handler(r),
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version, "redis", limiter.Redis())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited", "tasks_discarded", tasks.Count())
}
