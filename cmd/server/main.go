package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/bootstrap"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/config"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/logger"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/telemetry"
	"github.com/Viny2030/Pasivos-corrientes/internal/interfaces/http/handler"
	"github.com/Viny2030/Pasivos-corrientes/internal/interfaces/http/middleware"
	"github.com/Viny2030/Pasivos-corrientes/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Current Liabilities Audit API
//	@version		1.0
//	@description	Synthetic ledgers, anomaly analysis, consolidation and audit documents
//	@BasePath		/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting audit server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.New()
	}

	svc, artifacts, err := bootstrap.NewService(cfg, log, metrics)
	if err != nil {
		log.Fatal("Failed to build audit service", zap.Error(err))
	}
	if artifacts != nil {
		defer func() {
			if err := artifacts.Close(); err != nil {
				log.Warn("Failed to close document cache", zap.Error(err))
			}
		}()
	}

	defaults, err := bootstrap.Options(cfg.Generation)
	if err != nil {
		log.Fatal("Invalid generation settings", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if metrics != nil {
		engine.Use(middleware.HTTPMetrics(metrics))
		engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	auditHandler := handler.NewAuditHandler(svc, defaults)
	api := router.NewRouter(engine).Register(handler.AuditRoutes(auditHandler))
	api.Setup()
	log.Info("API routes registered", zap.Strings("paths", api.Paths()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
