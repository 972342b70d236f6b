package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/optoclinic-api/config"
	"github.com/jwalitptl/optoclinic-api/internal/fiscalcode"
	"github.com/jwalitptl/optoclinic-api/internal/handler"
	fiscalHandler "github.com/jwalitptl/optoclinic-api/internal/handler/fiscal"
	opticsHandler "github.com/jwalitptl/optoclinic-api/internal/handler/optics"
	"github.com/jwalitptl/optoclinic-api/internal/middleware"
	"github.com/jwalitptl/optoclinic-api/internal/router"
	fiscalService "github.com/jwalitptl/optoclinic-api/internal/service/fiscal"
	opticsService "github.com/jwalitptl/optoclinic-api/internal/service/optics"
	"github.com/jwalitptl/optoclinic-api/pkg/logger"
	"github.com/jwalitptl/optoclinic-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	log.Logger = l.Zerolog()

	// Load cadastral table
	table, err := fiscalcode.LoadCadastralTable(cfg.Cadastral.Path, fiscalcode.LoadOptions{
		Encoding: cfg.Cadastral.Encoding,
	})
	if err != nil {
		l.Fatal(err, "failed to load cadastral table", "path", cfg.Cadastral.Path)
	}
	if table.Len() == 0 {
		l.Warn("cadastral table is empty, fiscal code generation will fail", "path", cfg.Cadastral.Path)
	} else {
		l.Info("cadastral table loaded",
			"path", cfg.Cadastral.Path,
			"entries", table.Len(),
			"skipped", table.Skipped(),
		)
	}

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(cfg.Monitoring.Namespace, reg)

	// Initialize services
	fiscalSvc := fiscalService.NewService(table, fiscalService.CacheConfig{
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
	}, m, l)
	opticsSvc := opticsService.NewService(m)

	// Initialize handlers
	h := handler.NewHandler(fiscalSvc, reg)
	fiscalH := fiscalHandler.NewHandler(fiscalSvc)
	opticsH := opticsHandler.NewHandler(opticsSvc)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	corsConfig.AllowMethods = cfg.Security.AllowedMethods
	corsConfig.AllowHeaders = cfg.Security.AllowedHeaders

	routerConfig := router.RouterConfig{
		Mode:           cfg.Server.Mode,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSConfig:     corsConfig,
		MetricsEnabled: cfg.Monitoring.PrometheusEnabled,
		MetricsPath:    cfg.Monitoring.MetricsPath,
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimit = &middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RequestsPerSecond,
			Burst: cfg.RateLimit.Burst,
		}
	}

	// Setup router
	r := router.NewRouter(h, fiscalH, opticsH, m, routerConfig)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server
	go func() {
		l.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Fatal(err, "server forced to shutdown")
	}

	l.Info("server exited properly")
}
