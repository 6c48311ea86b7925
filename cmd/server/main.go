package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/api"
	"github.com/familiez/humans-service/internal/auth"
	"github.com/familiez/humans-service/internal/config"
	"github.com/familiez/humans-service/internal/database"
	"github.com/familiez/humans-service/internal/debug"
	"github.com/familiez/humans-service/internal/launcher"
	"github.com/familiez/humans-service/internal/logger"
	"github.com/familiez/humans-service/internal/metrics"
	"github.com/familiez/humans-service/internal/models"
)

func main() {
	// Load configuration
	cfg, err := config.Load(config.Overrides{})
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("%v, using info", err)
	}
	logger.SetLevel(level)
	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	// Set Gin mode
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open database
	logger.Infof("Opening database: %s", cfg.DatabaseURL)
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Errorf("Failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Dev-only: populate an empty database with a sample family
	if v := os.Getenv("HUMANS_DEV_SEED"); v == "1" || v == "true" {
		logger.Warnf("HUMANS_DEV_SEED enabled - seeding sample data")
		if err := debug.SeedSampleFamily(db.DB); err != nil {
			logger.Warnf("Failed to seed sample data: %v", err)
		}
	}

	queries := models.New(db.DB)
	verifier := auth.NewVerifier(cfg.OIDC)
	m := metrics.New()

	build := func() http.Handler {
		return api.NewRouter(cfg, queries, verifier, m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Port)

	if cfg.Debug {
		// Announce on stdout; the orchestrator greps for this line.
		fmt.Printf("Debug mode: waiting for debugger to attach on port %d\n", cfg.DebugPort)

		gate, err := launcher.ListenAttachGate(fmt.Sprintf(":%d", cfg.DebugPort))
		if err != nil {
			logger.Errorf("Failed to start attach gate: %v", err)
			os.Exit(1)
		}
		defer gate.Close()

		if err := gate.WaitForClient(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Errorf("Attach gate failed: %v", err)
			os.Exit(1)
		}

		// Reload stays off under a debugger: a restart would drop the
		// attached session.
		logger.Infof("Humans service starting on http://localhost%s (debug)", addr)
		if err := launcher.Serve(ctx, addr, build, nil); err != nil {
			logger.Errorf("Server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	watcher, err := launcher.NewWatcher(cfg.ReloadPaths)
	var reload <-chan struct{}
	if err != nil {
		logger.Warnf("Reload disabled, failed to start watcher: %v", err)
	} else {
		defer watcher.Close()
		reload = watcher.Changes()
	}

	logger.Infof("Humans service starting on http://localhost%s (reload enabled)", addr)
	if err := launcher.Serve(ctx, addr, build, reload); err != nil {
		logger.Errorf("Server failed: %v", err)
		os.Exit(1)
	}
}
