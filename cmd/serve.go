package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adhocore/gronx"
	"github.com/spf13/cobra"

	"github.com/vibpath/vibgate/internal/admin"
	"github.com/vibpath/vibgate/internal/agent"
	"github.com/vibpath/vibgate/internal/config"
	"github.com/vibpath/vibgate/internal/dispatch"
	"github.com/vibpath/vibgate/internal/httpapi"
	"github.com/vibpath/vibgate/internal/line"
	"github.com/vibpath/vibgate/internal/prefs"
	"github.com/vibpath/vibgate/internal/providers"
	"github.com/vibpath/vibgate/internal/store"
	"github.com/vibpath/vibgate/internal/telemetry"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway server",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}
}

func runServe() {
	setupLogging()

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			slog.Error("invalid configuration", "field", cfgErr.Field, "reason", cfgErr.Reason)
		} else {
			slog.Error("invalid configuration", "error", err)
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTraces, err := telemetry.Init(ctx, cfg.Telemetry, Version)
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTraces(flushCtx); err != nil {
			slog.Warn("trace flush failed", "error", err)
		}
	}()

	// Preference layer. A store that failed to open degrades to disabled;
	// the service keeps answering from cache and defaults.
	prefStore := store.NewPreferenceStore(cfg)
	defer prefStore.Close()
	cache := prefs.NewCache(cfg.CacheTTL())
	prefSvc := prefs.NewService(prefStore, cache)

	pause := admin.NewPauseController(cfg.Location())

	runtime := providers.NewADKClient(cfg.Agent.BaseURL, cfg.Agent.APIKey, cfg.Agent.AppName, cfg.AgentTimeout())
	gateway := agent.NewGateway(runtime, agent.DefaultTools())

	lineClient, err := line.NewClient(cfg.Line.ChannelToken)
	if err != nil {
		slog.Error("failed to create messaging client", "error", err)
		os.Exit(1)
	}

	dispatcher := dispatch.NewDispatcher(cfg.IsAdmin, pause, prefSvc, gateway, lineClient)

	webhookHandler := httpapi.NewWebhookHandler(cfg.Line.ChannelSecret, dispatcher)
	api := httpapi.NewAPI(prefSvc)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := httpapi.NewServer(addr, webhookHandler, api, verbose)

	go runCacheSweep(ctx, cache, cfg.Prefs.SweepSchedule)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr,
			"store_connected", prefStore.Connected(),
			"admins", len(cfg.Admin.UserIDs))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("graceful shutdown incomplete", "error", err)
	}
	slog.Info("server stopped")
}

// runCacheSweep evicts expired preference-cache entries on a cron schedule.
// Eviction is not required for correctness (reads expire lazily); the sweep
// only bounds memory for users who never come back.
func runCacheSweep(ctx context.Context, cache *prefs.Cache, schedule string) {
	if schedule == "" {
		return
	}
	gron := gronx.New()
	if !gron.IsValid(schedule) {
		slog.Warn("invalid cache sweep schedule, sweep disabled", "schedule", schedule)
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			due, err := gron.IsDue(schedule, tick)
			if err != nil || !due {
				continue
			}
			if n := cache.CleanupExpired(); n > 0 {
				slog.Debug("cache sweep", "evicted", n)
			}
		}
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
