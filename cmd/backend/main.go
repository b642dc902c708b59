package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	classifierimpl "github.com/foxseedlab/rusuban/external/classifier"
	configloader "github.com/foxseedlab/rusuban/external/config"
	"github.com/foxseedlab/rusuban/external/httpserver"
	notifyimpl "github.com/foxseedlab/rusuban/external/notify"
	recordingimpl "github.com/foxseedlab/rusuban/external/recording"
	replyimpl "github.com/foxseedlab/rusuban/external/reply"
	repositoryimpl "github.com/foxseedlab/rusuban/external/repository"
	stateimpl "github.com/foxseedlab/rusuban/external/state"
	transcriberimpl "github.com/foxseedlab/rusuban/external/transcriber"
	"github.com/foxseedlab/rusuban/internal/call"
	"github.com/foxseedlab/rusuban/internal/config"
	"github.com/foxseedlab/rusuban/internal/control"
	"github.com/samber/do/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching http server")
	runServer(injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	stateimpl.RegisterDI(injector)
	recordingimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	classifierimpl.RegisterDI(injector)
	replyimpl.RegisterDI(injector)
	notifyimpl.RegisterDI(injector)
	control.RegisterDI(injector)
	call.RegisterDI(injector)
	httpserver.RegisterDI(injector)

	return injector
}

func runServer(injector do.Injector) {
	server, err := do.Invoke[*httpserver.Server](injector)
	if err != nil {
		slog.Error("failed to resolve http server", "error", err)
		os.Exit(1)
	}

	done := make(chan struct{})
	go func() {
		if err := server.ListenAndServe(); err != nil {
			slog.Error("http server failed", "error", err)
		}
		close(done)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("http shutdown failed", "error", err)
		}
	case <-done:
	}
}
