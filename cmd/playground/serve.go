package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-playground/components/playground"
	"github.com/goliatone/go-playground/components/playground/gorouter"
	"github.com/goliatone/go-playground/components/playground/httpapi"
	"github.com/goliatone/go-playground/components/playground/queries"
	"github.com/goliatone/go-playground/pkg/config"
)

type serveCmd struct {
	Config string `short:"c" type:"path" help:"Optional YAML config file. PLAYGROUND_* variables override it."`
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	logger := cfg.Logger()
	telemetry := playground.NewSlogTelemetry(logger)

	registry, err := loadRegistry(cfg.ManifestPath)
	if err != nil {
		return err
	}

	broadcast := playground.NewBroadcastHook()
	var seed []playground.TableRecord
	if !cfg.SeedRows {
		seed = []playground.TableRecord{}
	}
	service := playground.NewService(playground.Options{
		Catalog:      registry,
		RefreshHook:  playground.MultiHook{broadcast, eventLogger{logger: logger}},
		Telemetry:    telemetry,
		DelaySeconds: cfg.DelaySeconds,
		SeedRecords:  seed,
	})

	sessions := playground.NewSessionManager(playground.SessionOptions{
		HashKey:     []byte(cfg.Session.HashKey),
		BlockKey:    []byte(cfg.Session.BlockKey),
		CookieName:  cfg.Session.CookieName,
		MaxAge:      cfg.Session.MaxAge,
		Credentials: cfg.Credentials,
		Telemetry:   telemetry,
	})

	renderer, err := playground.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("playground: template renderer: %w", err)
	}
	chart := playground.NewActivityChart(service,
		playground.WithActivityCache(playground.NewChartCache(cfg.ChartTTL)),
	)
	controller := playground.NewController(playground.ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Chart:    chart,
	})

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: controller,
		API:        httpapi.NewCommandExecutor(service, sessions, telemetry),
		Broadcast:  broadcast,
		Snapshot:   queries.NewSnapshotQuery(service),
		Sessions:   queries.NewSessionQuery(sessions),
		BasePath:   cfg.BasePath,
	}); err != nil {
		return fmt.Errorf("playground: register routes: %w", err)
	}

	logger.InfoContext(ctx, "playground ready",
		slog.String("addr", cfg.Addr),
		slog.String("base_path", cfg.BasePath),
		slog.Int("delay_seconds", cfg.DelaySeconds),
	)
	return server.Serve(cfg.Addr)
}

func loadRegistry(manifestPath string) (*playground.Registry, error) {
	registry := playground.NewRegistry()
	if manifestPath == "" {
		return registry, nil
	}
	if _, err := registry.LoadManifestFile(manifestPath); err != nil {
		return nil, err
	}
	return registry, nil
}

// eventLogger traces every refresh event at debug level.
type eventLogger struct {
	logger *slog.Logger
}

func (l eventLogger) PlaygroundUpdated(ctx context.Context, event playground.PlaygroundEvent) error {
	l.logger.DebugContext(ctx, "playground event",
		slog.String("kind", string(event.Kind)),
		slog.String("widget", string(event.Widget)),
		slog.String("text", event.Text),
	)
	return nil
}
