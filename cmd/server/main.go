package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fr0stylo/nbgate/internal/adapters/sqlite"
	"github.com/fr0stylo/nbgate/internal/app/services"
	"github.com/fr0stylo/nbgate/internal/config"
	"github.com/fr0stylo/nbgate/internal/db"
	"github.com/fr0stylo/nbgate/internal/events"
	"github.com/fr0stylo/nbgate/internal/metrics"
	"github.com/fr0stylo/nbgate/internal/netbilling"
	"github.com/fr0stylo/nbgate/internal/observability"
	"github.com/fr0stylo/nbgate/internal/server"
	"github.com/fr0stylo/nbgate/internal/server/routes"
	"github.com/fr0stylo/nbgate/internal/sitecache"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(os.Stdout, cfg.Logging.Format, cfg.Logging.Level)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOpenTelemetry(ctx, log, observability.OpenTelemetryConfig{
		Enabled:        cfg.Observability.Enabled,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		TraceHeaders:   cfg.Observability.OTLPTraceHeaders,
		MetricHeaders:  cfg.Observability.OTLPMetricHeaders,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVer,
		SamplingRatio:  cfg.Observability.SamplingRatio,
		MetricsConsole: cfg.Observability.MetricsConsole,
	})
	if err != nil {
		return fmt.Errorf("setup opentelemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(flushCtx); err != nil {
			log.Error("Failed to flush telemetry", "error", err)
		}
	}()

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()
	if cfg.Database.LogTiming {
		go database.LogLatencyStats(ctx, log, time.Minute)
	}

	store := sqlite.NewStore(database)
	sites := sitecache.New(store, cfg.SiteCache.TTL)
	publisher := events.NewPublisher(events.Config{
		Sink:   cfg.Events.Sink,
		Source: cfg.Events.Source,
		Secret: cfg.Events.Secret,
	}, log)
	if !publisher.Enabled() {
		log.Info("NBGATE_EVENTS_SINK not set, hand-off events are dropped")
	}

	membership := services.NewMembershipService(store, publisher, log)
	protocol := netbilling.NewProtocol(sites, membership, netbilling.WithLogger(log))

	srv := server.New(log, cfg.Observability.ServiceName)
	srv.RegisterRouter(routes.NewHealthRoutes(database, prometheus.DefaultGatherer))
	srv.RegisterRouter(routes.NewMemberRoutes(protocol, cfg.Server.MemberPath))
	srv.RegisterRouter(routes.NewPaymentRoutes(sites, publisher, routes.PaymentConfig{
		PublicURL: cfg.Server.PublicURL,
		HostedURL: cfg.Netbilling.HostedURL,
	}, log))

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("Starting server", "port", cfg.Server.Port, "member_path", cfg.Server.MemberPath)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
