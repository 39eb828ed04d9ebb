package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ttv-club/matchday/api/handlers"
	"github.com/ttv-club/matchday/app/eventbus"
	archiveservice "github.com/ttv-club/matchday/app/modules/archive/application"
	archivesubscribers "github.com/ttv-club/matchday/app/modules/archive/infrastructure/subscribers"
	rosterservice "github.com/ttv-club/matchday/app/modules/roster/application"
	sessionservice "github.com/ttv-club/matchday/app/modules/session/application"
	"github.com/ttv-club/matchday/app/shared/attr"
	archivemetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/archive"
	rostermetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/roster"
	sessionmetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/session"
	"github.com/ttv-club/matchday/config"
	"github.com/ttv-club/matchday/db/bundb"
)

// App wires configuration, storage, the event bus, the module services and
// the HTTP API together.
type App struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	EventBus eventbus.EventBus

	RosterService  *rosterservice.RosterService
	SessionService *sessionservice.SessionService
	ArchiveService *archiveservice.ArchiveService

	Router chi.Router

	db         *bundb.DBService
	subscriber *archivesubscribers.ArchiveSubscriber
	httpServer *http.Server
}

// NewApp initializes the application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := newLogger(cfg.Observability.LogLevel)

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus := eventbus.New(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Tracing is wired through the otel API; a real provider can replace the
	// noop one without touching the services.
	tracer := noop.NewTracerProvider().Tracer("matchday")
	clock := clockwork.NewRealClock()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	rosterSvc := rosterservice.NewRosterService(
		dbService.PlayerDB, bus, logger,
		rostermetrics.NewPrometheusMetrics(registry), tracer, dbService.GetDB(),
	)
	sessionSvc := sessionservice.NewSessionService(
		dbService.SessionDB, dbService.PlayerDB, bus, logger,
		sessionmetrics.NewPrometheusMetrics(registry), tracer, dbService.GetDB(),
		clock, rng,
	)
	archiveSvc := archiveservice.NewArchiveService(
		dbService.ArchiveDB, bus, logger,
		archivemetrics.NewPrometheusMetrics(registry), tracer, dbService.GetDB(),
	)

	router := handlers.NewRouter(
		handlers.NewRosterHandler(rosterSvc),
		handlers.NewSessionHandler(sessionSvc),
		handlers.NewArchiveHandler(archiveSvc),
		registry,
		cfg.HTTP.RequestsPerSecond,
		cfg.HTTP.Burst,
	)

	return &App{
		Cfg:            cfg,
		Logger:         logger,
		EventBus:       bus,
		RosterService:  rosterSvc,
		SessionService: sessionSvc,
		ArchiveService: archiveSvc,
		Router:         router,
		db:             dbService,
		subscriber:     archivesubscribers.NewArchiveSubscriber(archiveSvc, logger),
	}, nil
}

// Run starts the archive subscriber and the HTTP server, blocking until the
// context is canceled or the server fails.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := a.subscriber.Run(ctx, a.EventBus); err != nil {
			a.Logger.Error("Archive subscriber stopped", attr.Error(err))
		}
	}()

	a.httpServer = &http.Server{
		Addr:              a.Cfg.HTTP.Address,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening", attr.String("address", a.Cfg.HTTP.Address))
		errCh <- a.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	}
}

// Close shuts everything down gracefully.
func (a *App) Close(ctx context.Context) error {
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.Logger.Error("Failed to shut down HTTP server", attr.Error(err))
		}
	}
	if err := a.EventBus.Close(); err != nil {
		a.Logger.Error("Failed to close event bus", attr.Error(err))
	}
	if err := a.db.GetDB().Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
