package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/campuslink/campuslink/internal/adapter/outbound/authgw"
	"github.com/campuslink/campuslink/internal/adapter/outbound/campus"
	"github.com/campuslink/campuslink/internal/adapter/outbound/credfile"
	"github.com/campuslink/campuslink/internal/adapter/outbound/journal"
	"github.com/campuslink/campuslink/internal/config"
	"github.com/campuslink/campuslink/internal/domain/route"
	"github.com/campuslink/campuslink/internal/domain/session"
	"github.com/campuslink/campuslink/internal/metrics"
	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/internal/telemetry"
)

// app holds the wired components for one CLI invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	sessions      *service.SessionService
	router        *route.Router
	events        *campus.EventsClient
	groups        *campus.GroupsClient
	notifications *campus.NotificationsClient

	journal       *journal.Journal // nil when disabled
	shutdownTrace func(context.Context) error
}

// buildApp loads configuration and wires the full component graph.
// The session is hydrated from the credential store before returning,
// so guarded commands see the persisted state immediately.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfigRaw()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if devMode {
		cfg.DevMode = true
	}
	cfg.SetDevDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Debug("loaded config", "file", configFile)
	}

	shutdownTrace, err := telemetry.Setup(ctx, "campuslink", cfg.Telemetry.Enabled, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("telemetry setup failed: %w", err)
	}

	m := metrics.New(prometheus.NewRegistry())

	store := credfile.New(cfg.Storage.Dir, logger)
	manager := session.NewManager(store, logger)

	gateway := authgw.NewClient(
		authgw.WithBaseURL(cfg.Services.Auth),
		authgw.WithTimeout(cfg.RequestTimeout()),
		authgw.WithLogger(logger),
	)

	var j *journal.Journal
	if cfg.Journal.Enabled {
		j, err = journal.Open(cfg.Journal.Path, logger)
		if err != nil {
			// The journal is an observability aid; a broken local database
			// must not lock the user out of the CLI.
			logger.Warn("activity journal unavailable", "path", cfg.Journal.Path, "error", err)
			j = nil
		}
	}

	var sessionsJournal service.ActivityJournal
	if j != nil {
		sessionsJournal = j
	}
	sessions := service.NewSessionService(gateway, manager, sessionsJournal, m, logger)

	specs := config.DefaultRouteTable()
	if cfg.Routes.File != "" {
		specs, err = config.LoadRouteTable(cfg.Routes.File)
		if err != nil {
			return nil, err
		}
	}
	guard, err := route.NewGuard(route.GuardConfig{
		EntryPath:   cfg.Routes.EntryPath,
		HomePath:    cfg.Routes.HomePath,
		EntryPolicy: route.EntryPolicy(cfg.Routes.EntryPolicy),
	}, specs)
	if err != nil {
		return nil, fmt.Errorf("route guard setup failed: %w", err)
	}
	router, err := route.NewRouter(specs, guard, manager, logger)
	if err != nil {
		return nil, fmt.Errorf("router setup failed: %w", err)
	}
	router.Observe(sessions.GuardObserver())

	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}

	a := &app{
		cfg:           cfg,
		logger:        logger,
		sessions:      sessions,
		router:        router,
		events:        campus.NewEventsClient(cfg.Services.Events, httpClient, logger),
		groups:        campus.NewGroupsClient(cfg.Services.Groups, httpClient, logger),
		notifications: campus.NewNotificationsClient(cfg.Services.Notifications, httpClient, logger),
		journal:       j,
		shutdownTrace: shutdownTrace,
	}

	a.sessions.Hydrate(ctx)
	return a, nil
}

// close flushes traces and closes the journal.
func (a *app) close(ctx context.Context) {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.Warn("journal close failed", "error", err)
		}
	}
	if a.shutdownTrace != nil {
		if err := a.shutdownTrace(ctx); err != nil {
			a.logger.Warn("trace flush failed", "error", err)
		}
	}
}

// visit runs the route guard for path and returns an error when the
// navigation redirects instead of rendering. Page commands call this
// before touching any backend.
func (a *app) visit(path string) error {
	decision, err := a.router.Navigate(path)
	if err != nil {
		return err
	}
	if decision.Action == route.ActionRedirect {
		if decision.Target == a.cfg.Routes.EntryPath {
			return fmt.Errorf("not signed in (run \"campuslink login <username>\")")
		}
		return fmt.Errorf("redirected to %s: %s", decision.Target, decision.Reason)
	}
	return nil
}

// username returns the signed-in username, failing when anonymous.
func (a *app) username() (string, error) {
	sess := a.sessions.Current()
	if !sess.Authenticated {
		return "", fmt.Errorf("not signed in (run \"campuslink login <username>\")")
	}
	return sess.Username, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
