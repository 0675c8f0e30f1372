package route

import (
	"fmt"
	"log/slog"

	"github.com/campuslink/campuslink/internal/domain/session"
)

// ErrUnknownRoute is returned by Navigate for a path with no route.
var ErrUnknownRoute = fmt.Errorf("unknown route")

// SessionSource is the router's read-only view of the session. The
// session Manager satisfies it; nothing else should.
type SessionSource interface {
	Current() session.Session
}

// Observer is notified of every guard decision. Used for metrics and the
// activity journal; observers must not block.
type Observer func(spec Spec, decision Decision)

// Router maps paths to route specs and composes them with the guard.
// Navigation reads the session at decision time, so a transition completed
// before Navigate is always observed (no stale-read race).
type Router struct {
	routes    map[string]Spec
	guard     *Guard
	sessions  SessionSource
	logger    *slog.Logger
	observers []Observer
}

// NewRouter builds a router over the given route table.
// Duplicate paths are a configuration error.
func NewRouter(specs []Spec, guard *Guard, sessions SessionSource, logger *slog.Logger) (*Router, error) {
	if logger == nil {
		logger = slog.Default()
	}
	routes := make(map[string]Spec, len(specs))
	for _, s := range specs {
		if !s.Access.IsValid() {
			return nil, fmt.Errorf("route %s: unknown access %q", s.Path, s.Access)
		}
		if _, dup := routes[s.Path]; dup {
			return nil, fmt.Errorf("duplicate route path %s", s.Path)
		}
		routes[s.Path] = s
	}
	return &Router{
		routes:   routes,
		guard:    guard,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// Observe registers a decision observer.
func (r *Router) Observe(obs Observer) {
	r.observers = append(r.observers, obs)
}

// Navigate evaluates one navigation to path and returns the guard
// decision. It is synchronous and performs no I/O beyond reading the
// in-memory session.
func (r *Router) Navigate(path string) (Decision, error) {
	spec, ok := r.routes[path]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	sess := r.sessions.Current()
	decision := r.guard.Check(spec, sess)

	r.logger.Debug("navigation guarded",
		"path", path,
		"route", spec.Name,
		"decision", decision.String(),
		"authenticated", sess.Authenticated)

	for _, obs := range r.observers {
		obs(spec, decision)
	}
	return decision, nil
}

// Lookup returns the route spec for a path.
func (r *Router) Lookup(path string) (Spec, bool) {
	spec, ok := r.routes[path]
	return spec, ok
}
