// Package service contains the application services that tie the domain
// to the outbound adapters.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campuslink/campuslink/internal/adapter/outbound/authgw"
	"github.com/campuslink/campuslink/internal/adapter/outbound/journal"
	"github.com/campuslink/campuslink/internal/domain/auth"
	"github.com/campuslink/campuslink/internal/domain/route"
	"github.com/campuslink/campuslink/internal/domain/session"
	"github.com/campuslink/campuslink/internal/metrics"
)

// AuthGateway is the slice of the auth gateway client the session
// service needs.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (auth.Identity, string, error)
	Register(ctx context.Context, req authgw.RegisterRequest) (auth.Identity, error)
}

// ActivityJournal records session and navigation events. Appends are
// best-effort; failures are counted and logged, never surfaced.
type ActivityJournal interface {
	Append(ctx context.Context, e journal.Entry) error
}

// SessionService orchestrates login, logout and registration across the
// auth gateway, the session manager, the activity journal and metrics.
type SessionService struct {
	gateway AuthGateway
	manager *session.Manager
	journal ActivityJournal // may be nil
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewSessionService creates a SessionService. journal may be nil when
// journaling is disabled.
func NewSessionService(gateway AuthGateway, manager *session.Manager, j ActivityJournal, m *metrics.Metrics, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		gateway: gateway,
		manager: manager,
		journal: j,
		metrics: m,
		logger:  logger,
	}
}

// Hydrate derives the session from the credential store. Called once at
// startup before any guarded navigation.
func (s *SessionService) Hydrate(ctx context.Context) session.Session {
	sess := s.manager.Hydrate()

	result := "anonymous"
	if sess.Authenticated {
		result = "authenticated"
	}
	if s.metrics != nil {
		s.metrics.HydrationsTotal.WithLabelValues(result).Inc()
		s.metrics.SessionVersion.Set(float64(sess.Version))
	}
	s.record(ctx, journal.Entry{
		Kind:     journal.KindHydrate,
		Username: sess.Username,
		Detail:   result,
	})
	return sess
}

// Current returns the session snapshot.
func (s *SessionService) Current() session.Session {
	return s.manager.Current()
}

// Login authenticates against the gateway and transitions the session.
// The response is discarded with session.ErrStaleLogin when the session
// transitioned while the request was in flight.
func (s *SessionService) Login(ctx context.Context, username, password string) (session.Session, error) {
	tag := s.manager.BeginLogin()

	identity, token, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		s.countLogin(loginResult(err))
		s.record(ctx, journal.Entry{
			Kind:     journal.KindLoginFailed,
			Username: username,
			Detail:   err.Error(),
		})
		return s.manager.Current(), err
	}

	sess, err := s.manager.CompleteLogin(tag, identity, token)
	if err != nil {
		s.countLogin(loginResult(err))
		s.record(ctx, journal.Entry{
			Kind:     journal.KindLoginFailed,
			Username: username,
			Detail:   err.Error(),
		})
		return sess, err
	}

	s.countLogin("ok")
	if s.metrics != nil {
		s.metrics.SessionVersion.Set(float64(sess.Version))
	}
	s.record(ctx, journal.Entry{
		Kind:     journal.KindLogin,
		Username: sess.Username,
		TokenFP:  authgw.TokenFingerprint(sess.Token),
	})
	s.logger.Info("logged in", "username", sess.Username)
	return sess, nil
}

// Logout clears the credential store and resets the session. The session
// is reset even if the store clear fails.
func (s *SessionService) Logout(ctx context.Context) (session.Session, error) {
	prev := s.manager.Current()
	sess, err := s.manager.Logout()
	if err != nil {
		s.logger.Warn("credential clear failed during logout", "error", err)
	}

	if s.metrics != nil {
		s.metrics.SessionVersion.Set(float64(sess.Version))
	}
	s.record(ctx, journal.Entry{
		Kind:     journal.KindLogout,
		Username: prev.Username,
	})
	return sess, err
}

// Register creates a new account. Registration does not log the user in;
// the caller follows up with Login.
func (s *SessionService) Register(ctx context.Context, req authgw.RegisterRequest) (auth.Identity, error) {
	identity, err := s.gateway.Register(ctx, req)
	if err != nil {
		return auth.Identity{}, err
	}

	s.record(ctx, journal.Entry{
		Kind:     journal.KindRegister,
		Username: identity.Username,
	})
	s.logger.Info("account registered", "username", identity.Username)
	return identity, nil
}

// GuardObserver returns a route observer that records guard decisions in
// metrics and, for redirects, the activity journal.
func (s *SessionService) GuardObserver() route.Observer {
	return func(spec route.Spec, d route.Decision) {
		if s.metrics != nil {
			s.metrics.GuardDecisions.WithLabelValues(spec.Path, string(d.Action)).Inc()
		}
		if d.Action == route.ActionRedirect {
			s.record(context.Background(), journal.Entry{
				Kind:     journal.KindRedirect,
				Username: s.manager.Current().Username,
				Detail:   spec.Path + " -> " + d.Target,
			})
		}
	}
}

func (s *SessionService) countLogin(result string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(result).Inc()
	}
}

// loginResult buckets a login error for the metrics label.
func loginResult(err error) string {
	switch {
	case errors.Is(err, authgw.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, authgw.ErrUnreachable):
		return "unreachable"
	case errors.Is(err, session.ErrStaleLogin):
		return "stale"
	default:
		return "error"
	}
}

// record appends a journal entry, counting and logging failures.
func (s *SessionService) record(ctx context.Context, e journal.Entry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Append(ctx, e); err != nil {
		if s.metrics != nil {
			s.metrics.JournalFailures.Inc()
		}
		s.logger.Warn("journal append failed", "kind", e.Kind, "error", err)
	}
}
