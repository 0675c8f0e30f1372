package route

import (
	"errors"
	"testing"

	"github.com/campuslink/campuslink/internal/domain/session"
)

// staticSource returns a fixed session, standing in for the manager.
type staticSource struct {
	sess session.Session
}

func (s *staticSource) Current() session.Session { return s.sess }

func newTestRouter(t *testing.T, src SessionSource) *Router {
	t.Helper()
	routes := testRoutes()
	g, err := NewGuard(GuardConfig{EntryPath: "/", HomePath: "/dashboard"}, routes)
	if err != nil {
		t.Fatalf("NewGuard() error: %v", err)
	}
	r, err := NewRouter(routes, g, src, nil)
	if err != nil {
		t.Fatalf("NewRouter() error: %v", err)
	}
	return r
}

func TestRouterNavigateUnknownPath(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &staticSource{})
	_, err := r.Navigate("/nope")
	if !errors.Is(err, ErrUnknownRoute) {
		t.Errorf("Navigate() error = %v, want ErrUnknownRoute", err)
	}
}

func TestRouterNavigateProtected(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &staticSource{})
	d, err := r.Navigate("/events")
	if err != nil {
		t.Fatalf("Navigate() error: %v", err)
	}
	if d.Action != ActionRedirect || d.Target != "/" {
		t.Errorf("decision = %v, want redirect to /", d)
	}
}

func TestRouterObservesLiveSession(t *testing.T) {
	t.Parallel()

	// A transition completed before Navigate must be visible: the router
	// reads the session at decision time, not at construction time.
	src := &staticSource{}
	r := newTestRouter(t, src)

	if d, _ := r.Navigate("/dashboard"); d.Action != ActionRedirect {
		t.Fatalf("pre-login decision = %v, want redirect", d)
	}

	src.sess = session.Session{Authenticated: true, Username: "jsmith", Token: "abc", Version: 1}
	if d, _ := r.Navigate("/dashboard"); d.Action != ActionRender {
		t.Errorf("post-login decision = %v, want render", d)
	}

	// Logout one tick later flips the same route back to redirect.
	src.sess = session.Session{Version: 2}
	d, _ := r.Navigate("/dashboard")
	if d.Action != ActionRedirect || d.Target != "/" {
		t.Errorf("post-logout decision = %v, want redirect to /", d)
	}
}

func TestRouterNotifiesObservers(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, &staticSource{})

	var gotSpec Spec
	var gotDecision Decision
	r.Observe(func(spec Spec, d Decision) {
		gotSpec = spec
		gotDecision = d
	})

	if _, err := r.Navigate("/events"); err != nil {
		t.Fatalf("Navigate() error: %v", err)
	}
	if gotSpec.Path != "/events" {
		t.Errorf("observer spec = %+v, want /events", gotSpec)
	}
	if gotDecision.Action != ActionRedirect {
		t.Errorf("observer decision = %v, want redirect", gotDecision)
	}
}

func TestRouterRejectsDuplicatePaths(t *testing.T) {
	t.Parallel()

	routes := []Spec{
		{Path: "/x", Access: AccessPublic},
		{Path: "/x", Access: AccessAuthenticated},
	}
	g, err := NewGuard(GuardConfig{}, routes)
	if err != nil {
		t.Fatalf("NewGuard() error: %v", err)
	}
	if _, err := NewRouter(routes, g, &staticSource{}, nil); err == nil {
		t.Error("NewRouter() should reject duplicate paths")
	}
}

func TestRouterRejectsUnknownAccess(t *testing.T) {
	t.Parallel()

	routes := []Spec{{Path: "/x", Access: "vip"}}
	g, err := NewGuard(GuardConfig{}, nil)
	if err != nil {
		t.Fatalf("NewGuard() error: %v", err)
	}
	if _, err := NewRouter(routes, g, &staticSource{}, nil); err == nil {
		t.Error("NewRouter() should reject unknown access levels")
	}
}
