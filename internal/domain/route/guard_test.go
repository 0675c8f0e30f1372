package route

import (
	"strings"
	"testing"

	"github.com/campuslink/campuslink/internal/domain/session"
)

func testRoutes() []Spec {
	return []Spec{
		{Path: "/", Name: "login", Access: AccessEntry},
		{Path: "/dashboard", Name: "dashboard", Access: AccessAuthenticated},
		{Path: "/events", Name: "events", Access: AccessAuthenticated},
		{Path: "/about", Name: "about", Access: AccessPublic},
	}
}

func authedSession() session.Session {
	return session.Session{
		Authenticated: true,
		Username:      "jsmith",
		Token:         "abc",
	}
}

func mustGuard(t *testing.T, cfg GuardConfig, routes []Spec) *Guard {
	t.Helper()
	g, err := NewGuard(cfg, routes)
	if err != nil {
		t.Fatalf("NewGuard() error: %v", err)
	}
	return g
}

func TestGuardProtectedRouteEmptySession(t *testing.T) {
	t.Parallel()

	g := mustGuard(t, GuardConfig{EntryPath: "/"}, testRoutes())

	d := g.Check(Spec{Path: "/dashboard", Access: AccessAuthenticated}, session.Session{})
	if d.Action != ActionRedirect {
		t.Fatalf("decision = %v, want redirect", d)
	}
	if d.Target != "/" {
		t.Errorf("redirect target = %q, want %q", d.Target, "/")
	}
}

func TestGuardProtectedRouteAuthenticated(t *testing.T) {
	t.Parallel()

	g := mustGuard(t, GuardConfig{}, testRoutes())

	d := g.Check(Spec{Path: "/dashboard", Access: AccessAuthenticated}, authedSession())
	if d.Action != ActionRender {
		t.Errorf("decision = %v, want render", d)
	}
}

func TestGuardPublicRoute(t *testing.T) {
	t.Parallel()

	g := mustGuard(t, GuardConfig{}, testRoutes())

	if d := g.Check(Spec{Path: "/about", Access: AccessPublic}, session.Session{}); d.Action != ActionRender {
		t.Errorf("public route for empty session = %v, want render", d)
	}
	if d := g.Check(Spec{Path: "/about", Access: AccessPublic}, authedSession()); d.Action != ActionRender {
		t.Errorf("public route for authed session = %v, want render", d)
	}
}

func TestGuardEntryPolicyRedirect(t *testing.T) {
	t.Parallel()

	g := mustGuard(t, GuardConfig{
		EntryPath:   "/",
		HomePath:    "/dashboard",
		EntryPolicy: EntryRedirect,
	}, testRoutes())

	entry := Spec{Path: "/", Access: AccessEntry}

	if d := g.Check(entry, session.Session{}); d.Action != ActionRender {
		t.Errorf("entry for empty session = %v, want render", d)
	}
	d := g.Check(entry, authedSession())
	if d.Action != ActionRedirect || d.Target != "/dashboard" {
		t.Errorf("entry for authed session = %v, want redirect to /dashboard", d)
	}
}

func TestGuardEntryPolicyRender(t *testing.T) {
	t.Parallel()

	// The alternative product behavior: the login page always renders.
	g := mustGuard(t, GuardConfig{EntryPolicy: EntryRender}, testRoutes())

	d := g.Check(Spec{Path: "/", Access: AccessEntry}, authedSession())
	if d.Action != ActionRender {
		t.Errorf("entry under render policy = %v, want render", d)
	}
}

func TestGuardDefaultsEntryPolicyToRedirect(t *testing.T) {
	t.Parallel()

	g := mustGuard(t, GuardConfig{}, testRoutes())

	d := g.Check(Spec{Path: "/", Access: AccessEntry}, authedSession())
	if d.Action != ActionRedirect {
		t.Errorf("default entry policy = %v, want redirect", d)
	}
}

func TestGuardConditionAllows(t *testing.T) {
	t.Parallel()

	routes := []Spec{{
		Path:      "/groups/manage",
		Access:    AccessAuthenticated,
		Condition: `session.username != ""`,
	}}
	g := mustGuard(t, GuardConfig{}, routes)

	d := g.Check(routes[0], authedSession())
	if d.Action != ActionRender {
		t.Errorf("decision = %v, want render", d)
	}
}

func TestGuardConditionDeniesClosed(t *testing.T) {
	t.Parallel()

	routes := []Spec{{
		Path:      "/groups/manage",
		Access:    AccessAuthenticated,
		Condition: `session.username == "someone-else"`,
	}}
	g := mustGuard(t, GuardConfig{EntryPath: "/"}, routes)

	d := g.Check(routes[0], authedSession())
	if d.Action != ActionRedirect || d.Target != "/" {
		t.Errorf("decision = %v, want redirect to entry", d)
	}
}

func TestGuardConditionCompileErrors(t *testing.T) {
	t.Parallel()

	routes := []Spec{{
		Path:      "/broken",
		Access:    AccessAuthenticated,
		Condition: `session.username ==`,
	}}
	if _, err := NewGuard(GuardConfig{}, routes); err == nil {
		t.Error("NewGuard() should reject an unparseable condition")
	}
}

func TestGuardConditionTooLong(t *testing.T) {
	t.Parallel()

	routes := []Spec{{
		Path:      "/long",
		Access:    AccessPublic,
		Condition: `session.username == "` + strings.Repeat("x", maxConditionLength) + `"`,
	}}
	if _, err := NewGuard(GuardConfig{}, routes); err == nil {
		t.Error("NewGuard() should reject an oversized condition")
	}
}

func TestGuardRejectsUnknownEntryPolicy(t *testing.T) {
	t.Parallel()

	if _, err := NewGuard(GuardConfig{EntryPolicy: "maybe"}, nil); err == nil {
		t.Error("NewGuard() should reject an unknown entry policy")
	}
}
