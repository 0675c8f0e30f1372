package route

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/campuslink/campuslink/internal/domain/session"
)

// maxConditionLength bounds route condition expressions.
const maxConditionLength = 1024

// GuardConfig carries the paths and the entry-route policy the guard
// needs to compute redirect targets.
type GuardConfig struct {
	// EntryPath is where unauthenticated visitors are sent (the login page).
	EntryPath string
	// HomePath is where authenticated visitors are sent away from the
	// entry route under EntryRedirect.
	HomePath string
	// EntryPolicy governs the entry route for authenticated visitors.
	// Defaults to EntryRedirect.
	EntryPolicy EntryPolicy
}

// Guard decides render-or-redirect for a (route, session) pair. It is a
// pure function of its inputs: conditions are compiled once at
// construction and evaluated in memory, and no decision ever waits on
// network I/O.
type Guard struct {
	entryPath   string
	homePath    string
	entryPolicy EntryPolicy
	programs    map[string]cel.Program
}

// NewGuard builds a guard for the given route table, compiling any CEL
// conditions up front so Check never fails at navigation time.
func NewGuard(cfg GuardConfig, routes []Spec) (*Guard, error) {
	if cfg.EntryPath == "" {
		cfg.EntryPath = "/"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/dashboard"
	}
	if cfg.EntryPolicy == "" {
		cfg.EntryPolicy = EntryRedirect
	}
	if !cfg.EntryPolicy.IsValid() {
		return nil, fmt.Errorf("unknown entry policy %q", cfg.EntryPolicy)
	}

	g := &Guard{
		entryPath:   cfg.EntryPath,
		homePath:    cfg.HomePath,
		entryPolicy: cfg.EntryPolicy,
		programs:    make(map[string]cel.Program),
	}

	env, err := newSessionEnv()
	if err != nil {
		return nil, fmt.Errorf("create condition environment: %w", err)
	}
	for _, r := range routes {
		if r.Condition == "" {
			continue
		}
		if len(r.Condition) > maxConditionLength {
			return nil, fmt.Errorf("route %s: condition too long (%d chars, max %d)",
				r.Path, len(r.Condition), maxConditionLength)
		}
		prg, err := compileCondition(env, r.Condition)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", r.Path, err)
		}
		g.programs[r.Path] = prg
	}
	return g, nil
}

// Check returns the decision for one navigation. The protected-page
// invariant holds here: an authenticated-only route never renders for an
// empty session, so no page component can mount with a null identity.
func (g *Guard) Check(spec Spec, sess session.Session) Decision {
	switch spec.Access {
	case AccessEntry:
		if sess.Authenticated && g.entryPolicy == EntryRedirect {
			return RedirectTo(g.homePath, "already authenticated")
		}
		return Render()

	case AccessAuthenticated:
		if !sess.Authenticated {
			return RedirectTo(g.entryPath, "authentication required")
		}
		return g.checkCondition(spec, sess)

	default: // AccessPublic
		return g.checkCondition(spec, sess)
	}
}

// checkCondition evaluates the route's compiled condition, if any.
// A false result or an evaluation failure redirects to the entry route;
// failing closed keeps a misconfigured condition from exposing a page.
func (g *Guard) checkCondition(spec Spec, sess session.Session) Decision {
	prg, ok := g.programs[spec.Path]
	if !ok {
		return Render()
	}

	result, _, err := prg.Eval(sessionActivation(sess))
	if err != nil {
		return RedirectTo(g.entryPath, fmt.Sprintf("condition error: %v", err))
	}
	allowed, ok := result.Value().(bool)
	if !ok || !allowed {
		return RedirectTo(g.entryPath, "condition not met")
	}
	return Render()
}

// newSessionEnv creates the CEL environment route conditions compile
// against. Conditions see a single `session` map; the token is deliberately
// not exposed to expressions.
func newSessionEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("session", cel.MapType(cel.StringType, cel.DynType)),
	)
}

// compileCondition parses and type-checks a condition expression.
func compileCondition(env *cel.Env, expr string) (cel.Program, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid condition: %w", issues.Err())
	}
	prg, err := env.Program(ast, cel.EvalOptions(cel.OptOptimize))
	if err != nil {
		return nil, fmt.Errorf("condition program: %w", err)
	}
	return prg, nil
}

// sessionActivation maps a session into the variables conditions can read.
func sessionActivation(sess session.Session) map[string]any {
	return map[string]any{
		"session": map[string]any{
			"authenticated": sess.Authenticated,
			"username":      sess.Username,
			"first_name":    sess.FirstName,
			"last_name":     sess.LastName,
		},
	}
}
