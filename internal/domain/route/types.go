// Package route contains the navigation route table and the pure guard
// that decides, per navigation, whether a page renders or redirects.
package route

import "fmt"

// Access classifies who may visit a route.
type Access string

const (
	// AccessPublic routes render for everyone.
	AccessPublic Access = "public"
	// AccessAuthenticated routes render only for authenticated sessions;
	// everyone else is redirected to the entry route.
	AccessAuthenticated Access = "authenticated"
	// AccessEntry marks the login/landing route. Its behavior for
	// already-authenticated visitors is governed by EntryPolicy.
	AccessEntry Access = "entry"
)

// IsValid returns true if the access level is known.
func (a Access) IsValid() bool {
	switch a {
	case AccessPublic, AccessAuthenticated, AccessEntry:
		return true
	default:
		return false
	}
}

// EntryPolicy selects what the entry route does when the visitor is
// already authenticated. Both behaviors were shipped at different times;
// the choice is configuration, not code.
type EntryPolicy string

const (
	// EntryRedirect sends authenticated visitors to the home route.
	EntryRedirect EntryPolicy = "redirect"
	// EntryRender always shows the entry page, session or not.
	EntryRender EntryPolicy = "render"
)

// IsValid returns true if the policy is known.
func (p EntryPolicy) IsValid() bool {
	return p == EntryRedirect || p == EntryRender
}

// Spec describes one route in the table.
type Spec struct {
	// Path is the navigation path (e.g. "/dashboard").
	Path string
	// Name is a short human-readable route name.
	Name string
	// Access is the required capability for this route.
	Access Access
	// Condition is an optional CEL expression over the session that must
	// evaluate to true for the route to render (e.g.
	// `session.username != "guest"`). Compiled once at table load.
	Condition string
}

// Action is the kind of guard decision.
type Action string

const (
	// ActionRender lets the page render.
	ActionRender Action = "render"
	// ActionRedirect sends the visitor elsewhere before the page mounts.
	ActionRedirect Action = "redirect"
)

// Decision is the outcome of guarding one navigation. It is a plain value:
// computing it involves no I/O and no network, so it can be tested without
// any rendering environment.
type Decision struct {
	// Action is render or redirect.
	Action Action
	// Target is the redirect path. Empty when Action is ActionRender.
	Target string
	// Reason explains the decision for logs and the activity journal.
	Reason string
}

// Render returns a render decision.
func Render() Decision {
	return Decision{Action: ActionRender}
}

// RedirectTo returns a redirect decision to the given path.
func RedirectTo(target, reason string) Decision {
	return Decision{Action: ActionRedirect, Target: target, Reason: reason}
}

// String formats the decision for logs.
func (d Decision) String() string {
	if d.Action == ActionRender {
		return "render"
	}
	return fmt.Sprintf("redirect -> %s (%s)", d.Target, d.Reason)
}
