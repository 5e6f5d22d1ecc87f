// Package guard gates screens on the session: it either waits for the
// bootstrap, sends the user elsewhere, or lets the screen render.
package guard

import (
	"context"

	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/client/session"
)

type Kind int

const (
	Loading Kind = iota
	Redirect
	Allow
)

func (k Kind) String() string {
	switch k {
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	default:
		return "unknown"
	}
}

type Requirement struct {
	Admin bool
	// LoginPath overrides where anonymous users are sent. Defaults to
	// routes.Login.
	LoginPath string
}

type Decision struct {
	Kind   Kind
	Intent routes.Intent
}

// Decide is the single gating rule shared by Protected and WithAuth.
func Decide(snap session.Snapshot, location string, req Requirement) Decision {
	if !snap.Bootstrapped || snap.Loading {
		return Decision{Kind: Loading}
	}

	user := snap.User()
	if user == nil {
		to := req.LoginPath
		if to == "" {
			to = routes.Login
		}
		return Decision{Kind: Redirect, Intent: routes.Redirect(to, routes.Clean(location))}
	}

	// A profile decoded from an unverified token never grants admin.
	if req.Admin && (user.Derived || !user.IsAdmin) {
		return Decision{Kind: Redirect, Intent: routes.Redirect(routes.Unauthorized, routes.Clean(location))}
	}

	return Decision{Kind: Allow}
}

// Screen renders one route and returns where to go next (zero to stay).
type Screen interface {
	Render(ctx context.Context) (routes.Intent, error)
}

type ScreenFunc func(ctx context.Context) (routes.Intent, error)

func (f ScreenFunc) Render(ctx context.Context) (routes.Intent, error) {
	return f(ctx)
}

// Env is what a guarded screen consults before rendering.
type Env struct {
	State *session.State
	Nav   interface{ Location() string }
	// Loading is shown while the session is not settled. Optional.
	Loading Screen
}

// Protected is the declarative form: a screen plus its requirements.
type Protected struct {
	Env          Env
	Screen       Screen
	RequireAdmin bool
	RedirectTo   string
}

func (p Protected) Render(ctx context.Context) (routes.Intent, error) {
	return render(ctx, p.Env, p.Screen, Requirement{Admin: p.RequireAdmin, LoginPath: p.RedirectTo})
}

// WithAuth wraps screen with the same checks as Protected.
func WithAuth(env Env, screen Screen, requireAdmin bool) Screen {
	return ScreenFunc(func(ctx context.Context) (routes.Intent, error) {
		return render(ctx, env, screen, Requirement{Admin: requireAdmin})
	})
}

func render(ctx context.Context, env Env, screen Screen, req Requirement) (routes.Intent, error) {
	d := Decide(env.State.Snapshot(), env.Nav.Location(), req)
	switch d.Kind {
	case Loading:
		if env.Loading != nil {
			return env.Loading.Render(ctx)
		}
		return routes.Intent{}, nil
	case Redirect:
		return d.Intent, nil
	default:
		return screen.Render(ctx)
	}
}
