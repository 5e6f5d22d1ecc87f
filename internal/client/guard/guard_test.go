package guard

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventsync/eventsync/internal/client/client"
	"github.com/eventsync/eventsync/internal/client/models"
	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/client/session"
)

func snapshot(user *models.UserProfile) session.Snapshot {
	s := session.Snapshot{Bootstrapped: true}
	if user != nil {
		s.Session = models.Session{Token: "tok", User: user}
	}
	return s
}

func TestDecide(t *testing.T) {
	member := &models.UserProfile{ID: "u1"}
	admin := &models.UserProfile{ID: "u2", IsAdmin: true}
	derivedAdmin := &models.UserProfile{ID: "u3", IsAdmin: true, Derived: true}

	cases := []struct {
		name string
		snap session.Snapshot
		loc  string
		req  Requirement
		want Decision
	}{
		{"not bootstrapped", session.Snapshot{}, "/calendar", Requirement{}, Decision{Kind: Loading}},
		{"loading", session.Snapshot{Bootstrapped: true, Loading: true}, "/calendar", Requirement{}, Decision{Kind: Loading}},
		{"anonymous", snapshot(nil), "/calendar", Requirement{},
			Decision{Kind: Redirect, Intent: routes.Intent{To: "/login", From: "/calendar", Replace: true}}},
		{"anonymous custom login", snapshot(nil), "/profile", Requirement{LoginPath: "/signup"},
			Decision{Kind: Redirect, Intent: routes.Intent{To: "/signup", From: "/profile", Replace: true}}},
		{"member on admin", snapshot(member), "/admin", Requirement{Admin: true},
			Decision{Kind: Redirect, Intent: routes.Intent{To: "/unauthorized", From: "/admin", Replace: true}}},
		{"member", snapshot(member), "/calendar", Requirement{}, Decision{Kind: Allow}},
		{"admin", snapshot(admin), "/admin", Requirement{Admin: true}, Decision{Kind: Allow}},
		{"derived admin on admin", snapshot(derivedAdmin), "/admin", Requirement{Admin: true},
			Decision{Kind: Redirect, Intent: routes.Intent{To: "/unauthorized", From: "/admin", Replace: true}}},
		{"derived admin on member route", snapshot(derivedAdmin), "/calendar", Requirement{}, Decision{Kind: Allow}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.snap, tc.loc, tc.req))
		})
	}
}

func TestDecide_UnverifiedTokenClaimsDoNotGrantAdmin(t *testing.T) {
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  "u9",
		"email":   "mallory@example.com",
		"isAdmin": true,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("forged"))
	require.NoError(t, err)

	u, err := client.DecodeProfile(forged, time.Now())
	require.NoError(t, err)
	require.True(t, u.IsAdmin)
	require.True(t, u.Derived)

	d := Decide(snapshot(u), "/admin", Requirement{Admin: true})
	assert.Equal(t, Redirect, d.Kind)
	assert.Equal(t, routes.Unauthorized, d.Intent.To)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

type countingScreen struct {
	calls int
	next  routes.Intent
}

func (c *countingScreen) Render(ctx context.Context) (routes.Intent, error) {
	c.calls++
	return c.next, nil
}

func newEnv(location string) (Env, *session.State) {
	state := session.NewState()
	return Env{State: state, Nav: routes.NewNavigator(location)}, state
}

func TestProtectedAndWithAuthAgree(t *testing.T) {
	users := map[string]*models.UserProfile{
		"anonymous": nil,
		"member":    {ID: "u1"},
		"admin":     {ID: "u2", IsAdmin: true},
	}
	for name, user := range users {
		for _, requireAdmin := range []bool{false, true} {
			env, state := newEnv("/admin")
			state.MarkBootstrapped()
			if user != nil {
				state.SetSession("tok", user)
			}

			a, b := &countingScreen{}, &countingScreen{}
			ia, errA := Protected{Env: env, Screen: a, RequireAdmin: requireAdmin}.Render(context.Background())
			ib, errB := WithAuth(env, b, requireAdmin).Render(context.Background())

			require.NoError(t, errA)
			require.NoError(t, errB)
			assert.Equal(t, ia, ib, "%s admin=%v", name, requireAdmin)
			assert.Equal(t, a.calls, b.calls, "%s admin=%v", name, requireAdmin)
		}
	}
}

func TestProtected_RendersScreenWhenAllowed(t *testing.T) {
	env, state := newEnv("/calendar")
	state.MarkBootstrapped()
	state.SetSession("tok", &models.UserProfile{ID: "u1"})

	screen := &countingScreen{next: routes.Go("/profile")}
	in, err := Protected{Env: env, Screen: screen}.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, screen.calls)
	assert.Equal(t, "/profile", in.To)
}

func TestProtected_LoadingScreen(t *testing.T) {
	env, _ := newEnv("/calendar")
	spinner := &countingScreen{}
	env.Loading = spinner
	screen := &countingScreen{}

	in, err := Protected{Env: env, Screen: screen}.Render(context.Background())
	require.NoError(t, err)
	assert.True(t, in.IsZero())
	assert.Equal(t, 1, spinner.calls)
	assert.Zero(t, screen.calls)

	env.Loading = nil
	in, err = WithAuth(env, screen, false).Render(context.Background())
	require.NoError(t, err)
	assert.True(t, in.IsZero())
	assert.Zero(t, screen.calls)
}

func TestScreenFunc(t *testing.T) {
	f := ScreenFunc(func(ctx context.Context) (routes.Intent, error) { return routes.Go("/x"), nil })
	in, err := f.Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/x", in.To)
}
