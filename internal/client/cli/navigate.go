package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventsync/eventsync/internal/client/client"
	"github.com/eventsync/eventsync/internal/client/guard"
	"github.com/eventsync/eventsync/internal/client/routes"
)

// maxHops bounds how many intents one command may chain.
const maxHops = 8

func (a *App) registerScreens() {
	env := guard.Env{State: a.state, Nav: a.nav, Loading: guard.ScreenFunc(a.loadingScreen)}

	signupScreen := guard.ScreenFunc(a.signupScreen)
	forgotScreen := guard.ScreenFunc(a.forgotPasswordScreen)

	a.screens = map[string]guard.Screen{
		routes.Home:           guard.ScreenFunc(a.homeScreen),
		routes.Login:          guard.ScreenFunc(a.loginScreen),
		routes.Signup:         signupScreen,
		routes.VerifyEmail:    signupScreen,
		routes.CompleteSignup: signupScreen,
		routes.ForgotPassword: forgotScreen,
		routes.VerifyReset:    forgotScreen,
		routes.ResetPassword:  forgotScreen,
		routes.Unauthorized:   guard.ScreenFunc(a.unauthorizedScreen),

		routes.Calendar: guard.Protected{Env: env, Screen: guard.ScreenFunc(a.calendarScreen)},
		routes.Profile:  guard.WithAuth(env, guard.ScreenFunc(a.profileScreen), false),
		routes.Admin:    guard.Protected{Env: env, Screen: guard.ScreenFunc(a.adminScreen), RequireAdmin: true},
	}
}

// open navigates to path and renders until a screen settles.
func (a *App) open(ctx context.Context, path string, args []string) {
	a.args = args
	defer func() { a.args = nil }()

	a.nav.Apply(routes.Go(path))
	a.render(ctx)
}

// render shows the screen at the current location and follows the intents
// it returns. A hard navigation rebuilds the session from storage before
// anything else renders.
func (a *App) render(ctx context.Context) {
	for hop := 0; hop < maxHops; hop++ {
		location := a.nav.Location()
		screen, ok := a.screens[location]
		if !ok {
			fmt.Fprintf(a.out, "! No such page: %s\n", location)
			a.nav.Apply(routes.Redirect(routes.Home, ""))
			continue
		}

		in, err := screen.Render(ctx)
		if err != nil {
			a.showError(err)
		}

		if a.nav.TakeHardReload() {
			fmt.Fprintln(a.out, "! Your session has ended. Please log in again.")
			a.args = nil
			a.bootstrap(ctx)
			continue
		}
		if in.IsZero() {
			return
		}
		a.nav.Apply(in)
		a.args = nil
	}
	a.logger.Warn(ctx, "navigation did not settle", "location", a.nav.Location())
}

func (a *App) showError(err error) {
	msg := err.Error()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Error()
	}
	fmt.Fprintf(a.out, "! %s\n", msg)
}

func (a *App) back(ctx context.Context) {
	a.nav.Back()
	a.render(ctx)
}

// logout needs no screen: the intent is applied and the user is told.
func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "You are not logged in.")
		return
	}
	a.nav.Apply(a.auth.Logout(ctx))
	fmt.Fprintln(a.out, "Signed out.")
}
