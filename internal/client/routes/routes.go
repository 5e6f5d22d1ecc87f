// Package routes names the client's screens and carries navigation
// intents between operations and the screen loop.
package routes

import "strings"

const (
	Home           = "/"
	Login          = "/login"
	Signup         = "/signup"
	ForgotPassword = "/forgot-password"
	VerifyReset    = "/verify-reset-code"
	ResetPassword  = "/reset-password"
	VerifyEmail    = "/verify-email"
	CompleteSignup = "/complete-signup"

	Calendar     = "/calendar"
	Profile      = "/profile"
	Admin        = "/admin"
	Unauthorized = "/unauthorized"

	// Landing is where an authenticated user is sent from the login and
	// signup screens.
	Landing = Calendar
)

var public = []string{
	Home,
	Login,
	Signup,
	ForgotPassword,
	VerifyReset,
	ResetPassword,
	VerifyEmail,
	CompleteSignup,
}

// Public returns the routes reachable without a session.
func Public() []string {
	return append([]string(nil), public...)
}

// IsPublic reports whether path is a public route or lies under one.
// Home matches only itself.
func IsPublic(path string) bool {
	path = Clean(path)
	for _, p := range public {
		if p == Home {
			if path == Home {
				return true
			}
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// UnauthenticatedOnly reports whether a signed-in user should be bounced
// away from path.
func UnauthenticatedOnly(path string) bool {
	path = Clean(path)
	return path == Login || path == Signup
}

// Clean drops query and trailing slash and ensures a leading slash.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = Home
		}
	}
	return path
}
