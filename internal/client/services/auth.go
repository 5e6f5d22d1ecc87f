// Package services contains application services for the EventSync client.
// This file defines the authentication service: login, the signup steps,
// password reset, logout and local profile edits.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/eventsync/eventsync/internal/client/client"
	"github.com/eventsync/eventsync/internal/client/models"
	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/client/session"
	"github.com/eventsync/eventsync/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Every operation marks the session as loading while it runs, clears the
// previous error, and on failure publishes a user-facing message through
// the session state before returning an *OperationError. Operations never
// navigate; they return the routes.Intent the caller should apply.
type AuthService interface {
	Login(ctx context.Context, email, password, from string) (routes.Intent, error)
	Signup(ctx context.Context, email, name string) error
	VerifyEmail(ctx context.Context, email, code string) (string, error)
	CompleteSignup(ctx context.Context, name, password, verificationToken string) error
	Logout(ctx context.Context) routes.Intent
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) (routes.Intent, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) error
	ClearError()
	Close(ctx context.Context) error
}

// SessionStore persists the session between runs.
type SessionStore interface {
	Save(ctx context.Context, token string, user *models.UserProfile) error
	Clear(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
	state  *session.State
	logger logging.Logger
	group  singleflight.Group
	now    func() time.Time
}

func NewAuthService(c client.Client, store SessionStore, state *session.State, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, state: state, logger: logger, now: time.Now}
}

func (a *authService) run(ctx context.Context, op, fallback string, fn func() error) error {
	a.state.Begin()
	defer a.state.End()

	if err := fn(); err != nil {
		msg := userMessage(err, fallback)
		a.state.Fail(msg)
		a.logger.Warn(ctx, "auth operation failed", "op", op, "error", err)
		return &OperationError{Op: op, Message: msg, Err: err}
	}
	return nil
}

// flightKey identifies duplicate in-flight calls. Credentials are hashed so
// they are not held as map keys while a request runs.
func flightKey(op string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return op + ":" + hex.EncodeToString(h.Sum(nil))
}

// Login signs in and returns an intent to from (or home). A failed login
// leaves no session behind, in memory or on disk.
func (a *authService) Login(ctx context.Context, email, password, from string) (routes.Intent, error) {
	err := a.run(ctx, "login", "Login failed", func() error {
		_, err, _ := a.group.Do(flightKey("login", email, password), func() (any, error) {
			return nil, a.login(ctx, email, password)
		})
		return err
	})
	if err != nil {
		if cerr := a.store.Clear(ctx); cerr != nil {
			a.logger.Error(ctx, "failed to clear stored session", "error", cerr)
		}
		a.state.ClearSession()
		return routes.Intent{}, err
	}

	if from == "" {
		from = routes.Home
	}
	return routes.Intent{To: from, Replace: true}, nil
}

func (a *authService) login(ctx context.Context, email, password string) error {
	res, err := a.client.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	if res == nil || res.Token == "" {
		return client.ErrNoToken
	}
	if res.User == nil {
		return client.ErrNoUser
	}

	a.state.SetSession(res.Token, res.User)
	if err := a.store.Save(ctx, res.Token, res.User); err != nil {
		return err
	}
	a.logger.Info(ctx, "signed in", "user", res.User.Email, "derived", res.User.Derived)
	return nil
}

// Signup starts a registration by having a verification code mailed to
// email. The account is created later by CompleteSignup.
func (a *authService) Signup(ctx context.Context, email, name string) error {
	return a.run(ctx, "signup", "Signup failed", func() error {
		if err := a.client.SignupEmailCode(ctx, strings.TrimSpace(email)); err != nil {
			return err
		}
		a.logger.Debug(ctx, "signup code requested", "email", email, "name", name)
		return nil
	})
}

// VerifyEmail exchanges the mailed code for a verification token. The token
// is returned to the caller and is not part of the session.
func (a *authService) VerifyEmail(ctx context.Context, email, code string) (string, error) {
	var token string
	err := a.run(ctx, "verify_email", "Verification failed", func() error {
		t, err := a.client.EmailCodeVerify(ctx, strings.TrimSpace(email), strings.TrimSpace(code))
		if err != nil {
			return err
		}
		token = t
		return nil
	})
	return token, err
}

func (a *authService) CompleteSignup(ctx context.Context, name, password, verificationToken string) error {
	return a.run(ctx, "complete_signup", "Failed to complete signup", func() error {
		_, err, _ := a.group.Do(flightKey("complete", verificationToken), func() (any, error) {
			user, token, err := a.client.CompleteSignup(ctx, name, password, verificationToken)
			if err != nil {
				return nil, err
			}
			a.state.SetSession(token, user)
			if err := a.store.Save(ctx, token, user); err != nil {
				return nil, err
			}
			a.logger.Info(ctx, "account created", "user", user.Email)
			return nil, nil
		})
		return err
	})
}

// Logout drops the session everywhere. Calling it while signed out is
// harmless.
func (a *authService) Logout(ctx context.Context) routes.Intent {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear stored session", "error", err)
	}
	a.state.Reset()
	return routes.Intent{To: routes.Login, Replace: true}
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	return a.run(ctx, "request_password_reset", "Failed to request password reset", func() error {
		return a.client.ForgotPasswordCode(ctx, strings.TrimSpace(email))
	})
}

// ResetPassword verifies the code and then sets the new password with the
// token the verification returned. Nothing is written if verification
// fails.
func (a *authService) ResetPassword(ctx context.Context, email, code, newPassword string) (routes.Intent, error) {
	email = strings.TrimSpace(email)
	err := a.run(ctx, "reset_password", "Password reset failed", func() error {
		token, err := a.client.ForgotPasswordCodeVerify(ctx, email, strings.TrimSpace(code))
		if err != nil {
			return err
		}
		return a.client.ForgotPasswordFill(ctx, email, newPassword, token)
	})
	if err != nil {
		return routes.Intent{}, err
	}
	return routes.Go(routes.Login), nil
}

// UpdateProfile applies a profile edit to the signed-in user. There is no
// profile endpoint; the change is kept locally.
func (a *authService) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	return a.run(ctx, "update_profile", "Failed to update profile", func() error {
		if update.NewPassword != "" && update.CurrentPassword == "" {
			return ErrCurrentPasswordRequired
		}

		snap := a.state.Snapshot()
		user := snap.User()
		if user == nil {
			return client.ErrNoUser
		}
		if name := strings.TrimSpace(update.Name); name != "" {
			user.Name = name
		}
		user.UpdatedAt = a.now()

		a.state.UpdateUser(user)
		return a.store.Save(ctx, "", user)
	})
}

func (a *authService) ClearError() {
	a.state.ClearError()
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
