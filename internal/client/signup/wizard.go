// Package signup drives the three-step account creation flow: e-mail,
// verification code, then name and password.
package signup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/eventsync/eventsync/internal/client/client"
	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/client/tokenstore"
	"github.com/eventsync/eventsync/internal/logging"
)

// ErrTokenMissing means the verification token is gone or expired and the
// flow has been sent back to the e-mail step.
var ErrTokenMissing = errors.New("signup verification token missing or expired")

type Step int

const (
	StepEmail Step = iota
	StepVerify
	StepComplete
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepVerify:
		return "verify"
	case StepComplete:
		return "complete"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Route is the screen address of the step.
func (s Step) Route() string {
	switch s {
	case StepVerify:
		return routes.VerifyEmail
	case StepComplete:
		return routes.CompleteSignup
	case StepDone:
		return routes.Landing
	default:
		return routes.Signup
	}
}

// Auth is the subset of services.AuthService the wizard calls.
type Auth interface {
	Signup(ctx context.Context, email, name string) error
	VerifyEmail(ctx context.Context, email, code string) (string, error)
	CompleteSignup(ctx context.Context, name, password, verificationToken string) error
}

type TokenStore interface {
	SaveSignupToken(ctx context.Context, token string) error
	LoadSignupToken(ctx context.Context) (*tokenstore.SignupToken, error)
	ClearSignupToken(ctx context.Context) error
}

type Wizard struct {
	auth   Auth
	tokens TokenStore
	ttl    time.Duration
	logger logging.Logger
	now    func() time.Time

	mu    sync.Mutex
	step  Step
	email string
	err   string
}

// New creates a wizard at the e-mail step. A stored verification token is
// considered expired after ttl; zero disables the age check.
func New(auth Auth, tokens TokenStore, ttl time.Duration, logger logging.Logger) *Wizard {
	return &Wizard{auth: auth, tokens: tokens, ttl: ttl, logger: logger, now: time.Now}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Email() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.email
}

// Error is the banner text for the current step.
func (w *Wizard) Error() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Wizard) set(step Step, msg string) {
	w.mu.Lock()
	w.step = step
	w.err = msg
	w.mu.Unlock()
}

func (w *Wizard) fail(err error) error {
	w.mu.Lock()
	w.err = err.Error()
	w.mu.Unlock()
	return err
}

// SubmitEmail asks the API to mail a verification code and moves to the
// verify step.
func (w *Wizard) SubmitEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return w.fail(err)
	}

	if err := w.auth.Signup(ctx, email, ""); err != nil {
		return w.fail(err)
	}

	// a token verified for an earlier address must not complete this one
	if err := w.tokens.ClearSignupToken(ctx); err != nil {
		w.logger.Error(ctx, "failed to discard signup token", "error", err)
		return w.fail(err)
	}

	w.mu.Lock()
	w.email = email
	w.step = StepVerify
	w.err = ""
	w.mu.Unlock()
	return nil
}

// Resend mails a new code for the e-mail already submitted.
func (w *Wizard) Resend(ctx context.Context) error {
	w.mu.Lock()
	step, email := w.step, w.email
	w.mu.Unlock()

	if step != StepVerify {
		return w.fail(&ValidationError{Field: "email", Message: msgEmailRequired})
	}
	if err := w.auth.Signup(ctx, email, ""); err != nil {
		return w.fail(err)
	}
	w.set(StepVerify, "")
	return nil
}

// SubmitCode checks the code, keeps the returned verification token and
// enters the final step.
func (w *Wizard) SubmitCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if err := validateCode(code); err != nil {
		return w.fail(err)
	}

	token, err := w.auth.VerifyEmail(ctx, w.Email(), code)
	if err != nil {
		return w.fail(err)
	}
	if err := w.tokens.SaveSignupToken(ctx, token); err != nil {
		w.logger.Error(ctx, "failed to keep signup token", "error", err)
		return w.fail(err)
	}

	return w.EnterComplete(ctx)
}

// EnterComplete moves to the final step if the code was verified in this
// flow and its token is still live, and back to the e-mail step otherwise.
// A flow interrupted by a restart of the program is picked up by Resume.
func (w *Wizard) EnterComplete(ctx context.Context) error {
	if step := w.Step(); step != StepVerify && step != StepComplete {
		w.set(StepEmail, msgSessionExpired)
		return ErrTokenMissing
	}
	if _, ok := w.liveToken(ctx); !ok {
		w.set(StepEmail, msgSessionExpired)
		return ErrTokenMissing
	}
	w.set(StepComplete, "")
	return nil
}

// SubmitProfile validates the final form and creates the account. Once the
// request has been attempted the returned intent points at the calendar,
// whether or not it succeeded.
func (w *Wizard) SubmitProfile(ctx context.Context, name, password, confirm string) (routes.Intent, error) {
	if err := validateProfile(name, password, confirm); err != nil {
		return routes.Intent{}, w.fail(err)
	}

	if w.Step() != StepComplete {
		w.set(StepEmail, msgSessionExpired)
		return routes.Intent{}, ErrTokenMissing
	}
	token, ok := w.liveToken(ctx)
	if !ok {
		w.set(StepEmail, msgSessionExpired)
		return routes.Intent{}, ErrTokenMissing
	}

	next := routes.Go(routes.Landing)
	if err := w.auth.CompleteSignup(ctx, name, password, token); err != nil {
		return next, w.fail(err)
	}

	if err := w.tokens.ClearSignupToken(ctx); err != nil {
		w.logger.Warn(ctx, "failed to discard signup token", "error", err)
	}
	w.set(StepDone, "")
	return next, nil
}

// Restart abandons the flow and discards the verification token.
func (w *Wizard) Restart(ctx context.Context) {
	if err := w.tokens.ClearSignupToken(ctx); err != nil {
		w.logger.Warn(ctx, "failed to discard signup token", "error", err)
	}
	w.mu.Lock()
	w.step = StepEmail
	w.email = ""
	w.err = ""
	w.mu.Unlock()
}

// Resume picks up an interrupted flow: with a live verification token it
// goes straight to the final step.
func (w *Wizard) Resume(ctx context.Context) Step {
	if _, ok := w.liveToken(ctx); ok {
		w.set(StepComplete, "")
	} else {
		w.set(StepEmail, "")
	}
	return w.Step()
}

func (w *Wizard) liveToken(ctx context.Context) (string, bool) {
	st, err := w.tokens.LoadSignupToken(ctx)
	if err != nil {
		w.logger.Error(ctx, "failed to read signup token", "error", err)
		return "", false
	}
	if st == nil {
		return "", false
	}
	if w.expired(st) {
		w.logger.Info(ctx, "signup token expired")
		if err := w.tokens.ClearSignupToken(ctx); err != nil {
			w.logger.Warn(ctx, "failed to discard signup token", "error", err)
		}
		return "", false
	}
	return st.Token, true
}

func (w *Wizard) expired(st *tokenstore.SignupToken) bool {
	now := w.now()
	if exp, ok := client.TokenExpiry(st.Token); ok && !now.Before(exp) {
		return true
	}
	return w.ttl > 0 && !st.SavedAt.IsZero() && now.After(st.SavedAt.Add(w.ttl))
}
