package session

import (
	"context"

	"github.com/eventsync/eventsync/internal/client/models"
	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/logging"
)

// Store is the part of the token store the session layer uses.
type Store interface {
	Load(ctx context.Context) (string, *models.UserProfile, error)
	UseToken(token string)
	Clear(ctx context.Context) error
}

// Bootstrapper rebuilds the session from local storage at startup and on
// hard reloads. It never talks to the API.
type Bootstrapper struct {
	store  Store
	state  *State
	logger logging.Logger
}

func NewBootstrapper(store Store, state *State, logger logging.Logger) *Bootstrapper {
	return &Bootstrapper{store: store, state: state, logger: logger}
}

// Run restores the session and returns where the user should be sent from
// location, or a zero Intent to stay. Storage failures are logged and
// treated as an empty store.
func (b *Bootstrapper) Run(ctx context.Context, location string) routes.Intent {
	token, user, err := b.store.Load(ctx)
	if err != nil {
		b.logger.Error(ctx, "failed to load stored session", "error", err)
		token, user = "", nil
	}

	sess := models.Session{Token: token, User: user}.Normalize()
	defer b.state.MarkBootstrapped()

	if sess.Authenticated() {
		b.state.SetSession(sess.Token, sess.User)
		b.store.UseToken(sess.Token)
		b.logger.Debug(ctx, "session restored", "user", sess.User.Email)

		if routes.UnauthenticatedOnly(location) {
			return routes.Redirect(routes.Landing, "")
		}
		return routes.Intent{}
	}

	if token != "" {
		b.logger.Warn(ctx, "stored token has no profile; ignoring it")
	}
	b.state.ClearSession()

	if !routes.IsPublic(location) {
		return routes.Redirect(routes.Login, routes.Clean(location))
	}
	return routes.Intent{}
}
