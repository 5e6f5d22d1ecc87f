package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/eventsync/eventsync/internal/client/client"
	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/logging"
)

// Navigator is what the interceptor needs to force a reload.
type Navigator interface {
	Location() string
	Apply(in routes.Intent)
}

// UnauthorizedInterceptor ends the session when a protected API call comes
// back 401: credentials are cleared and the user is hard-redirected to the
// login screen. Auth endpoints and public screens are exempt.
type UnauthorizedInterceptor struct {
	store  Store
	state  *State
	nav    Navigator
	logger logging.Logger
}

func NewUnauthorizedInterceptor(store Store, state *State, nav Navigator, logger logging.Logger) *UnauthorizedInterceptor {
	return &UnauthorizedInterceptor{store: store, state: state, nav: nav, logger: logger}
}

// Hook is registered with client.HTTPClient.OnResponse.
func (i *UnauthorizedInterceptor) Hook(ctx context.Context, info client.ResponseInfo) {
	if info.StatusCode != http.StatusUnauthorized {
		return
	}
	if strings.Contains(info.Path, "/auth/") {
		return
	}
	location := i.nav.Location()
	if routes.IsPublic(location) {
		return
	}

	i.logger.Warn(ctx, "session rejected by server", "path", info.Path, "location", location)
	if err := i.store.Clear(ctx); err != nil {
		i.logger.Error(ctx, "failed to clear stored session", "error", err)
	}
	i.state.Reset()
	i.nav.Apply(routes.Intent{To: routes.Login, Replace: true, Hard: true})
}
