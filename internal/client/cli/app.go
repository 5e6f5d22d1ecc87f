package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/eventsync/eventsync/internal/buildinfo"
	"github.com/eventsync/eventsync/internal/client/client"
	"github.com/eventsync/eventsync/internal/client/config"
	"github.com/eventsync/eventsync/internal/client/guard"
	"github.com/eventsync/eventsync/internal/client/routes"
	"github.com/eventsync/eventsync/internal/client/services"
	"github.com/eventsync/eventsync/internal/client/session"
	"github.com/eventsync/eventsync/internal/client/signup"
	"github.com/eventsync/eventsync/internal/client/tokenstore"
	"github.com/eventsync/eventsync/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db    *sql.DB
	api   *client.HTTPClient
	store *tokenstore.Store

	state    *session.State
	nav      *routes.Navigator
	boot     *session.Bootstrapper
	auth     services.AuthService
	meetings services.MeetingService
	wizard   *signup.Wizard

	screens map[string]guard.Screen
	args    []string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and wires the client. The returned App
// owns the database; call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DataFile)
	if err != nil {
		logger.Error(ctx, "error initializing database", "file", cfg.DataFile, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithUserAgent(client.DefaultUserAgent+"/"+buildinfo.Version),
	)

	a := newApp(cfg, logger, db, api, os.Stdin, os.Stdout)
	return a, nil
}

func newApp(cfg *config.Config, logger logging.Logger, db *sql.DB, api *client.HTTPClient, in io.Reader, out io.Writer) *App {
	store := tokenstore.New(db, api, logger.With("component", "tokenstore"))
	state := session.NewState()
	nav := routes.NewNavigator(routes.Home)
	auth := services.NewAuthService(api, store, state, logger.With("component", "auth"))

	a := &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		api:      api,
		store:    store,
		state:    state,
		nav:      nav,
		boot:     session.NewBootstrapper(store, state, logger.With("component", "bootstrap")),
		auth:     auth,
		meetings: services.NewMeetingService(api),
		wizard:   signup.New(auth, store, cfg.SignupTokenTTL, logger.With("component", "signup")),
		reader:   bufio.NewReader(in),
		out:      out,
	}

	interceptor := session.NewUnauthorizedInterceptor(store, state, nav, logger.With("component", "interceptor"))
	api.OnResponse(interceptor.Hook)

	state.Subscribe(a.onStateChange)
	a.registerScreens()
	return a
}

func (a *App) onStateChange(snap session.Snapshot) {
	if snap.Error != "" {
		a.logger.Debug(context.Background(), "session error", "message", snap.Error)
	}
}

// Run restores the session, then serves the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to EventSync CLI (type 'help' for commands)")
	a.bootstrap(ctx)
	a.render(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.logger.Warn(ctx, "failed to close API client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "failed to close database", "error", err)
	}
}

func (a *App) bootstrap(ctx context.Context) {
	if in := a.boot.Run(ctx, a.nav.Location()); !in.IsZero() {
		a.nav.Apply(in)
	}
}

func (a *App) isLoggedIn() bool {
	return a.state.Snapshot().Session.Authenticated()
}

func (a *App) getStatus() string {
	user := a.state.Snapshot().User()
	s := a.nav.Location()
	if user != nil {
		s = user.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
