package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/bloodconnect/internal/client/config"
	"github.com/dmitrijs2005/bloodconnect/internal/client/services"
	"github.com/dmitrijs2005/bloodconnect/internal/client/storage"
	"github.com/dmitrijs2005/bloodconnect/internal/common"
	"github.com/dmitrijs2005/bloodconnect/internal/logging"
)

type App struct {
	config  *config.Config
	store   storage.Store
	session *services.SessionManager
	donors  services.DonorService
	contact services.ContactService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	// busy mirrors the session loading flag for the "please wait" notice.
	busy bool
}

// NewApp opens the configured credential store and builds the services on
// top of it. The caller owns the App and must call Run, which closes the store.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	mode, err := services.ParsePasswordMode(c.PasswordMode)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, c.StorageConfig())
	if err != nil {
		return nil, fmt.Errorf("error initializing store: %w", err)
	}
	log.Debug(ctx, "store opened", "driver", c.StoreDriver)

	sm := services.NewSessionManager(store, services.SessionOptions{
		Latency:      c.LoginLatency,
		PasswordMode: mode,
		Logger:       log,
	})

	return &App{
		config:  c,
		store:   store,
		session: sm,
		donors:  services.NewDonorService(store, log),
		contact: services.NewContactService(c.ContactEndpoint, c.ContactTimeout, log),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run installs the session provider, restores the saved session, loads the
// donor seed and runs the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Error(ctx, "failed to close store", "error", err)
		}
	}()

	ctx = services.WithSession(ctx, a.session)

	if err := a.session.Hydrate(ctx); err != nil {
		a.log.Error(ctx, "starting signed out", "error", err)
	}

	if a.config != nil && a.config.DonorSeedFile != "" {
		if n, err := a.donors.Seed(ctx, a.config.DonorSeedFile); err != nil {
			a.log.Error(ctx, "donor seed not loaded", "error", err)
		} else if n > 0 {
			a.log.Info(ctx, "donor seed loaded", "added", n)
		}
	}

	listener := a.onSessionChange
	if err := a.session.Subscribe(listener); err != nil {
		return err
	}
	defer func() { _ = a.session.Unsubscribe(listener) }()

	a.Root(ctx)
	return nil
}

// Root prints the greeting and blocks in the REPL.
func (a *App) Root(ctx context.Context) {
	a.println(fmt.Sprintf("Welcome to %s (type 'help' for commands)", common.AppName))
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}

func (a *App) onSessionChange(st services.State) {
	if st.Loading && !a.busy {
		a.println("Please wait...")
	}
	a.busy = st.Loading
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok := services.Session(ctx).User()
	return ok
}

func (a *App) getStatus(ctx context.Context) string {
	sess := services.Session(ctx)

	parts := make([]string, 0, 2)
	if u, ok := sess.User(); ok {
		parts = append(parts, u.Name)
	}
	if sess.IsLoading() {
		parts = append(parts, "loading")
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
