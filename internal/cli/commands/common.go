package commands

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/guesswho-dev/guesswho/internal/api"
	"github.com/guesswho-dev/guesswho/internal/cli/userconfig"
	"github.com/guesswho-dev/guesswho/internal/config"
	"github.com/guesswho-dev/guesswho/internal/logger"
	"github.com/guesswho-dev/guesswho/internal/querycache"
	"github.com/guesswho-dev/guesswho/internal/report"
	"github.com/guesswho-dev/guesswho/internal/session"
)

// App wires the client stack for one command invocation.
type App struct {
	Config *config.Config
	User   *userconfig.UserConfig
	Store  *session.Store
	Client *api.Client
	Cache  *querycache.Cache
	Log    zerolog.Logger
}

// NewApp loads configuration, restores the persisted session from the OS
// keyring and builds the API client.
func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ucfg, err := userconfig.Load()
	if err != nil {
		return nil, err
	}
	if ucfg.ServerURL != "" {
		cfg.APIBaseURL = ucfg.ServerURL
	}

	host := cfg.APIBaseURL
	if u, err := url.Parse(cfg.APIBaseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	store := session.NewStore(session.WithPersister(session.NewKeyringPersister(host)))
	client := api.New(cfg.APIBaseURL, store,
		api.WithLogger(log),
		api.WithReporter(report.NewLogReporter(log)),
	)

	return &App{
		Config: cfg,
		User:   ucfg,
		Store:  store,
		Client: client,
		Cache:  querycache.New(),
		Log:    log,
	}, nil
}

// EnsureFreshSession proactively refreshes a near-expiry access token so the
// first real call doesn't pay the 401 round trip. Failures are ignored; the
// pipeline's own refresh path remains the authority.
func (a *App) EnsureFreshSession(ctx context.Context) {
	token := a.Store.GetState().AccessToken
	if token == "" {
		return
	}
	if session.TokenExpiresWithin(token, time.Minute) {
		if err := a.Client.Refresh(ctx); err != nil {
			a.Log.Debug().Err(err).Msg("proactive refresh failed")
		}
	}
}

// resolveRoomID picks the room from the flag or the configured default.
func (a *App) resolveRoomID(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if a.User.DefaultRoomID != "" {
		return a.User.DefaultRoomID, nil
	}
	return "", fmt.Errorf("room id is required (use --room or 'guesswho config set-room')")
}

// promptLine reads one line interactively. Non-interactive sessions must
// supply the value via flags instead.
func promptLine(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("%s is required in non-interactive mode", label)
	}
	fmt.Printf("%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}
