package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/simplereplay-cli/cloud"
	"github.com/user/simplereplay-cli/config"
	"github.com/user/simplereplay-cli/db"
	"github.com/user/simplereplay-cli/demo"
	"github.com/user/simplereplay-cli/logging"
	"github.com/user/simplereplay-cli/store"
)

// app is everything a command needs: configuration, the store and the
// resources behind it.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *store.Store
	local       *db.Provider // nil with the demo provider
	session     *session
	sessionPath string
	closers     []func() error
}

// loadConfig reads the --config file and applies the --provider override.
func loadConfig() (*config.Config, error) {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if providerOverride != "" {
		cfg.Provider = providerOverride
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openApp builds the store from configuration and restores the last session.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())

	a := &app{
		cfg:         cfg,
		logger:      logger,
		sessionPath: filepath.Join(cfg.DataDir, sessionFileName),
	}

	// Data provider
	var provider store.Provider
	switch cfg.Provider {
	case config.ProviderDemo:
		provider = demo.New()
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		a.local = db.NewProvider(database)
		provider = a.local
	}

	// Cloud provider
	var cloudProvider cloud.Provider
	if cfg.Cloud.BaseURL != "" {
		cloudProvider = cloud.NewHTTPProvider(cfg.Cloud.BaseURL, nil, logging.WithComponent(logger, "cloud"))
	}

	a.store = store.New(provider, cloudProvider, store.Options{
		UserID:       cfg.UserID,
		SaveTimeout:  cfg.SaveTimeout(),
		ShareBaseURL: cfg.Cloud.ShareBaseURL,
		Logger:       logger,
	})
	if err := a.store.Init(); err != nil {
		a.Close()
		return nil, err
	}

	sess, err := loadSession(a.sessionPath)
	if err != nil {
		logger.Warn("ignoring session", "error", err)
		sess = &session{}
	}
	if sess.Provider == cfg.Provider {
		sess.restore(a.store)
	} else {
		sess = &session{}
	}
	sess.Provider = cfg.Provider
	if a.store.CurrentGame() == nil && cfg.Provider == config.ProviderDemo {
		_ = a.store.SetCurrentGame(demo.GameID)
	}
	a.session = sess

	a.store.SubscribeAll(func(ev store.Event, payload any) {
		logger.Debug("store event", "event", ev.String())
	})
	return a, nil
}

// Close saves the session and releases the provider.
func (a *app) Close() {
	if a.session != nil {
		a.session.capture(a.store)
		if err := a.session.save(a.sessionPath); err != nil {
			a.logger.Warn("failed to save session", "error", err)
		}
	}
	a.store.Close()
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// requireGame returns the current game or an error pointing at `game use`.
func (a *app) requireGame() error {
	if a.store.CurrentGame() == nil {
		return fmt.Errorf("%w: run 'simplereplay game use <id>' first", store.ErrNoGame)
	}
	return nil
}

// withApp wraps a RunE that needs the store.
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, a, args)
	}
}
