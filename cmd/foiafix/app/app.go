// Package app provides the application context and dependency management
// for the foiafix CLI: configuration, logging, and the lazily created
// foiafix client shared by every command.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/foiafix"
	"github.com/agentstation/foiafix/cmd/application"
	"github.com/agentstation/foiafix/internal/cmd/output"
	"github.com/agentstation/foiafix/pkg/errors"
)

// Compile-time interface check.
var _ application.Application = (*App)(nil)

// App represents the foiafix application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.Mutex
	client foiafix.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "cannot load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured format, or one detected from stdout.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// FinalYear returns the configured final year for end-year searches.
func (a *App) FinalYear() string {
	return a.config.FinalYearString()
}

// Client returns the foiafix client, creating it on first use. The registry
// is loaded at that point, so commands that never need it never read it.
func (a *App) Client() (foiafix.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	client, err := foiafix.New(a.clientOptions()...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []foiafix.Option {
	return []foiafix.Option{
		foiafix.WithRegistryDir(a.config.RegistryDir),
		foiafix.WithInputDir(a.config.InputDir),
		foiafix.WithOutputDir(a.config.OutputDir),
		foiafix.WithFormattedDir(a.config.FormattedDir),
		foiafix.WithLogger(a.logger),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client (useful for testing).
func WithClient(client foiafix.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
