package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/foiafix"
	"github.com/agentstation/foiafix/pkg/errors"
)

// Compile-time interface check.
var _ Application = (*Mock)(nil)

var errNoClient = &errors.ConfigError{Component: "application", Message: "no client configured"}

// Mock is an Application for command tests. Unset funcs fall back to zero
// values: a nop logger, csv output and version "test".
type Mock struct {
	ClientFunc func() (foiafix.Client, error)
	LoggerFunc func() *zerolog.Logger
	Format     string
	Final      string
}

// Client implements Application.
func (m *Mock) Client() (foiafix.Client, error) {
	if m.ClientFunc == nil {
		return nil, errNoClient
	}
	return m.ClientFunc()
}

// Logger implements Application.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc == nil {
		logger := zerolog.Nop()
		return &logger
	}
	return m.LoggerFunc()
}

// OutputFormat implements Application.
func (m *Mock) OutputFormat() string {
	if m.Format == "" {
		return "csv"
	}
	return m.Format
}

// FinalYear implements Application.
func (m *Mock) FinalYear() string { return m.Final }

// Version implements Application.
func (m *Mock) Version() string { return "test" }

// Commit implements Application.
func (m *Mock) Commit() string { return "none" }

// Date implements Application.
func (m *Mock) Date() string { return "unknown" }

// BuiltBy implements Application.
func (m *Mock) BuiltBy() string { return "test" }
