// Package application provides the application interface for foiafix commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            summary, err := client.RepairYear(cmd.Context(), args[0])
//	            // ...
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    ClientFunc: func() (foiafix.Client, error) {
//	        return testClient, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/foiafix"
)

// Application provides the application interface that commands need.
// The App struct from cmd/foiafix/app implements this interface.
type Application interface {
	// Client returns the shared foiafix client, creating it on first use.
	Client() (foiafix.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (csv, table, json, yaml, markdown).
	OutputFormat() string

	// FinalYear returns the configured last year for end-year searches, or "".
	FinalYear() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
