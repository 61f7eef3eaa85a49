// Package dupes provides the registry-dupes command.
package dupes

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/cmd/application"
	"github.com/agentstation/foiafix/internal/cmd/cmdutil"
)

// NewCommand creates the registry-dupes command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "registry-dupes",
		GroupID: "diagnostics",
		Short:   "List components registered twice for one agency",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			return cmdutil.PrintTables(cmd, app, client.RegistryDuplicates())
		},
	}
}
