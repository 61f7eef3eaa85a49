// Package structure provides the structure command.
package structure

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/cmd/application"
	"github.com/agentstation/foiafix/internal/cmd/cmdutil"
	"github.com/agentstation/foiafix/pkg/diagnostics"
)

// NewCommand creates the structure command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "structure <year>",
		GroupID: "diagnostics",
		Short:   "Compare report and registry organization models",
		Long: `Structure flags reports whose agency is centralized (no components of its
own) while the registry says decentralized, and the reverse.`,
		Args: cmdutil.YearArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			mismatches, err := client.StructureYear(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cmdutil.PrintTables(cmd, app, diagnostics.StructureTable(mismatches))
		},
	}
}
