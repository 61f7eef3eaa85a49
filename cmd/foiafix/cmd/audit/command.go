// Package audit provides the audit command.
package audit

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/cmd/application"
	"github.com/agentstation/foiafix/internal/cmd/cmdutil"
)

// NewCommand creates the audit command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "audit <year>",
		GroupID: "core",
		Short:   "List abbreviations the registry cannot resolve",
		Long: `Audit reads every report for a year without writing anything and lists
the agency and component abbreviations that match neither the registry nor
the fix tables, with the closest registered abbreviation as a suggestion.
Fixes that point at unregistered abbreviations are listed as well.`,
		Example: `  foiafix audit 2008 > 2008-abbreviations.csv
  foiafix audit 2008 -o table`,
		Args: cmdutil.YearArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			audit, err := client.AuditYear(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cmdutil.PrintTables(cmd, app, audit.Tables()...)
		},
	}
}
