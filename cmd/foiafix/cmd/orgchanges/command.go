// Package orgchanges provides the org-changes command.
package orgchanges

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/cmd/application"
	"github.com/agentstation/foiafix/internal/cmd/cmdutil"
)

// NewCommand creates the org-changes command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "org-changes <year>",
		GroupID: "diagnostics",
		Short:   "List agencies that switched organization model",
		Long: `Org-changes walks every input year up to and including <year> and lists
agencies whose reports switched between centralized and decentralized,
plus agencies that filed more than one report in a year.`,
		Args: cmdutil.YearArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			tracker, err := client.OrgChanges(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cmdutil.PrintTables(cmd, app, tracker.ChangesTable(), tracker.FilingsTable())
		},
	}
}
