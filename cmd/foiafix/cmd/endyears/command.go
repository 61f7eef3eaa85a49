// Package endyears provides the end-years command.
package endyears

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/cmd/application"
	"github.com/agentstation/foiafix/internal/cmd/cmdutil"
	"github.com/agentstation/foiafix/pkg/diagnostics"
)

// NewCommand creates the end-years command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "end-years <year>",
		GroupID: "diagnostics",
		Short:   "Find the last year each component filed a report",
		Long: `End-years lists every component in the reports for <year> along with the
last year, up to --final, in which the same agency reported it again.`,
		Example: `  foiafix end-years 2008 --final 2018`,
		Args:    cmdutil.YearArg,
	}

	flags := cmdutil.AddFinalYearFlag(cmd, app.FinalYear())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := flags.Validate(); err != nil {
			return err
		}
		client, err := app.Client()
		if err != nil {
			return err
		}
		rows, err := client.EndYears(cmd.Context(), args[0], flags.Final)
		if err != nil {
			return err
		}
		return cmdutil.PrintTables(cmd, app, diagnostics.EndYearsTable(rows))
	}
	return cmd
}
