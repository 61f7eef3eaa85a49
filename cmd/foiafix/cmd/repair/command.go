// Package repair provides the repair command.
package repair

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix"
	"github.com/agentstation/foiafix/cmd/application"
	"github.com/agentstation/foiafix/internal/cmd/alerts"
	"github.com/agentstation/foiafix/internal/cmd/cmdutil"
	"github.com/agentstation/foiafix/internal/cmd/output"
	"github.com/agentstation/foiafix/pkg/diagnostics"
)

// NewCommand creates the repair command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "repair <year>",
		GroupID: "core",
		Short:   "Repair every report filed for a year",
		Long: `Repair resolves agency and component abbreviations, prunes unused
components, injects placeholder data into empty statistics sections and
truncates over-long text in every report under <input>/<year>/.

Documents that cannot be repaired are listed and skipped; the command exits
non-zero when any document failed. Text removed from over-long fields is
printed so it can be re-entered by hand.`,
		Example: `  foiafix repair 2008
  foiafix repair 2008 --input ./reports --output ./fixed`,
		Args: cmdutil.YearArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			summary, err := client.RepairYear(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var tables []*diagnostics.Table
			if truncations := summary.TruncationsTable(); !truncations.Empty() {
				tables = append(tables, truncations)
			}
			if summary.Failed() {
				tables = append(tables, summary.FailuresTable())
			}
			if len(tables) > 0 {
				if err := cmdutil.PrintTables(cmd, app, tables...); err != nil {
					return err
				}
			}

			if err := writeStatus(cmd, app, summary); err != nil {
				return err
			}

			if summary.Failed() {
				return fmt.Errorf("%d of %d documents in %s could not be repaired",
					len(summary.Failures), len(summary.Failures)+summary.Repaired(), summary.Year)
			}
			return nil
		},
	}
}

// writeStatus prints a one-line summary of the run to stderr.
func writeStatus(cmd *cobra.Command, app application.Application, summary *foiafix.Summary) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	total := summary.Repaired() + len(summary.Failures)
	var alert *alerts.Alert
	switch {
	case summary.Failed():
		alert = alerts.NewError(fmt.Sprintf("Repaired %d of %d documents in %s", summary.Repaired(), total, summary.Year))
		for _, f := range summary.Failures {
			alert.WithDetails(fmt.Sprintf("%s (%s)", f.File, f.Stage))
		}
	case len(summary.TruncationsTable().Rows) > 0:
		alert = alerts.NewWarning(fmt.Sprintf("Repaired %d documents in %s; removed text must be re-entered", total, summary.Year))
	default:
		alert = alerts.NewSuccess(fmt.Sprintf("Repaired %d documents in %s", total, summary.Year))
	}
	alert.WithDetails("run " + summary.RunID + " took " + summary.Duration.String())

	return alerts.NewFormatWriter(cmd.ErrOrStderr(), format).WriteAlert(alert)
}
