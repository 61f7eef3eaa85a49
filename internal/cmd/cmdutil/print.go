package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/internal/cmd/output"
	"github.com/agentstation/foiafix/pkg/diagnostics"
)

// Formatter is the part of the application that chooses an output format.
type Formatter interface {
	OutputFormat() string
}

// PrintTables writes tables to the command's stdout in the app's format.
func PrintTables(cmd *cobra.Command, app Formatter, tables ...*diagnostics.Table) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	if format == "" {
		format = output.FormatCSV
	}
	return output.WriteTables(cmd.OutOrStdout(), format, tables...)
}
