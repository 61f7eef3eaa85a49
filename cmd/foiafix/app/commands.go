package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/cmd/foiafix/cmd/audit"
	"github.com/agentstation/foiafix/cmd/foiafix/cmd/dupes"
	"github.com/agentstation/foiafix/cmd/foiafix/cmd/endyears"
	"github.com/agentstation/foiafix/cmd/foiafix/cmd/orgchanges"
	"github.com/agentstation/foiafix/cmd/foiafix/cmd/repair"
	"github.com/agentstation/foiafix/cmd/foiafix/cmd/structure"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(repair.NewCommand(a))
	rootCmd.AddCommand(audit.NewCommand(a))

	// Diagnostic commands
	rootCmd.AddCommand(endyears.NewCommand(a))
	rootCmd.AddCommand(structure.NewCommand(a))
	rootCmd.AddCommand(orgchanges.NewCommand(a))
	rootCmd.AddCommand(dupes.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("foiafix %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
