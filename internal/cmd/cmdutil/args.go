// Package cmdutil provides shared argument and flag helpers for foiafix commands.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/foiafix/pkg/diagnostics"
)

// YearArg accepts exactly one positional argument holding a four digit year.
func YearArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%s requires exactly one <year> argument, received %d", cmd.CommandPath(), len(args))
	}
	if !diagnostics.ValidYear(args[0]) {
		return fmt.Errorf("invalid year %q: must be four digits", args[0])
	}
	return nil
}

// FinalYearFlags holds the --final flag shared by commands that scan later years.
type FinalYearFlags struct {
	Final string
}

// AddFinalYearFlag adds --final to cmd with the given default.
func AddFinalYearFlag(cmd *cobra.Command, def string) *FinalYearFlags {
	flags := &FinalYearFlags{}
	cmd.Flags().StringVar(&flags.Final, "final", def,
		"last year to search (default: latest year in the input directory)")
	return flags
}

// Validate checks the flag value.
func (f *FinalYearFlags) Validate() error {
	if f.Final != "" && !diagnostics.ValidYear(f.Final) {
		return fmt.Errorf("invalid --final %q: must be four digits", f.Final)
	}
	return nil
}
