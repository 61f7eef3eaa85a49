package cmdutil

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestYearArg(t *testing.T) {
	cmd := &cobra.Command{Use: "repair"}

	assert.NoError(t, YearArg(cmd, []string{"2008"}))
	assert.Error(t, YearArg(cmd, nil))
	assert.Error(t, YearArg(cmd, []string{"2008", "2009"}))
	assert.Error(t, YearArg(cmd, []string{"08"}))
	assert.Error(t, YearArg(cmd, []string{"abcd"}))
}

func TestFinalYearFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "end-years"}
	flags := AddFinalYearFlag(cmd, "")

	assert.NoError(t, flags.Validate())
	assert.NoError(t, cmd.Flags().Set("final", "2018"))
	assert.Equal(t, "2018", flags.Final)
	assert.NoError(t, flags.Validate())

	flags.Final = "18"
	assert.Error(t, flags.Validate())
}
