package cmd

import (
	"github.com/spf13/cobra"
)

// Hidden helper to check what a crash of the runner looks like to users.
var cmdPanic = &cobra.Command{
	Use:    "panic",
	Short:  "Crash on purpose to exercise the panic output",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		panic("deliberate neurorun crash")
	},
}

func init() {
	cmdRoot.AddCommand(cmdPanic)
}
