package cmd

import (
	"fmt"

	"github.com/neuroflow/neurorun-cli/build"

	"github.com/spf13/cobra"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of neurorun",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("neurorun version v%s\n", build.GetFullVersionInfo())
	},
}

func init() {
	cmdRoot.AddCommand(cmdVersion)
}
