package cmd

import (
	"fmt"
	"os"

	"github.com/neuroflow/neurorun-cli/core"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"
)

var cmdDescribe = &cobra.Command{
	Use:   "describe [node-type]",
	Short: "Print the full schema of a registered node type.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		def, ok := core.GetNodeDefinition(args[0])
		if !ok {
			core.PrintError(core.CreateErr(nil, "unknown node type '%s'", args[0]))
			os.Exit(1)
		}

		out, err := yaml.Marshal(def)
		if err != nil {
			core.PrintError(err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

func init() {
	cmdRoot.AddCommand(cmdDescribe)
}
