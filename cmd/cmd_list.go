package cmd

import (
	"fmt"
	"sort"

	"github.com/neuroflow/neurorun-cli/core"
	"github.com/neuroflow/neurorun-cli/pipelines"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

var cmdList = &cobra.Command{
	Use:   "list",
	Short: "List the built-in pipelines and registered node types.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Pipelines:")
		for _, name := range pipelines.Names() {
			fmt.Printf("  %s\n", name)
		}

		defs := core.GetRegistries()
		ids := maps.Keys(defs)
		sort.Strings(ids)

		fmt.Println("\nNode types:")
		for _, id := range ids {
			def := defs[id]
			fmt.Printf("  %-24s %s\n", id, def.ShortDesc)
		}
	},
}

func init() {
	cmdRoot.AddCommand(cmdList)
}
