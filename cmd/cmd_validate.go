package cmd

import (
	"fmt"
	"os"

	"github.com/neuroflow/neurorun-cli/core"
	"github.com/neuroflow/neurorun-cli/pipelines"

	"github.com/spf13/cobra"
)

var cmdValidate = &cobra.Command{
	Use:   "validate [pipeline]",
	Short: "Validate a built-in pipeline.",
	Long:  `Checks the structure, port types, connections, and required inputs of a pipeline without executing it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := validatePipeline(args[0])
		if err != nil {
			os.Exit(1)
		}
	},
}

func validatePipeline(name string) error {
	fmt.Printf("Validating '%s'...\n", name)

	wf, err := pipelines.Build(name)
	if err != nil {
		core.PrintError(err)
		return err
	}

	info := wf.GetInfo()
	fmt.Printf("%d node(s), %d connection(s)\n", len(info.Nodes), len(info.Connections))

	if !wf.Validate() {
		fmt.Println("\n❌ Validation failed.")
		return fmt.Errorf("validation failed")
	}

	fmt.Println("\n✅ Pipeline is valid.")
	return nil
}

func init() {
	cmdRoot.AddCommand(cmdValidate)
}
