package cmd

import (
	"os"

	"github.com/neuroflow/neurorun-cli/build"
	"github.com/neuroflow/neurorun-cli/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	// initialize all node types
	_ "github.com/neuroflow/neurorun-cli/nodes"
)

var flagEnvFile string

var cmdRoot = &cobra.Command{
	Use:     "neurorun",
	Short:   "neurorun is a tool for running neuroscience simulation pipelines.",
	Version: build.GetFullVersionInfo(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagEnvFile != "" {
			err := utils.LoadEnvFile(flagEnvFile)
			if err != nil {
				return err
			}
			utils.LogOut.Debugf("loaded .env file from %s\n", flagEnvFile)
		}

		utils.ApplyLogLevel()

		if os.Getenv("NRN_NOCOLOR") != "" {
			color.NoColor = true
		}
		return nil
	},
}

func Execute() {
	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cmdRoot.PersistentFlags().StringVar(&flagEnvFile, "env_file", "", "Absolute path to an env file (.env) to load before execution")
}
