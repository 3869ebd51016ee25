package cmd

import (
	"os"
	"sort"

	"github.com/neuroflow/neurorun-cli/core"
	"github.com/neuroflow/neurorun-cli/pipelines"
	u "github.com/neuroflow/neurorun-cli/utils"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
)

var flagConfigFile string

var cmdRun = &cobra.Command{
	Use:   "run [pipeline]",
	Short: "Run a built-in pipeline.",
	Long:  `Assembles the named pipeline, applies parameter overrides from the config file, validates the workflow and executes it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := u.ResolveCliParam("config_file", u.ResolveCliParamOpts{
			Flag:      true,
			FlagValue: flagConfigFile,
			Env:       true,
			Optional:  true,
		})

		err := runPipeline(args[0], configFile)
		if err != nil {
			core.PrintError(err)
			os.Exit(1)
		}
	},
}

func runPipeline(name string, configFile string) error {
	wf, err := pipelines.Build(name)
	if err != nil {
		return err
	}

	if configFile != "" {
		err = applyConfig(wf, configFile)
		if err != nil {
			return err
		}
	}

	if !wf.Validate() {
		return core.CreateErr(nil, "pipeline '%s' is not valid", name)
	}

	if !wf.Execute() {
		return core.CreateErr(nil, "pipeline '%s' failed", name)
	}

	nodes := wf.GetNodes()
	names := maps.Keys(nodes)
	sort.Strings(names)

	for _, nodeName := range names {
		node := nodes[nodeName]
		if node.GetNodeTypeId() != "neuro/record@v1" {
			continue
		}
		recorded, err := node.GetOutput("recorded")
		if err != nil {
			continue
		}
		u.LogOut.Printf("%s: %v\n", nodeName, recorded)
	}
	return nil
}

// applyConfig reconfigures the workflow's nodes from the [params]
// sections of a TOML config file, keyed by node name.
func applyConfig(wf *core.Workflow, configFile string) error {
	cfg, err := u.LoadConfig(configFile)
	if err != nil {
		return core.CreateErr(err, "unable to load config file '%s'", configFile)
	}

	if cfg.LogLevel != "" {
		os.Setenv("NRN_LOGLEVEL", cfg.LogLevel)
		u.ApplyLogLevel()
	}

	for nodeName, params := range cfg.Params {
		node, ok := wf.FindNode(nodeName)
		if !ok {
			return core.CreateErr(nil, "config references unknown node '%s'", nodeName)
		}
		for key, val := range params {
			u.LogOut.Debugf("configuring '%s.%s' = %s\n", nodeName, key, u.FormatParamValue(key, val))
		}
		err = node.Configure(params)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	cmdRun.Flags().StringVar(&flagConfigFile, "config_file", "", "The config file to use")
	cmdRoot.AddCommand(cmdRun)
}
