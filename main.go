package main

import (
	"github.com/neuroflow/neurorun-cli/cmd"
	"github.com/neuroflow/neurorun-cli/utils"
)

func main() {
	utils.ApplyLogLevel()

	cmd.Execute()
}
