package main

import (
	"os"

	"github.com/logcal/logcal-go/cmd/commands"
)

func main() {
	commands.RootCmd.AddCommand(
		commands.NewCalibrateCmd(),
		commands.VersionCmd,
	)

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
