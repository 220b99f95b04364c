package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logcal/logcal-go/cmd/version"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the logcal version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
