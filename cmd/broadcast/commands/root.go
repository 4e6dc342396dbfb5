package commands

import (
	"github.com/spf13/cobra"
)

//NewRootCmd returns the root command, with the run and version subcommands
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:              "broadcast",
		Short:            "Broadcast node with anti-entropy",
		TraverseChildren: true,
	}

	rootCmd.AddCommand(
		NewRunCmd(),
		VersionCmd,
	)

	return rootCmd
}
