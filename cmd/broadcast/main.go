package main

import (
	"os"

	cmd "github.com/mosaicnetworks/broadcast/cmd/broadcast/commands"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	//Do not print usage when error occurs
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
