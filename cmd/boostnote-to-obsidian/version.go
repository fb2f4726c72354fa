package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of boostnote-to-obsidian",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "boostnote-to-obsidian %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
