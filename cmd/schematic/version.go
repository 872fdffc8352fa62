package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/schematic"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of schematic",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "schematic version %s\n", strings.TrimSpace(schematic.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
