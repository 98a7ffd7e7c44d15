package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of plop",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "plop version %s\n", strings.TrimSpace(plop.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
