package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop/pkg/canvas"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the introspection state of the session and its storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return viewSession(func(s *canvas.Session) error {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(s.State())
		})
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
