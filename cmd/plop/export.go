package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop"
	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/codec"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole state as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := codec.ByName(exportFormat)
		if !ok {
			return fmt.Errorf("unknown format %q (use json or yaml)", exportFormat)
		}

		return viewSession(func(s *canvas.Session) error {
			data, err := c.Encode(s.Snapshot())
			if err != nil {
				return err
			}
			if exportOut == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			repo, err := plop.Init(exportOut, plop.WithAdapter(plop.AdapterFS), plop.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			if err := repo.Write(context.Background(), data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s.\n", exportOut)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
}
