package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop"
	"github.com/aretw0/plop/pkg/core"
)

var migrateOut string

var migrateCmd = &cobra.Command{
	Use:   "migrate SOURCE",
	Short: "Convert a single-board state file into the multi-board layout",
	Long: `Migrate reads a file written in the single-board layout
({"board": ..., "next_note_id": ...}) and writes the equivalent multi-board
state to --out (default: the state file). The source must load cleanly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		src, err := plop.OpenStore(args[0], core.NewSingleBoardState,
			plop.WithReadOnly(true),
			plop.WithLogger(slog.Default()),
		)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		res := src.Load(ctx)
		if res.Defaulted() {
			return fmt.Errorf("%s is not a single-board state file (%s): %w", args[0], res.Outcome, res.Err)
		}

		dest := migrateOut
		if dest == "" {
			dest = statePath()
		}
		out, err := plop.OpenStore(dest, core.NewState, storeOptions()...)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}

		st := plop.Upgrade(res.Value)
		if err := out.Save(ctx, st); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d notes into board %d.\n", st.NoteCount(), res.Value.Board.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVarP(&migrateOut, "out", "o", "", "Destination file")
}
