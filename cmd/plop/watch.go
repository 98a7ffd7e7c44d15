package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop"
	"github.com/aretw0/plop/pkg/adapters/lifecycle"
	"github.com/aretw0/plop/pkg/core"
)

var (
	watchPattern string
	watchCount   int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload and summarize the state whenever the file changes on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, err := plop.OpenStore(statePath(), core.NewState, storeOptions(plop.WithReadOnly(true))...)
		if err != nil {
			return fmt.Errorf("failed to open state: %w", err)
		}
		watchable, ok := store.Repository().(core.Watchable)
		if !ok {
			return fmt.Errorf("adapter %q does not support watching", adapter)
		}

		events, err := watchable.Watch(ctx, watchPattern)
		if err != nil {
			return fmt.Errorf("failed to watch: %w", err)
		}
		src := lifecycle.NewSource(events, lifecycle.WithTypes(core.EventCreate, core.EventModify))
		if err := src.Start(ctx); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)...\n", statePath())
		seen := 0
		for e := range src.Events() {
			res := store.Load(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d boards, %d notes (%s)\n",
				e, len(res.Value.Boards), res.Value.NoteCount(), res.Outcome)

			seen++
			if watchCount > 0 && seen >= watchCount {
				stop()
				break
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Glob for sibling files to report (default: the state file)")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "Exit after N changes (0 = run until interrupted)")
}
