package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop"
	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/core"
)

var (
	verbose   bool
	stateFile string
	adapter   string
	gridSize  float32
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plop",
	Short: "A sticky-notes board kept in a single state file",
	Long: `plop keeps boards of sticky notes in one JSON (or YAML, or SQLite) file.
Notes snap to a grid when placed or moved, and the file is rewritten
atomically after every change.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&stateFile, "file", "f", "", "State file (default $HOME/"+plop.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", plop.AdapterFS, "Storage adapter (fs, sqlite)")
	rootCmd.PersistentFlags().Float32Var(&gridSize, "grid", core.DefaultGridSize, "Grid cell size used for snapping")
}

func statePath() string {
	if stateFile != "" {
		return stateFile
	}
	return plop.DefaultPath()
}

func storeOptions(extra ...plop.Option) []plop.Option {
	opts := []plop.Option{
		plop.WithAdapter(adapter),
		plop.WithGridSize(gridSize),
		plop.WithLogger(slog.Default()),
	}
	return append(opts, extra...)
}

// withSession opens the store, runs fn and autosaves on the way out.
func withSession(fn func(s *canvas.Session) error) error {
	s, err := plop.New(statePath(), storeOptions()...)
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	runErr := fn(s)
	if err := s.Close(context.Background()); err != nil && runErr == nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return runErr
}

// viewSession opens the store read-only and never writes it back.
func viewSession(fn func(s *canvas.Session) error) error {
	s, err := plop.New(statePath(), storeOptions(plop.WithReadOnly(true))...)
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	defer s.Release()
	return fn(s)
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseCoord(arg string) (float32, error) {
	v, err := strconv.ParseFloat(arg, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", arg)
	}
	return float32(v), nil
}
