package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/plop"
	"github.com/aretw0/plop/pkg/core"
)

type target struct {
	name    string
	file    string
	adapter string
}

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	rounds := flag.Int("rounds", 20, "Save/load rounds per adapter")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()
	if *rounds < 1 {
		*rounds = 1
	}

	benchDir, err := os.MkdirTemp("", "plop_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d notes...\n", *count)
	st := generate(*count)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	targets := []target{
		{"fs/json", "state.json", plop.AdapterFS},
		{"fs/yaml", "state.yaml", plop.AdapterFS},
		{"sqlite", "state.db", plop.AdapterSQLite},
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes, %d rounds):\n", *count, *rounds)
	for _, tg := range targets {
		save, load, err := run(filepath.Join(benchDir, tg.file), tg.adapter, st, *rounds, logger)
		if err != nil {
			fmt.Printf("  %-8s failed: %v\n", tg.name, err)
			continue
		}
		fmt.Printf("  %-8s save %v  load %v\n", tg.name, save, load)
	}
	fmt.Printf("--------------------------------------------------\n")
}

func generate(count int) core.State {
	st := core.NewState()
	board := st.NewBoard("Bench", core.LightBlue)
	for i := 0; i < count; i++ {
		board.AddNote(core.Note{
			ID:    st.AllocateNoteID(),
			Text:  fmt.Sprintf("Benchmark note %d", i),
			Pos:   core.SnapToGrid(core.Pos2{X: float32(i%40) * 130, Y: float32(i/40) * 90}, core.DefaultGridSize),
			Size:  core.DefaultNoteSize,
			Color: core.Yellow,
		})
	}
	return st
}

// run returns the mean save and load durations for one adapter.
func run(path, adapter string, st core.State, rounds int, logger *slog.Logger) (time.Duration, time.Duration, error) {
	store, err := plop.OpenStore(path, core.NewState,
		plop.WithAdapter(adapter),
		plop.WithLogger(logger),
		plop.WithDevSafety(false),
	)
	if err != nil {
		return 0, 0, err
	}
	if c, ok := store.Repository().(io.Closer); ok {
		defer c.Close()
	}

	ctx := context.Background()
	var saveTotal, loadTotal time.Duration
	for i := 0; i < rounds; i++ {
		start := time.Now()
		if err := store.Save(ctx, st); err != nil {
			return 0, 0, err
		}
		saveTotal += time.Since(start)

		start = time.Now()
		res := store.Load(ctx)
		loadTotal += time.Since(start)
		if res.Outcome != core.OutcomeLoaded {
			return 0, 0, fmt.Errorf("load: %s: %v", res.Outcome, res.Err)
		}
	}
	n := time.Duration(rounds)
	return saveTotal / n, loadTotal / n, nil
}
