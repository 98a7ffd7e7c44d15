package plop_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/plop"
	"github.com/aretw0/plop/pkg/core"
)

// Example_basic opens a store, places a note and reads it back after a restart.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "plop-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "board.json")
	ctx := context.Background()

	s, err := plop.New(path)
	if err != nil {
		log.Fatal(err)
	}
	s.NewBoard("Ideas", core.LightBlue)
	if _, err := s.PlaceNote(core.Pos2{X: 130, Y: 70}); err != nil {
		log.Fatal(err)
	}
	s.Close(ctx)

	st := plop.LoadState(path)
	board, _ := st.ActiveBoard()
	n := board.Notes[0]
	fmt.Printf("%s: %q at (%g, %g)\n", board.Name, n.Text, n.Pos.X, n.Pos.Y)
	// Output:
	// Ideas: "New note" at (150, 50)
}

// ExampleSnapToGrid shows halves rounding away from zero.
func ExampleSnapToGrid() {
	fmt.Println(plop.SnapToGrid(plop.Pos2{X: 25, Y: -25}, 50))
	fmt.Println(plop.SnapToGrid(plop.Pos2{X: 74, Y: 26}, 50))
	// Output:
	// {50 -50}
	// {50 50}
}

// ExampleUpgrade converts a single-board file into the multi-board layout.
func ExampleUpgrade() {
	old := plop.SingleBoardState{
		Board: plop.Board{
			ID:    1,
			Name:  "Board",
			Notes: []plop.Note{{ID: 7, Text: "kept"}},
		},
		NextNoteID: 3,
	}

	st := plop.Upgrade(old)
	board, _ := st.ActiveBoard()
	fmt.Println(board.Name, len(board.Notes), st.NextNoteID, st.NextBoardID)
	// Output:
	// Board 1 8 2
}
