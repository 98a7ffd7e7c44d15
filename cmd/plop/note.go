package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/core"
)

var (
	noteX    float32
	noteY    float32
	noteJSON bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage the notes of the active board",
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Place a new note at the grid cell nearest to --x/--y",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *canvas.Session) error {
			s.Canvas().OnNoteCreated(func(e canvas.NoteCreated) {
				fmt.Fprintf(cmd.OutOrStdout(), "plop! note %d on board %d\n", e.Note.ID, e.BoardID)
			})
			n, err := s.PlaceNote(core.Pos2{X: noteX, Y: noteY})
			if err != nil {
				return err
			}
			s.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d placed at (%g, %g).\n", n.ID, n.Pos.X, n.Pos.Y)
			return nil
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the notes of the active board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return viewSession(func(s *canvas.Session) error {
			b, ok := s.ActiveBoard()
			if !ok {
				return core.ErrNoActiveBoard
			}

			if noteJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(b.Notes)
			}

			for _, n := range b.Notes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t(%g, %g)\t%s\t%q\n", n.ID, n.Pos.X, n.Pos.Y, n.Color.Hex(), n.Text)
			}
			return nil
		})
	},
}

var noteTextCmd = &cobra.Command{
	Use:   "text ID TEXT",
	Short: "Replace a note's text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		text := args[1]
		return withSession(func(s *canvas.Session) error {
			_, err := s.EditNote(id, &text, nil)
			return err
		})
	},
}

var noteColorCmd = &cobra.Command{
	Use:   "color ID COLOR",
	Short: "Change a note's color",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		color, err := core.ParseColor(args[1])
		if err != nil {
			return err
		}
		return withSession(func(s *canvas.Session) error {
			_, err := s.EditNote(id, nil, &color)
			return err
		})
	},
}

var noteMoveCmd = &cobra.Command{
	Use:   "move ID X Y",
	Short: "Drag a note to X,Y; it lands on the nearest grid cell",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		x, err := parseCoord(args[1])
		if err != nil {
			return err
		}
		y, err := parseCoord(args[2])
		if err != nil {
			return err
		}
		return withSession(func(s *canvas.Session) error {
			n, err := s.MoveNote(id, core.Pos2{X: x, Y: y})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d moved to (%g, %g).\n", n.ID, n.Pos.X, n.Pos.Y)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteTextCmd, noteColorCmd, noteMoveCmd)
	noteAddCmd.Flags().Float32Var(&noteX, "x", 0, "Horizontal position")
	noteAddCmd.Flags().Float32Var(&noteY, "y", 0, "Vertical position")
	noteListCmd.Flags().BoolVar(&noteJSON, "json", false, "Output in JSON format")
}
