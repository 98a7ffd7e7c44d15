package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/core"
)

var boardColor string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
}

var boardNewCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create a board (it becomes active when no board is)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bg, err := core.ParseColor(boardColor)
		if err != nil {
			return err
		}
		return withSession(func(s *canvas.Session) error {
			b := s.NewBoard(args[0], bg)
			fmt.Fprintf(cmd.OutOrStdout(), "Board %d '%s' created.\n", b.ID, b.Name)
			return nil
		})
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return viewSession(func(s *canvas.Session) error {
			active, hasActive := s.ActiveBoard()
			for _, b := range s.Boards() {
				marker := " "
				if hasActive && b.ID == active.ID {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%s\t%s\t%d notes\n", marker, b.ID, b.Name, b.Background.Hex(), len(b.Notes))
			}
			return nil
		})
	},
}

var boardUseCmd = &cobra.Command{
	Use:   "use ID",
	Short: "Switch the active board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *canvas.Session) error {
			if err := s.SwitchBoard(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Board %d is now active.\n", id)
			return nil
		})
	},
}

var boardRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a board",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *canvas.Session) error {
			return s.RenameBoard(id, args[1])
		})
	},
}

var boardColorCmd = &cobra.Command{
	Use:   "color ID COLOR",
	Short: "Set a board's background (name, #rrggbb or #rrggbbaa)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		bg, err := core.ParseColor(args[1])
		if err != nil {
			return err
		}
		return withSession(func(s *canvas.Session) error {
			return s.SetBackground(id, bg)
		})
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardNewCmd, boardListCmd, boardUseCmd, boardRenameCmd, boardColorCmd)
	boardNewCmd.Flags().StringVar(&boardColor, "color", "lightblue", "Background color")
}
