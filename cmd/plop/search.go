package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/core"
)

var (
	searchExpr string
	searchSkip int
)

var searchCmd = &cobra.Command{
	Use:   "search [QUERY]",
	Short: "Find notes on the active board and focus the view on a match",
	Long: `Search matches note text case-insensitively. --expr adds a filter
expression over id, text, x, y, width and height, for example:

  plop search milk --expr 'x < 500 && len(text) < 40'

The board's view is centered on the selected match and saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		if query == "" && searchExpr == "" {
			return fmt.Errorf("a query or --expr is required")
		}

		return withSession(func(s *canvas.Session) error {
			if _, ok := s.ActiveBoard(); !ok {
				return core.ErrNoActiveBoard
			}
			matches, err := s.Search(query, searchExpr)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}

			for i := 0; i < searchSkip; i++ {
				s.NextMatch()
			}
			_, _, current, _ := s.SearchQuery()

			b, _ := s.ActiveBoard()
			for _, id := range matches {
				marker := " "
				if id == current {
					marker = ">"
				}
				n, _ := b.FindNote(id)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\t%q\n", marker, id, n.Text)
			}
			c := b.SceneRect.Center()
			fmt.Fprintf(cmd.OutOrStdout(), "View centered on (%g, %g).\n", c.X, c.Y)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchExpr, "expr", "", "Filter expression")
	searchCmd.Flags().IntVar(&searchSkip, "next", 0, "Advance the selection N times (wraps around)")
}
