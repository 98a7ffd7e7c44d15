package canvas

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/aretw0/plop/pkg/core"
)

// Search finds notes of a board by text and cycles through the matches.
//
// A note matches when its text contains the query, ignoring case, and the
// optional filter expression evaluates to true. With neither a query nor a
// filter nothing matches.
type Search struct {
	query     string
	filterSrc string
	filter    *vm.Program
	matches   []uint64
	current   int
}

func noteEnv(n core.Note) map[string]any {
	return map[string]any{
		"id":     int(n.ID),
		"text":   n.Text,
		"x":      float64(n.Pos.X),
		"y":      float64(n.Pos.Y),
		"width":  float64(n.Size.X),
		"height": float64(n.Size.Y),
	}
}

// CompileFilter validates a filter expression against the note environment.
func CompileFilter(src string) (*vm.Program, error) {
	prog, err := expr.Compile(src, expr.Env(noteEnv(core.Note{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", src, err)
	}
	return prog, nil
}

// Query returns the current text query.
func (s *Search) Query() string {
	return s.query
}

// Filter returns the current filter expression.
func (s *Search) Filter() string {
	return s.filterSrc
}

// SetQuery replaces the text query. Matches are stale until Update.
func (s *Search) SetQuery(q string) {
	s.query = q
}

// SetFilter compiles and installs a filter expression. An empty source
// removes the filter. On error the previous filter is kept.
func (s *Search) SetFilter(src string) error {
	if src == "" {
		s.filterSrc, s.filter = "", nil
		return nil
	}
	prog, err := CompileFilter(src)
	if err != nil {
		return err
	}
	s.filterSrc, s.filter = src, prog
	return nil
}

// Update recomputes the matches over board and resets the cursor.
func (s *Search) Update(board *core.Board) error {
	s.matches = s.matches[:0]
	s.current = 0
	if board == nil || (s.query == "" && s.filter == nil) {
		return nil
	}

	q := strings.ToLower(s.query)
	for _, n := range board.Notes {
		if q != "" && !strings.Contains(strings.ToLower(n.Text), q) {
			continue
		}
		if s.filter != nil {
			out, err := expr.Run(s.filter, noteEnv(n))
			if err != nil {
				return fmt.Errorf("filter on note %d: %w", n.ID, err)
			}
			if ok, _ := out.(bool); !ok {
				continue
			}
		}
		s.matches = append(s.matches, n.ID)
	}
	return nil
}

// Matches lists matching note identifiers in board order.
func (s *Search) Matches() []uint64 {
	return append([]uint64(nil), s.matches...)
}

// Current returns the match under the cursor.
func (s *Search) Current() (uint64, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	return s.matches[s.current], true
}

// Next advances the cursor, wrapping to the first match.
func (s *Search) Next() (uint64, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	s.current = (s.current + 1) % len(s.matches)
	return s.matches[s.current], true
}

// Prev moves the cursor back, wrapping to the last match.
func (s *Search) Prev() (uint64, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	if s.current == 0 {
		s.current = len(s.matches) - 1
	} else {
		s.current--
	}
	return s.matches[s.current], true
}

// Focus centers the board's scene rect on the note, keeping the rect size.
func Focus(board *core.Board, id uint64) bool {
	if board == nil {
		return false
	}
	n, ok := board.FindNote(id)
	if !ok {
		return false
	}
	board.SceneRect = core.RectFromCenterSize(n.Rect().Center(), board.SceneRect.Size())
	return true
}
