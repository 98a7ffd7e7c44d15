package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/aretw0/plop/pkg/canvas"
	"github.com/aretw0/plop/pkg/core"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive session driving drags and edits note by note",
	Long: `Shell opens the state once and keeps it in memory. Notes are dragged and
edited through the same steps a pointer would take (drag, by, drop; edit,
text, color, done). The state is saved on 'save' and when the shell exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "plop> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
			AutoComplete:    shellCompleter(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize readline: %w", err)
		}
		defer rl.Close()

		return withSession(func(s *canvas.Session) error {
			return newShell(s, rl, rl.Stdout()).run(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// lineReader is the part of *readline.Instance the shell uses.
type lineReader interface {
	Readline() (string, error)
}

type prompter interface {
	SetPrompt(string)
}

type shell struct {
	s   *canvas.Session
	in  lineReader
	out io.Writer
}

type shellCommand struct {
	usage string
	run   func(sh *shell, ctx context.Context, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"help":    {"help", (*shell).help},
		"boards":  {"boards", (*shell).boards},
		"board":   {"board NAME", (*shell).newBoard},
		"use":     {"use ID", (*shell).use},
		"notes":   {"notes", (*shell).notes},
		"place":   {"place X Y", (*shell).place},
		"drag":    {"drag ID", (*shell).drag},
		"by":      {"by ID DX DY", (*shell).by},
		"preview": {"preview ID", (*shell).preview},
		"drop":    {"drop ID", (*shell).drop},
		"edit":    {"edit ID", (*shell).edit},
		"text":    {"text ID TEXT", (*shell).text},
		"color":   {"color ID COLOR", (*shell).color},
		"done":    {"done ID", (*shell).done},
		"search":  {"search QUERY", (*shell).search},
		"filter":  {"filter EXPR", (*shell).filter},
		"next":    {"next", (*shell).next},
		"prev":    {"prev", (*shell).prev},
		"save":    {"save", (*shell).save},
	}
}

func shellCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(shellCommands)+1)
	for name := range shellCommands {
		items = append(items, readline.PcItem(name))
	}
	items = append(items, readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}

func newShell(s *canvas.Session, in lineReader, out io.Writer) *shell {
	sh := &shell{s: s, in: in, out: out}
	s.Canvas().OnNoteCreated(func(e canvas.NoteCreated) {
		fmt.Fprintf(sh.out, "plop! note %d\n", e.Note.ID)
	})
	s.Canvas().OnDragCompleted(func(e canvas.DragCompleted) {
		fmt.Fprintf(sh.out, "plop! note %d landed at (%g, %g)\n", e.NoteID, e.Pos.X, e.Pos.Y)
	})
	return sh
}

func (sh *shell) run(ctx context.Context) error {
	sh.updatePrompt()
	for {
		line, err := sh.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(sh.out, "Use 'quit' to leave the shell.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		args := parseArgs(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}

		if err := sh.exec(ctx, args); err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		sh.s.Flush()
		sh.updatePrompt()
	}
}

func (sh *shell) exec(ctx context.Context, args []string) error {
	c, ok := shellCommands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (try 'help')", args[0])
	}
	return c.run(sh, ctx, args[1:])
}

func (sh *shell) updatePrompt() {
	p, ok := sh.in.(prompter)
	if !ok {
		return
	}
	if b, active := sh.s.ActiveBoard(); active {
		p.SetPrompt(fmt.Sprintf("plop [%s]> ", b.Name))
		return
	}
	p.SetPrompt("plop> ")
}

// parseArgs splits on spaces, keeping double-quoted runs together.
func parseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
		}
		current.Reset()
		quoted = false
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ' ' && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}

func wantArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func (sh *shell) help(_ context.Context, _ []string) error {
	for _, name := range []string{
		"boards", "board", "use", "notes", "place", "drag", "by", "preview", "drop",
		"edit", "text", "color", "done", "search", "filter", "next", "prev", "save",
	} {
		fmt.Fprintf(sh.out, "  %s\n", shellCommands[name].usage)
	}
	fmt.Fprintln(sh.out, "  quit")
	return nil
}

func (sh *shell) boards(_ context.Context, _ []string) error {
	active, hasActive := sh.s.ActiveBoard()
	for _, b := range sh.s.Boards() {
		marker := " "
		if hasActive && b.ID == active.ID {
			marker = "*"
		}
		fmt.Fprintf(sh.out, "%s %d %s (%d notes)\n", marker, b.ID, b.Name, len(b.Notes))
	}
	return nil
}

func (sh *shell) newBoard(_ context.Context, args []string) error {
	if err := wantArgs(args, 1, "board NAME"); err != nil {
		return err
	}
	b := sh.s.NewBoard(args[0], core.LightBlue)
	fmt.Fprintf(sh.out, "board %d created\n", b.ID)
	return nil
}

func (sh *shell) use(_ context.Context, args []string) error {
	if err := wantArgs(args, 1, "use ID"); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return sh.s.SwitchBoard(id)
}

func (sh *shell) notes(_ context.Context, _ []string) error {
	for _, v := range sh.s.Notes() {
		n := v.Note
		fmt.Fprintf(sh.out, "%d (%g, %g) %s %q\n", n.ID, n.Pos.X, n.Pos.Y, v.Mode, n.Text)
	}
	return nil
}

func (sh *shell) place(_ context.Context, args []string) error {
	if err := wantArgs(args, 2, "place X Y"); err != nil {
		return err
	}
	x, err := parseCoord(args[0])
	if err != nil {
		return err
	}
	y, err := parseCoord(args[1])
	if err != nil {
		return err
	}
	_, err = sh.s.PlaceNote(core.Pos2{X: x, Y: y})
	return err
}

func (sh *shell) noteID(args []string, n int, usage string) (uint64, error) {
	if err := wantArgs(args, n, usage); err != nil {
		return 0, err
	}
	return parseID(args[0])
}

func (sh *shell) drag(_ context.Context, args []string) error {
	id, err := sh.noteID(args, 1, "drag ID")
	if err != nil {
		return err
	}
	return sh.s.BeginDrag(id)
}

func (sh *shell) by(_ context.Context, args []string) error {
	id, err := sh.noteID(args, 3, "by ID DX DY")
	if err != nil {
		return err
	}
	dx, err := parseCoord(args[1])
	if err != nil {
		return err
	}
	dy, err := parseCoord(args[2])
	if err != nil {
		return err
	}
	return sh.s.DragBy(id, core.Vec2{X: dx, Y: dy})
}

func (sh *shell) preview(_ context.Context, args []string) error {
	id, err := sh.noteID(args, 1, "preview ID")
	if err != nil {
		return err
	}
	r, err := sh.s.Preview(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "would land at (%g, %g)\n", r.Min.X, r.Min.Y)
	return nil
}

func (sh *shell) drop(_ context.Context, args []string) error {
	id, err := sh.noteID(args, 1, "drop ID")
	if err != nil {
		return err
	}
	_, err = sh.s.EndDrag(id)
	return err
}

func (sh *shell) edit(_ context.Context, args []string) error {
	id, err := sh.noteID(args, 1, "edit ID")
	if err != nil {
		return err
	}
	return sh.s.BeginEdit(id)
}

func (sh *shell) text(_ context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: text ID TEXT")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return sh.s.SetText(id, strings.Join(args[1:], " "))
}

func (sh *shell) color(_ context.Context, args []string) error {
	id, err := sh.noteID(args, 2, "color ID COLOR")
	if err != nil {
		return err
	}
	c, err := core.ParseColor(args[1])
	if err != nil {
		return err
	}
	return sh.s.SetColor(id, c)
}

func (sh *shell) done(_ context.Context, args []string) error {
	id, err := sh.noteID(args, 1, "done ID")
	if err != nil {
		return err
	}
	_, err = sh.s.FinishEdit(id)
	return err
}

func (sh *shell) search(_ context.Context, args []string) error {
	_, filter, _, _ := sh.s.SearchQuery()
	return sh.runSearch(strings.Join(args, " "), filter)
}

func (sh *shell) filter(_ context.Context, args []string) error {
	query, _, _, _ := sh.s.SearchQuery()
	return sh.runSearch(query, strings.Join(args, " "))
}

func (sh *shell) runSearch(query, filter string) error {
	matches, err := sh.s.Search(query, filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "%d matches\n", len(matches))
	if len(matches) > 0 {
		fmt.Fprintf(sh.out, "focused note %d\n", matches[0])
	}
	return nil
}

func (sh *shell) next(_ context.Context, _ []string) error {
	return sh.reportFocus(sh.s.NextMatch())
}

func (sh *shell) prev(_ context.Context, _ []string) error {
	return sh.reportFocus(sh.s.PrevMatch())
}

func (sh *shell) reportFocus(id uint64, ok bool) error {
	if !ok {
		return fmt.Errorf("no matches")
	}
	fmt.Fprintf(sh.out, "focused note %d\n", id)
	return nil
}

func (sh *shell) save(ctx context.Context, _ []string) error {
	if err := sh.s.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "saved")
	return nil
}
