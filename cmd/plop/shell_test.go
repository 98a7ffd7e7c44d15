package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/plop"
	"github.com/aretw0/plop/pkg/core"
)

type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (r *scriptedReader) SetPrompt(p string) {
	r.prompts = append(r.prompts, p)
}

func TestShell_DragAndEditCycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := plop.New(path)
	require.NoError(t, err)

	in := &scriptedReader{lines: []string{
		"board Work",
		"place 130 74",
		"drag 0",
		"by 0 60 90",
		"preview 0",
		"drop 0",
		"drop 0",
		"edit 0",
		`text 0 "hello world"`,
		"color 0 lightred",
		"drag 0",
		"done 0",
		"",
		"^C",
		"search HELLO",
		"next",
		"notes",
		"bogus",
		"save",
	}}
	var out bytes.Buffer
	require.NoError(t, newShell(s, in, &out).run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "board 0 created\n")
	assert.Contains(t, got, "plop! note 0\n")
	assert.Contains(t, got, "would land at (200, 150)\n")
	assert.Contains(t, got, "plop! note 0 landed at (200, 150)\n")
	assert.Contains(t, got, "Use 'quit' to leave the shell.\n")
	assert.Contains(t, got, "1 matches\nfocused note 0\n")
	assert.Contains(t, got, "0 (200, 150) idle \"hello world\"\n")
	assert.Contains(t, got, `error: unknown command "bogus"`)
	assert.Contains(t, got, "saved\n")

	// The second drop and the drag during the edit are rejected.
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("invalid")), got)

	require.NotEmpty(t, in.prompts)
	assert.Equal(t, "plop> ", in.prompts[0])
	assert.Equal(t, "plop [Work]> ", in.prompts[len(in.prompts)-1])

	st := plop.LoadState(path)
	b, ok := st.ActiveBoard()
	require.True(t, ok)
	require.Len(t, b.Notes, 1)
	assert.Equal(t, "hello world", b.Notes[0].Text)
	assert.Equal(t, core.LightRed, b.Notes[0].Color)
	assert.Equal(t, core.Pos2{X: 200, Y: 150}, b.Notes[0].Pos)
}

func TestShell_QuitStopsReading(t *testing.T) {
	s, err := plop.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	in := &scriptedReader{lines: []string{"boards", "quit", "board Never"}}
	var out bytes.Buffer
	require.NoError(t, newShell(s, in, &out).run(context.Background()))

	assert.Len(t, in.lines, 1)
	assert.Empty(t, s.Boards())
}

func TestShell_UsageErrors(t *testing.T) {
	s, err := plop.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	in := &scriptedReader{lines: []string{"place 1", "drag x", "next", "place 0 0", "use 3"}}
	var out bytes.Buffer
	require.NoError(t, newShell(s, in, &out).run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "error: usage: place X Y\n")
	assert.Contains(t, got, `error: invalid id "x"`)
	assert.Contains(t, got, "error: no matches\n")
	assert.Contains(t, got, "error: "+core.ErrNoActiveBoard.Error())
	assert.Contains(t, got, "error: board 3")
}

func TestShellCommands_HelpListsEveryCommand(t *testing.T) {
	s, err := plop.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	var out bytes.Buffer
	sh := newShell(s, &scriptedReader{}, &out)
	require.NoError(t, sh.help(context.Background(), nil))
	for name, c := range shellCommands {
		if name == "help" {
			continue
		}
		assert.Contains(t, out.String(), "  "+c.usage+"\n")
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"notes", []string{"notes"}},
		{"place  10   20", []string{"place", "10", "20"}},
		{`text 3 "buy milk"`, []string{"text", "3", "buy milk"}},
		{`text 3 ""`, []string{"text", "3", ""}},
		{`search a"b c"d`, []string{"search", "ab cd"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseArgs(tt.input))
		})
	}
}
