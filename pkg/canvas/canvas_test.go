package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/plop/pkg/core"
)

func testBoard() *core.Board {
	return &core.Board{
		ID:         3,
		Name:       "Work",
		Background: core.LightBlue,
		Notes: []core.Note{
			{ID: 10, Text: "first", Pos: core.Pos2{X: 0, Y: 0}, Size: core.DefaultNoteSize, Color: core.Yellow},
			{ID: 11, Text: "second", Pos: core.Pos2{X: 100, Y: 50}, Size: core.DefaultNoteSize, Color: core.Yellow},
		},
	}
}

func newTestCanvas(t *testing.T) *Canvas {
	t.Helper()
	c, err := New(core.DefaultGridSize)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsInvalidGrid(t *testing.T) {
	for _, g := range []float32{0, -5} {
		_, err := New(g)
		assert.ErrorIs(t, err, core.ErrInvalidGrid)
	}
}

func TestCanvas_RebuildAndClear(t *testing.T) {
	c := newTestCanvas(t)
	c.Rebuild(testBoard())

	assert.Equal(t, 2, c.Len())
	id, ok := c.BoardID()
	require.True(t, ok)
	assert.Equal(t, uint64(3), id)

	views := c.Views()
	require.Len(t, views, 2)
	assert.Equal(t, uint64(10), views[0].Note.ID)
	assert.Equal(t, ModeIdle, views[1].Mode)

	// Rebuilding replaces the projection wholesale.
	other := &core.Board{ID: 4, Notes: []core.Note{{ID: 20}}}
	c.Rebuild(other)
	assert.Equal(t, 1, c.Len())
	_, ok = c.View(10)
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok = c.BoardID()
	assert.False(t, ok)

	c.Rebuild(nil)
	assert.Equal(t, 0, c.Len())
}

func TestCanvas_DragLifecycle(t *testing.T) {
	c := newTestCanvas(t)
	board := testBoard()
	c.Rebuild(board)

	require.NoError(t, c.BeginDrag(10))
	require.NoError(t, c.DragBy(10, core.Vec2{X: 30, Y: 20}))
	require.NoError(t, c.DragBy(10, core.Vec2{X: 10, Y: 2}))

	v, _ := c.View(10)
	assert.Equal(t, ModeDragging, v.Mode)
	assert.Equal(t, core.Pos2{X: 40, Y: 22}, v.Note.Pos)

	preview, err := c.Preview(10)
	require.NoError(t, err)
	assert.Equal(t, core.Pos2{X: 50, Y: 0}, preview.Min)
	assert.Equal(t, core.DefaultNoteSize, preview.Size())

	// The store copy is untouched until the drag ends.
	assert.Equal(t, core.Pos2{}, board.Notes[0].Pos)

	n, err := c.EndDrag(10)
	require.NoError(t, err)
	assert.Equal(t, core.Pos2{X: 50, Y: 0}, n.Pos)

	v, _ = c.View(10)
	assert.Equal(t, ModeIdle, v.Mode)
}

func TestCanvas_EditLifecycle(t *testing.T) {
	c := newTestCanvas(t)
	c.Rebuild(testBoard())

	require.NoError(t, c.BeginEdit(11))
	require.NoError(t, c.SetText(11, "rewritten"))
	require.NoError(t, c.SetColor(11, core.LightRed))

	n, err := c.FinishEdit(11)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", n.Text)
	assert.Equal(t, core.LightRed, n.Color)
	assert.Equal(t, core.Pos2{X: 100, Y: 50}, n.Pos)
}

func TestCanvas_DragAndEditAreExclusive(t *testing.T) {
	c := newTestCanvas(t)
	c.Rebuild(testBoard())

	require.NoError(t, c.BeginDrag(10))
	assert.ErrorIs(t, c.BeginEdit(10), core.ErrInvalidTransition)
	assert.ErrorIs(t, c.SetText(10, "x"), core.ErrInvalidTransition)
	assert.ErrorIs(t, c.BeginDrag(10), core.ErrInvalidTransition)
	_, err := c.FinishEdit(10)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	require.NoError(t, c.BeginEdit(11))
	assert.ErrorIs(t, c.BeginDrag(11), core.ErrInvalidTransition)
	assert.ErrorIs(t, c.DragBy(11, core.Vec2{X: 1}), core.ErrInvalidTransition)
	_, err = c.Preview(11)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
	_, err = c.EndDrag(11)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	assert.Equal(t, 1, c.Count(ModeDragging))
	assert.Equal(t, 1, c.Count(ModeEditing))
}

func TestCanvas_UnknownNote(t *testing.T) {
	c := newTestCanvas(t)
	c.Rebuild(testBoard())

	assert.ErrorIs(t, c.BeginDrag(99), core.ErrNoteNotFound)
	assert.ErrorIs(t, c.BeginEdit(99), core.ErrNoteNotFound)
}

func TestCanvas_SyncInto(t *testing.T) {
	c := newTestCanvas(t)
	board := testBoard()
	c.Rebuild(board)

	require.NoError(t, c.BeginEdit(10))
	require.NoError(t, c.SetText(10, "draft"))

	assert.Equal(t, 2, c.SyncInto(board))
	assert.Equal(t, "draft", board.Notes[0].Text)
	assert.Equal(t, "second", board.Notes[1].Text)

	assert.Equal(t, 0, c.SyncInto(&core.Board{ID: 3}))
	assert.Equal(t, 0, c.SyncInto(nil))
}

func TestCanvas_FeedbackEvents(t *testing.T) {
	c := newTestCanvas(t)
	c.Rebuild(testBoard())

	var created []NoteCreated
	var dropped []DragCompleted
	c.OnNoteCreated(func(e NoteCreated) { created = append(created, e) })
	c.OnDragCompleted(func(e DragCompleted) { dropped = append(dropped, e) })

	require.NoError(t, c.Add(core.Note{ID: 12, Text: core.DefaultNoteText}))
	require.NoError(t, c.BeginDrag(12))
	require.NoError(t, c.DragBy(12, core.Vec2{X: 74, Y: 26}))
	_, err := c.EndDrag(12)
	require.NoError(t, err)

	// Events are queued until flushed.
	assert.Empty(t, created)
	assert.Empty(t, dropped)

	c.Flush()
	require.Len(t, created, 1)
	assert.Equal(t, uint64(3), created[0].BoardID)
	assert.Equal(t, uint64(12), created[0].Note.ID)
	require.Len(t, dropped, 1)
	assert.Equal(t, DragCompleted{BoardID: 3, NoteID: 12, Pos: core.Pos2{X: 50, Y: 50}}, dropped[0])
}

func TestCanvas_AddRequiresBoard(t *testing.T) {
	c := newTestCanvas(t)
	assert.ErrorIs(t, c.Add(core.Note{ID: 1}), core.ErrNoActiveBoard)

	c.Rebuild(testBoard())
	assert.Error(t, c.Add(core.Note{ID: 10}))
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "idle", ModeIdle.String())
	assert.Equal(t, "dragging", ModeDragging.String())
	assert.Equal(t, "editing", ModeEditing.String())
	assert.Equal(t, "mode(7)", Mode(7).String())
}

func TestCanvas_RebuildSkipsDuplicateIDs(t *testing.T) {
	c := newTestCanvas(t)
	b := testBoard()
	b.Notes = append(b.Notes, core.Note{ID: 10, Text: "shadow"})

	c.Rebuild(b)
	assert.Equal(t, 2, c.Len())
	v, ok := c.View(10)
	require.True(t, ok)
	assert.Equal(t, "first", v.Note.Text)

	c.Clear()
	assert.Equal(t, 0, c.Len(), "no entity outlives Clear")
}
