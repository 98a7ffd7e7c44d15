package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/plop/pkg/core"
)

func searchBoard() *core.Board {
	return &core.Board{
		ID: 1,
		Notes: []core.Note{
			{ID: 1, Text: "Buy milk", Pos: core.Pos2{X: 0, Y: 0}, Size: core.Vec2{X: 100, Y: 100}},
			{ID: 2, Text: "call mom", Pos: core.Pos2{X: 200, Y: 0}, Size: core.Vec2{X: 100, Y: 100}},
			{ID: 3, Text: "MILKSHAKE recipe", Pos: core.Pos2{X: 400, Y: 300}, Size: core.Vec2{X: 100, Y: 100}},
		},
	}
}

func TestSearch_CaseInsensitiveWithWrap(t *testing.T) {
	var s Search
	s.SetQuery("milk")
	require.NoError(t, s.Update(searchBoard()))

	assert.Equal(t, []uint64{1, 3}, s.Matches())
	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, uint64(1), cur)

	next, _ := s.Next()
	assert.Equal(t, uint64(3), next)
	next, _ = s.Next()
	assert.Equal(t, uint64(1), next, "next wraps to the first match")

	prev, _ := s.Prev()
	assert.Equal(t, uint64(3), prev, "prev wraps to the last match")
}

func TestSearch_EmptyQueryMatchesNothing(t *testing.T) {
	var s Search
	require.NoError(t, s.Update(searchBoard()))
	assert.Empty(t, s.Matches())

	_, ok := s.Next()
	assert.False(t, ok)
	_, ok = s.Prev()
	assert.False(t, ok)
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestSearch_Filter(t *testing.T) {
	var s Search
	require.NoError(t, s.SetFilter("x >= 200 && len(text) > 8"))
	require.NoError(t, s.Update(searchBoard()))
	assert.Equal(t, []uint64{3}, s.Matches())

	s.SetQuery("mom")
	require.NoError(t, s.Update(searchBoard()))
	assert.Empty(t, s.Matches())

	require.NoError(t, s.SetFilter("id == 2"))
	require.NoError(t, s.Update(searchBoard()))
	assert.Equal(t, []uint64{2}, s.Matches())
	assert.Equal(t, "id == 2", s.Filter())

	require.NoError(t, s.SetFilter(""))
	assert.Equal(t, "", s.Filter())
}

func TestSearch_InvalidFilterKeepsPrevious(t *testing.T) {
	var s Search
	require.NoError(t, s.SetFilter("width > 50"))

	assert.Error(t, s.SetFilter("text +"))
	assert.Error(t, s.SetFilter("x + 1"), "non-boolean filters are rejected")
	assert.Error(t, s.SetFilter("colour == 1"), "unknown variables are rejected")
	assert.Equal(t, "width > 50", s.Filter())
}

func TestFocus_CentersSceneRect(t *testing.T) {
	b := searchBoard()
	b.SceneRect = core.RectFromMinSize(core.Pos2{}, core.Vec2{X: 800, Y: 600})

	require.True(t, Focus(b, 3))
	assert.Equal(t, core.Pos2{X: 450, Y: 350}, b.SceneRect.Center())
	assert.Equal(t, core.Vec2{X: 800, Y: 600}, b.SceneRect.Size())

	assert.False(t, Focus(b, 99))
	assert.False(t, Focus(nil, 1))
}
