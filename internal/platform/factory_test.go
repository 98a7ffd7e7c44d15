package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/plop/internal/platform"
	"github.com/aretw0/plop/pkg/adapters/fs"
	"github.com/aretw0/plop/pkg/adapters/sqlite"
	"github.com/aretw0/plop/pkg/core"
)

func TestNew_FileAdapters(t *testing.T) {
	for _, name := range []string{"state.json", "state.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			ctx := context.Background()

			s, err := platform.New(path)
			require.NoError(t, err)
			assert.Equal(t, core.OutcomeMissing, s.LastOutcome())

			s.NewBoard("Board", core.LightBlue)
			_, err = s.PlaceNote(core.Pos2{X: 10, Y: 10})
			require.NoError(t, err)
			require.NoError(t, s.Close(ctx))

			reopened, err := platform.New(path)
			require.NoError(t, err)
			assert.Equal(t, core.OutcomeLoaded, reopened.LastOutcome())
			assert.Len(t, reopened.Notes(), 1)

			repo, ok := reopened.Store().Repository().(*fs.Repository)
			require.True(t, ok)
			assert.Equal(t, path, repo.Path)
		})
	}
}

func TestNew_SQLiteAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plop.db")
	ctx := context.Background()

	s, err := platform.New(path, platform.WithAdapter(platform.AdapterSQLite))
	require.NoError(t, err)
	_, isSQLite := s.Store().Repository().(*sqlite.Repository)
	assert.True(t, isSQLite)

	s.NewBoard("Board", core.LightBlue)
	require.NoError(t, s.Close(ctx))

	reopened, err := platform.New(path, platform.WithAdapter(platform.AdapterSQLite))
	require.NoError(t, err)
	defer reopened.Close(ctx)
	assert.Len(t, reopened.Boards(), 1)
}

func TestNew_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	_, err := platform.New(path, platform.WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")

	_, err = platform.New(path, platform.WithGridSize(0))
	assert.ErrorIs(t, err, core.ErrInvalidGrid)

	_, err = platform.New(t.TempDir())
	assert.Error(t, err, "a directory is not a state file")
}

func TestNew_GridSize(t *testing.T) {
	s, err := platform.New(filepath.Join(t.TempDir(), "state.json"), platform.WithGridSize(10))
	require.NoError(t, err)
	s.NewBoard("Board", core.LightBlue)

	n, err := s.PlaceNote(core.Pos2{X: 14, Y: 16})
	require.NoError(t, err)
	assert.Equal(t, core.Pos2{X: 10, Y: 20}, n.Pos)
}

func TestNew_ReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	s, err := platform.New(path, platform.WithReadOnly(true))
	require.NoError(t, err)
	s.NewBoard("Board", core.LightBlue)

	assert.ErrorIs(t, s.Save(ctx), core.ErrReadOnly)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNew_ForceTempSandbox(t *testing.T) {
	s, err := platform.New("/definitely/not/here/board.json", platform.WithForceTemp(true))
	require.NoError(t, err)

	repo := s.Store().Repository().(*fs.Repository)
	assert.Equal(t, filepath.Join(os.TempDir(), "plop-dev", "board.json"), repo.Path)
}

func TestNew_LenientDecoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"boards":{},"current_board":null,"next_note_id":4,"next_board_id":2,"theme":"dark"}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	strict, err := platform.New(path)
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeCorrupt, strict.LastOutcome())

	lenient, err := platform.New(path, platform.WithStrict(false))
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeLoaded, lenient.LastOutcome())
	assert.Equal(t, uint64(4), lenient.Snapshot().NextNoteID)
}

func TestOpenStore_SingleBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	store, err := platform.OpenStore(path, core.NewSingleBoardState)
	require.NoError(t, err)

	res := store.Load(context.Background())
	assert.Equal(t, core.OutcomeMissing, res.Outcome)
	assert.Equal(t, core.NewSingleBoardState(), res.Value)
}

func TestInit_InjectedRepository(t *testing.T) {
	injected := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "x.json")})
	repo, err := platform.Init("ignored", platform.WithRepository(injected))
	require.NoError(t, err)
	assert.Same(t, injected, repo)
}
