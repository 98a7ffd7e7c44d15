package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits and directory sync are POSIX only")
	}
}

func assertNoScratchFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover %s", e.Name())
	}
}

func TestReplaceFile_NewFileGetsDefaultMode(t *testing.T) {
	skipOnWindows(t)
	path := filepath.Join(t.TempDir(), "state.json")

	require.NoError(t, replaceFile(path, []byte(`{"boards":{}}`), 0640))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
}

func TestReplaceFile_KeepsModeOfExistingSnapshot(t *testing.T) {
	skipOnWindows(t)
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, replaceFile(path, []byte("new"), 0644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "a private state file stays private")
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestReplaceFile_RejectsNonRegularTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "state.json")
	require.NoError(t, os.Mkdir(target, 0755))

	assert.Error(t, replaceFile(target, []byte("{}"), 0644))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assertNoScratchFiles(t, dir)
}

func TestReplaceFile_FailedRenameKeepsOldSnapshot(t *testing.T) {
	skipOnWindows(t)
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	assert.Error(t, replaceFile(path, []byte("new"), 0644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
}

func TestReplaceFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "state.json")
	assert.Error(t, replaceFile(path, []byte("{}"), 0644))
}

func TestSyncDir(t *testing.T) {
	skipOnWindows(t)
	assert.NoError(t, syncDir(t.TempDir()))
	assert.Error(t, syncDir(filepath.Join(t.TempDir(), "missing")))
}

func TestRepository_RepeatedSavesKeepModeAndLeaveNoScratch(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	repo := NewRepository(Config{Path: path, Perm: 0600})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Write(ctx, []byte("{}")))
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assertNoScratchFiles(t, dir)
}
