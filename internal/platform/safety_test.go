package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatePath(t *testing.T) {
	tmp := t.TempDir()
	inTemp := filepath.Join(tmp, "state.json")
	sandbox := filepath.Join(os.TempDir(), "plop-dev")

	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{"Passthrough", "/home/someone/board.json", false, "/home/someone/board.json"},
		{"Empty Uses Default", "", false, DefaultPath()},
		{"Temp Path Trusted", inTemp, true, inTemp},
		{"Re-rooted By Base Name", "/home/someone/board.json", true, filepath.Join(sandbox, "board.json")},
		{"Relative Re-rooted", "../x/state.yaml", true, filepath.Join(sandbox, "state.yaml")},
		{"Empty Re-rooted", "", true, filepath.Join(sandbox, DefaultFileName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatePath(tt.path, tt.forceTemp))
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFileName, filepath.Base(DefaultPath()))
}

func TestIsDevRun_UnderGoTest(t *testing.T) {
	assert.True(t, IsDevRun())
}
