package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the state file created in the home directory.
const DefaultFileName = "plop_state.json"

// DefaultPath returns the state file in the user's home directory, or in the
// working directory when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
// Both build their binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveStatePath applies the sandbox rule to a state file path.
//
// Without forceTemp the path is returned as given (DefaultPath when empty).
// With forceTemp, paths already inside the temp directory are trusted and
// everything else keeps only its base name under <tmp>/plop-dev.
func ResolveStatePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return DefaultPath()
		}
		return userPath
	}

	tempRoot := os.TempDir()
	if userPath != "" {
		clean := filepath.Clean(userPath)
		if rel, err := filepath.Rel(tempRoot, clean); err == nil && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}

	name := filepath.Base(userPath)
	if userPath == "" || name == "." || name == string(os.PathSeparator) {
		name = DefaultFileName
	}
	return filepath.Join(tempRoot, "plop-dev", name)
}
