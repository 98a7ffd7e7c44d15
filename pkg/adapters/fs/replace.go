package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempFilePrefix marks the scratch file of a save in progress. Watchers skip it.
const TempFilePrefix = "plop-tmp-"

// replaceFile swaps the snapshot at path for data. Readers see either the old
// or the new contents, never a mix. A file that already exists keeps its
// permission bits; a new file gets perm.
func replaceFile(path string, data []byte, perm os.FileMode) (err error) {
	mode := perm
	if info, statErr := os.Stat(path); statErr == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s is not a regular file", path)
		}
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set mode %v: %w", mode, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// syncDir flushes a directory so that a rename inside it survives a crash.
// Windows cannot sync directories and returns an error here.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}
