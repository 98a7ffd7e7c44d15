package fs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/plop/pkg/core"
)

// TestConcurrentWritesNeverTear verifies that readers racing with writers
// only ever observe a complete payload.
func TestConcurrentWritesNeverTear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	repo := NewRepository(Config{Path: path})
	ctx := context.Background()

	payloads := make([][]byte, 8)
	for i := range payloads {
		payloads[i] = bytes.Repeat([]byte{byte('a' + i)}, 64*1024)
	}

	var wg sync.WaitGroup
	for _, p := range payloads {
		wg.Add(1)
		go func(p []byte) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := repo.Write(ctx, p); err != nil {
					t.Errorf("write failed: %v", err)
					return
				}
			}
		}(p)
	}

	done := make(chan struct{})
	readErr := make(chan error, 1)
	go func() {
		defer close(readErr)
		for {
			select {
			case <-done:
				return
			default:
			}
			data, err := repo.Read(ctx)
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			if err != nil {
				readErr <- err
				return
			}
			if len(data) != 64*1024 || bytes.Count(data, data[:1]) != len(data) {
				readErr <- errors.New("observed a torn write")
				return
			}
		}
	}()

	wg.Wait()
	close(done)
	if err := <-readErr; err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), TempFilePrefix) {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
