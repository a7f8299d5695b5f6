package supervisor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type fileLock struct {
	f *flock.Flock
}

// acquireLock takes the single-instance lock, failing immediately when
// another supervisor already holds it.
func acquireLock(path string) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o770); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f := flock.New(path)
	locked, err := f.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("another launcher instance is already running (lock %s)", path)
	}
	return &fileLock{f: f}, nil
}

func (l *fileLock) release() {
	_ = l.f.Unlock()
}
