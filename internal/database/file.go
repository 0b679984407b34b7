package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FileStore keeps the state as an indented JSON document, rewritten in full
// on every Save. Writes go to a temp file that is renamed over the target, so
// the previous document survives a failed or interrupted save.
type FileStore struct {
	path string
	sync func(*os.File) error
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, sync: (*os.File).Sync}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*TrackerState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		log.Printf("📄 No data file at %s, starting fresh", s.path)
		return NewTrackerState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	state, err := decodeState(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return state, nil
}

func (s *FileStore) Save(ctx context.Context, state *TrackerState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	if err := s.writeAtomic(data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := s.sync(tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

func (s *FileStore) Close() error {
	return nil
}
