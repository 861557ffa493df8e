package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

type fileStore struct {
	path   string
	mutex  sync.Mutex
	values map[string]string
}

// NewFileStore opens the JSON key/value file at path. A missing or corrupt file
// yields an empty store; the file is rewritten on the next Set.
func NewFileStore(path string) Store {
	s := &fileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("State file %s does not exist yet", path)
	case err != nil:
		log.Warnf("Failed to read state file %s: %v", path, err)
	default:
		if err := json.Unmarshal(data, &s.values); err != nil {
			log.Warnf("State file %s is corrupt, starting empty: %v", path, err)
			s.values = make(map[string]string)
		}
	}

	return s
}

func (s *fileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	// Write to a sibling temp file and rename so a crash never leaves a torn file.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file %s: %w", s.path, err)
	}

	return nil
}
