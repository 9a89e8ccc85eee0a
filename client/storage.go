package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists projection state between screen mounts. Load returns
// (nil, nil) when no state has been saved for the space yet.
type Storage interface {
	Load(spaceID int64) (*ProjectionState, error)
	Save(spaceID int64, state ProjectionState) error
}

// FileStorage keeps one JSON file per space under a directory, the
// desktop analog of the app's per-space local storage entries.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (fs *FileStorage) path(spaceID int64) string {
	return filepath.Join(fs.dir, fmt.Sprintf("space_%d_occupancy.json", spaceID))
}

func (fs *FileStorage) Load(spaceID int64) (*ProjectionState, error) {
	raw, err := os.ReadFile(fs.path(spaceID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read occupancy state: %w", err)
	}
	var state ProjectionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode occupancy state: %w", err)
	}
	return &state, nil
}

func (fs *FileStorage) Save(spaceID int64, state ProjectionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode occupancy state: %w", err)
	}
	if err := os.WriteFile(fs.path(spaceID), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write occupancy state: %w", err)
	}
	return nil
}
