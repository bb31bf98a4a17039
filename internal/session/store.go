package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store handles session state persistence under the library's dot-dir.
type Store struct {
	path string
}

// NewStore creates a store that persists to the given library directory.
func NewStore(libraryPath string) *Store {
	return &Store{
		path: filepath.Join(libraryPath, ".loom", "state.json"),
	}
}

// Load reads the session state from disk. A missing or corrupt file
// yields the defaults.
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), err
	}

	return state, nil
}

// Save writes the session state to disk. The write goes through a temp
// file and rename so a crash mid-write cannot clobber the last state.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
