package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// DirectoryState records where a previous run left off in one directory.
type DirectoryState struct {
	LastImagePath string `json:"last_image_path"`
	LastIndex     int    `json:"last_index"`
	ImageCount    int    `json:"image_count,omitempty"`
}

// StateStore persists per-directory resume positions in a single JSON file
// keyed by normalized directory path.
type StateStore struct {
	path string
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

func getStatePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".slideshow_state.json"
	}
	return filepath.Join(homeDir, ".slideshow_state.json")
}

// NormalizeDir resolves dir to an absolute, symlink-resolved path so the
// same logical directory maps to the same state entry however it was
// spelled on the command line.
func NormalizeDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %v", dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A component could not be resolved; the absolute path still
		// identifies the directory.
		return abs, nil
	}
	return resolved, nil
}

// Load reads the whole state mapping. A missing file yields an empty map;
// malformed JSON logs a warning and yields an empty map. Resume is never
// worth a fatal error.
func (s *StateStore) Load() map[string]DirectoryState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Cannot read state file %s: %v", s.path, err)
		}
		return map[string]DirectoryState{}
	}

	var states map[string]DirectoryState
	if err := json.Unmarshal(data, &states); err != nil {
		log.Printf("Warning: Invalid state file %s, resume disabled: %v", s.path, err)
		return map[string]DirectoryState{}
	}
	if states == nil {
		states = map[string]DirectoryState{}
	}
	return states
}

// Lookup returns the saved state for a normalized directory, if any.
func (s *StateStore) Lookup(dir string) (DirectoryState, bool) {
	st, ok := s.Load()[dir]
	return st, ok
}

// Save upserts the record for dir. The whole mapping is read back first so
// other directories' saved positions survive the write.
func (s *StateStore) Save(dir string, st DirectoryState) error {
	states := s.Load()
	states[dir] = st

	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %v", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing state file: %v", err)
	}
	return nil
}

// ResolveStart decides the starting index for a freshly scanned list.
// An explicit override wins (bounds-checked, falling back to 0 with a
// warning). Otherwise the saved image path is searched for in the new
// list, surviving reordering; failing that, the saved index is reused
// when it is still in bounds and the recorded image count (if any) still
// matches. Everything else starts from 0.
// startIndex < 0 means no override was given.
func ResolveStart(paths []ImagePath, st *DirectoryState, startIndex int) int {
	if startIndex >= 0 {
		if startIndex < len(paths) {
			return startIndex
		}
		log.Printf("Warning: Start index %d out of range [0-%d], starting at 0",
			startIndex, len(paths)-1)
		return 0
	}

	if st == nil {
		return 0
	}

	if st.LastImagePath != "" {
		for i, p := range paths {
			if p.Path == st.LastImagePath {
				return i
			}
		}
	}

	if st.LastIndex >= 0 && st.LastIndex < len(paths) &&
		(st.ImageCount == 0 || st.ImageCount == len(paths)) {
		return st.LastIndex
	}

	log.Printf("Image count changed since last run, starting from the beginning")
	return 0
}
