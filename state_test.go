package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateStoreRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	store := NewStateStore(filepath.Join(tempDir, "state.json"))

	st := DirectoryState{
		LastImagePath: "/photos/vacation/beach.jpg",
		LastIndex:     7,
		ImageCount:    42,
	}
	if err := store.Save("/photos/vacation", st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok := store.Lookup("/photos/vacation")
	if !ok {
		t.Fatal("Expected saved entry to be found")
	}
	if loaded != st {
		t.Errorf("Loaded state %+v, want %+v", loaded, st)
	}

	if _, ok := store.Lookup("/photos/other"); ok {
		t.Error("Lookup of unknown directory should miss")
	}
}

func TestStateStoreUpsertPreservesOthers(t *testing.T) {
	tempDir := t.TempDir()
	store := NewStateStore(filepath.Join(tempDir, "state.json"))

	if err := store.Save("/a", DirectoryState{LastIndex: 1}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("/b", DirectoryState{LastIndex: 2}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("/a", DirectoryState{LastIndex: 9}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	a, _ := store.Lookup("/a")
	if a.LastIndex != 9 {
		t.Errorf("Expected /a to be updated to 9, got %d", a.LastIndex)
	}
	b, ok := store.Lookup("/b")
	if !ok || b.LastIndex != 2 {
		t.Errorf("Expected /b entry to survive the upsert, got %+v (ok=%v)", b, ok)
	}
}

func TestStateStoreMissingFile(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "nope.json"))
	if states := store.Load(); len(states) != 0 {
		t.Errorf("Expected empty map for missing file, got %v", states)
	}
}

func TestStateStoreMalformedFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "state.json")
	if err := os.WriteFile(path, []byte(`not json`), 0644); err != nil {
		t.Fatalf("Failed to write state file: %v", err)
	}

	store := NewStateStore(path)
	if states := store.Load(); len(states) != 0 {
		t.Errorf("Expected empty map for malformed file, got %v", states)
	}

	// Saving over a corrupt file must still work
	if err := store.Save("/a", DirectoryState{LastIndex: 3}); err != nil {
		t.Fatalf("Save over corrupt file failed: %v", err)
	}
	if st, ok := store.Lookup("/a"); !ok || st.LastIndex != 3 {
		t.Errorf("Expected saved entry after recovery, got %+v (ok=%v)", st, ok)
	}
}

func TestNormalizeDirStable(t *testing.T) {
	tempDir := t.TempDir()

	direct, err := NormalizeDir(tempDir)
	if err != nil {
		t.Fatalf("NormalizeDir failed: %v", err)
	}

	// Trailing separator and a dot component must normalize identically
	dotted, err := NormalizeDir(filepath.Join(tempDir, "."))
	if err != nil {
		t.Fatalf("NormalizeDir failed: %v", err)
	}
	if direct != dotted {
		t.Errorf("Expected identical normalization, got %q vs %q", direct, dotted)
	}

	if !filepath.IsAbs(direct) {
		t.Errorf("Expected absolute path, got %q", direct)
	}
}

func TestResolveStart(t *testing.T) {
	paths := []ImagePath{
		{Path: "/d/a.jpg"},
		{Path: "/d/b.jpg"},
		{Path: "/d/c.jpg"},
		{Path: "/d/d.jpg"},
	}

	tests := []struct {
		name       string
		paths      []ImagePath
		state      *DirectoryState
		startIndex int
		expected   int
	}{
		{
			name:       "No state no override",
			paths:      paths,
			state:      nil,
			startIndex: -1,
			expected:   0,
		},
		{
			name:       "Override wins over state",
			paths:      paths,
			state:      &DirectoryState{LastImagePath: "/d/c.jpg", LastIndex: 2},
			startIndex: 1,
			expected:   1,
		},
		{
			name:       "Override zero is valid",
			paths:      paths,
			state:      &DirectoryState{LastIndex: 2},
			startIndex: 0,
			expected:   0,
		},
		{
			name:       "Override out of range falls back to zero",
			paths:      paths,
			state:      &DirectoryState{LastIndex: 2},
			startIndex: 99,
			expected:   0,
		},
		{
			name:       "Saved path found",
			paths:      paths,
			state:      &DirectoryState{LastImagePath: "/d/c.jpg", LastIndex: 0},
			startIndex: -1,
			expected:   2,
		},
		{
			name: "Saved path survives reordering",
			paths: []ImagePath{
				{Path: "/d/c.jpg"},
				{Path: "/d/a.jpg"},
				{Path: "/d/b.jpg"},
			},
			state:      &DirectoryState{LastImagePath: "/d/b.jpg", LastIndex: 0},
			startIndex: -1,
			expected:   2,
		},
		{
			name:       "Path gone index in bounds",
			paths:      paths,
			state:      &DirectoryState{LastImagePath: "/d/gone.jpg", LastIndex: 3, ImageCount: 4},
			startIndex: -1,
			expected:   3,
		},
		{
			name:       "Path gone index out of bounds",
			paths:      paths[:2],
			state:      &DirectoryState{LastImagePath: "/d/gone.jpg", LastIndex: 3},
			startIndex: -1,
			expected:   0,
		},
		{
			name:       "Count mismatch rejects bare index",
			paths:      paths,
			state:      &DirectoryState{LastImagePath: "/d/gone.jpg", LastIndex: 2, ImageCount: 9},
			startIndex: -1,
			expected:   0,
		},
		{
			name:       "No count recorded accepts in-bounds index",
			paths:      paths,
			state:      &DirectoryState{LastIndex: 2},
			startIndex: -1,
			expected:   2,
		},
		{
			name:       "Negative saved index rejected",
			paths:      paths,
			state:      &DirectoryState{LastIndex: -5},
			startIndex: -1,
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveStart(tt.paths, tt.state, tt.startIndex)
			if result != tt.expected {
				t.Errorf("ResolveStart() = %d, want %d", result, tt.expected)
			}
		})
	}
}

func TestResumePathStableAcrossRootSpellings(t *testing.T) {
	tempDir := t.TempDir()
	makeTree(t, tempDir, []string{"a.jpg", "b.jpg", "c.jpg"})

	scanNormalized := func(spelling string) []ImagePath {
		t.Helper()
		root, err := NormalizeDir(spelling)
		if err != nil {
			t.Fatalf("NormalizeDir failed: %v", err)
		}
		paths, err := Scan(root, NewIgnoreList(nil), ScanOptions{IgnoreEnabled: true})
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		return paths
	}

	first := scanNormalized(tempDir)
	st := DirectoryState{LastImagePath: first[1].Path, LastIndex: 1, ImageCount: 3}

	// A later run spelling the same root relatively must still find the
	// saved path, because scans always run from the normalized root
	t.Chdir(filepath.Dir(tempDir))
	second := scanNormalized(filepath.Base(tempDir))

	if got := ResolveStart(second, &st, -1); got != 1 {
		t.Errorf("Expected saved path to resolve to index 1, got %d", got)
	}
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Errorf("Position %d: %q vs %q, scans from different spellings diverge",
				i, first[i].Path, second[i].Path)
		}
	}
}
