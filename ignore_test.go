package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewIgnoreListMatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		segment  string
		expected bool
	}{
		{"Exact match", []string{"PREVIEW"}, "PREVIEW", true},
		{"Case sensitive", []string{"PREVIEW"}, "preview", false},
		{"No match", []string{"PREVIEW"}, "photos", false},
		{"Second pattern", []string{"PREVIEW", "THUMBNAIL"}, "THUMBNAIL", true},
		{"Glob suffix", []string{"*_thumbs"}, "vacation_thumbs", true},
		{"Glob suffix miss", []string{"*_thumbs"}, "thumbs", false},
		{"Glob prefix", []string{"tmp*"}, "tmp_export", true},
		{"Empty list", nil, "PREVIEW", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewIgnoreList(tt.patterns)
			if result := list.Match(tt.segment); result != tt.expected {
				t.Errorf("Match(%s) = %v, want %v", tt.segment, result, tt.expected)
			}
		})
	}
}

func TestNewIgnoreListSkipsInvalidPatterns(t *testing.T) {
	// "[" is not a valid glob pattern; the valid one must still work
	list := NewIgnoreList([]string{"[", "PREVIEW"})
	if !list.Match("PREVIEW") {
		t.Error("Expected valid pattern to survive an invalid sibling")
	}
	if list.Match("[") {
		t.Error("Invalid pattern should have been dropped")
	}
}

func TestLoadIgnoreListCreatesDefault(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "ignore.json")

	list := LoadIgnoreList(path)

	if !list.Match("PREVIEW") || !list.Match("THUMBNAIL") {
		t.Error("Expected default ignore list to match PREVIEW and THUMBNAIL")
	}

	// The defaults should have been written out for the user to edit
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected default ignore file to be created: %v", err)
	}

	// A second load reads the file back identically
	list2 := LoadIgnoreList(path)
	if !list2.Match("PREVIEW") {
		t.Error("Expected reloaded ignore list to match PREVIEW")
	}
}

func TestLoadIgnoreListCustomFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "ignore.json")

	content := `{"ignore_folders": ["cache", "raw_*"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write ignore file: %v", err)
	}

	list := LoadIgnoreList(path)

	if !list.Match("cache") {
		t.Error("Expected custom pattern 'cache' to match")
	}
	if !list.Match("raw_exports") {
		t.Error("Expected custom glob 'raw_*' to match raw_exports")
	}
	if list.Match("PREVIEW") {
		t.Error("Custom file should replace the defaults, not extend them")
	}
}

func TestLoadIgnoreListMalformedJSON(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "ignore.json")

	if err := os.WriteFile(path, []byte(`{invalid json`), 0644); err != nil {
		t.Fatalf("Failed to write ignore file: %v", err)
	}

	// Malformed file means no filtering, never a startup failure
	list := LoadIgnoreList(path)
	if list.Match("PREVIEW") || list.Match("THUMBNAIL") {
		t.Error("Expected empty ignore list on malformed JSON")
	}
}

func TestLoadIgnoreListEmptyFolders(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "ignore.json")

	if err := os.WriteFile(path, []byte(`{"ignore_folders": []}`), 0644); err != nil {
		t.Fatalf("Failed to write ignore file: %v", err)
	}

	list := LoadIgnoreList(path)
	if list.Match("PREVIEW") {
		t.Error("Explicit empty list should disable all filtering")
	}
}
