package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// defaultIgnoreFolders seeds a freshly created ignore file.
var defaultIgnoreFolders = []string{"PREVIEW", "THUMBNAIL"}

// ignoreFile is the on-disk shape of the ignore list.
type ignoreFile struct {
	IgnoreFolders []string `json:"ignore_folders"`
}

// IgnoreList matches folder names against the configured entries. Entries
// are glob patterns; a plain name like "PREVIEW" contains no metacharacters
// and degenerates to exact, case-sensitive equality.
type IgnoreList struct {
	names    []string
	matchers []glob.Glob
}

func NewIgnoreList(names []string) *IgnoreList {
	il := &IgnoreList{names: names}
	for _, name := range names {
		g, err := glob.Compile(name)
		if err != nil {
			log.Printf("Warning: Invalid ignore pattern %q: %v", name, err)
			continue
		}
		il.matchers = append(il.matchers, g)
	}
	return il
}

// Names returns the configured entries as loaded from the file.
func (il *IgnoreList) Names() []string {
	return il.names
}

func (il *IgnoreList) Len() int {
	return len(il.matchers)
}

// Match reports whether a single path segment is an ignored folder name.
func (il *IgnoreList) Match(segment string) bool {
	for _, m := range il.matchers {
		if m.Match(segment) {
			return true
		}
	}
	return false
}

func getIgnorePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".slideshow_ignore.json"
	}
	return filepath.Join(homeDir, ".slideshow_ignore.json")
}

// LoadIgnoreList reads the ignore file at path, creating it with the
// defaults when absent. Any other failure logs a warning and yields an
// empty list, so a broken file never blocks the slideshow.
func LoadIgnoreList(path string) *IgnoreList {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		writeDefaultIgnoreFile(path)
		return NewIgnoreList(defaultIgnoreFolders)
	}
	if err != nil {
		log.Printf("Warning: Cannot read ignore file %s, ignoring nothing: %v", path, err)
		return NewIgnoreList(nil)
	}

	var f ignoreFile
	if err := json.Unmarshal(data, &f); err != nil {
		log.Printf("Warning: Invalid ignore file %s, ignoring nothing: %v", path, err)
		return NewIgnoreList(nil)
	}
	return NewIgnoreList(f.IgnoreFolders)
}

func writeDefaultIgnoreFile(path string) {
	data, err := json.MarshalIndent(ignoreFile{IgnoreFolders: defaultIgnoreFolders}, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("Warning: Cannot create ignore file %s: %v", path, err)
	}
}
