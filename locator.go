package main

import (
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

// ImagePath identifies a single slideshow entry, either a regular file or
// an entry inside an archive.
type ImagePath struct {
	Path        string // Local file path or archive:entry format
	ArchivePath string // Empty for regular files, path to archive for entries
	EntryPath   string // Empty for regular files, path within archive for entries
}

// ScanOptions controls what the locator picks up during a directory walk.
type ScanOptions struct {
	IgnoreEnabled   bool // apply folder-name exclusion
	IncludeArchives bool // expand zip/rar/7z archives into entries
}

func isSupportedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tiff", ".tif":
		return true
	default:
		return false
	}
}

func isArchiveExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

// Scan recursively collects image files under rootDir. With IgnoreEnabled,
// any directory whose name matches the ignore list is pruned, so no file
// with an ignored path segment between rootDir and itself survives.
// Unreadable subtrees are logged and skipped, never fatal. The result is
// sorted ascending by path string.
func Scan(rootDir string, ignore *IgnoreList, opts ScanOptions) ([]ImagePath, error) {
	var list []ImagePath

	err := godirwalk.Walk(rootDir, &godirwalk.Options{
		Unsorted: true, // sorted once below
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if opts.IgnoreEnabled && path != rootDir && ignore.Match(de.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if isSupportedExt(path) {
				list = append(list, ImagePath{Path: path})
			} else if opts.IncludeArchives && isArchiveExt(path) {
				entries, err := collectArchiveImages(path)
				if err != nil {
					log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
					return nil
				}
				list = append(list, entries...)
			}
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			// Fail open: only the inaccessible branch drops out of the
			// scan, the rest of the tree survives.
			log.Printf("Warning: Skipping %s: %v", path, err)
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Path < list[j].Path
	})
	return list, nil
}
