package main

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"
	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nwaples/rardecode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NavigationDirection represents the direction of navigation, used to pick
// preload candidates.
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// PreloadRequest asks the preload worker to warm the cache around an index.
type PreloadRequest struct {
	Index     int
	Direction NavigationDirection
}

// PreloadManager warms the image cache in the background so navigation
// does not stall on decode.
type PreloadManager struct {
	requestChan chan PreloadRequest
	ctx         context.Context
	cancel      context.CancelFunc
	manager     *ImageManager
	maxPreload  int
	enabled     bool
	mu          sync.RWMutex
}

func NewPreloadManager(manager *ImageManager, maxPreload int, enabled bool) *PreloadManager {
	ctx, cancel := context.WithCancel(context.Background())
	pm := &PreloadManager{
		requestChan: make(chan PreloadRequest, 16),
		ctx:         ctx,
		cancel:      cancel,
		manager:     manager,
		maxPreload:  maxPreload,
		enabled:     enabled,
	}
	go pm.worker()
	return pm
}

func (pm *PreloadManager) IsEnabled() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.enabled
}

// Stop cancels the worker goroutine.
func (pm *PreloadManager) Stop() {
	pm.cancel()
}

// Request schedules preloading around currentIdx, discarding any pending
// requests first; only the newest position matters.
func (pm *PreloadManager) Request(currentIdx int, direction NavigationDirection) {
	if !pm.IsEnabled() {
		return
	}

drain:
	for {
		select {
		case <-pm.requestChan:
		default:
			break drain
		}
	}

	select {
	case pm.requestChan <- PreloadRequest{Index: currentIdx, Direction: direction}:
	default:
	}
}

func (pm *PreloadManager) worker() {
	for {
		select {
		case <-pm.ctx.Done():
			return
		case req := <-pm.requestChan:
			pm.process(req)
		}
	}
}

func (pm *PreloadManager) process(req PreloadRequest) {
	count := pm.manager.Count()
	if count == 0 {
		return
	}

	for _, idx := range preloadIndices(req.Index, req.Direction, count, pm.maxPreload) {
		select {
		case <-pm.ctx.Done():
			return
		default:
			pm.manager.warm(idx)
		}
	}
}

// preloadIndices picks the cache-warming candidates around currentIdx.
// Forward and backward navigation preload ahead in that direction; a jump
// preloads both neighbors.
func preloadIndices(currentIdx int, direction NavigationDirection, count, max int) []int {
	var indices []int

	switch direction {
	case NavigationForward:
		for i := 1; i <= max; i++ {
			indices = append(indices, (currentIdx+i)%count)
		}
	case NavigationBackward:
		for i := 1; i <= max; i++ {
			indices = append(indices, (currentIdx-i+count*max)%count)
		}
	case NavigationJump:
		half := max / 2
		if half < 1 {
			half = 1
		}
		for i := 1; i <= half; i++ {
			indices = append(indices, (currentIdx+i)%count)
			indices = append(indices, (currentIdx-i+count*half)%count)
		}
	}

	return indices
}

// ImageManager loads slideshow entries on demand, keeping decoded images
// in an LRU cache. Undecodable entries get a placeholder image and are
// remembered as failed so the viewer can skip past them.
type ImageManager struct {
	paths   []ImagePath
	cache   *lru.Cache[string, *ebiten.Image]
	failed  map[string]bool
	mu      sync.RWMutex
	preload *PreloadManager
}

func NewImageManager(cacheSize, preloadCount int, preloadEnabled bool) *ImageManager {
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](16, func(_ string, img *ebiten.Image) {
			if img != nil {
				img.Deallocate()
			}
		})
	}

	m := &ImageManager{
		cache:  cache,
		failed: make(map[string]bool),
	}
	m.preload = NewPreloadManager(m, preloadCount, preloadEnabled)
	return m
}

// SetPaths swaps in a freshly built image list. Cache entries are keyed by
// path, so images shared between old and new lists stay warm.
func (m *ImageManager) SetPaths(paths []ImagePath) {
	m.mu.Lock()
	m.paths = paths
	m.mu.Unlock()
}

func (m *ImageManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.paths)
}

// Path returns the entry at idx.
func (m *ImageManager) Path(idx int) (ImagePath, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.paths) {
		return ImagePath{}, false
	}
	return m.paths[idx], true
}

// Paths returns a copy of the current list.
func (m *ImageManager) Paths() []ImagePath {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]ImagePath, len(m.paths))
	copy(result, m.paths)
	return result
}

// IndexOf finds an entry by path in the current list, -1 when absent.
func (m *ImageManager) IndexOf(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i, p := range m.paths {
		if p.Path == path {
			return i
		}
	}
	return -1
}

// StartPreload warms the cache around currentIdx in the given direction.
func (m *ImageManager) StartPreload(currentIdx int, direction NavigationDirection) {
	m.preload.Request(currentIdx, direction)
}

// StopPreload shuts down the background worker.
func (m *ImageManager) StopPreload() {
	m.preload.Stop()
}

// GetImage returns the decoded image at idx, loading it on demand. For an
// entry that cannot be decoded it returns an error placeholder and marks
// the entry failed.
func (m *ImageManager) GetImage(idx int) *ebiten.Image {
	imagePath, ok := m.Path(idx)
	if !ok {
		return nil
	}

	if img, ok := m.cache.Get(imagePath.Path); ok {
		return img
	}

	img, err := loadImage(imagePath)
	if err != nil {
		log.Printf("Error: Failed to load image [%d/%d] %s: %v",
			idx+1, m.Count(), imagePath.Path, err)
		img = CreateErrorImage(400, 300, imagePath.Path, err.Error())
		m.mu.Lock()
		m.failed[imagePath.Path] = true
		m.mu.Unlock()
	}

	m.cache.Add(imagePath.Path, img)
	return img
}

// LoadFailed reports whether a previous load attempt for idx failed.
func (m *ImageManager) LoadFailed(idx int) bool {
	imagePath, ok := m.Path(idx)
	if !ok {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failed[imagePath.Path]
}

// warm loads idx into the cache if not already present, without evicting
// anything the caller is looking at right now.
func (m *ImageManager) warm(idx int) {
	imagePath, ok := m.Path(idx)
	if !ok {
		return
	}
	if _, ok := m.cache.Get(imagePath.Path); ok {
		return
	}

	img, err := loadImage(imagePath)
	if err != nil {
		img = CreateErrorImage(400, 300, imagePath.Path, err.Error())
		m.mu.Lock()
		m.failed[imagePath.Path] = true
		m.mu.Unlock()
	}
	m.cache.Add(imagePath.Path, img)
}

// Image loading functions

func loadImageFromBytes(data []byte, path string) (*ebiten.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func loadImageFromZip(archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}
			return loadImageFromBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFromRar(archivePath, entryPath string) (*ebiten.Image, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == entryPath {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, err
			}
			return loadImageFromBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImageFrom7z(archivePath, entryPath string) (*ebiten.Image, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entryPath {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return nil, err
			}
			return loadImageFromBytes(data, entryPath)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entryPath, archivePath)
}

func loadImage(imagePath ImagePath) (*ebiten.Image, error) {
	if imagePath.ArchivePath == "" {
		f, err := os.Open(imagePath.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %v", imagePath.Path, err)
		}
		return ebiten.NewImageFromImage(img), nil
	}

	ext := strings.ToLower(filepath.Ext(imagePath.ArchivePath))
	switch ext {
	case ".zip":
		return loadImageFromZip(imagePath.ArchivePath, imagePath.EntryPath)
	case ".rar":
		return loadImageFromRar(imagePath.ArchivePath, imagePath.EntryPath)
	case ".7z":
		return loadImageFrom7z(imagePath.ArchivePath, imagePath.EntryPath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}

// Archive enumeration for the locator

func archiveImagesFromZip(archivePath string) ([]ImagePath, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

func archiveImagesFromRar(archivePath string) ([]ImagePath, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var images []ImagePath
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !header.IsDir && isSupportedExt(header.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + header.Name,
				ArchivePath: archivePath,
				EntryPath:   header.Name,
			})
		}
	}
	return images, nil
}

func archiveImagesFrom7z(archivePath string) ([]ImagePath, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var images []ImagePath
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && isSupportedExt(f.Name) {
			images = append(images, ImagePath{
				Path:        archivePath + ":" + f.Name,
				ArchivePath: archivePath,
				EntryPath:   f.Name,
			})
		}
	}
	return images, nil
}

// collectArchiveImages lists the image entries of a zip/rar/7z archive as
// slideshow entries.
func collectArchiveImages(archivePath string) ([]ImagePath, error) {
	ext := strings.ToLower(filepath.Ext(archivePath))
	switch ext {
	case ".zip":
		return archiveImagesFromZip(archivePath)
	case ".rar":
		return archiveImagesFromRar(archivePath)
	case ".7z":
		return archiveImagesFrom7z(archivePath)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", ext)
	}
}
