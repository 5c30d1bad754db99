package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SlideshowOptions carries the startup decisions made in main.
type SlideshowOptions struct {
	RootDir        string
	NormalizedRoot string
	StartIndex     int
	Delay          int
	Fullscreen     bool
	ResumeSave     bool
	StartMessage   string
}

// Slideshow drives the whole viewer: it owns the navigator, the image
// manager and the UI state, implements ebiten.Game, and exposes the
// InputActions / InputState / RenderState facets consumed by the input
// handler and the renderer.
type Slideshow struct {
	manager  *ImageManager
	nav      *Navigator
	input    *InputHandler
	renderer *Renderer

	config       Config
	configStatus ConfigLoadResult

	rootDir        string
	normalizedRoot string
	stateStore     *StateStore
	resumeSave     bool

	fullscreen           bool
	savedWinW, savedWinH int

	screenW, screenH int
	debounce         *resizeDebouncer
	fitScaleVal      float64

	showHelp        bool
	showInfo        bool
	pageInputMode   bool
	pageInputBuffer string

	overlayMessage     string
	overlayMessageTime time.Time

	lastStep  int // +1 forward, -1 backward; direction for failure skipping
	failSkips int
}

func NewSlideshow(configStatus ConfigLoadResult, manager *ImageManager, stateStore *StateStore, opts SlideshowOptions) *Slideshow {
	config := configStatus.Config

	g := &Slideshow{
		manager:        manager,
		config:         config,
		configStatus:   configStatus,
		rootDir:        opts.RootDir,
		normalizedRoot: opts.NormalizedRoot,
		stateStore:     stateStore,
		resumeSave:     opts.ResumeSave,
		fullscreen:     opts.Fullscreen,
		showInfo:       config.ShowInfo,
		debounce:       newResizeDebouncer(time.Duration(config.ResizeDebounceMillis) * time.Millisecond),
		lastStep:       1,
	}

	g.nav = NewNavigator(manager.Count(), opts.StartIndex, opts.Delay, opts.Delay > 0)
	g.input = NewInputHandler(g, g,
		NewKeybindingManager(config.Keybindings),
		NewMousebindingManager(config.Mousebindings, config.MouseSettings))
	g.renderer = NewRenderer(g)

	if opts.StartMessage != "" {
		g.ShowOverlayMessage(opts.StartMessage)
	}

	manager.StartPreload(opts.StartIndex, NavigationJump)
	return g
}

// ebiten.Game

func (g *Slideshow) Update() error {
	if g.manager.Count() == 0 {
		return nil
	}

	g.input.HandleInput()

	if g.nav.AutoAdvanceDue() {
		g.nav.Next()
		g.afterNavigate(NavigationForward, 1)
	}

	g.debounce.Observe(g.screenW, g.screenH)
	if g.debounce.Fire() {
		g.refit()
	}

	g.skipFailed()

	return nil
}

func (g *Slideshow) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Slideshow) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		first := g.screenW == 0 && g.screenH == 0
		g.screenW, g.screenH = outsideWidth, outsideHeight
		if first {
			g.refit()
		}
	}
	return outsideWidth, outsideHeight
}

// afterNavigate runs the shared post-navigation work: preload in the
// travel direction, refit the new image, reset failure skipping.
func (g *Slideshow) afterNavigate(direction NavigationDirection, step int) {
	g.lastStep = step
	g.failSkips = 0
	g.manager.StartPreload(g.nav.Index(), direction)
	g.refit()
}

// refit recomputes the cached display scale for the current image,
// rotation and window size. Called on navigation, rotation, fullscreen
// toggles and settled resizes, not per frame.
func (g *Slideshow) refit() {
	img := g.manager.GetImage(g.nav.Index())
	if img == nil {
		g.fitScaleVal = 0
		return
	}
	g.fitScaleVal = fitScale(img.Bounds().Dx(), img.Bounds().Dy(),
		g.nav.Rotation(), g.screenW, g.screenH, g.fullscreen)
}

// skipFailed moves past entries that cannot be decoded, in the direction
// of travel, until a loadable image is found or the whole list turned out
// to be broken (then the error placeholder stays up).
func (g *Slideshow) skipFailed() {
	if g.manager.Count() < 2 {
		return
	}

	g.manager.GetImage(g.nav.Index()) // force a load attempt
	if !g.manager.LoadFailed(g.nav.Index()) {
		g.failSkips = 0
		return
	}
	if g.failSkips >= g.manager.Count() {
		return
	}

	g.failSkips++
	if g.lastStep < 0 {
		g.nav.Previous()
	} else {
		g.nav.Next()
	}
	g.refit()
}

// Shutdown persists the window size and, when resume saving was requested
// and the quit policy allows it, the current position. Called on every
// exit path.
func (g *Slideshow) Shutdown(discardState bool) {
	g.manager.StopPreload()
	g.saveWindowSize()

	if g.resumeSave && !discardState {
		g.saveState()
	}
}

func (g *Slideshow) saveState() {
	entry, ok := g.manager.Path(g.nav.Index())
	if !ok {
		return
	}
	err := g.stateStore.Save(g.normalizedRoot, DirectoryState{
		LastImagePath: entry.Path,
		LastIndex:     g.nav.Index(),
		ImageCount:    g.manager.Count(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func (g *Slideshow) saveWindowSize() {
	if g.fullscreen {
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth = g.savedWinW
			g.config.WindowHeight = g.savedWinH
		}
	} else {
		w, h := ebiten.WindowSize()
		g.config.WindowWidth = w
		g.config.WindowHeight = h
	}
	saveConfig(g.config)
}

// shouldDiscardState applies the quit save policy for an exit triggered
// by keyboard.
func shouldDiscardState(policy string, escapePressed bool) bool {
	switch policy {
	case QuitSaveNever:
		return true
	case QuitSaveEscapeDiscards:
		return escapePressed
	default:
		return false
	}
}

// InputActions

func (g *Slideshow) Exit() {
	escape := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	g.Shutdown(shouldDiscardState(g.config.QuitSavePolicy, escape))
	os.Exit(0)
}

func (g *Slideshow) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Slideshow) ToggleInfo() {
	g.showInfo = !g.showInfo
	g.config.ShowInfo = g.showInfo
}

func (g *Slideshow) ToggleFullscreen() {
	g.fullscreen = !g.fullscreen
	if g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
	g.refit()
}

func (g *Slideshow) ToggleAutoPlay() {
	if g.nav.ToggleAutoPlay() {
		if g.nav.Delay() > 0 {
			g.ShowOverlayMessage(fmt.Sprintf("Auto-play ON (%ds)", g.nav.Delay()))
		} else {
			g.ShowOverlayMessage("Auto-play ON (set a delay with 1-9)")
		}
	} else {
		g.ShowOverlayMessage("Auto-play OFF")
	}
}

func (g *Slideshow) SetSlideDelay(seconds int) {
	g.nav.SetDelay(seconds)
	g.config.SlideDelay = g.nav.Delay()
	if seconds == 0 {
		g.ShowOverlayMessage("Manual mode (delay 0)")
	} else {
		g.ShowOverlayMessage(fmt.Sprintf("Delay: %ds", seconds))
	}
}

func (g *Slideshow) EnterPageInputMode() {
	g.pageInputMode = true
	g.pageInputBuffer = ""
}

func (g *Slideshow) ExitPageInputMode() {
	g.pageInputMode = false
	g.pageInputBuffer = ""
}

func (g *Slideshow) ProcessPageInput() {
	n, err := strconv.Atoi(strings.TrimSpace(g.pageInputBuffer))
	if err != nil {
		return
	}
	g.JumpToImage(n)
}

func (g *Slideshow) UpdatePageInputBuffer(buffer string) {
	g.pageInputBuffer = buffer
}

func (g *Slideshow) CycleSortMethod() {
	strategies := GetAllSortStrategies()
	next := strategies[0]
	for i, s := range strategies {
		if s.ID() == g.config.SortMethod {
			next = strategies[(i+1)%len(strategies)]
			break
		}
	}
	g.config.SortMethod = next.ID()

	// Re-sort under the current image and follow it to its new index
	current, _ := g.manager.Path(g.nav.Index())
	g.manager.SetPaths(next.Sort(g.manager.Paths()))
	if idx := g.manager.IndexOf(current.Path); idx >= 0 {
		g.nav.SetIndex(idx)
	}

	g.ShowOverlayMessage(fmt.Sprintf("Sort: %s", next.Name()))
	g.manager.StartPreload(g.nav.Index(), NavigationJump)
	g.refit()
}

func (g *Slideshow) NavigateNext() {
	g.nav.Next()
	g.afterNavigate(NavigationForward, 1)
}

func (g *Slideshow) NavigatePrevious() {
	g.nav.Previous()
	g.afterNavigate(NavigationBackward, -1)
}

// JumpToImage moves to the 1-based image number n.
func (g *Slideshow) JumpToImage(n int) {
	g.nav.JumpTo(n - 1)
	g.afterNavigate(NavigationJump, 1)
}

func (g *Slideshow) RotateLeft() {
	g.nav.RotateLeft()
	g.refit()
}

func (g *Slideshow) RotateRight() {
	g.nav.RotateRight()
	g.refit()
}

func (g *Slideshow) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

func (g *Slideshow) GetCurrentIndex() int {
	return g.nav.Index()
}

func (g *Slideshow) GetTotalCount() int {
	return g.manager.Count()
}

// InputState

func (g *Slideshow) IsInPageInputMode() bool {
	return g.pageInputMode
}

func (g *Slideshow) GetPageInputBuffer() string {
	return g.pageInputBuffer
}

// RenderState

func (g *Slideshow) IsFullscreen() bool {
	return g.fullscreen
}

func (g *Slideshow) IsAutoPlay() bool {
	return g.nav.AutoPlay()
}

func (g *Slideshow) GetSlideDelay() int {
	return g.nav.Delay()
}

func (g *Slideshow) GetCurrentImage() *ebiten.Image {
	return g.manager.GetImage(g.nav.Index())
}

func (g *Slideshow) GetRotationAngle() int {
	return g.nav.Rotation()
}

func (g *Slideshow) GetFitScale() float64 {
	return g.fitScaleVal
}

func (g *Slideshow) IsShowingHelp() bool {
	return g.showHelp
}

func (g *Slideshow) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Slideshow) GetOverlayMessage() string {
	return g.overlayMessage
}

func (g *Slideshow) GetOverlayMessageTime() time.Time {
	return g.overlayMessageTime
}

func (g *Slideshow) GetCurrentRelPath() string {
	entry, ok := g.manager.Path(g.nav.Index())
	if !ok {
		return ""
	}

	base := entry.Path
	if entry.ArchivePath != "" {
		base = entry.ArchivePath
	}
	rel, err := filepath.Rel(g.rootDir, base)
	if err != nil || strings.HasPrefix(rel, "..") {
		return entry.Path
	}
	if entry.ArchivePath != "" {
		return rel + ":" + entry.EntryPath
	}
	return rel
}

func (g *Slideshow) GetFontSize() float64 {
	return g.config.HelpFontSize
}

func (g *Slideshow) GetConfigStatus() ConfigLoadResult {
	return g.configStatus
}

func (g *Slideshow) GetKeybindings() map[string][]string {
	return g.config.Keybindings
}

func (g *Slideshow) GetMousebindings() map[string][]string {
	return g.config.Mousebindings
}
