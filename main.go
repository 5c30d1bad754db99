package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		fullscreen bool
		delay      int
		resume     bool
		startIndex int
		noIgnore   bool
		noArchives bool
		sortName   string
	)

	flag.BoolVar(&fullscreen, "f", false, "start in fullscreen mode")
	flag.BoolVar(&fullscreen, "fullscreen", false, "start in fullscreen mode")
	flag.IntVar(&delay, "d", -1, "delay between images in seconds, 0 = manual only (default from config)")
	flag.IntVar(&delay, "delay", -1, "delay between images in seconds, 0 = manual only (default from config)")
	flag.BoolVar(&resume, "c", false, "continue from the last viewed image and save position on exit")
	flag.BoolVar(&resume, "continue", false, "continue from the last viewed image and save position on exit")
	flag.IntVar(&startIndex, "s", -1, "start at the given image index")
	flag.IntVar(&startIndex, "start-index", -1, "start at the given image index")
	flag.BoolVar(&noIgnore, "no-ignore", false, "disable ignore-folder filtering")
	flag.BoolVar(&noArchives, "no-archives", false, "do not look inside zip/rar/7z archives")
	flag.StringVar(&sortName, "sort", "", "sort order: simple, natural or entry (default from config)")
	flag.Parse()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	rootDir := "."
	if flag.NArg() > 0 {
		rootDir = flag.Arg(0)
	}

	info, err := os.Stat(rootDir)
	if err != nil || !info.IsDir() {
		log.Fatalf("Error: '%s' is not a valid directory", rootDir)
	}

	// Scanning from the normalized root keeps every stored path stable
	// however the directory was spelled on the command line.
	normalizedRoot, err := NormalizeDir(rootDir)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	configResult := loadConfig()
	config := &configResult.Config

	delay = normalizeDelayFlag(setFlags["d"] || setFlags["delay"], delay, config.SlideDelay)
	config.SlideDelay = delay

	startIndex = normalizeStartFlag(setFlags["s"] || setFlags["start-index"], startIndex)

	if sortName != "" {
		switch sortName {
		case "simple":
			config.SortMethod = SortSimple
		case "natural":
			config.SortMethod = SortNatural
		case "entry":
			config.SortMethod = SortEntryOrder
		default:
			log.Printf("Warning: Unknown sort order %q, keeping %s", sortName,
				GetSortStrategy(config.SortMethod).Name())
		}
	}

	ignore := LoadIgnoreList(getIgnorePath())

	log.Printf("Searching for images in %s...", rootDir)
	paths, err := Scan(normalizedRoot, ignore, ScanOptions{
		IgnoreEnabled:   !noIgnore,
		IncludeArchives: config.ScanArchives && !noArchives,
	})
	if err != nil {
		log.Fatalf("Error: scanning %s: %v", rootDir, err)
	}
	paths = sortImagePaths(paths, config.SortMethod)
	log.Printf("Found %d images", len(paths))

	if len(paths) == 0 {
		log.Fatal("No images found!")
	}

	stateStore := NewStateStore(getStatePath())

	var saved *DirectoryState
	if resume {
		if st, ok := stateStore.Lookup(normalizedRoot); ok {
			saved = &st
		}
	}
	startIdx := ResolveStart(paths, saved, startIndex)

	var startMessage string
	if saved != nil {
		startMessage = fmt.Sprintf("Resuming at image %d/%d", startIdx+1, len(paths))
	}

	if err := InitGraphics(); err != nil {
		log.Fatal(err)
	}

	manager := NewImageManager(config.CacheSize, config.PreloadCount, config.PreloadEnabled)
	manager.SetPaths(paths)

	g := NewSlideshow(configResult, manager, stateStore, SlideshowOptions{
		RootDir:        normalizedRoot,
		NormalizedRoot: normalizedRoot,
		StartIndex:     startIdx,
		Delay:          delay,
		Fullscreen:     fullscreen || config.Fullscreen,
		ResumeSave:     resume,
		StartMessage:   startMessage,
	})

	ebiten.SetWindowTitle("Slideshow")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fullscreen || config.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	// Window closed without a quit key; only the "never" policy skips the save.
	g.Shutdown(shouldDiscardState(config.QuitSavePolicy, false))
}

// normalizeDelayFlag applies the config default when no delay flag was
// given; an explicit out-of-range value warns and is clamped into 0-9.
func normalizeDelayFlag(set bool, value, configDefault int) int {
	if !set {
		return configDefault
	}
	if value < minSlideDelay {
		log.Printf("Warning: Delay %d out of range [%d-%d], using %d",
			value, minSlideDelay, maxSlideDelay, minSlideDelay)
		return minSlideDelay
	}
	if value > maxSlideDelay {
		log.Printf("Warning: Delay %d out of range [%d-%d], using %d",
			value, minSlideDelay, maxSlideDelay, maxSlideDelay)
		return maxSlideDelay
	}
	return value
}

// normalizeStartFlag keeps the unset sentinel when no start index was
// given; an explicit negative index warns and falls back to the first
// image.
func normalizeStartFlag(set bool, value int) int {
	if !set {
		return -1
	}
	if value < 0 {
		log.Printf("Warning: Start index %d out of range, starting at 0", value)
		return 0
	}
	return value
}
