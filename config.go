package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 768
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain locator order (no sort)
)

// Quit save policies decide whether quitting persists the resume position
// (only relevant when resume saving was requested with -c).
const (
	QuitSaveAlways         = "always"
	QuitSaveNever          = "never"
	QuitSaveEscapeDiscards = "escape-discards" // Q saves, Escape discards
)

type Config struct {
	WindowWidth          int                 `json:"window_width"`
	WindowHeight         int                 `json:"window_height"`
	Fullscreen           bool                `json:"fullscreen"`
	SlideDelay           int                 `json:"slide_delay"`
	SortMethod           int                 `json:"sort_method"`
	CacheSize            int                 `json:"cache_size"`
	PreloadEnabled       bool                `json:"preload_enabled"`
	PreloadCount         int                 `json:"preload_count"`
	ScanArchives         bool                `json:"scan_archives"`
	ShowInfo             bool                `json:"show_info"`
	QuitSavePolicy       string              `json:"quit_save_policy"`
	ResizeDebounceMillis int                 `json:"resize_debounce_millis"`
	HelpFontSize         float64             `json:"help_font_size"`
	Keybindings          map[string][]string `json:"keybindings"`
	Mousebindings        map[string][]string `json:"mousebindings"`
	MouseSettings        MouseSettings       `json:"mouse_settings"`
}

// ConfigLoadResult carries the loaded config plus any validation warnings,
// surfaced in the help overlay.
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "slideshow.json"
	}
	return filepath.Join(homeDir, ".slideshow.json")
}

func defaultConfig() Config {
	return Config{
		WindowWidth:          defaultWidth,
		WindowHeight:         defaultHeight,
		Fullscreen:           false,
		SlideDelay:           3,
		SortMethod:           SortSimple,
		CacheSize:            16,
		PreloadEnabled:       true,
		PreloadCount:         4,
		ScanArchives:         true,
		ShowInfo:             true,
		QuitSavePolicy:       QuitSaveAlways,
		ResizeDebounceMillis: 100,
		HelpFontSize:         24.0,
		Keybindings:          GetDefaultKeybindings(),
		Mousebindings:        GetDefaultMousebindings(),
		MouseSettings:        GetDefaultMouseSettings(),
	}
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	// Validate minimum window size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate slide delay (0 = manual only)
	if config.SlideDelay < minSlideDelay || config.SlideDelay > maxSlideDelay {
		config.SlideDelay = 3
	}

	// Validate sort method
	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortSimple
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	// Validate quit save policy
	switch config.QuitSavePolicy {
	case QuitSaveAlways, QuitSaveNever, QuitSaveEscapeDiscards:
	default:
		result.Status = "Warning"
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unknown quit_save_policy %q, using %q", config.QuitSavePolicy, QuitSaveAlways))
		config.QuitSavePolicy = QuitSaveAlways
	}

	// Validate resize debounce window (0 disables debouncing)
	if config.ResizeDebounceMillis < 0 || config.ResizeDebounceMillis > 1000 {
		config.ResizeDebounceMillis = 100
	}

	// Validate help font size (minimum 12px for readability)
	if config.HelpFontSize < 12.0 {
		config.HelpFontSize = 24.0
	}

	// Validate keybindings - ensure defaults exist for missing actions
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		defaults := GetDefaultKeybindings()
		for action, defaultKeys := range defaults {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}

		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	// Fill in missing mouse bindings with defaults
	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		defaults := GetDefaultMousebindings()
		for action, defaultActions := range defaults {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaultActions
			}
		}
	}

	if config.MouseSettings == (MouseSettings{}) {
		config.MouseSettings = GetDefaultMouseSettings()
	}

	result.Config = config
	return result
}

// validateKeybindings checks key formats and detects conflicts between
// actions.
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getValidKeyNames()

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string like "Shift+KeyS".
func validateKeyString(keyStr string, validKeys map[string]bool) error {
	parts := strings.Split(keyStr, "+")
	if len(parts) == 0 {
		return fmt.Errorf("empty key string")
	}

	keyName := parts[len(parts)-1]
	if !validKeys[keyName] {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// getValidKeyNames returns the set of recognized key names.
func getValidKeyNames() map[string]bool {
	valid := make(map[string]bool)
	for name := range getKeyMapping() {
		valid[name] = true
	}
	return valid
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
