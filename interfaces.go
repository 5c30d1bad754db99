package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to slideshow state for the renderer
type RenderState interface {
	// Display modes
	IsFullscreen() bool
	IsAutoPlay() bool
	GetSlideDelay() int

	// Rendering data
	GetCurrentImage() *ebiten.Image
	GetRotationAngle() int
	GetFitScale() float64

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	IsInPageInputMode() bool
	GetPageInputBuffer() string
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetCurrentIndex() int
	GetTotalCount() int
	GetCurrentRelPath() string
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Auto-play
	ToggleAutoPlay()
	SetSlideDelay(seconds int)

	// Page input
	EnterPageInputMode()
	ExitPageInputMode()
	ProcessPageInput()
	UpdatePageInputBuffer(buffer string)

	// Settings
	CycleSortMethod()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpToImage(n int)

	// Transformations
	RotateLeft()
	RotateRight()

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetCurrentIndex() int
	GetTotalCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsInPageInputMode() bool
	GetPageInputBuffer() string
}
