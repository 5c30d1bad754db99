package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler handles all keyboard and mouse input processing
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, km *KeybindingManager, mm *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   km,
		mousebindingManager: mm,
	}
}

// HandleInput processes all input for the current frame.
// Returns true if any input was processed.
func (h *InputHandler) HandleInput() bool {
	if h.inputActions.GetTotalCount() == 0 {
		return false
	}

	// Page input mode is modal and consumes digits, Enter and Escape.
	if h.handlePageInputMode() {
		return true
	}

	inputProcessed := false

	inputProcessed = h.handleAction("exit") || inputProcessed
	inputProcessed = h.handleAction("help") || inputProcessed
	inputProcessed = h.handleAction("info") || inputProcessed
	inputProcessed = h.handleAction("toggle_autoplay") || inputProcessed
	inputProcessed = h.handleAction("next") || inputProcessed
	inputProcessed = h.handleAction("previous") || inputProcessed
	inputProcessed = h.handleAction("jump_first") || inputProcessed
	inputProcessed = h.handleAction("jump_last") || inputProcessed
	inputProcessed = h.handleAction("rotate_left") || inputProcessed
	inputProcessed = h.handleAction("rotate_right") || inputProcessed
	inputProcessed = h.handleAction("cycle_sort") || inputProcessed
	inputProcessed = h.handleAction("fullscreen") || inputProcessed
	inputProcessed = h.handleAction("page_input") || inputProcessed
	inputProcessed = h.handleDelayKeys() || inputProcessed

	return inputProcessed
}

// handleAction fires an action when either its key or mouse bindings
// trigger.
func (h *InputHandler) handleAction(action string) bool {
	if h.keybindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
		return true
	}
	return h.mousebindingManager.ExecuteAction(action, h.inputActions, h.inputState)
}

// handleDelayKeys maps digit keys directly to the auto-play delay in
// seconds; 0 switches to manual-only.
func (h *InputHandler) handleDelayKeys() bool {
	digit := h.checkDigitKeys(ebiten.Key0, ebiten.Key9)
	if digit < 0 {
		digit = h.checkDigitKeys(ebiten.KeyNumpad0, ebiten.KeyNumpad9)
	}
	if digit < 0 {
		return false
	}
	h.inputActions.SetSlideDelay(digit)
	return true
}

// handlePageInputMode processes the go-to-image prompt.
func (h *InputHandler) handlePageInputMode() bool {
	if !h.inputState.IsInPageInputMode() {
		return false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.inputActions.ExitPageInputMode()
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		h.inputActions.ProcessPageInput()
		h.inputActions.ExitPageInputMode()
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		currentBuffer := h.inputState.GetPageInputBuffer()
		if len(currentBuffer) > 0 {
			h.inputActions.UpdatePageInputBuffer(currentBuffer[:len(currentBuffer)-1])
		}
		return true
	}

	digit := h.checkDigitKeys(ebiten.Key0, ebiten.Key9)
	if digit < 0 {
		digit = h.checkDigitKeys(ebiten.KeyNumpad0, ebiten.KeyNumpad9)
	}
	if digit >= 0 {
		currentBuffer := h.inputState.GetPageInputBuffer()
		h.inputActions.UpdatePageInputBuffer(currentBuffer + string(rune('0'+digit)))
		return true
	}

	return false
}

// checkDigitKeys returns the pressed digit in a key range, or -1.
func (h *InputHandler) checkDigitKeys(startKey, endKey ebiten.Key) int {
	for key := startKey; key <= endKey; key++ {
		if inpututil.IsKeyJustPressed(key) {
			return int(key - startKey)
		}
	}
	return -1
}
