package main

// ActionDefinition defines an action with its default keybindings, mouse
// bindings, and description.
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default bindings.
// Digits 0-9 are handled directly by the input handler (set auto-play
// delay) and are not rebindable.
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit application"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info bar"},
	{"next", []string{"ArrowRight", "PageDown"}, []string{"LeftClick", "WheelDown"}, "Next image"},
	{"previous", []string{"ArrowLeft", "PageUp"}, []string{"RightClick", "WheelUp"}, "Previous image"},
	{"toggle_autoplay", []string{"Space"}, []string{"MiddleClick"}, "Toggle auto-play"},
	{"fullscreen", []string{"KeyF", "Enter"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},
	{"page_input", []string{"KeyG"}, []string{}, "Go to image (enter number)"},
	{"jump_first", []string{"Home"}, []string{}, "Jump to first image"},
	{"jump_last", []string{"End"}, []string{}, "Jump to last image"},
	{"rotate_left", []string{"Comma"}, []string{}, "Rotate left 90 degrees"},
	{"rotate_right", []string{"Period"}, []string{}, "Rotate right 90 degrees"},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{}, "Cycle sort method (Simple/Natural/Entry)"},
}

// ActionExecutor is the single source of truth for action execution,
// shared by the keybinding and mousebinding managers.
type ActionExecutor struct{}

func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "toggle_autoplay":
		inputActions.ToggleAutoPlay()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "page_input":
		if !inputState.IsInPageInputMode() {
			inputActions.EnterPageInputMode()
		}
	case "jump_first":
		inputActions.JumpToImage(1)
	case "jump_last":
		total := inputActions.GetTotalCount()
		if total > 0 {
			inputActions.JumpToImage(total)
		}
	case "rotate_left":
		inputActions.RotateLeft()
	case "rotate_right":
		inputActions.RotateRight()
	case "cycle_sort":
		inputActions.CycleSortMethod()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the shared instance used by both input managers.
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to descriptions.
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to default keys.
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to default mouse
// bindings.
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
