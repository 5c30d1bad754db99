package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
)

const infoBarHeight = 28.0

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
	fontSource  *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatal(err)
	}

	return &Renderer{
		renderState: renderState,
		fontSource:  s,
	}
}

// fitScale returns the scale that fits an iw x ih image rotated by angle
// degrees into a w x h area. Windowed mode never scales small images up;
// fullscreen fills the screen.
func fitScale(iw, ih, angle, w, h int, fullscreen bool) float64 {
	if iw <= 0 || ih <= 0 || w <= 0 || h <= 0 {
		return 1
	}

	// Quarter turns swap the footprint
	ew, eh := iw, ih
	if angle == 90 || angle == 270 {
		ew, eh = ih, iw
	}

	scale := math.Min(float64(w)/float64(ew), float64(h)/float64(eh))
	if !fullscreen && scale > 1 {
		return 1
	}
	return scale
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	if img := r.renderState.GetCurrentImage(); img != nil {
		r.drawImage(screen, img)
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoBar(screen)
	}

	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}

	if r.renderState.IsInPageInputMode() {
		r.drawPageInputOverlay(screen)
	}

	if r.renderState.GetOverlayMessage() != "" &&
		time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}
}

// drawImage centers the current image, rotated and scaled to fit.
func (r *Renderer) drawImage(screen *ebiten.Image, img *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	angle := r.renderState.GetRotationAngle()

	scale := r.renderState.GetFitScale()
	if scale <= 0 {
		scale = fitScale(iw, ih, angle, w, h, r.renderState.IsFullscreen())
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Translate(-float64(iw)/2, -float64(ih)/2)
	op.GeoM.Rotate(float64(angle) * math.Pi / 180)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(w)/2, float64(h)/2)
	screen.DrawImage(img, op)
}

// drawInfoBar paints the status strip along the bottom edge.
func (r *Renderer) drawInfoBar(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	DrawFilledRect(screen, 0, h-infoBarHeight, w, infoBarHeight, bgColorDark)

	font := &text.GoTextFace{Source: r.fontSource, Size: 14}
	textY := h - infoBarHeight + 6

	status := "MANUAL"
	statusColor := colorGray
	if r.renderState.IsAutoPlay() && r.renderState.GetSlideDelay() > 0 {
		status = fmt.Sprintf("AUTO %ds", r.renderState.GetSlideDelay())
		statusColor = colorGreen
	}
	DrawText(screen, status, font, 10, textY, statusColor)

	position := fmt.Sprintf("%d/%d", r.renderState.GetCurrentIndex()+1, r.renderState.GetTotalCount())
	DrawText(screen, position, font, 110, textY, colorWhite)

	line := r.renderState.GetCurrentRelPath()
	if angle := r.renderState.GetRotationAngle(); angle != 0 {
		line = fmt.Sprintf("%s  (rotated %d°)", line, angle)
	}
	DrawText(screen, line, font, 200, textY, colorLightBlue)
}

// drawHelpOverlay lists bindings and config status over the image.
func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	padding := 40.0
	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	fontSize := r.renderState.GetFontSize()
	helpFont := &text.GoTextFace{Source: r.fontSource, Size: fontSize}
	lineHeight := fontSize * 1.5

	currentY := padding + 30
	DrawText(screen, "Controls (Keyboard | Mouse):", helpFont, padding+20, currentY, colorWhite)
	currentY += lineHeight * 1.5

	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	descriptions := GetActionDescriptions()

	// Sorted action list for consistent display
	actionSet := make(map[string]bool)
	for action := range keybindings {
		actionSet[action] = true
	}
	for action := range mousebindings {
		actionSet[action] = true
	}
	actions := make([]string, 0, len(actionSet))
	for action := range actionSet {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	// Measure columns
	maxActionWidth := 0.0
	maxInputWidth := 0.0
	for _, action := range actions {
		if len(keybindings[action]) == 0 && len(mousebindings[action]) == 0 {
			continue
		}
		aw, _ := text.Measure(action, helpFont, 0)
		if aw > maxActionWidth {
			maxActionWidth = aw
		}
		iw, _ := text.Measure(bindingLine(keybindings[action], mousebindings[action]), helpFont, 0)
		if iw > maxInputWidth {
			maxInputWidth = iw
		}
	}

	actionColumnX := padding + 40
	inputColumnX := actionColumnX + maxActionWidth + 30
	descColumnX := inputColumnX + maxInputWidth + 20

	for _, action := range actions {
		keys := keybindings[action]
		mouseActions := mousebindings[action]
		if len(keys) == 0 && len(mouseActions) == 0 {
			continue
		}

		DrawText(screen, action, helpFont, actionColumnX, currentY, colorLightBlue)

		currentInputX := inputColumnX
		if len(keys) > 0 {
			keysList := strings.Join(keys, ", ")
			DrawText(screen, keysList, helpFont, currentInputX, currentY, colorYellow)
			kw, _ := text.Measure(keysList, helpFont, 0)
			currentInputX += kw
		}
		if len(keys) > 0 && len(mouseActions) > 0 {
			DrawText(screen, " | ", helpFont, currentInputX, currentY, colorWhite)
			sw, _ := text.Measure(" | ", helpFont, 0)
			currentInputX += sw
		}
		if len(mouseActions) > 0 {
			DrawText(screen, strings.Join(mouseActions, ", "), helpFont, currentInputX, currentY, colorCyan)
		}

		description := descriptions[action]
		if description == "" {
			description = "No description available"
		}
		DrawText(screen, description, helpFont, descColumnX, currentY, colorGray)

		currentY += lineHeight
	}

	DrawText(screen, "0-9", helpFont, actionColumnX, currentY, colorYellow)
	DrawText(screen, "Set auto-play delay in seconds (0 = manual)", helpFont, descColumnX, currentY, colorGray)
	currentY += lineHeight * 1.5

	// Config status section
	configStatus := r.renderState.GetConfigStatus()
	statusColor := colorGreen
	if configStatus.Status == "Warning" || configStatus.Status == "Error" {
		statusColor = colorOrange
	}
	DrawText(screen, fmt.Sprintf("Config Status: %s", configStatus.Status), helpFont, padding+20, currentY, statusColor)
	currentY += lineHeight

	for i, warning := range configStatus.Warnings {
		if i >= 2 { // avoid clutter
			break
		}
		if len(warning) > 50 {
			warning = warning[:47] + "..."
		}
		DrawText(screen, "• "+warning, helpFont, padding+40, currentY, colorLightRed)
		currentY += lineHeight
	}
}

func bindingLine(keys, mouseActions []string) string {
	var parts []string
	if len(keys) > 0 {
		parts = append(parts, strings.Join(keys, ", "))
	}
	if len(mouseActions) > 0 {
		parts = append(parts, strings.Join(mouseActions, ", "))
	}
	return strings.Join(parts, " | ")
}

// drawPageInputOverlay shows the go-to-image prompt.
func (r *Renderer) drawPageInputOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

	font := &text.GoTextFace{Source: r.fontSource, Size: r.renderState.GetFontSize()}
	prompt := fmt.Sprintf("Go to image: %s_", r.renderState.GetPageInputBuffer())

	tw, th := text.Measure(prompt, font, 0)
	boxW, boxH := tw+40, th+30
	boxX, boxY := w/2-boxW/2, h/2-boxH/2

	DrawFilledRect(screen, boxX, boxY, boxW, boxH, bgColorDark)
	DrawText(screen, prompt, font, boxX+20, boxY+15, colorWhite)
}

// drawOverlayMessage shows a transient notification in the top-left corner.
func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	font := &text.GoTextFace{Source: r.fontSource, Size: 16}
	message := r.renderState.GetOverlayMessage()

	tw, th := text.Measure(message, font, 0)
	DrawFilledRect(screen, 10, 10, tw+20, th+16, bgColorMedium)
	DrawText(screen, message, font, 20, 18, colorWhite)
}
