package main

import (
	"bytes"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Global font source for error image generation
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// CreateErrorImage creates an error placeholder with filename and message,
// shown in place of an image that could not be decoded.
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	errorImg := ebiten.NewImage(width, height)
	errorImg.Fill(color.RGBA{40, 40, 40, 255})

	if globalFontSource == nil {
		// No font available; the plain dark rectangle still marks the slot
		return errorImg
	}

	font := &text.GoTextFace{
		Source: globalFontSource,
		Size:   16,
	}

	name := filepath.Base(filename)
	msg := errorMsg
	if len(msg) > 60 {
		msg = msg[:57] + "..."
	}

	DrawText(errorImg, "Failed to load", font, 20, float64(height)/2-40, color.RGBA{255, 150, 150, 255})
	DrawText(errorImg, name, font, 20, float64(height)/2-10, color.RGBA{255, 255, 255, 255})
	DrawText(errorImg, msg, font, 20, float64(height)/2+20, color.RGBA{180, 180, 180, 255})

	return errorImg
}
