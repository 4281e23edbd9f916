// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !nowindow

package display

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
)

const appID = "io.github.pdiddy.learning-curve"

// WindowViewer shows the chart in a fyne window.
type WindowViewer struct{}

// NewWindowViewer returns a WindowViewer.
func NewWindowViewer() *WindowViewer {
	return &WindowViewer{}
}

// Show opens a window sized to img and blocks until it is closed.
func (v *WindowViewer) Show(title string, img image.Image) error {
	a := app.NewWithID(appID)
	w := a.NewWindow(title)

	b := img.Bounds()
	size := fyne.NewSize(float32(b.Dx()), float32(b.Dy()))

	chartImg := canvas.NewImageFromImage(img)
	chartImg.FillMode = canvas.ImageFillContain
	chartImg.SetMinSize(fyne.NewSize(size.Width/2, size.Height/2))

	w.SetContent(chartImg)
	w.Resize(size)
	w.CenterOnScreen()
	w.ShowAndRun()
	return nil
}
