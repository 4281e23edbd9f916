// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build nowindow

package display

import (
	"errors"
	"image"
)

// ErrNoWindow is returned by WindowViewer.Show in builds without the fyne
// window, such as headless CI built with -tags nowindow.
var ErrNoWindow = errors.New("built without window support (-tags nowindow): use --viewer external or --output")

// WindowViewer stands in for the fyne window in nowindow builds.
type WindowViewer struct{}

// NewWindowViewer returns a WindowViewer.
func NewWindowViewer() *WindowViewer {
	return &WindowViewer{}
}

// Show always fails with ErrNoWindow.
func (v *WindowViewer) Show(title string, img image.Image) error {
	return ErrNoWindow
}
