// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display presents a rendered chart to the user.
//
// The default viewer opens a desktop window and blocks until it is closed.
// The external viewer hands the chart to the host's image opener instead,
// for machines where a GL window cannot be created.
//
// Implements: docs/ARCHITECTURE § Display.
package display

import (
	"errors"
	"fmt"
	"image"

	"github.com/pdiddy/learning-curve/pkg/types"
)

// ErrUnknownViewer is returned by New for an unsupported viewer kind.
var ErrUnknownViewer = errors.New("unknown viewer")

// Viewer shows a chart image.
type Viewer interface {
	// Show presents img under title. Implementations may block until the
	// user dismisses the chart.
	Show(title string, img image.Image) error
}

// New returns the Viewer for kind. An empty kind selects the window viewer.
func New(kind types.ViewerKind) (Viewer, error) {
	switch kind {
	case types.ViewerWindow, "":
		return NewWindowViewer(), nil
	case types.ViewerExternal:
		return NewExternalViewer(), nil
	default:
		return nil, fmt.Errorf("%w %q: use %s or %s", ErrUnknownViewer, kind, types.ViewerWindow, types.ViewerExternal)
	}
}
