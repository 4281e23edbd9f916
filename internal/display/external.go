// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoOpener is returned when no image opener is found on PATH.
var ErrNoOpener = errors.New("no image opener available")

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// opener is a host command that displays a file given as its last argument.
type opener struct {
	bin  string
	args []string
}

func (o opener) command(path string) (string, []string) {
	args := make([]string, 0, len(o.args)+1)
	args = append(args, o.args...)
	args = append(args, path)
	return o.bin, args
}

// openersFor lists the openers to try on goos, in preference order. The
// darwin and windows forms wait for the viewer to exit.
func openersFor(goos string) []opener {
	switch goos {
	case "darwin":
		return []opener{{bin: "open", args: []string{"-W"}}}
	case "windows":
		return []opener{{bin: "cmd", args: []string{"/c", "start", "/wait", ""}}}
	default:
		return []opener{
			{bin: "xdg-open"},
			{bin: "gio", args: []string{"open"}},
			{bin: "eog"},
			{bin: "display"},
		}
	}
}

func detectOpener(exec executor, goos string) (opener, error) {
	candidates := openersFor(goos)
	names := make([]string, len(candidates))
	for i, o := range candidates {
		names[i] = o.bin
		if _, err := exec.LookPath(o.bin); err == nil {
			return o, nil
		}
	}
	return opener{}, fmt.Errorf("%w: none of %s found on PATH", ErrNoOpener, strings.Join(names, ", "))
}

// ExternalViewer writes the chart to a temporary PNG and runs the host
// image opener on it. The file is left in place because some openers
// return before the viewer has read it.
type ExternalViewer struct {
	// TempDir is where the PNG is written; empty means os.TempDir().
	TempDir string

	exec executor
	goos string
}

// NewExternalViewer returns an ExternalViewer for the running OS.
func NewExternalViewer() *ExternalViewer {
	return &ExternalViewer{exec: &osExecutor{}, goos: runtime.GOOS}
}

// Show writes img to a temporary file and opens it.
func (v *ExternalViewer) Show(title string, img image.Image) error {
	o, err := detectOpener(v.exec, v.goos)
	if err != nil {
		return err
	}

	path, err := v.writeTemp(img)
	if err != nil {
		return err
	}

	bin, args := o.command(path)
	if err := v.exec.Run(bin, args...); err != nil {
		return fmt.Errorf("opening %q with %s: %w", title, bin, err)
	}
	return nil
}

func (v *ExternalViewer) writeTemp(img image.Image) (string, error) {
	f, err := os.CreateTemp(v.TempDir, "learning-curve-*.png")
	if err != nil {
		return "", fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding chart file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing chart file: %w", err)
	}
	return f.Name(), nil
}
