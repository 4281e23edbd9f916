//go:build mage

// Package main contains Mage build targets for learning-curve developer tooling.
// Implements: docs/ARCHITECTURE § Developer Tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "learning-curve"
	cmdPkg  = "./cmd/learning-curve"
	demoDir = "demo"
)

// Default target to run when none is specified.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from git
// when available.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := "dev"
	if v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty"); err == nil && v != "" {
		version = v
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestHeadless runs the unit tests without the fyne window, so no cgo GL
// toolchain or display is needed.
func TestHeadless() error {
	return sh.RunV("go", "test", "-tags", "nowindow", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build and demo output.
func Clean() error {
	for _, dir := range []string{binDir, demoDir} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}

// Demo writes a synthetic trainer log and renders it to demo/curve.png.
func Demo() error {
	mg.Deps(Build)

	if err := os.MkdirAll(demoDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", demoDir, err)
	}
	logPath := filepath.Join(demoDir, "trainer.log")
	if err := os.WriteFile(logPath, syntheticLog(50), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", logPath, err)
	}

	bin := filepath.Join(binDir, binName)
	return sh.RunV(bin, "--output", filepath.Join(demoDir, "curve.png"), logPath)
}

// syntheticLog returns a trainer log with n evaluation lines mixed with noise.
func syntheticLog(n int) []byte {
	var b bytes.Buffer
	utility := -12.0
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "[DEBUG] TrainerAgent.onGameEnd: replay buffer holds %d transitions\n", i*256)
		utility += 10.0 / float64(i)
		fmt.Fprintf(&b, "[INFO] TrainerAgent.onGameEnd: After %d cycle(s), avg trajectory utility = %.4f\n", i, utility)
	}
	return b.Bytes()
}

// Stats prints Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		n, err := countNonBlank(path)
		if err != nil {
			return err
		}
		total += n
		return nil
	})
	return total, err
}

func countNonBlank(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
