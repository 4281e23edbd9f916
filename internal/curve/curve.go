// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curve extracts (cycle, utility) samples from trainer logs.
//
// A line is a candidate when it contains both Preamble and Postamble.
// Candidates must parse; anything else is skipped without comment.
//
// Implements: docs/ARCHITECTURE § Extraction.
package curve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/learning-curve/pkg/types"
)

const (
	// Preamble marks the start of the informative part of a candidate line.
	Preamble = "[INFO] TrainerAgent.onGameEnd: After "
	// Postamble sits between the cycle index and the utility value.
	Postamble = "cycle(s), avg trajectory utility = "
)

// Load reads the log at path and returns its samples in file order.
// The file is closed before Load returns.
func Load(path string) (types.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	defer f.Close()

	return Extract(f, path)
}

// Extract scans r line by line and returns one Sample per candidate line.
// name identifies the source in errors. It fails with *MalformedLineError
// on the first candidate that does not parse and with *NoMatchingDataError
// when r holds no candidates at all.
func Extract(r io.Reader, name string) (types.Series, error) {
	br := bufio.NewReader(r)

	var series types.Series
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading %s: %w", name, readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		lineNo++

		line := strings.TrimSpace(raw)
		if IsCandidate(line) {
			sample, err := parseCandidate(line)
			if err != nil {
				return nil, &MalformedLineError{Source: name, Line: lineNo, Text: line, Err: err}
			}
			series = append(series, sample)
		}

		if readErr == io.EOF {
			break
		}
	}

	if len(series) == 0 {
		return nil, &NoMatchingDataError{Source: name}
	}
	return series, nil
}

// IsCandidate reports whether line carries both pattern substrings.
func IsCandidate(line string) bool {
	return strings.Contains(line, Preamble) && strings.Contains(line, Postamble)
}

// parseCandidate drops the first Preamble and the first Postamble and reads
// the first two remaining fields. Extra fields are ignored. NaN and
// infinite values are kept; the renderer leaves gaps for them.
func parseCandidate(line string) (types.Sample, error) {
	rest := strings.Replace(line, Preamble, "", 1)
	rest = strings.Replace(rest, Postamble, "", 1)

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return types.Sample{}, fmt.Errorf("want 2 numeric fields, got %d", len(fields))
	}

	cycle, err := parseFloat(fields[0])
	if err != nil {
		return types.Sample{}, fmt.Errorf("cycle index: %w", err)
	}
	utility, err := parseFloat(fields[1])
	if err != nil {
		return types.Sample{}, fmt.Errorf("utility: %w", err)
	}
	return types.Sample{Cycle: cycle, Utility: utility}, nil
}

// parseFloat reads tok with the leniency trainer logs are written against:
// NaN and infinities in any case and with a sign, overflow to ±Inf, and
// underscores between digits.
func parseFloat(tok string) (float64, error) {
	if unsigned := strings.TrimLeft(tok, "+-"); len(tok)-len(unsigned) == 1 && strings.EqualFold(unsigned, "nan") {
		return math.NaN(), nil
	}
	if strings.ContainsAny(tok, "xX") {
		// Hexadecimal floats are not decimal log output.
		return 0, &strconv.NumError{Func: "ParseFloat", Num: tok, Err: strconv.ErrSyntax}
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		// ParseFloat already returns ±Inf on overflow and ±0 on underflow.
		return v, nil
	}
	if plain, ok := stripDigitUnderscores(tok); ok {
		return parseFloat(plain)
	}
	return 0, err
}

// stripDigitUnderscores removes underscores that sit between two digits.
// It reports false if tok has no underscore or one in any other position.
func stripDigitUnderscores(tok string) (string, bool) {
	if !strings.Contains(tok, "_") {
		return "", false
	}
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		if tok[i] != '_' {
			b.WriteByte(tok[i])
			continue
		}
		if i == 0 || i == len(tok)-1 || !isDigit(tok[i-1]) || !isDigit(tok[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}
