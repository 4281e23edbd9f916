// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curve

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/learning-curve/pkg/types"
)

func logLine(cycle, utility string) string {
	return fmt.Sprintf("%s%s %s%s", Preamble, cycle, Postamble, utility)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Series
	}{
		{
			name: "three cycles in file order",
			text: strings.Join([]string{
				logLine("1", "0.5"),
				logLine("2", "1.25"),
				logLine("3", "-3.0"),
			}, "\n"),
			want: types.Series{{Cycle: 1, Utility: 0.5}, {Cycle: 2, Utility: 1.25}, {Cycle: 3, Utility: -3}},
		},
		{
			name: "one candidate among unrelated lines",
			text: strings.Join([]string{
				"[INFO] Trainer starting",
				"[DEBUG] loading weights",
				logLine("10", "42.0"),
				"[INFO] TrainerAgent.onGameEnd: game finished",
				"avg trajectory utility = 7",
				"",
			}, "\n"),
			want: types.Series{{Cycle: 10, Utility: 42}},
		},
		{
			name: "surrounding whitespace is trimmed",
			text: "   \t" + logLine("4", "2.5") + "   \r\n",
			want: types.Series{{Cycle: 4, Utility: 2.5}},
		},
		{
			name: "no reordering and no dedup of repeated cycles",
			text: strings.Join([]string{
				logLine("5", "1"),
				logLine("2", "3"),
				logLine("5", "4"),
			}, "\n"),
			want: types.Series{{Cycle: 5, Utility: 1}, {Cycle: 2, Utility: 3}, {Cycle: 5, Utility: 4}},
		},
		{
			name: "fractional, negative and exponent values",
			text: logLine("-1.5", "1e-3"),
			want: types.Series{{Cycle: -1.5, Utility: 0.001}},
		},
		{
			name: "fields past the second are ignored",
			text: logLine("7", "0.75 extra tokens here"),
			want: types.Series{{Cycle: 7, Utility: 0.75}},
		},
		{
			name: "no trailing newline",
			text: logLine("8", "8.5"),
			want: types.Series{{Cycle: 8, Utility: 8.5}},
		},
		{
			name: "line without postamble is skipped, never parsed",
			text: strings.Join([]string{
				Preamble + "not a number at all",
				logLine("9", "1"),
			}, "\n"),
			want: types.Series{{Cycle: 9, Utility: 1}},
		},
		{
			name: "line without preamble is skipped, never parsed",
			text: strings.Join([]string{
				"garbage " + Postamble + "garbage",
				logLine("9", "2"),
			}, "\n"),
			want: types.Series{{Cycle: 9, Utility: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(strings.NewReader(tt.text), "test.log")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractMalformed(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
	}{
		{
			name:     "missing cycle index",
			text:     "[INFO] TrainerAgent.onGameEnd: After cycle(s), avg trajectory utility = 42.0",
			wantLine: 1,
		},
		{
			name:     "single field after removal",
			text:     "header\n" + Preamble + Postamble + "5",
			wantLine: 2,
		},
		{
			name:     "non-numeric utility",
			text:     logLine("1", "0.5") + "\n" + logLine("2", "high"),
			wantLine: 2,
		},
		{
			name:     "non-numeric cycle",
			text:     logLine("two", "1.0"),
			wantLine: 1,
		},
		{
			name:     "hexadecimal float",
			text:     logLine("0x1p-2", "1"),
			wantLine: 1,
		},
		{
			name:     "misplaced underscore",
			text:     logLine("1_", "1"),
			wantLine: 1,
		},
		{
			name:     "text before the preamble becomes the first field",
			text:     "... " + logLine("10", "42.0"),
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(strings.NewReader(tt.text), "run.log")
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrMalformedLine))
			assert.False(t, errors.Is(err, ErrNoMatchingData))

			var mle *MalformedLineError
			require.True(t, errors.As(err, &mle))
			assert.Equal(t, "run.log", mle.Source)
			assert.Equal(t, tt.wantLine, mle.Line)
			assert.Contains(t, err.Error(), "run.log:"+strconv.Itoa(tt.wantLine))
		})
	}
}

func TestExtractNonFiniteAndLenientValues(t *testing.T) {
	tests := []struct {
		token string
		check func(t *testing.T, v float64)
	}{
		{token: "nan", check: func(t *testing.T, v float64) { assert.True(t, math.IsNaN(v)) }},
		{token: "NaN", check: func(t *testing.T, v float64) { assert.True(t, math.IsNaN(v)) }},
		{token: "-nan", check: func(t *testing.T, v float64) { assert.True(t, math.IsNaN(v)) }},
		{token: "inf", check: func(t *testing.T, v float64) { assert.True(t, math.IsInf(v, 1)) }},
		{token: "-inf", check: func(t *testing.T, v float64) { assert.True(t, math.IsInf(v, -1)) }},
		{token: "Infinity", check: func(t *testing.T, v float64) { assert.True(t, math.IsInf(v, 1)) }},
		{token: "1e400", check: func(t *testing.T, v float64) { assert.True(t, math.IsInf(v, 1)) }},
		{token: "-1e400", check: func(t *testing.T, v float64) { assert.True(t, math.IsInf(v, -1)) }},
		{token: "1_000.5", check: func(t *testing.T, v float64) { assert.Equal(t, 1000.5, v) }},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Extract(strings.NewReader(logLine("1", tt.token)), "values.log")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, 1.0, got[0].Cycle)
			tt.check(t, got[0].Utility)
		})
	}
}

func TestExtractMalformedKeepsCause(t *testing.T) {
	_, err := Extract(strings.NewReader(logLine("1", "abc")), "x")
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestExtractNoMatchingData(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty input", text: ""},
		{name: "only unrelated lines", text: "a\nb\nc\n"},
		{name: "partial matches only", text: Preamble + "1\n" + Postamble + "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(strings.NewReader(tt.text), "empty.log")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoMatchingData))
			assert.Contains(t, err.Error(), "empty.log")
			assert.Contains(t, err.Error(), "TrainerAgent.onGameEnd")
			assert.Contains(t, err.Error(), "avg trajectory utility")
		})
	}
}

func TestExtractRemovesFirstOccurrenceOnly(t *testing.T) {
	// The second preamble stays in the remainder, so the first two fields
	// are still the cycle and utility.
	line := logLine("6", "1.5") + " " + Preamble
	got, err := Extract(strings.NewReader(line), "dup.log")
	require.NoError(t, err)
	assert.Equal(t, types.Series{{Cycle: 6, Utility: 1.5}}, got)
}

func TestExtractLongLine(t *testing.T) {
	line := logLine("11", "0.1") + " " + strings.Repeat("x", 200_000)
	got, err := Extract(strings.NewReader(line+"\n"), "long.log")
	require.NoError(t, err)
	assert.Equal(t, types.Series{{Cycle: 11, Utility: 0.1}}, got)
}

func TestIsCandidate(t *testing.T) {
	assert.True(t, IsCandidate(logLine("1", "1")))
	assert.True(t, IsCandidate(Postamble+Preamble))
	assert.False(t, IsCandidate(Preamble))
	assert.False(t, IsCandidate(Postamble))
	assert.False(t, IsCandidate(""))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trainer.log")
	var b strings.Builder
	for i, u := range []string{"0.5", "1.25", "-3.0"} {
		fmt.Fprintln(&b, "[DEBUG] step")
		fmt.Fprintln(&b, logLine(strconv.Itoa(i+1), u))
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.Series{{Cycle: 1, Utility: 0.5}, {Cycle: 2, Utility: 1.25}, {Cycle: 3, Utility: -3}}, got)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.log"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("no matches names the path", func(t *testing.T) {
		path := filepath.Join(dir, "quiet.log")
		require.NoError(t, os.WriteFile(path, []byte("nothing here\n"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoMatchingData))
		assert.Contains(t, err.Error(), path)
	})

	t.Run("malformed names the path", func(t *testing.T) {
		path := filepath.Join(dir, "bad.log")
		require.NoError(t, os.WriteFile(path, []byte(logLine("", "42.0")+"\n"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedLine))
		assert.Contains(t, err.Error(), path)
	})
}
