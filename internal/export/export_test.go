// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/learning-curve/pkg/types"
)

var (
	series = types.Series{{Cycle: 1, Utility: 0.5}, {Cycle: 2, Utility: 1.25}, {Cycle: 3, Utility: -3}}
	at     = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewDocument("trainer.log", series, at), types.ExportYAML))

	out := buf.String()
	assert.Contains(t, out, "source: trainer.log")
	assert.Contains(t, out, "count: 3")
	assert.Contains(t, out, "cycle: 1")
	assert.Contains(t, out, "utility: -3")
	assert.Less(t, strings.Index(out, "utility: 0.5"), strings.Index(out, "utility: 1.25"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewDocument("trainer.log", series, at), types.ExportJSON))

	out := buf.String()
	assert.Contains(t, out, `"source": "trainer.log"`)
	assert.Contains(t, out, `"count": 3`)
	assert.Contains(t, out, `"extracted_at": "2026-03-01T12:00:00Z"`)
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestWriteUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, NewDocument("x", series, at), types.ExportSQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document format")
	assert.Zero(t, buf.Len())
}

func TestFileRoundTrip(t *testing.T) {
	for _, format := range []types.ExportFormat{types.ExportYAML, types.ExportJSON} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultOutput(format))
			want := NewDocument("trainer.log", series, at)
			require.NoError(t, WriteFile(path, want, format))

			got, err := ReadFile(path, format)
			require.NoError(t, err)
			assert.Equal(t, want.Source, got.Source)
			assert.Equal(t, want.Count, got.Count)
			assert.Equal(t, want.Samples, got.Samples)
			assert.True(t, want.ExtractedAt.Equal(got.ExtractedAt))
		})
	}
}

func TestFileRoundTripNonFinite(t *testing.T) {
	odd := types.Series{
		{Cycle: 1, Utility: math.NaN()},
		{Cycle: math.Inf(1), Utility: math.Inf(-1)},
	}
	for _, format := range []types.ExportFormat{types.ExportYAML, types.ExportJSON} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultOutput(format))
			require.NoError(t, WriteFile(path, NewDocument("odd.log", odd, at), format))

			got, err := ReadFile(path, format)
			require.NoError(t, err)
			require.Len(t, got.Samples, 2)
			assert.Equal(t, 1.0, got.Samples[0].Cycle)
			assert.True(t, math.IsNaN(got.Samples[0].Utility))
			assert.True(t, math.IsInf(got.Samples[1].Cycle, 1))
			assert.True(t, math.IsInf(got.Samples[1].Utility, -1))
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, types.ExportJSON, FormatFor("out/curve.json"))
	assert.Equal(t, types.ExportJSON, FormatFor("CURVE.JSON"))
	assert.Equal(t, types.ExportYAML, FormatFor("curve.yaml"))
	assert.Equal(t, types.ExportYAML, FormatFor("curve.yml"))
	assert.Equal(t, types.ExportYAML, FormatFor("curve"))
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "learning-curve.yaml", DefaultOutput(types.ExportYAML))
	assert.Equal(t, "learning-curve.json", DefaultOutput(types.ExportJSON))
	assert.Equal(t, "learning-curve.db", DefaultOutput(types.ExportSQLite))
	assert.Equal(t, "learning-curve.yaml", DefaultOutput(""))
}
