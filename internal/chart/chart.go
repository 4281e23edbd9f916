// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart renders a learning-curve Series as a line chart with a
// marker on every sample.
// Implements: docs/ARCHITECTURE § Rendering.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pdiddy/learning-curve/pkg/types"
)

const (
	// DefaultTitle is used when the config leaves Title empty.
	DefaultTitle = "TetrisQAgent Learning Curve"

	XLabel = "Cycle"
	YLabel = "Average Trajectory Utility"

	defaultWidth  = 1024
	defaultHeight = 640
)

var (
	// ErrEmptySeries is returned when asked to render a series with no samples.
	ErrEmptySeries = errors.New("cannot render an empty series")
	// ErrNoFinitePoints is returned when every sample has a NaN or infinite
	// coordinate, leaving nothing to place on an axis.
	ErrNoFinitePoints = errors.New("series has no finite samples to plot")
)

var (
	lineColor = drawing.ColorFromHex("1f77b4")
	gridColor = drawing.ColorFromHex("d9d9d9")
)

// Normalize fills zero-valued presentation settings with defaults.
func Normalize(cfg types.PlotConfig) types.PlotConfig {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	return cfg
}

// Build assembles the chart definition for series without rendering it.
// Samples with a NaN or infinite coordinate are left out and split the line,
// so each run of finite samples becomes its own ContinuousSeries.
func Build(series types.Series, cfg types.PlotConfig) chart.Chart {
	cfg = Normalize(cfg)
	segments := finiteSegments(series)

	var xs, ys []float64
	lines := make([]chart.Series, 0, len(segments))
	for _, seg := range segments {
		segX, segY := seg.XValues(), seg.YValues()
		xs = append(xs, segX...)
		ys = append(ys, segY...)
		lines = append(lines, chart.ContinuousSeries{
			Name: YLabel,
			Style: chart.Style{
				StrokeColor: lineColor,
				StrokeWidth: 2.0,
				DotColor:    lineColor,
				DotWidth:    4.0,
			},
			XValues: segX,
			YValues: segY,
		})
	}

	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1.0}
	return chart.Chart{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           XLabel,
			Range:          paddedRange(xs),
			GridMajorStyle: grid,
			GridMinorStyle: chart.Style{Hidden: true},
		},
		YAxis: chart.YAxis{
			Name:           YLabel,
			Range:          paddedRange(ys),
			GridMajorStyle: grid,
			GridMinorStyle: chart.Style{Hidden: true},
		},
		Series: lines,
	}
}

// finiteSegments splits series at every sample with a non-finite
// coordinate and drops those samples. Order is kept.
func finiteSegments(series types.Series) []types.Series {
	var segments []types.Series
	var cur types.Series
	for _, s := range series {
		if isFinite(s.Cycle) && isFinite(s.Utility) {
			cur = append(cur, s)
			continue
		}
		if len(cur) > 0 {
			segments = append(segments, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		segments = append(segments, cur)
	}
	return segments
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// paddedRange returns an explicit axis range when every value is equal,
// which go-chart otherwise rejects as a zero-width range. A nil result
// leaves the range to go-chart. values must be finite.
func paddedRange(values []float64) chart.Range {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo != hi {
		return nil
	}
	pad := math.Max(math.Abs(lo)*0.1, 1)
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// FormatFor picks the output encoding from a file name: .svg selects SVG,
// anything else PNG.
func FormatFor(path string) types.ChartFormat {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return types.ChartSVG
	}
	return types.ChartPNG
}

// Render writes series to w in the given format.
func Render(w io.Writer, series types.Series, cfg types.PlotConfig, format types.ChartFormat) error {
	if series.Len() == 0 {
		return ErrEmptySeries
	}

	var provider chart.RendererProvider
	switch format {
	case types.ChartPNG, "":
		provider = chart.PNG
	case types.ChartSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported chart format %q: use png or svg", format)
	}

	c := Build(series, cfg)
	if len(c.Series) == 0 {
		return ErrNoFinitePoints
	}
	if err := c.Render(provider, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// WriteFile renders series to path, choosing the format from its extension.
func WriteFile(path string, series types.Series, cfg types.PlotConfig) error {
	var buf bytes.Buffer
	if err := Render(&buf, series, cfg, FormatFor(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing chart %s: %w", path, err)
	}
	return nil
}

// Image renders series as PNG in memory and decodes it for display.
func Image(series types.Series, cfg types.PlotConfig) (image.Image, error) {
	var buf bytes.Buffer
	if err := Render(&buf, series, cfg, types.ChartPNG); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decoding rendered chart: %w", err)
	}
	return img, nil
}
