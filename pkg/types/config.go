// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ViewerKind selects how a rendered chart is presented.
type ViewerKind string

const (
	// ViewerWindow opens a desktop window and blocks until it is closed.
	ViewerWindow ViewerKind = "window"
	// ViewerExternal hands a temporary PNG to the host image opener.
	ViewerExternal ViewerKind = "external"
)

// ChartFormat selects the encoding used when a chart is written out.
type ChartFormat string

const (
	ChartPNG ChartFormat = "png"
	ChartSVG ChartFormat = "svg"
)

// PlotConfig holds the presentation settings for the plot command.
// None of these affect which log lines are accepted.
type PlotConfig struct {
	// Title is the chart title (default "TetrisQAgent Learning Curve").
	Title string `json:"title" yaml:"title"`

	// Width and Height are the chart size in pixels (default 1024x640).
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// Viewer selects the presentation: window or external.
	Viewer ViewerKind `json:"viewer" yaml:"viewer"`

	// Output, when set, writes the chart to this path instead of displaying it.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	ExportYAML   ExportFormat = "yaml"
	ExportJSON   ExportFormat = "json"
	ExportSQLite ExportFormat = "sqlite"
)

// ExportConfig holds settings for the export command.
type ExportConfig struct {
	// Format is yaml, json, or sqlite.
	Format ExportFormat `json:"format" yaml:"format"`

	// Output is the destination path. Empty means a per-format default.
	Output string `json:"output" yaml:"output"`
}
