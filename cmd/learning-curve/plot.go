// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/learning-curve/internal/chart"
	"github.com/pdiddy/learning-curve/internal/curve"
	"github.com/pdiddy/learning-curve/internal/display"
	"github.com/pdiddy/learning-curve/internal/logging"
	"github.com/pdiddy/learning-curve/pkg/types"
)

func runPlot(cmd *cobra.Command, args []string) error {
	cfg := plotConfig()
	path := args[0]
	log := logging.New("plot")

	// An unknown viewer is reported before the log is read.
	var viewer display.Viewer
	if cfg.Output == "" {
		v, err := display.New(cfg.Viewer)
		if err != nil {
			return &usageError{cmd: cmd, err: err}
		}
		viewer = v
	}

	series, err := curve.Load(path)
	if err != nil {
		return err
	}
	log.Info("extracted samples", "path", path, "samples", series.Len())

	if cfg.Output != "" {
		if err := chart.WriteFile(cfg.Output, series, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d samples)\n", cfg.Output, series.Len())
		return nil
	}

	img, err := chart.Image(series, cfg)
	if err != nil {
		return err
	}
	log.Debug("showing chart", "viewer", cfg.Viewer, "width", cfg.Width, "height", cfg.Height)
	return viewer.Show(cfg.Title, img)
}

// plotConfig reads presentation settings from flags, config file, and
// environment, in viper's precedence order.
func plotConfig() types.PlotConfig {
	return chart.Normalize(types.PlotConfig{
		Title:  viper.GetString("title"),
		Width:  viper.GetInt("width"),
		Height: viper.GetInt("height"),
		Viewer: types.ViewerKind(viper.GetString("viewer")),
		Output: viper.GetString("output"),
	})
}

func init() {
	flags := rootCmd.Flags()
	flags.String("title", chart.DefaultTitle, "chart title")
	flags.Int("width", 1024, "chart width in pixels")
	flags.Int("height", 640, "chart height in pixels")
	flags.String("viewer", string(types.ViewerWindow), "how to show the chart: window or external")
	flags.StringP("output", "o", "", "write the chart to this .png or .svg file instead of showing it")

	for _, name := range []string{"title", "width", "height", "viewer", "output"} {
		bindFlag(name, flags)
	}
}
