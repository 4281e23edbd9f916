// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learning-curve/internal/curve"
	"github.com/pdiddy/learning-curve/internal/export"
	"github.com/pdiddy/learning-curve/internal/logging"
	"github.com/pdiddy/learning-curve/internal/store"
	"github.com/pdiddy/learning-curve/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <logfile>",
	Short: "Save the extracted samples as YAML, JSON, or SQLite",
	Long: `Export extracts the same samples the plot would show and writes them
out instead. YAML and JSON produce one document per call; SQLite appends a
new run to the database so several logs can be kept side by side.

Nothing is written if the log has no matching lines or a malformed one.`,
	Args: logfileArg,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	cfg := types.ExportConfig{Format: types.ExportFormat(format), Output: out}
	switch cfg.Format {
	case types.ExportYAML, types.ExportJSON, types.ExportSQLite:
	default:
		return &usageError{cmd: cmd, err: fmt.Errorf("unsupported format %q: use yaml, json, or sqlite", format)}
	}
	if cfg.Output == "" {
		cfg.Output = export.DefaultOutput(cfg.Format)
	}

	path := args[0]
	series, err := curve.Load(path)
	if err != nil {
		return err
	}
	logging.New("export").Info("extracted samples", "path", path, "samples", series.Len(), "format", cfg.Format)

	now := time.Now()
	w := cmd.OutOrStdout()

	if cfg.Format == types.ExportSQLite {
		st, err := store.Open(cfg.Output)
		if err != nil {
			return err
		}
		defer st.Close()

		runID, err := st.SaveRun(cmd.Context(), path, now, series)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Stored run %d (%d samples) in %s\n", runID, series.Len(), cfg.Output)
		return nil
	}

	if err := export.WriteFile(cfg.Output, export.NewDocument(path, series, now), cfg.Format); err != nil {
		return err
	}
	fmt.Fprintf(w, "Exported %d samples to %s\n", series.Len(), cfg.Output)
	return nil
}

func init() {
	exportCmd.Flags().String("format", string(types.ExportYAML), "export format: yaml, json, or sqlite")
	exportCmd.Flags().String("out", "", "output path (default learning-curve.yaml, .json, or .db)")

	rootCmd.AddCommand(exportCmd)
}
