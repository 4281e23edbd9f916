// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learning-curve/internal/export"
	"github.com/pdiddy/learning-curve/internal/store"
	"github.com/pdiddy/learning-curve/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the runs stored by export --format sqlite",
	Args:  noArgs,
	RunE:  runRuns,
}

func runRuns(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.Runs(cmd.Context())
	if err != nil {
		return err
	}
	return formatRuns(cmd.OutOrStdout(), runs, jsonOutput)
}

func formatRuns(w io.Writer, runs []store.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-20s  %-7s  %s\n", "ID", "Extracted", "Samples", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range runs {
		fmt.Fprintf(w, "%-4d  %-20s  %-7d  %s\n",
			r.ID, r.ExtractedAt.Format("2006-01-02 15:04:05"), r.SampleCount, r.Source)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

func init() {
	runsCmd.Flags().String("db", export.DefaultOutput(types.ExportSQLite), "SQLite database written by export")
	runsCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(runsCmd)
}
