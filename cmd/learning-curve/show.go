// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learning-curve/internal/export"
	"github.com/pdiddy/learning-curve/internal/store"
	"github.com/pdiddy/learning-curve/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] [<export-file>]",
	Short: "Print the samples of an exported document or a stored run",
	Long: `Show reads back what export wrote. Given a YAML or JSON document it
prints that document's samples; with --run it prints the samples of a run
stored in the SQLite database named by --db.`,
	Args: showArgs,
	RunE: runShow,
}

// showArgs takes one document path, or none when --run selects a stored run.
func showArgs(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("run") {
		return noArgs(cmd, args)
	}
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &usageError{cmd: cmd, err: errors.New("need an export file, or --run ID")}
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var (
		source string
		series types.Series
	)
	if cmd.Flags().Changed("run") {
		runID, _ := cmd.Flags().GetInt64("run")
		dbPath, _ := cmd.Flags().GetString("db")

		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		series, err = st.Series(cmd.Context(), runID)
		if err != nil {
			return err
		}
		source = fmt.Sprintf("run %d in %s", runID, dbPath)
	} else {
		doc, err := export.ReadFile(args[0], export.FormatFor(args[0]))
		if err != nil {
			return err
		}
		series, source = doc.Samples, doc.Source
	}

	return formatSamples(cmd.OutOrStdout(), source, series, jsonOutput)
}

func formatSamples(w io.Writer, source string, series types.Series, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(series)
	}

	fmt.Fprintf(w, "Source: %s\n\n", source)
	fmt.Fprintf(w, "%12s  %s\n", "Cycle", "Utility")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	for _, p := range series {
		fmt.Fprintf(w, "%12s  %s\n",
			strconv.FormatFloat(p.Cycle, 'g', -1, 64),
			strconv.FormatFloat(p.Utility, 'g', -1, 64))
	}
	fmt.Fprintf(w, "\n%d samples\n", series.Len())
	return nil
}

func init() {
	showCmd.Flags().Int64("run", 0, "show this stored run instead of an export file")
	showCmd.Flags().String("db", export.DefaultOutput(types.ExportSQLite), "SQLite database written by export")
	showCmd.Flags().Bool("json", false, "output samples as JSON")

	rootCmd.AddCommand(showCmd)
}
