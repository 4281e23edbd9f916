// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the learning-curve CLI. It plots the
// average trajectory utility per training cycle found in a trainer log.
// See docs/ARCHITECTURE § Pipeline Interface, § Extraction, § Display.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/learning-curve/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by how the command was invoked. They are
// reported with the command's usage text and exit status 2.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// logfileArg requires exactly one argument naming an existing file.
func logfileArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &usageError{cmd: cmd, err: err}
	}
	if _, err := os.Stat(args[0]); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &usageError{cmd: cmd, err: fmt.Errorf("logfile '%s' not found", args[0])}
		}
		return &usageError{cmd: cmd, err: fmt.Errorf("cannot access logfile '%s': %w", args[0], err)}
	}
	return nil
}

// noArgs rejects positional arguments as a usage error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &usageError{cmd: cmd, err: err}
	}
	return nil
}

// rootCmd is the base command: it plots the learning curve of one log.
var rootCmd = &cobra.Command{
	Use:   "learning-curve [flags] <logfile>",
	Short: "Plot avg trajectory utility vs cycle from a trainer log",
	Long: `learning-curve reads a trainer log, collects every line of the form

  [INFO] TrainerAgent.onGameEnd: After <cycle> cycle(s), avg trajectory utility = <utility>

and plots utility against cycle in a window. Lines of any other shape are
ignored; a matching line that does not carry two numbers is an error.

Use --output to write the chart to a PNG or SVG file instead, and the export
subcommand to save the extracted samples as YAML, JSON, or SQLite; show
reads them back.`,
	Args:          logfileArg,
	RunE:          runPlot,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return &usageError{cmd: cmd, err: err}
		}
		logging.Init(level, viper.GetString("log-format"), cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./learning-curve.yaml or ~/.config/learning-curve/learning-curve.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, or error")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, err: err}
	})

	viper.SetDefault("log-format", "text")
	bindFlag("log-level", rootCmd.PersistentFlags())
}

// bindFlag exposes flag name to viper under the same key, so config files
// and LEARNING_CURVE_* variables can set it.
func bindFlag(name string, flags *pflag.FlagSet) {
	if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("learning-curve")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "learning-curve"))
		}
	}

	viper.SetEnvPrefix("LEARNING_CURVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// reportError prints err and returns the process exit status for it.
func reportError(w io.Writer, err error) int {
	fmt.Fprintln(w, "Error:", err)

	var ue *usageError
	if errors.As(err, &ue) {
		if ue.cmd != nil {
			fmt.Fprint(w, "\n", ue.cmd.UsageString())
		}
		return exitUsage
	}
	return exitFailure
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}
