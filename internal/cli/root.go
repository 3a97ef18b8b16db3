// Package cli implements the walletkit command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Shulepov/wallet-kit/internal/config"
	"github.com/Shulepov/wallet-kit/internal/output"
	kiterr "github.com/Shulepov/wallet-kit/pkg/errors"
)

var (
	// Global flags
	stateDir     string
	configFile   string
	outputFormat string
	logLevel     string

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "walletkit",
	Short: "A wallet connection orchestrator CLI",
	Long: `Walletkit orchestrates wallet connections: it merges configured wallets
with detected local signing agents, drives the connection state machine, and
routes operations to the active wallet through a capability gate.

Example:
  walletkit agent create main
  walletkit wallets list
  walletkit connect main
  walletkit sign main --message "hello"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// Format and print error
		if formatter != nil {
			_ = output.FormatError(os.Stderr, err, formatter.Format())
		} else {
			_ = output.FormatError(os.Stderr, err, output.FormatText)
		}
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return kiterr.ExitCode(err)
}

// initGlobals initializes global configuration, logger, and formatter.
func initGlobals() error {
	// Determine state directory
	state := stateDir
	if state == "" {
		state = os.Getenv(config.EnvStateDir)
	}
	if state == "" {
		state = config.DefaultStateDir()
	}

	// Locate the config file
	path := configFile
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path == "" {
		path = config.Path(state)
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	// Command-line flags win over file and environment values
	if stateDir != "" {
		cfg.StateDir = stateDir
	} else if cfg.StateDir == "" || cfg.StateDir == "~/.walletkit" {
		cfg.StateDir = state
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if outputFormat != "" && outputFormat != "auto" {
		cfg.Output.DefaultFormat = outputFormat
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize logger
	level := config.ParseLogLevel(cfg.Logging.Level)
	logger, err = config.NewLogger(level, config.ExpandHome(cfg.Logging.File))
	if err != nil {
		// Fall back to a silent logger if the log file cannot be opened
		logger = config.NopLogger()
	}

	// Initialize formatter
	explicit := output.ParseFormat(cfg.Output.DefaultFormat)
	detected := output.DetectFormat(os.Stdout, explicit)
	formatter = output.NewFormatter(detected, os.Stdout)

	return nil
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

// Config returns the global configuration.
func Config() *config.Config {
	return cfg
}

// Logger returns the global logger.
func Logger() *config.Logger {
	return logger
}

// Formatter returns the global output formatter.
func Formatter() *output.Formatter {
	return formatter
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "walletkit state directory (default: ~/.walletkit)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: <state-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: off, error, debug")
}
