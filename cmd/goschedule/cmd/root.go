package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschedule/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	outputFormat string
	noColor      bool
	seed         int64
	trials       int
)

var rootCmd = &cobra.Command{
	Use:   "goschedule",
	Short: "Transaction schedule exercise generator",
	Long: `A CLI tool that generates and analyzes interleaved schedules of two
database transactions for teaching concurrency control.

Features:
  - Random two-transaction schedules with requested properties
  - Conflict-serializability via conflict graph cycle detection
  - Serializability via execution against random databases
  - Strict two-phase locking compliance
  - Optional MySQL problem bank`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "goschedule.yaml",
		"Path to configuration file (defaults apply when missing)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output overrides
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "",
		"Override output format (text, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured output")

	// Analysis overrides
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"Random seed (0 = time-based)")
	rootCmd.PersistentFlags().IntVar(&trials, "trials", 0,
		"Override number of random databases per equivalence check")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		OutputFormat: outputFormat,
		NoColor:      noColor,
		ObjectCount:  genObjects,
		MaxOps:       genMaxOps,
		Trials:       trials,
		Seed:         seed,
	}
}
