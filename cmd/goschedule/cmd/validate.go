package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschedule/internal/config"
)

var validatePing bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate checks the configuration file and, with --ping, the problem
bank connection.

Checks performed:
  - Configuration syntax and value ranges
  - Problem bank settings when the bank is enabled
  - Database connectivity (with --ping)

Example:
  goschedule validate --config goschedule.yaml --ping`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validatePing, "ping", false,
		"Also connect to the problem bank")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Unlike the other commands, a missing file is an error here.
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	fmt.Fprintf(outputWriter, "=== Configuration Validation ===\n")
	fmt.Fprintf(outputWriter, "Config file: %s\n", configFile)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(outputWriter, "❌ %v\n", err)
		return fmt.Errorf("configuration is invalid")
	}

	g := cfg.Generation
	fmt.Fprintf(outputWriter, "Objects: %d, max ops per transaction: %d, trials: %d\n",
		g.ObjectCount, g.MaxOpsPerTransaction, g.Trials)
	fmt.Fprintf(outputWriter, "Search budget: %d x %d\n", g.OuterAttempts, g.InnerAttempts)
	if cfg.Bank.Enabled {
		fmt.Fprintf(outputWriter, "Problem bank: %s:%d/%s (table %s)\n",
			cfg.Bank.Host, cfg.Bank.Port, cfg.Bank.Database, cfg.Bank.Table)
	} else {
		fmt.Fprintf(outputWriter, "Problem bank: disabled\n")
	}

	if validatePing && cfg.Bank.Enabled {
		ctx := commandContext(cmd)
		manager, err := connectBank(ctx, &cfg.Bank)
		if err != nil {
			fmt.Fprintf(outputWriter, "❌ Problem bank unreachable: %v\n", err)
			return fmt.Errorf("problem bank connection failed")
		}
		defer manager.Close()

		if err := manager.Ping(ctx); err != nil {
			fmt.Fprintf(outputWriter, "❌ %v\n", err)
			return fmt.Errorf("problem bank connection failed")
		}
		fmt.Fprintf(outputWriter, "✅ Problem bank reachable\n")
	}

	fmt.Fprintln(outputWriter, "✅ Configuration valid")
	return nil
}
