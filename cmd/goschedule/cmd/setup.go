package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschedule/internal/bank"
	"github.com/dbsmedya/goschedule/internal/config"
	"github.com/dbsmedya/goschedule/internal/database"
	"github.com/dbsmedya/goschedule/internal/logger"
	"github.com/dbsmedya/goschedule/internal/render"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

// connectBank opens the bank database. Tests replace it to inject sqlmock.
var connectBank = func(ctx context.Context, cfg *config.BankConfig) (*database.Manager, error) {
	m := database.NewManager(cfg)
	if err := m.Connect(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// loadConfig reads the config file (defaults when it is missing), applies
// CLI overrides and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOptional(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func renderOptions(cfg *config.Config, solution bool) *render.Options {
	return &render.Options{
		Color:    cfg.Output.Color,
		Solution: solution,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openBank connects to the problem bank and makes sure its table exists.
// The caller must close the returned manager.
func openBank(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bank.Store, *database.Manager, error) {
	if !cfg.Bank.Enabled {
		return nil, nil, fmt.Errorf("problem bank is disabled: set bank.enabled in %s", GetConfigFile())
	}

	log.Debugw("Connecting to problem bank",
		"host", cfg.Bank.Host,
		"port", cfg.Bank.Port,
		"database", cfg.Bank.Database,
	)

	m, err := connectBank(ctx, &cfg.Bank)
	if err != nil {
		return nil, nil, err
	}

	store, err := bank.NewStore(m.DB, cfg.Bank.Table)
	if err != nil {
		m.Close()
		return nil, nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		m.Close()
		return nil, nil, err
	}
	return store, m, nil
}
