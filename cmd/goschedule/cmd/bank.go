package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschedule/internal/render"
)

var bankLimit int

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Work with the problem bank",
	Long: `Bank groups commands for the optional MySQL problem bank, where
generate --save stores problems.`,
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored problems",
	Long: `List displays the most recently stored problems with their seed,
schedule and verdicts.

Example:
  goschedule bank list --limit 50 --config goschedule.yaml`,
	RunE: runBankList,
}

func init() {
	bankListCmd.Flags().IntVarP(&bankLimit, "limit", "n", 20,
		"Maximum number of problems to list")

	bankCmd.AddCommand(bankListCmd)
	rootCmd.AddCommand(bankCmd)
}

func runBankList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := commandContext(cmd)
	store, manager, err := openBank(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer manager.Close()

	records, err := store.List(ctx, bankLimit)
	if err != nil {
		return err
	}

	if cfg.Output.Format == "yaml" {
		out, err := render.RecordsYAML(records)
		if err != nil {
			return err
		}
		fmt.Fprint(outputWriter, out)
		return nil
	}

	fmt.Fprint(outputWriter, render.Records(records, renderOptions(cfg, false)))
	return nil
}
