package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschedule/internal/config"
	"github.com/dbsmedya/goschedule/internal/database"
	"github.com/dbsmedya/goschedule/internal/render"
	"github.com/dbsmedya/goschedule/internal/schedule"
	"github.com/dbsmedya/goschedule/internal/search"
)

var (
	genObjects              int
	genMaxOps               int
	genConflictSerializable bool
	genSerializable         bool
	genSolution             bool
	genSave                 bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a schedule exercise",
	Long: `Generate searches random two-transaction schedules until it finds one
whose conflict-serializability and serializability match the targets.

Targets are drawn at random unless forced. A conflict-serializable
schedule is always serializable, so --conflict-serializable=true together
with --serializable=false is rejected.

Example:
  goschedule generate --objects 3 --seed 42 --solution
  goschedule generate --conflict-serializable=false --serializable=true --save`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genObjects, "objects", 0,
		"Override number of objects (1-6)")
	generateCmd.Flags().IntVar(&genMaxOps, "max-ops", 0,
		"Override maximum operations per transaction (min 3)")
	generateCmd.Flags().BoolVar(&genConflictSerializable, "conflict-serializable", false,
		"Force the conflict-serializability target")
	generateCmd.Flags().BoolVar(&genSerializable, "serializable", false,
		"Force the serializability target")
	generateCmd.Flags().BoolVar(&genSolution, "solution", false,
		"Print the classification with explanations")
	generateCmd.Flags().BoolVar(&genSave, "save", false,
		"Store the problem in the problem bank")

	rootCmd.AddCommand(generateCmd)
}

// searchOptions maps configuration and forced targets onto search options.
func searchOptions(cmd *cobra.Command, cfg *config.Config) search.Options {
	opts := search.Options{
		Generation: schedule.Options{
			ObjectCount: cfg.Generation.ObjectCount,
			MaxOps:      cfg.Generation.MaxOpsPerTransaction,
		},
		Trials:        cfg.Generation.Trials,
		OuterAttempts: cfg.Generation.OuterAttempts,
		InnerAttempts: cfg.Generation.InnerAttempts,
		Seed:          cfg.Generation.Seed,
	}
	if cmd.Flags().Changed("conflict-serializable") {
		v := genConflictSerializable
		opts.ConflictSerializable = &v
	}
	if cmd.Flags().Changed("serializable") {
		v := genSerializable
		opts.Serializable = &v
	}
	return opts
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	searcher, err := search.NewSearcher(searchOptions(cmd, cfg), log)
	if err != nil {
		return err
	}

	ctx, stop := database.SetupSignalHandler(commandContext(cmd), func(sig os.Signal) {
		log.Warnw("Received signal, stopping search", "signal", sig.String())
	})
	defer stop()

	problem, err := searcher.Generate(ctx)
	if err != nil {
		return err
	}

	opts := renderOptions(cfg, genSolution)
	if cfg.Output.Format == "yaml" {
		out, err := render.YAML(problem, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(outputWriter, out)
	} else {
		fmt.Fprint(outputWriter, render.Text(problem, opts))
	}

	if !genSave {
		return nil
	}

	store, manager, err := openBank(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open problem bank: %w", err)
	}
	defer manager.Close()

	id, err := store.Save(ctx, problem)
	if err != nil {
		return err
	}
	log.Infow("Saved problem", "id", id, "seed", problem.Seed)
	fmt.Fprintf(outputWriter, "\nSaved as problem %d\n", id)
	return nil
}
