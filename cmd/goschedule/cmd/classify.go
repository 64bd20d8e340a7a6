package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goschedule/internal/analysis"
	"github.com/dbsmedya/goschedule/internal/randutil"
	"github.com/dbsmedya/goschedule/internal/render"
	"github.com/dbsmedya/goschedule/internal/schedule"
	"github.com/dbsmedya/goschedule/internal/search"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <schedule>",
	Short: "Classify a schedule given in textbook notation",
	Long: `Classify parses a schedule such as "R1(A) R2(A) W1(A) W2(A)" and reports
whether it is conflict-serializable, serializable and strict-2PL compliant,
with the evidence for each verdict.

Operations are R or W, followed by the transaction (1 or 2) and an object
A-F in parentheses. Separate operations with spaces or commas.

Example:
  goschedule classify "R1(A) R2(A) W1(A) W2(A)"
  goschedule classify R1(A),W2(A),W1(B),R2(B) --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	s, err := schedule.Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}

	rng := randutil.New(cfg.Generation.Seed)
	c := analysis.Classify(rng, s, cfg.Generation.Trials)
	log.WithSeed(rng.Seed()).Debugw("Classified schedule",
		"schedule", schedule.Format(s),
		"conflict_serializable", c.ConflictSerializable,
		"serializable", c.Serializable,
		"s2pl", c.S2PL,
	)

	problem := search.NewProblem(s, c)
	opts := renderOptions(cfg, true)

	if cfg.Output.Format == "yaml" {
		out, err := render.YAML(problem, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(outputWriter, out)
		return nil
	}

	fmt.Fprint(outputWriter, render.Table(problem.Table))
	fmt.Fprintf(outputWriter, "\nNotation: %s\n\n", schedule.Format(s))
	fmt.Fprint(outputWriter, render.Classification(s, c, opts))
	return nil
}
