package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trustbuddy/internal/pipeline"
	"github.com/ppiankov/trustbuddy/internal/session"
)

var (
	quizRuns int
	quizSeed uint64
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play the threat-spotting quiz in a local session",
	Long: `Quiz simulates quiz attempts. Each attempt succeeds with probability 0.7
and updates the session tally.

Example:
  trustbuddy quiz --runs 10
  trustbuddy quiz --runs 10 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().IntVar(&quizRuns, "runs", 1, "number of quiz attempts")
	quizCmd.Flags().Uint64Var(&quizSeed, "seed", 0, "pin the random source (0 seeds from the clock)")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	if quizRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if quizSeed != 0 {
		cfg.Analysis.Seed = quizSeed
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	analyzer := pipeline.NewAnalyzer(cfg, pipeline.WithLogger(logger))
	tally := session.NewTally()
	r := pipeline.NewRenderer(cmd.OutOrStdout())

	for i := 0; i < quizRuns; i++ {
		r.RenderQuiz(analyzer.RunQuiz(tally))
	}

	if acc, ok := tally.Accuracy(); ok {
		snap := tally.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "\nFinal: %d/%d correct, accuracy %.1f%%\n", snap.Correct, snap.Total, acc*100)
	}
	return nil
}
