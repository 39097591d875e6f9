package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"lexenv/interpreter-go/pkg/driver"
	"lexenv/interpreter-go/pkg/logging"
)

var errFixturesFailed = errors.New("fixtures failed")

func newFixtureCommand(opts *cliOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Run the fixture in a single directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			corpus, err := driver.OpenCorpus(dir, false)
			if err != nil {
				return err
			}
			fixture, err := corpus.Fixture(".")
			if err != nil {
				return err
			}
			outcome := driver.NewRunner(opts.config).Run(cmd.Context(), fixture)
			outcome.Fixture = dir
			printOutcome(cmd.OutOrStdout(), outcome, true)
			if outcome.Status == driver.StatusFail {
				return errFixturesFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "fixture directory containing manifest.yml")
	return cmd
}

type fixturesFlags struct {
	dir      string
	gitURL   string
	revision string
	baseline string
	record   bool
}

func newFixturesCommand(opts *cliOptions) *cobra.Command {
	var flags fixturesFlags
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Run every fixture in a corpus directory or git repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFixtures(cmd, opts, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "corpus directory (overrides corpus.dir)")
	cmd.Flags().StringVar(&flags.gitURL, "git", "", "clone the corpus from this repository (overrides corpus.git.url)")
	cmd.Flags().StringVar(&flags.revision, "rev", "", "revision to check out with --git")
	cmd.Flags().StringVar(&flags.baseline, "baseline", "", "baseline database (overrides baseline)")
	cmd.Flags().BoolVar(&flags.record, "record", false, "record outcomes as the new baseline")
	return cmd
}

// runFixtures runs the corpus. Without a baseline any failure fails the
// command; with one only regressions do.
func runFixtures(cmd *cobra.Command, opts *cliOptions, flags fixturesFlags) error {
	ctx := cmd.Context()
	logger := logging.Logger(ctx)
	cfg := opts.config

	var (
		corpus *driver.Corpus
		err    error
	)
	src := cfg.Corpus.Git
	if flags.gitURL != "" {
		src = driver.GitSource{URL: flags.gitURL, Revision: flags.revision}
	}
	switch {
	case flags.dir != "":
		corpus, err = driver.OpenCorpus(flags.dir, cfg.Corpus.IgnoreFile)
	case src.URL != "":
		corpus, err = driver.CloneCorpus(ctx, src, cfg.Corpus.IgnoreFile)
	case cfg.Corpus.Dir != "":
		corpus, err = driver.OpenCorpus(cfg.Corpus.Dir, cfg.Corpus.IgnoreFile)
	default:
		return errors.New("fixtures: no corpus; pass --dir or --git, or set corpus in the config")
	}
	if err != nil {
		return err
	}

	fixtures, err := corpus.Fixtures(ctx)
	if err != nil {
		return err
	}
	outcomes, err := driver.NewRunner(cfg).RunAll(ctx, fixtures)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, outcome := range outcomes {
		printOutcome(out, outcome, opts.verbose)
	}
	summary := driver.Summarize(outcomes)
	fmt.Fprintln(out, summary)

	baselinePath := cfg.Baseline
	if flags.baseline != "" {
		baselinePath = flags.baseline
	}
	if baselinePath == "" {
		if flags.record {
			return errors.New("fixtures: --record needs a baseline path")
		}
		if summary.Failed > 0 {
			return errFixturesFailed
		}
		return nil
	}

	_, statErr := os.Stat(baselinePath)
	existed := statErr == nil
	baseline, err := driver.OpenBaseline(baselinePath)
	if err != nil {
		return err
	}
	defer baseline.Close()

	var regressions []string
	if existed {
		cmp, err := baseline.Compare(outcomes)
		if err != nil {
			return err
		}
		regressions = cmp.Regressions
		for _, name := range cmp.Regressions {
			fmt.Fprintf(out, "regression: %s\n", name)
		}
		for _, name := range cmp.Fixed {
			fmt.Fprintf(out, "fixed: %s\n", name)
		}
	}
	if flags.record {
		if err := baseline.Record(outcomes); err != nil {
			return err
		}
		logger.WithField("path", baselinePath).Info("baseline recorded")
	}
	if len(regressions) > 0 {
		return errors.Errorf("fixtures: %d regression(s) against %s", len(regressions), baselinePath)
	}
	if !existed && !flags.record && summary.Failed > 0 {
		return errFixturesFailed
	}
	return nil
}

func printOutcome(w io.Writer, outcome *driver.Outcome, showPasses bool) {
	switch outcome.Status {
	case driver.StatusPass:
		if showPasses {
			fmt.Fprintf(w, "PASS %s\n", outcome.Fixture)
		}
	case driver.StatusSkip:
		fmt.Fprintf(w, "SKIP %s (%s)\n", outcome.Fixture, outcome.Reason)
	case driver.StatusFail:
		fmt.Fprintf(w, "FAIL %s\n", outcome.Fixture)
		for _, mismatch := range outcome.Mismatches {
			fmt.Fprintf(w, "  %s\n", mismatch)
		}
	}
}
