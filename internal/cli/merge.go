package cli

import (
	"fmt"
	"os"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/pipeline"
	"github.com/spf13/cobra"
)

var mergeDryRun bool

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <delta-file>",
	Short: "Validate a saved delta file and merge it into the stores",
	Long: `Merge validates a saved producer delta and folds the accepted
records into the roster and intel stores, snapshotting both files first.
The merge is idempotent: re-running it with the same delta changes
nothing.

Offline merges do not advance the sweep schedule; only the sweep command
bumps the roster's sweep counter.

Example:
  aytt merge delta.json
  aytt merge delta.json --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "validate and report without writing")
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, nil, verbose)
	outcome, result, err := p.MergeOnly(args[0], mergeDryRun)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	printOutcome(outcome)

	s := result.Summary
	if !s.Changed {
		if mergeDryRun {
			fmt.Fprintf(os.Stderr, "✓ Dry run: nothing would change\n")
		} else {
			fmt.Fprintf(os.Stderr, "✓ Nothing to merge (stores already current)\n")
		}
		return nil
	}

	verb := "Merged"
	if mergeDryRun {
		verb = "Would merge"
	}
	fmt.Fprintf(os.Stderr, "✓ %s %d rumour(s), %d intel update(s), %d escalation(s), %d tier change(s)\n",
		verb, s.RumoursAdded, s.IntelUpdated, s.Escalations, s.TierChanges)
	if s.DuplicatesSkipped > 0 {
		fmt.Fprintf(os.Stderr, "  %d duplicate(s) skipped against current history\n", s.DuplicatesSkipped)
	}
	if verbose {
		for _, line := range result.Skipped {
			fmt.Fprintf(os.Stderr, "  %s\n", line)
		}
	}

	return nil
}
