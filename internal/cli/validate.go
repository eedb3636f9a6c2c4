package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/pipeline"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/store"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/validate"
	"github.com/spf13/cobra"
)

var reviewOut string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <delta-file>",
	Short: "Validate a saved delta file without touching the stores",
	Long: `Validate runs a saved producer delta through the full validation
pass - schema, identity, duplicate and tier checks - against the current
roster and alias registry, and reports what would be accepted. Raw producer
output is fine: the JSON object is recovered from surrounding commentary
the same way a live sweep does it.

Nothing is written unless --review-out is given. Rejected records are part
of the report, not a command failure.

Example:
  aytt validate delta.json
  aytt validate sweep_raw.txt --review-out needs_review.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&reviewOut, "review-out", "", "append rejected items to this needs-review file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, nil, verbose)
	outcome, err := p.ValidateOnly(args[0])
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	printOutcome(outcome)

	if reviewOut != "" && len(outcome.NeedsReview) > 0 {
		now := time.Now()
		reviews := store.NewReviewStore(reviewOut)
		if err := reviews.Append(uuid.NewString(), store.Stamp(now), outcome.NeedsReview); err != nil {
			return fmt.Errorf("write review file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %d review item(s) to %s\n", len(outcome.NeedsReview), reviewOut)
	}

	return nil
}

// printOutcome renders a validation outcome the same way for the offline
// validate and merge commands.
func printOutcome(o *validate.Outcome) {
	fmt.Fprintf(os.Stderr, "✓ %d item(s) accepted\n", len(o.Accepted))
	if len(o.Escalations) > 0 || len(o.TierChanges) > 0 {
		fmt.Fprintf(os.Stderr, "✓ %d escalation(s), %d tier change(s) accepted\n",
			len(o.Escalations), len(o.TierChanges))
	}
	for _, w := range o.TierWarnings {
		fmt.Fprintf(os.Stderr, "⚠ %s: %s\n", w.PlayerName, w.Message)
	}
	for _, r := range o.Rejected {
		fmt.Fprintf(os.Stderr, "✗ %s (id %d): %s\n", r.Item.PlayerName, r.Item.PlayerID, r.Reason)
	}
	if verbose {
		for _, line := range o.Dropped {
			fmt.Fprintf(os.Stderr, "  dropped: %s\n", line)
		}
	}
}
