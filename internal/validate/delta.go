package validate

import (
	"fmt"
	"strings"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/normalize"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/registry"
)

// Outcome partitions a validated delta. Accepted records are safe to hand
// to the merge engine; everything else carries its reason.
type Outcome struct {
	Accepted     []model.DeltaItem
	Rejected     []model.RejectedItem
	NeedsReview  []model.ReviewItem
	TierWarnings []model.TierWarning
	Escalations  []model.Escalation
	TierChanges  []model.TierChange
	Dropped      []string // Log lines for silently filtered side-channel records
}

// WarnedItems counts accepted items that drew at least one tier warning.
func (o *Outcome) WarnedItems() int {
	seen := make(map[int]bool)
	for _, w := range o.TierWarnings {
		seen[w.PlayerID] = true
	}
	return len(seen)
}

// DeltaValidator runs schema and identity validation over a batch and
// partitions it into accepted, rejected and needs-review.
type DeltaValidator struct {
	schema   *SchemaValidator
	identity *IdentityValidator
	tier     *TierConsistencyChecker
}

func NewDeltaValidator(norm *normalize.Normalizer, reg *registry.Registry) *DeltaValidator {
	return &DeltaValidator{
		schema:   NewSchemaValidator(),
		identity: NewIdentityValidator(norm, reg),
		tier:     NewTierConsistencyChecker(),
	}
}

// ValidateDelta checks every record in the delta against the roster.
// Items are all-or-nothing: any schema or identity error rejects the whole
// item, with every accumulated error concatenated into one reason and the
// item routed to needs-review. Tier warnings are collected on accepted
// items but never block. Escalations and tier-changes are validated
// independently; failures there are dropped, not routed to review.
func (v *DeltaValidator) ValidateDelta(delta *model.Delta, roster *model.Roster) *Outcome {
	out := &Outcome{}

	for _, item := range delta.Items {
		var errs []string
		if item.Rumour != nil {
			res := v.schema.Validate(*item.Rumour)
			errs = append(errs, res.Errors...)
		}
		res := v.identity.Validate(item, roster)
		errs = append(errs, res.Errors...)

		if len(errs) > 0 {
			reason := strings.Join(errs, "; ")
			out.Rejected = append(out.Rejected, model.RejectedItem{Item: item, Reason: reason})
			review := model.ReviewItem{
				PlayerID:   item.PlayerID,
				PlayerName: item.PlayerName,
				Reason:     reason,
			}
			if item.Rumour != nil {
				review.Detail = item.Rumour.Detail
			}
			out.NeedsReview = append(out.NeedsReview, review)
			continue
		}

		if item.Rumour != nil && item.Rumour.Tier != nil {
			for _, msg := range v.tier.Check(item.Rumour.Source, *item.Rumour.Tier) {
				out.TierWarnings = append(out.TierWarnings, model.TierWarning{
					PlayerID:   item.PlayerID,
					PlayerName: item.PlayerName,
					Source:     item.Rumour.Source,
					Tier:       *item.Rumour.Tier,
					Message:    msg,
				})
			}
		}
		out.Accepted = append(out.Accepted, item)
	}

	for _, esc := range delta.Escalations {
		if reason := checkEscalation(esc, roster); reason != "" {
			out.Dropped = append(out.Dropped,
				fmt.Sprintf("dropped escalation for player %d (%s): %s", esc.PlayerID, esc.PlayerName, reason))
			continue
		}
		out.Escalations = append(out.Escalations, esc)
	}

	for _, tc := range delta.TierChanges {
		if reason := checkTierChange(tc, roster); reason != "" {
			out.Dropped = append(out.Dropped,
				fmt.Sprintf("dropped tier change for player %d (%s): %s", tc.PlayerID, tc.PlayerName, reason))
			continue
		}
		out.TierChanges = append(out.TierChanges, tc)
	}

	return out
}

func checkEscalation(esc model.Escalation, roster *model.Roster) string {
	if roster.FindPlayer(esc.PlayerID) == nil {
		return "unknown player id"
	}
	if esc.Field != "status" {
		return fmt.Sprintf("unsupported field %q", esc.Field)
	}
	if !model.ValidPlayerStatus(esc.NewValue) {
		return fmt.Sprintf("status %q is not in the allowed set", esc.NewValue)
	}
	return ""
}

func checkTierChange(tc model.TierChange, roster *model.Roster) string {
	if roster.FindPlayer(tc.PlayerID) == nil {
		return "unknown player id"
	}
	if !model.ValidSweepTier(tc.NewTier) {
		return fmt.Sprintf("tier %q is not one of A, B, C", tc.NewTier)
	}
	return ""
}
