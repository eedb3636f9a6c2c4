package worker

import (
	"fmt"
	"strings"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

// Plan describes one sweep's research workload: the sweep tiers due this run
// and the player batches to research, in roster order. Batches are awaited
// sequentially downstream; the planner never splits a player across batches.
type Plan struct {
	Tiers   []string
	Batches [][]model.Player
}

// PlayerCount returns the number of players across all batches
func (p Plan) PlayerCount() int {
	count := 0
	for _, batch := range p.Batches {
		count += len(batch)
	}
	return count
}

// Empty reports whether the plan has no players to research
func (p Plan) Empty() bool {
	return len(p.Batches) == 0
}

// DueTiers returns the sweep tiers scheduled for the given sweep count.
// Tier A is researched every sweep; lower tiers every Nth sweep per the
// configured intervals. The count is the roster's pre-run counter, so a
// fresh roster (count 0) sweeps every tier.
func DueTiers(sweepCount int, intervals map[string]int) []string {
	var due []string
	for _, tier := range []string{model.SweepTierA, model.SweepTierB, model.SweepTierC} {
		interval := intervals[tier]
		if interval <= 1 || sweepCount%interval == 0 {
			due = append(due, tier)
		}
	}
	return due
}

// PlanBatches builds the research plan for one sweep. With no explicit tier
// selection, the interval schedule decides which tiers are due; an explicit
// selection (the --tiers flag) overrides the schedule and forces those tiers.
func PlanBatches(roster *model.Roster, cfg model.ResearchConfig, only []string) (Plan, error) {
	var tiers []string
	if len(only) > 0 {
		normalized, err := normalizeTiers(only)
		if err != nil {
			return Plan{}, err
		}
		tiers = normalized
	} else {
		tiers = DueTiers(roster.Metadata.SweepCount, cfg.TierIntervals)
	}

	due := make(map[string]bool, len(tiers))
	for _, tier := range tiers {
		due[tier] = true
	}

	var selected []model.Player
	for _, player := range roster.Players {
		if due[player.SweepTier] {
			selected = append(selected, player)
		}
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 8
	}

	plan := Plan{Tiers: tiers}
	for start := 0; start < len(selected); start += batchSize {
		end := start + batchSize
		if end > len(selected) {
			end = len(selected)
		}
		plan.Batches = append(plan.Batches, selected[start:end])
	}

	return plan, nil
}

// normalizeTiers validates an explicit tier selection and returns it in
// canonical A, B, C order with duplicates removed
func normalizeTiers(only []string) ([]string, error) {
	want := make(map[string]bool, len(only))
	for _, raw := range only {
		tier := strings.ToUpper(strings.TrimSpace(raw))
		if tier == "" {
			continue
		}
		if !model.ValidSweepTier(tier) {
			return nil, fmt.Errorf("invalid sweep tier %q (valid: A, B, C)", raw)
		}
		want[tier] = true
	}

	var tiers []string
	for _, tier := range []string{model.SweepTierA, model.SweepTierB, model.SweepTierC} {
		if want[tier] {
			tiers = append(tiers, tier)
		}
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("no valid sweep tiers selected")
	}
	return tiers, nil
}
