// Package merge applies validated deltas to the durable stores with
// backup-before-write snapshots.
package merge

import (
	"fmt"
	"time"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/store"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/validate"
)

// Options control one merge application.
type Options struct {
	DryRun        bool      // Mutate in memory and report, but never write
	TouchMetadata bool      // Bump the roster's sweep counter and timestamp (sweep runs only)
	Now           time.Time // Zero means time.Now
}

// Result reports what the merge did.
type Result struct {
	Summary model.MergeSummary
	Skipped []string // Log lines for duplicate rumours that were dropped
}

// Engine merges accepted records into the roster and intel stores. The
// merge is idempotent: re-applying an already-merged delta changes
// nothing and reports Changed=false.
type Engine struct {
	dedupe *validate.DuplicateDetector
	roster *store.RosterStore
	intel  *store.IntelStore
}

func NewEngine(dedupe *validate.DuplicateDetector, rosterStore *store.RosterStore, intelStore *store.IntelStore) *Engine {
	return &Engine{dedupe: dedupe, roster: rosterStore, intel: intelStore}
}

// Apply merges the outcome's accepted records into roster and intel, then
// persists each mutated store: snapshot first, overwrite second, roster
// before intel. The two writes share a stamp but not a transaction; a
// crash between them can leave the stores inconsistent.
func (e *Engine) Apply(roster *model.Roster, intel model.IntelTable, outcome *validate.Outcome, opts Options) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	res := &Result{}
	rosterDirty := false
	intelDirty := false

	for _, item := range outcome.Accepted {
		player := roster.FindPlayer(item.PlayerID)
		if player == nil {
			// Validation guarantees the player exists; a miss here means
			// the outcome and roster are out of sync.
			return nil, fmt.Errorf("accepted item references unknown player %d", item.PlayerID)
		}

		if item.Rumour != nil {
			r := item.Rumour.Rumour()
			if e.dedupe.IsDuplicate(r, player.Rumours) {
				res.Summary.DuplicatesSkipped++
				res.Skipped = append(res.Skipped,
					fmt.Sprintf("skipped duplicate rumour for %s: %q (%s)", player.Name, r.Detail, r.Date))
			} else {
				player.Rumours.Prepend(r)
				res.Summary.RumoursAdded++
				rosterDirty = true
			}
		}

		if len(item.IntelUpdates) > 0 {
			if intel.Merge(item.PlayerID, item.IntelUpdates) {
				res.Summary.IntelUpdated++
				intelDirty = true
			}
		}
	}

	for _, esc := range outcome.Escalations {
		player := roster.FindPlayer(esc.PlayerID)
		if player == nil {
			return nil, fmt.Errorf("escalation references unknown player %d", esc.PlayerID)
		}
		if player.Status != esc.NewValue {
			player.Status = esc.NewValue
			res.Summary.Escalations++
			rosterDirty = true
		}
	}

	for _, tc := range outcome.TierChanges {
		player := roster.FindPlayer(tc.PlayerID)
		if player == nil {
			return nil, fmt.Errorf("tier change references unknown player %d", tc.PlayerID)
		}
		if player.SweepTier != tc.NewTier {
			player.SweepTier = tc.NewTier
			res.Summary.TierChanges++
			rosterDirty = true
		}
	}

	res.Summary.Changed = rosterDirty || intelDirty

	if opts.DryRun {
		return res, nil
	}

	if opts.TouchMetadata {
		roster.Metadata.SweepCount++
		roster.Metadata.LastSweep = opts.Now.UTC().Format(time.RFC3339)
		rosterDirty = true
	}

	stamp := store.Stamp(opts.Now)
	if rosterDirty {
		if err := e.roster.Save(roster, stamp); err != nil {
			return nil, fmt.Errorf("persist roster: %w", err)
		}
	}
	if intelDirty {
		if err := e.intel.Save(intel, stamp); err != nil {
			return nil, fmt.Errorf("persist intel: %w", err)
		}
	}
	return res, nil
}
