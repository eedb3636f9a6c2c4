package model

import "time"

// ValidationResult is the outcome of validating a single candidate: valid
// iff no errors accumulated. Error strings are human-readable and ordered.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidationResult wraps accumulated errors; an empty or nil slice means
// the candidate passed.
func NewValidationResult(errs []string) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// RejectedItem pairs a rejected candidate with its synthesized reason (the
// concatenation of every accumulated error string).
type RejectedItem struct {
	Item   DeltaItem `json:"item"`
	Reason string    `json:"reason"`
}

// ReviewItem is one entry in the needs-review artifact: enough context for
// a human to judge the rejected candidate without the full delta.
type ReviewItem struct {
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"` // Name as claimed upstream
	Detail     string `json:"detail,omitempty"`
	Reason     string `json:"reason"`
}

// TierWarning is an advisory mismatch between a rumour's source text and
// its claimed reliability tier. Never blocks acceptance.
type TierWarning struct {
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
	Source     string `json:"source"`
	Tier       int    `json:"tier"`
	Message    string `json:"message"`
}

// MergeSummary reports what a merge actually did to the stores.
type MergeSummary struct {
	Changed           bool `json:"changed"`            // Aggregate anything-changed flag
	RumoursAdded      int  `json:"rumours_added"`      // Prepended to player logs
	DuplicatesSkipped int  `json:"duplicates_skipped"` // Dropped against current history
	IntelUpdated      int  `json:"intel_updated"`      // Players whose intel fields changed
	Escalations       int  `json:"escalations"`        // Status overwrites applied
	TierChanges       int  `json:"tier_changes"`       // SweepTier overwrites applied
}

// SweepReport is the per-run telemetry artifact written under the report
// directory. This is bookkeeping for the operator, not the published feed.
type SweepReport struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DryRun     bool      `json:"dry_run,omitempty"`

	Tiers        []string `json:"tiers,omitempty"`    // Sweep tiers included in this run
	Batches      int      `json:"batches"`            // Research batches issued
	PlayersSwept int      `json:"players_swept"`      // Players covered by those batches
	RegistryNote string   `json:"registry_note,omitempty"` // Set when the alias registry degraded to empty

	Accepted       int `json:"accepted"`
	Rejected       int `json:"rejected"`
	Warned         int `json:"warned"`          // Accepted items that drew tier warnings
	DroppedRecords int `json:"dropped_records"` // Side-channel records filtered silently

	Merge        MergeSummary  `json:"merge"`
	NeedsReview  []ReviewItem  `json:"needs_review,omitempty"`
	TierWarnings []TierWarning `json:"tier_warnings,omitempty"`
}
