package model

// Player tracking statuses. Escalations may only move a player to one of
// these; anything else is dropped during validation.
const (
	StatusMonitoring  = "monitoring"
	StatusRising      = "rising"
	StatusHot         = "hot"
	StatusPending     = "pending"
	StatusTransferred = "transferred"
	StatusCold        = "cold"
)

var playerStatuses = map[string]bool{
	StatusMonitoring:  true,
	StatusRising:      true,
	StatusHot:         true,
	StatusPending:     true,
	StatusTransferred: true,
	StatusCold:        true,
}

// ValidPlayerStatus reports whether s is in the closed status set.
func ValidPlayerStatus(s string) bool {
	return playerStatuses[s]
}

// Sweep tiers control how often a player is included in a sweep.
const (
	SweepTierA = "A"
	SweepTierB = "B"
	SweepTierC = "C"
)

// ValidSweepTier reports whether s is one of A, B or C.
func ValidSweepTier(s string) bool {
	return s == SweepTierA || s == SweepTierB || s == SweepTierC
}

// Delta is a batch of candidate records proposing changes to the store,
// not yet validated or merged.
type Delta struct {
	Items       []DeltaItem  `json:"items"`
	Escalations []Escalation `json:"escalations,omitempty"`
	TierChanges []TierChange `json:"tierChanges,omitempty"`
}

// Append folds another delta's records into d. Used to combine per-batch
// deltas into the single run delta that gets validated and merged.
func (d *Delta) Append(other *Delta) {
	if other == nil {
		return
	}
	d.Items = append(d.Items, other.Items...)
	d.Escalations = append(d.Escalations, other.Escalations...)
	d.TierChanges = append(d.TierChanges, other.TierChanges...)
}

// Empty reports whether the delta carries no records at all.
func (d *Delta) Empty() bool {
	return len(d.Items) == 0 && len(d.Escalations) == 0 && len(d.TierChanges) == 0
}

// DeltaItem is one candidate change for one player: an optional rumour, an
// optional intel-field update, and the upstream's reasoning.
type DeltaItem struct {
	PlayerID     int              `json:"playerId"`
	PlayerName   string           `json:"playerName"` // Name as claimed upstream, checked against the roster
	Rumour       *RumourCandidate `json:"rumor,omitempty"`
	IntelUpdates map[string]any   `json:"intelUpdates,omitempty"`
	Reasoning    string           `json:"reasoning"`
}

// Escalation is a side-channel record asking to move a player's tracking
// status. Field is always "status" on well-formed input.
type Escalation struct {
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
	Field      string `json:"field"`
	OldValue   string `json:"oldValue"`
	NewValue   string `json:"newValue"`
	Source     string `json:"source"`
}

// TierChange is a side-channel record asking to move a player between
// sweep tiers.
type TierChange struct {
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
	OldTier    string `json:"oldTier"`
	NewTier    string `json:"newTier"`
	Reason     string `json:"reason"`
}
