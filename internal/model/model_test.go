package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestRumourLog_PrependKeepsNewestFirst(t *testing.T) {
	var log RumourLog
	log.Prepend(Rumour{Detail: "first recorded"})
	log.Prepend(Rumour{Detail: "second recorded"})
	log.Prepend(Rumour{Detail: "third recorded"})

	if len(log) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(log))
	}
	if log[0].Detail != "third recorded" {
		t.Errorf("Expected newest record at index 0, got %q", log[0].Detail)
	}
	if log[2].Detail != "first recorded" {
		t.Errorf("Expected oldest record at the end, got %q", log[2].Detail)
	}
}

func TestRoster_FindPlayerReturnsMutablePointer(t *testing.T) {
	roster := &Roster{Players: []Player{
		{ID: 1, Name: "Ibrahim Diallo", Club: "Lens"},
		{ID: 2, Name: "Mamadou Sarr", Club: "Metz"},
	}}

	p := roster.FindPlayer(2)
	if p == nil {
		t.Fatal("Expected to find player 2")
	}
	p.Status = StatusHot

	if roster.Players[1].Status != StatusHot {
		t.Error("Expected mutation through the pointer to stick in the roster")
	}

	if roster.FindPlayer(99) != nil {
		t.Error("Expected nil for an unknown id")
	}
}

func TestIntelTable_MergeCreatesLazily(t *testing.T) {
	table := IntelTable{}

	changed := table.Merge(7, map[string]any{"contract": "2027", "prevClub": "Génération Foot"})
	if !changed {
		t.Error("Expected first merge to report a change")
	}
	entry, ok := table["7"]
	if !ok {
		t.Fatal("Expected an entry keyed by decimal id")
	}
	if entry["contract"] != "2027" {
		t.Errorf("Expected contract field to be set, got %v", entry["contract"])
	}
}

func TestIntelTable_MergeIsIdempotent(t *testing.T) {
	table := IntelTable{}
	updates := map[string]any{"contract": "2027"}

	if !table.Merge(7, updates) {
		t.Fatal("Expected first merge to change the table")
	}
	if table.Merge(7, updates) {
		t.Error("Expected re-applying identical updates to report no change")
	}
	if !table.Merge(7, map[string]any{"contract": "2028"}) {
		t.Error("Expected a differing value to report a change")
	}
}

func TestIntelTable_MergeEmptyUpdates(t *testing.T) {
	table := IntelTable{}
	if table.Merge(7, nil) {
		t.Error("Expected nil updates to report no change")
	}
	if _, ok := table["7"]; ok {
		t.Error("Expected no entry created for nil updates")
	}
}

func TestValidPlayerStatus(t *testing.T) {
	for _, s := range []string{StatusMonitoring, StatusRising, StatusHot, StatusPending, StatusTransferred, StatusCold} {
		if !ValidPlayerStatus(s) {
			t.Errorf("Expected %q to be a valid status", s)
		}
	}
	for _, s := range []string{"signed", "HOT", "", "archived"} {
		if ValidPlayerStatus(s) {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
}

func TestValidSweepTier(t *testing.T) {
	for _, tier := range []string{"A", "B", "C"} {
		if !ValidSweepTier(tier) {
			t.Errorf("Expected tier %q to be valid", tier)
		}
	}
	for _, tier := range []string{"a", "D", "", "AB"} {
		if ValidSweepTier(tier) {
			t.Errorf("Expected tier %q to be rejected", tier)
		}
	}
}

func TestDelta_Append(t *testing.T) {
	a := &Delta{Items: []DeltaItem{{PlayerID: 1}}}
	b := &Delta{
		Items:       []DeltaItem{{PlayerID: 2}},
		Escalations: []Escalation{{PlayerID: 2, NewValue: StatusRising}},
		TierChanges: []TierChange{{PlayerID: 1, NewTier: SweepTierA}},
	}

	a.Append(b)
	a.Append(nil)

	if len(a.Items) != 2 || len(a.Escalations) != 1 || len(a.TierChanges) != 1 {
		t.Errorf("Unexpected combined delta: %d items, %d escalations, %d tier changes",
			len(a.Items), len(a.Escalations), len(a.TierChanges))
	}
	if a.Empty() {
		t.Error("Expected combined delta to be non-empty")
	}
	if !(&Delta{}).Empty() {
		t.Error("Expected zero delta to be empty")
	}
}

func TestRumourCandidate_Rumour(t *testing.T) {
	tier := 2
	recent := true
	c := RumourCandidate{
		Date:   "Feb 8, 2026",
		Club:   "Sporting CP",
		Detail: "Medical scheduled for loan move",
		Source: "Record",
		Tier:   &tier,
		Status: "medical",
		Recent: &recent,
	}

	r := c.Rumour()
	if r.Tier != 2 || !r.Recent {
		t.Errorf("Expected tier 2 and recent true, got tier %d recent %v", r.Tier, r.Recent)
	}
	if r.Date != c.Date || r.Club != c.Club || r.Detail != c.Detail {
		t.Error("Expected scalar fields carried over unchanged")
	}
}

func TestFault_Tagging(t *testing.T) {
	base := errors.New("too many requests")
	retryable := Retryable(base)

	if !IsRetryable(retryable) {
		t.Error("Expected retryable tag to be visible")
	}
	if IsRetryable(Fatal(base)) {
		t.Error("Expected fatal fault to not read as retryable")
	}

	wrapped := fmt.Errorf("calling provider: %w", retryable)
	if !IsRetryable(wrapped) {
		t.Error("Expected tag to survive wrapping with %w")
	}
	if !errors.Is(wrapped, base) {
		t.Error("Expected the underlying cause to stay in the chain")
	}
}

func TestFault_ParseFailurePreservesRaw(t *testing.T) {
	raw := "Sure! Here is the delta you asked for..."
	f := ParseFailure(raw, errors.New("no JSON object found"))

	if !IsFatal(f) {
		t.Error("Expected parse failure to be fatal")
	}
	got, ok := AsFault(f)
	if !ok {
		t.Fatal("Expected AsFault to unwrap the fault")
	}
	if got.Raw != raw {
		t.Errorf("Expected raw upstream text preserved, got %q", got.Raw)
	}
}

func TestFault_ErrorRendering(t *testing.T) {
	tests := []struct {
		fault    *Fault
		expected string
		desc     string
	}{
		{
			fault:    ItemRejected("date is required", "club is required"),
			expected: "item-rejected: date is required; club is required",
			desc:     "Rejection joins reasons",
		},
		{
			fault:    RecordDropped("unknown player id 42"),
			expected: "record-dropped: unknown player id 42",
			desc:     "Drop carries its reason",
		},
		{
			fault:    Fatal(errors.New("roster write failed")),
			expected: "fatal: roster write failed",
			desc:     "Fatal shows the cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.fault.Error(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
