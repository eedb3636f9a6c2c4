package validate

import (
	"strings"
	"testing"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/normalize"
)

func newDeltaValidator(t *testing.T) *DeltaValidator {
	t.Helper()
	reg := testRegistry(t)
	return NewDeltaValidator(normalize.New(reg), reg)
}

func TestDeltaValidator_PartitionsAcceptedAndRejected(t *testing.T) {
	v := newDeltaValidator(t)
	roster := testRoster()

	good := validCandidate()
	good.Detail = "Club captain role under discussion"
	bad := validCandidate()
	bad.Date = "Recently"
	bad.Source = ""

	delta := &model.Delta{Items: []model.DeltaItem{
		{PlayerID: 1, PlayerName: "Édouard Mendy", Rumour: &good, Reasoning: "routine update"},
		{PlayerID: 2, PlayerName: "Mamadou Sarr", Rumour: &bad, Reasoning: "weak sourcing"},
	}}

	out := v.ValidateDelta(delta, roster)

	if len(out.Accepted) != 1 || out.Accepted[0].PlayerID != 1 {
		t.Errorf("Expected item for player 1 accepted, got %+v", out.Accepted)
	}
	if len(out.Rejected) != 1 || out.Rejected[0].Item.PlayerID != 2 {
		t.Fatalf("Expected item for player 2 rejected, got %+v", out.Rejected)
	}
	reason := out.Rejected[0].Reason
	if !strings.Contains(reason, "date") || !strings.Contains(reason, "source") {
		t.Errorf("Expected the reason to concatenate every error, got %q", reason)
	}
	if !strings.Contains(reason, "; ") {
		t.Errorf("Expected errors joined with a separator, got %q", reason)
	}
}

func TestDeltaValidator_RejectionIsAllOrNothing(t *testing.T) {
	v := newDeltaValidator(t)
	roster := testRoster()

	// Valid rumour shape, but the claimed name belongs to nobody.
	c := validCandidate()
	c.Detail = "Contract talks opened this week"
	delta := &model.Delta{Items: []model.DeltaItem{
		{PlayerID: 1, PlayerName: "Eduardo Mendes", Rumour: &c, IntelUpdates: map[string]any{"contract": "2027"}},
	}}

	out := v.ValidateDelta(delta, roster)

	if len(out.Accepted) != 0 {
		t.Error("Expected the whole item rejected, intel updates included")
	}
	if len(out.Rejected) != 1 {
		t.Fatalf("Expected 1 rejection, got %d", len(out.Rejected))
	}
}

func TestDeltaValidator_RoutesRejectionsToReview(t *testing.T) {
	v := newDeltaValidator(t)
	roster := testRoster()

	bad := validCandidate()
	bad.Detail = "Scouts from Metz watched him twice"
	delta := &model.Delta{Items: []model.DeltaItem{
		{PlayerID: 1, PlayerName: "Édouard Mendy", Rumour: &bad},
	}}

	out := v.ValidateDelta(delta, roster)

	if len(out.NeedsReview) != 1 {
		t.Fatalf("Expected 1 review entry, got %d", len(out.NeedsReview))
	}
	review := out.NeedsReview[0]
	if review.PlayerID != 1 || review.PlayerName != "Édouard Mendy" {
		t.Errorf("Expected review entry to carry the claimed identity, got %+v", review)
	}
	if review.Detail != bad.Detail {
		t.Errorf("Expected the offending detail carried for review, got %q", review.Detail)
	}
	if review.Reason == "" {
		t.Error("Expected a synthesized reason")
	}
}

func TestDeltaValidator_WarningsDoNotBlock(t *testing.T) {
	v := newDeltaValidator(t)
	roster := testRoster()

	c := validCandidate()
	c.Detail = "Loan exit now expected before the deadline"
	c.Source = "Fan account on Twitter"
	c.Tier = intp(1)
	delta := &model.Delta{Items: []model.DeltaItem{
		{PlayerID: 1, PlayerName: "Édouard Mendy", Rumour: &c},
	}}

	out := v.ValidateDelta(delta, roster)

	if len(out.Accepted) != 1 {
		t.Fatalf("Expected the item accepted despite warnings, rejected: %+v", out.Rejected)
	}
	if len(out.TierWarnings) != 1 {
		t.Fatalf("Expected 1 tier warning, got %d", len(out.TierWarnings))
	}
	w := out.TierWarnings[0]
	if w.PlayerID != 1 || w.Tier != 1 || w.Source != c.Source {
		t.Errorf("Expected the warning to carry player and source context, got %+v", w)
	}
	if out.WarnedItems() != 1 {
		t.Errorf("Expected 1 warned item, got %d", out.WarnedItems())
	}
}

func TestDeltaValidator_ItemWithoutRumourSkipsSchema(t *testing.T) {
	v := newDeltaValidator(t)
	roster := testRoster()

	// Intel-only update: no rumour to schema-check, identity still applies.
	delta := &model.Delta{Items: []model.DeltaItem{
		{PlayerID: 4, PlayerName: "Kwame Opoku", IntelUpdates: map[string]any{"contract": "June 2027"}},
	}}

	out := v.ValidateDelta(delta, roster)
	if len(out.Accepted) != 1 {
		t.Errorf("Expected an intel-only item to pass without a rumour, rejected: %+v", out.Rejected)
	}
}

func TestDeltaValidator_EscalationFiltering(t *testing.T) {
	v := newDeltaValidator(t)
	roster := testRoster()

	delta := &model.Delta{Escalations: []model.Escalation{
		{PlayerID: 1, PlayerName: "Édouard Mendy", Field: "status", OldValue: model.StatusMonitoring, NewValue: model.StatusHot, Source: "Record"},
		{PlayerID: 99, PlayerName: "Nobody", Field: "status", NewValue: model.StatusHot, Source: "Record"},
		{PlayerID: 2, PlayerName: "Mamadou Sarr", Field: "status", NewValue: "legendary", Source: "Record"},
		{PlayerID: 2, PlayerName: "Mamadou Sarr", Field: "club", NewValue: model.StatusHot, Source: "Record"},
	}}

	out := v.ValidateDelta(delta, roster)

	if len(out.Escalations) != 1 || out.Escalations[0].PlayerID != 1 {
		t.Errorf("Expected only the well-formed escalation kept, got %+v", out.Escalations)
	}
	if len(out.Dropped) != 3 {
		t.Fatalf("Expected 3 drop log lines, got %d: %v", len(out.Dropped), out.Dropped)
	}
	for _, line := range out.Dropped {
		if !strings.Contains(line, "dropped escalation") {
			t.Errorf("Expected a drop log line, got %q", line)
		}
	}
	if len(out.NeedsReview) != 0 {
		t.Error("Expected side-channel drops to never reach the review list")
	}
}

func TestDeltaValidator_TierChangeFiltering(t *testing.T) {
	v := newDeltaValidator(t)
	roster := testRoster()

	delta := &model.Delta{TierChanges: []model.TierChange{
		{PlayerID: 4, PlayerName: "Kwame Opoku", OldTier: "C", NewTier: "B", Reason: "consistent starts"},
		{PlayerID: 99, PlayerName: "Nobody", NewTier: "A", Reason: "unknown"},
		{PlayerID: 1, PlayerName: "Édouard Mendy", OldTier: "A", NewTier: "S", Reason: "made up tier"},
	}}

	out := v.ValidateDelta(delta, roster)

	if len(out.TierChanges) != 1 || out.TierChanges[0].NewTier != "B" {
		t.Errorf("Expected only the well-formed tier change kept, got %+v", out.TierChanges)
	}
	if len(out.Dropped) != 2 {
		t.Errorf("Expected 2 drop log lines, got %v", out.Dropped)
	}
}

func TestDeltaValidator_EmptyDelta(t *testing.T) {
	v := newDeltaValidator(t)
	out := v.ValidateDelta(&model.Delta{}, testRoster())

	if len(out.Accepted)+len(out.Rejected)+len(out.Escalations)+len(out.TierChanges)+len(out.Dropped) != 0 {
		t.Errorf("Expected an empty outcome for an empty delta, got %+v", out)
	}
}
