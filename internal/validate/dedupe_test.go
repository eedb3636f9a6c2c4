package validate

import (
	"math"
	"testing"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/normalize"
)

func newDetector(t *testing.T) *DuplicateDetector {
	t.Helper()
	return NewDuplicateDetector(normalize.New(testRegistry(t)))
}

func rumour(date, club, detail string) model.Rumour {
	return model.Rumour{Date: date, Club: club, Detail: detail, Source: "Record", Tier: 2, Status: "talks"}
}

func TestDuplicateDetector_ExactTripleMatch(t *testing.T) {
	d := newDetector(t)
	history := model.RumourLog{rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move")}

	if !d.IsDuplicate(rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move"), history) {
		t.Error("Expected an exact date/club/detail match to be a duplicate")
	}
}

func TestDuplicateDetector_DifferentDateNeverDuplicate(t *testing.T) {
	d := newDetector(t)
	history := model.RumourLog{rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move")}

	if d.IsDuplicate(rumour("Feb 9, 2026", "Sporting CP", "Medical scheduled for loan move"), history) {
		t.Error("Expected a different date to never be a paraphrase duplicate")
	}
}

func TestDuplicateDetector_DifferentClubNotDuplicate(t *testing.T) {
	d := newDetector(t)
	history := model.RumourLog{rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move")}

	if d.IsDuplicate(rumour("Feb 8, 2026", "Metz", "Medical scheduled for loan move again"), history) {
		t.Error("Expected differing clubs to block the paraphrase rule")
	}
}

func TestDuplicateDetector_OverlapBoundary(t *testing.T) {
	d := newDetector(t)
	// Existing significant words: medical, scheduled, for, loan, move (5).
	history := model.RumourLog{rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move")}

	tests := []struct {
		detail    string
		duplicate bool
		desc      string
	}{
		{
			// Shares medical, scheduled, loan: 3 of max(5,5) = 0.6 exactly.
			detail:    "Medical scheduled ahead of loan switch",
			duplicate: false,
			desc:      "Ratio exactly 0.6 is not a duplicate",
		},
		{
			// Shares medical, scheduled, for, loan: 4 of 5 = 0.8.
			detail:    "Medical scheduled for loan switch",
			duplicate: true,
			desc:      "Ratio above the threshold is a duplicate",
		},
		{
			detail:    "Contract extension talks with agent stalled",
			duplicate: false,
			desc:      "Unrelated wording on the same day is new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := d.IsDuplicate(rumour("Feb 8, 2026", "Sporting CP", tt.detail), history)
			if got != tt.duplicate {
				t.Errorf("Expected duplicate=%v for %q (ratio %.3f)",
					tt.duplicate, tt.detail, d.OverlapRatio("Medical scheduled for loan move", tt.detail))
			}
		})
	}
}

func TestDuplicateDetector_AliasedClubsCompareEqual(t *testing.T) {
	d := newDetector(t)
	history := model.RumourLog{rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move")}

	// "Sporting" aliases to "Sporting CP"; overlap 4 of 5 = 0.8.
	if !d.IsDuplicate(rumour("Feb 8, 2026", "Sporting", "Medical scheduled for loan switch"), history) {
		t.Error("Expected aliased club spellings to compare equal for dedupe")
	}
}

func TestDuplicateDetector_AliasedExactTokensBoundary(t *testing.T) {
	d := newDetector(t)
	history := model.RumourLog{rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move")}

	// Aliased club, overlap exactly 0.6: strictly-greater rule keeps it new.
	if d.IsDuplicate(rumour("Feb 8, 2026", "Sporting", "Medical scheduled ahead of loan switch"), history) {
		t.Error("Expected the 0.6 boundary to hold under aliased clubs too")
	}
}

func TestDuplicateDetector_ScansFullHistory(t *testing.T) {
	d := newDetector(t)
	history := model.RumourLog{
		rumour("Mar 1, 2026", "Metz", "Offer rejected by the board"),
		rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan move"),
		rumour("Jan 3, 2026", "Lens", "First approach made through intermediaries"),
	}

	if !d.IsDuplicate(rumour("Feb 8, 2026", "Sporting CP", "Medical scheduled for loan switch"), history) {
		t.Error("Expected dedupe to match against any record in the history, not just the newest")
	}
}

func TestOverlapRatio(t *testing.T) {
	d := newDetector(t)

	tests := []struct {
		a, b     string
		expected float64
		desc     string
	}{
		{a: "Medical scheduled for loan move", b: "Medical scheduled ahead of loan switch", expected: 0.6, desc: "Three of five"},
		{a: "Medical scheduled for loan move", b: "Medical scheduled for loan move", expected: 1.0, desc: "Identical"},
		{a: "", b: "Medical scheduled", expected: 0, desc: "Empty side"},
		{a: "", b: "", expected: 0, desc: "Both empty"},
		{a: "on it we go", b: "on we to be", expected: 0, desc: "Only short words"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := d.OverlapRatio(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected ratio %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestOverlapRatio_ShortWordsExcluded(t *testing.T) {
	d := newDetector(t)
	// "of", "to", "in" drop out; remaining sets share nothing.
	if got := d.OverlapRatio("of to in keeper", "of to in defender"); got != 0 {
		t.Errorf("Expected short words to be excluded from the sets, got ratio %v", got)
	}
}
