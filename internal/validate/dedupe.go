package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/normalize"
)

// A candidate restates an existing record when its significant-word overlap
// exceeds this ratio. Exactly the threshold is not a duplicate.
const duplicateOverlapThreshold = 0.6

// DuplicateDetector decides whether a candidate rumour restates a player's
// recorded history.
type DuplicateDetector struct {
	norm *normalize.Normalizer
}

func NewDuplicateDetector(norm *normalize.Normalizer) *DuplicateDetector {
	return &DuplicateDetector{norm: norm}
}

// IsDuplicate reports whether candidate matches any record in history,
// either exactly (date, club, detail) or as a paraphrase: same date,
// aliased-equal club, and token overlap strictly above the threshold.
func (d *DuplicateDetector) IsDuplicate(candidate model.Rumour, history model.RumourLog) bool {
	for _, existing := range history {
		if existing.Date == candidate.Date && existing.Club == candidate.Club && existing.Detail == candidate.Detail {
			return true
		}
		if existing.Date != candidate.Date {
			continue
		}
		if d.norm.Club(existing.Club) != d.norm.Club(candidate.Club) {
			continue
		}
		if d.OverlapRatio(existing.Detail, candidate.Detail) > duplicateOverlapThreshold {
			return true
		}
	}
	return false
}

// OverlapRatio is the share of significant words (lowercase, longer than
// two characters, split on whitespace) the two details have in common,
// measured against the larger word set. 0 when either set is empty.
func (d *DuplicateDetector) OverlapRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	if larger == 0 {
		return 0
	}

	common := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common++
		}
	}
	return float64(common) / float64(larger)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if utf8.RuneCountInString(tok) > 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}
