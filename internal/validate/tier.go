package validate

import (
	"fmt"
	"strings"
)

// Keyword sets for tier plausibility, matched case-insensitively against
// the source field. Advisory only; a warning never blocks acceptance.
var (
	reliableMarkers = []string{
		"official",
		"club statement",
		"club website",
		"press release",
		"federation",
	}

	strongOutlets = []string{
		"fabrizio romano",
		"l'équipe",
		"l'equipe",
		"the athletic",
		"rmc sport",
		"record",
		"a bola",
		"sky sports",
		"foot mercato",
		"afrik-foot",
	}

	speculativeMarkers = []string{
		"forum",
		"reddit",
		"twitter",
		"x.com",
		"tiktok",
		"fan account",
		"blog",
		"gossip",
		"rumour mill",
		"unverified",
	}
)

// TierConsistencyChecker cross-checks a rumour's source text against its
// claimed reliability tier.
type TierConsistencyChecker struct{}

func NewTierConsistencyChecker() *TierConsistencyChecker {
	return &TierConsistencyChecker{}
}

// Check returns advisory warnings when the source text and the claimed
// tier point in opposite directions.
func (c *TierConsistencyChecker) Check(source string, tier int) []string {
	var warnings []string
	lower := strings.ToLower(source)

	if matchesAny(lower, reliableMarkers) && tier >= 3 {
		warnings = append(warnings, fmt.Sprintf("source %q sounds official but is labelled tier %d", source, tier))
	}
	if matchesAny(lower, speculativeMarkers) && tier == 1 {
		warnings = append(warnings, fmt.Sprintf("speculative-sounding source %q is labelled tier 1", source))
	}
	if matchesAny(lower, strongOutlets) && tier == 4 {
		warnings = append(warnings, fmt.Sprintf("recognised outlet %q is labelled tier 4", source))
	}
	return warnings
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
