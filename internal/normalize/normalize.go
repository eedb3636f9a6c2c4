// Package normalize canonicalizes player and club names so that fuzzy
// comparisons in validation and dedupe work on a stable form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/registry"
)

// stripMarks decomposes to NFD, drops combining marks, recomposes.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name canonicalizes a player name for comparison: diacritics stripped,
// lowercased, surrounding space trimmed. Idempotent.
func Name(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Normalizer canonicalizes club names against the loaded alias registry.
type Normalizer struct {
	reg *registry.Registry
}

// New builds a normalizer over the given registry. A nil registry behaves
// like an empty one.
func New(reg *registry.Registry) *Normalizer {
	if reg == nil {
		reg = registry.Empty()
	}
	return &Normalizer{reg: reg}
}

// Name canonicalizes a player name. Registry-independent; kept as a method
// so validators hold a single normalizer.
func (n *Normalizer) Name(s string) string { return Name(s) }

// Club canonicalizes a club name. A registry hit (canonical name or alias,
// case-insensitive) wins and returns the canonical name lowercased.
// Otherwise a leading or trailing "fc"/"ac" token is stripped and the rest
// lowercased, so "FC Nantes" and "Nantes" compare equal.
func (n *Normalizer) Club(s string) string {
	if canonical, ok := n.reg.Canonical(s); ok {
		return strings.ToLower(canonical)
	}
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) > 1 && isClubPrefix(fields[0]) {
		fields = fields[1:]
	}
	if len(fields) > 1 && isClubPrefix(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func isClubPrefix(tok string) bool {
	return tok == "fc" || tok == "ac"
}
