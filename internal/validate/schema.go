// Package validate decides, record by record, whether candidate intel is
// well-formed, about the player it claims to be about, and not a
// restatement of something already recorded.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

const (
	maxClubLength = 60
	// The research prompt asks for details under 80 characters as a style
	// guideline; 100 is the enforced structural ceiling.
	maxDetailLength = 100
)

// dateRe is the enforced date grammar: optional "Mid-" prefix, three-letter
// month, 1-2 digit day, comma, four-digit year ("Feb 8, 2026"). Vague forms
// like "Mid-Jan 2026" fail it even though the research style guide presents
// them as acceptable; the enforced grammar is the contract.
var dateRe = regexp.MustCompile(`^(Mid-)?(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{1,2}, \d{4}$`)

// SchemaValidator checks the structure of a single candidate rumour.
type SchemaValidator struct{}

func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// Validate collects every field violation; it never short-circuits, so a
// candidate missing three fields reports all three.
func (v *SchemaValidator) Validate(c model.RumourCandidate) model.ValidationResult {
	var errs []string

	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	} else if !dateRe.MatchString(c.Date) {
		errs = append(errs, fmt.Sprintf("date %q is not in the expected form (e.g. \"Feb 8, 2026\")", c.Date))
	}

	if c.Club == "" {
		errs = append(errs, "club is required")
	} else if utf8.RuneCountInString(c.Club) > maxClubLength {
		errs = append(errs, fmt.Sprintf("club name exceeds %d characters", maxClubLength))
	}

	if c.Detail == "" {
		errs = append(errs, "detail is required")
	} else if n := utf8.RuneCountInString(c.Detail); n > maxDetailLength {
		errs = append(errs, fmt.Sprintf("detail exceeds %d characters (%d)", maxDetailLength, n))
	}

	if c.Source == "" {
		errs = append(errs, "source is required")
	}

	if c.Tier == nil {
		errs = append(errs, "tier is required")
	} else if *c.Tier < 1 || *c.Tier > 4 {
		errs = append(errs, fmt.Sprintf("tier must be 1-4, got %d", *c.Tier))
	}

	if c.Status == "" {
		errs = append(errs, "status is required")
	}

	if c.Recent == nil {
		errs = append(errs, "recent flag is required")
	}

	return model.NewValidationResult(errs)
}
