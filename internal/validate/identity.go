package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/normalize"
	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/registry"
)

// Club names shorter than this are ignored by the cross-contamination scan
// to avoid trivial substring hits.
const minClubMentionLength = 4

// confusionClubRe pulls the club out of a "(b.YYYY, ClubName)" confusion
// annotation. The club named there belongs to the other, similarly-named
// person, so any mention of it in a candidate detail is a red flag.
var confusionClubRe = regexp.MustCompile(`\(b\.\s*(\d{4}),\s*([^)]+)\)`)

// connectorRe extracts short English/French connector phrases such as
// "Everton of Brazil" or "Académie du Sahel" from confusion-risk notes.
var connectorRe = regexp.MustCompile(`[A-Z][\p{L}'’-]*\s+(?:to|of|du|de)\s+[A-Z][\p{L}'’-]*`)

// IdentityValidator confirms a candidate is about the player it claims to
// be about and is not contaminated by a different player's facts.
type IdentityValidator struct {
	norm *normalize.Normalizer
	reg  *registry.Registry
}

func NewIdentityValidator(norm *normalize.Normalizer, reg *registry.Registry) *IdentityValidator {
	if reg == nil {
		reg = registry.Empty()
	}
	return &IdentityValidator{norm: norm, reg: reg}
}

// Validate resolves the claimed player and runs every identity check. An
// unknown player id short-circuits; otherwise checks are additive.
func (v *IdentityValidator) Validate(item model.DeltaItem, roster *model.Roster) model.ValidationResult {
	player := roster.FindPlayer(item.PlayerID)
	if player == nil {
		return model.NewValidationResult([]string{
			fmt.Sprintf("player %d not found in roster", item.PlayerID),
		})
	}

	var errs []string
	errs = append(errs, v.checkName(item.PlayerName, player)...)

	if item.Rumour != nil && item.Rumour.Detail != "" {
		detail := item.Rumour.Detail
		errs = append(errs, v.checkCrossContamination(detail, player, roster)...)
		errs = append(errs, v.checkAcademyPipelines(detail, player)...)
		errs = append(errs, v.checkConfusionRisk(detail, player)...)
	}

	return model.NewValidationResult(errs)
}

// checkName accepts the claimed name when its normalized form matches the
// canonical name or any known alternate spelling.
func (v *IdentityValidator) checkName(claimed string, player *model.Player) []string {
	normalized := v.norm.Name(claimed)
	if normalized == v.norm.Name(player.Name) {
		return nil
	}
	for _, alt := range player.AltSpellings {
		if normalized == v.norm.Name(alt) {
			return nil
		}
	}
	return []string{fmt.Sprintf("claimed name %q does not match %s or any known spelling", claimed, player.Name)}
}

// checkCrossContamination scans the detail for the current club of any
// other rostered player. A hit on a club that differs from the claimed
// player's own suggests the upstream conflated two people's facts. Clubs
// joined to the player's own by a known academy pipeline are exempt:
// graduate narratives legitimately name both ends of the pipeline.
func (v *IdentityValidator) checkCrossContamination(detail string, player *model.Player, roster *model.Roster) []string {
	var errs []string
	detailLower := strings.ToLower(detail)
	ownClub := v.norm.Club(player.Club)

	for i := range roster.Players {
		other := &roster.Players[i]
		if other.ID == player.ID {
			continue
		}
		club := strings.TrimSpace(other.Club)
		if utf8.RuneCountInString(club) < minClubMentionLength {
			continue
		}
		otherClub := v.norm.Club(club)
		if otherClub == ownClub || v.pipelinePartners(otherClub, ownClub) {
			continue
		}
		if strings.Contains(detailLower, strings.ToLower(club)) {
			errs = append(errs, fmt.Sprintf("detail mentions %q, the club of %s (id %d), possible cross-player mix-up",
				club, other.Name, other.ID))
		}
	}
	return errs
}

// pipelinePartners reports whether two normalized club names form a known
// academy-to-destination pair, in either direction.
func (v *IdentityValidator) pipelinePartners(a, b string) bool {
	for _, p := range v.reg.Pipelines() {
		academy := v.norm.Club(p.Academy)
		destination := v.norm.Club(p.Destination)
		if (a == academy && b == destination) || (a == destination && b == academy) {
			return true
		}
	}
	return false
}

// checkAcademyPipelines flags details that attach a known academy's
// pipeline narrative to a player who belongs to neither the academy nor
// its destination club.
func (v *IdentityValidator) checkAcademyPipelines(detail string, player *model.Player) []string {
	var errs []string
	detailLower := strings.ToLower(detail)
	ownClub := v.norm.Club(player.Club)

	for _, p := range v.reg.Pipelines() {
		if !strings.Contains(detailLower, strings.ToLower(p.Academy)) {
			continue
		}
		if ownClub == v.norm.Club(p.Academy) || ownClub == v.norm.Club(p.Destination) {
			continue
		}
		errs = append(errs, fmt.Sprintf("detail mentions academy %q (pipeline to %s) but %s plays for %s",
			p.Academy, p.Destination, player.Name, player.Club))
	}
	return errs
}

// checkConfusionRisk uses the player's confusion-risk note, which names a
// distinct same-named person, to catch details that are really about that
// other person.
func (v *IdentityValidator) checkConfusionRisk(detail string, player *model.Player) []string {
	if player.ConfusionRisk == "" {
		return nil
	}

	var errs []string
	detailLower := strings.ToLower(detail)

	if m := confusionClubRe.FindStringSubmatch(player.ConfusionRisk); m != nil {
		club := strings.TrimSpace(m[2])
		if club != "" && strings.Contains(detailLower, strings.ToLower(club)) {
			errs = append(errs, fmt.Sprintf("detail mentions %q, the club of the similarly named person in the confusion note (%s)",
				club, player.ConfusionRisk))
		}
	}

	ownClubLower := strings.ToLower(player.Club)
	for _, phrase := range connectorRe.FindAllString(player.ConfusionRisk, -1) {
		if !strings.Contains(detailLower, strings.ToLower(phrase)) {
			continue
		}
		if strings.Contains(ownClubLower, strings.ToLower(phrase)) {
			continue
		}
		errs = append(errs, fmt.Sprintf("detail repeats %q from the confusion note", phrase))
	}
	return errs
}
