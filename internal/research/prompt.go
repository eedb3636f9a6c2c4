// Package research turns a batch of roster players into a candidate delta:
// it builds the producer prompt, optionally enriches it with outlet-page
// snippets, runs the completion with a rate-limit retry schedule and parses
// the JSON payload out of whatever text comes back.
package research

import (
	"fmt"
	"strings"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

// systemPrompt frames the producer role. The output contract in the user
// prompt does the heavy lifting.
const systemPrompt = "You are a football transfer researcher tracking young African players across " +
	"European and African leagues. You respond with a single JSON object and nothing else."

// styleGuide is sent to the producer verbatim. Two of its lines are looser
// than what validation later enforces: dates like "Mid-Jan 2026" fail the
// enforced date grammar, and details are only rejected above 100 characters.
// The guide is advisory; the validators are the contract.
const styleGuide = `Style guide for rumor fields:
- date: "Feb 8, 2026" or "Mid-Jan 2026" style
- club: official club name, max 60 characters
- detail: one short factual sentence, max 80 characters
- source: outlet or account name, e.g. "Foot Mercato", "Record"
- tier: 1 = official club statement, 2 = strong outlet, 3 = aggregator, 4 = speculative
- status: short stage label, e.g. "talks", "medical", "agreed"
- recent: true only if the source dates the claim inside the current window`

const outputContract = `Respond with exactly one JSON object, no code fences, shaped like:
{
  "items": [
    {
      "playerId": 3,
      "playerName": "Souleymane Faye",
      "rumor": {"date": "Feb 8, 2026", "club": "Sporting CP", "detail": "Medical scheduled for loan move", "source": "Record", "tier": 2, "status": "medical", "recent": true},
      "intelUpdates": {"marketValue": "rising"},
      "reasoning": "Two strong outlets corroborate the medical."
    }
  ],
  "escalations": [
    {"playerId": 3, "playerName": "Souleymane Faye", "field": "status", "oldValue": "monitoring", "newValue": "hot", "source": "Record"}
  ],
  "tierChanges": [
    {"playerId": 3, "playerName": "Souleymane Faye", "oldTier": "B", "newTier": "A", "reason": "Window interest accelerating"}
  ]
}
Escalation newValue must be one of: monitoring, rising, hot, pending, transferred, cold.
Tier changes move between sweep tiers A, B and C only.
Omit "rumor" or "intelUpdates" when a player has nothing new; use an empty "items"
array when nothing changed at all. Only report players from the list above, by exact id.`

// BuildPrompt assembles the user prompt for one research batch: player
// briefs, optional outlet snippets to use as leads, then the style guide
// and the output contract.
func BuildPrompt(players []model.Player, context []SourceSnippets) string {
	var b strings.Builder

	b.WriteString("Research the latest transfer developments for each player below.\n\nPlayers:\n")
	for _, player := range players {
		writeBrief(&b, player)
	}

	if len(context) > 0 {
		b.WriteString("\nRecent outlet snippets (leads only; attribute claims to the outlet, not to us):\n")
		for _, src := range context {
			fmt.Fprintf(&b, "From %s:\n", src.URL)
			for _, snippet := range src.Snippets {
				fmt.Fprintf(&b, "- %s\n", snippet.Text)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styleGuide)
	b.WriteString("\n\n")
	b.WriteString(outputContract)
	b.WriteString("\n")

	return b.String()
}

// writeBrief renders one player's roster state into prompt lines. The
// confusion note goes in verbatim so the producer knows who NOT to report.
func writeBrief(b *strings.Builder, player model.Player) {
	fmt.Fprintf(b, "- id %d: %s (%s", player.ID, player.Name, player.Club)
	if player.Country != "" {
		fmt.Fprintf(b, ", %s", player.Country)
	}
	if player.BirthYear != 0 {
		fmt.Fprintf(b, ", b.%d", player.BirthYear)
	}
	if player.Position != "" {
		fmt.Fprintf(b, ", %s", player.Position)
	}
	fmt.Fprintf(b, ") - status %s\n", player.Status)

	if len(player.AltSpellings) > 0 {
		fmt.Fprintf(b, "  also spelled: %s\n", strings.Join(player.AltSpellings, ", "))
	}
	if latest := latestRumour(player); latest != nil {
		fmt.Fprintf(b, "  last recorded: %s - %s (%s)\n", latest.Date, latest.Club, latest.Status)
	}
	if player.ConfusionRisk != "" {
		fmt.Fprintf(b, "  caution, distinct person: %s\n", player.ConfusionRisk)
	}
}

func latestRumour(player model.Player) *model.Rumour {
	if len(player.Rumours) == 0 {
		return nil
	}
	return &player.Rumours[0]
}
