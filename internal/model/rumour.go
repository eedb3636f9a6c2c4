package model

// Rumour is one stored transfer-rumour record. Immutable once it enters a
// player's log except by full replacement of the store.
type Rumour struct {
	Date   string `json:"date"`   // Textual date, e.g. "Feb 8, 2026"
	Club   string `json:"club"`   // Club the rumour links the player to
	Detail string `json:"detail"` // Bounded free text describing the claim
	Source string `json:"source"` // Outlet or account the claim came from
	Tier   int    `json:"tier"`   // Source reliability 1-4, 1 = most reliable
	Status string `json:"status"` // Free-text stage label ("talks", "medical")
	Recent bool   `json:"recent"` // Whether the source dates it within the sweep window
}

// RumourCandidate is the unvalidated wire form of a rumour as produced
// upstream. Tier and Recent are pointers so a missing field is
// distinguishable from a zero value during schema validation.
type RumourCandidate struct {
	Date   string `json:"date"`
	Club   string `json:"club"`
	Detail string `json:"detail"`
	Source string `json:"source"`
	Tier   *int   `json:"tier"`
	Status string `json:"status"`
	Recent *bool  `json:"recent"`
}

// Rumour materializes the candidate into a storable record. Only call after
// schema validation has confirmed Tier and Recent are present.
func (c RumourCandidate) Rumour() Rumour {
	r := Rumour{
		Date:   c.Date,
		Club:   c.Club,
		Detail: c.Detail,
		Source: c.Source,
		Status: c.Status,
	}
	if c.Tier != nil {
		r.Tier = *c.Tier
	}
	if c.Recent != nil {
		r.Recent = *c.Recent
	}
	return r
}
