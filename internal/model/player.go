package model

// Player is one tracked prospect in the roster store.
// Records are seeded out-of-band; sweeps only ever append rumour history or
// flip the status / sweep-tier fields through validated side-channels.
type Player struct {
	ID            int       `json:"id"`                      // Unique, stable, never reused
	Name          string    `json:"name"`                    // Canonical name
	AltSpellings  []string  `json:"altSpellings,omitempty"`  // Alternate spellings seen in the wild
	Country       string    `json:"country,omitempty"`       // ISO-ish country label ("Senegal")
	Position      string    `json:"position,omitempty"`      // Playing position ("CM", "Winger")
	BirthYear     int       `json:"birthYear,omitempty"`     // Year of birth
	Club          string    `json:"club"`                    // Current club
	SweepTier     string    `json:"sweepTier"`               // Search priority: A, B or C
	Status        string    `json:"status"`                  // Tracking status (see ValidPlayerStatus)
	ConfusionRisk string    `json:"confusionRisk,omitempty"` // Note naming a similarly-named other person
	Rumours       RumourLog `json:"rumors"`                  // History, newest first
}

// RumourLog is a player's recorded rumour history. Index 0 is the most
// recent record; order is meaningful and maintained only via Prepend.
type RumourLog []Rumour

// Prepend inserts r at the front of the log, keeping newest-first order.
func (l *RumourLog) Prepend(r Rumour) {
	*l = append(RumourLog{r}, *l...)
}

// Metadata tracks per-store run bookkeeping.
type Metadata struct {
	LastSweep  string `json:"lastSweep,omitempty"` // RFC 3339 timestamp of the last completed sweep
	SweepCount int    `json:"sweepCount"`          // Completed sweeps, drives B/C tier scheduling
}

// Roster is the durable player store plus its run metadata.
type Roster struct {
	Metadata Metadata `json:"metadata"`
	Players  []Player `json:"players"`
}

// FindPlayer returns the player with the given id, or nil. The pointer
// aliases the roster's backing array so mutations stick.
func (r *Roster) FindPlayer(id int) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}
