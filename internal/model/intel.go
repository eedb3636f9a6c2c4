package model

import (
	"reflect"
	"strconv"
)

// IntelFields is a player's free-form supplementary attribute map
// (contract end, previous club, season stats and similar).
type IntelFields map[string]any

// IntelTable is the intel store's in-memory form: decimal player id keyed
// to that player's fields. Entries are created lazily on first update.
type IntelTable map[string]IntelFields

// Merge shallow-merges updates into the player's entry, creating it if
// absent. Returns true when any field was added or actually changed value,
// so re-applying the same update reports no change.
func (t IntelTable) Merge(playerID int, updates map[string]any) bool {
	if len(updates) == 0 {
		return false
	}
	key := strconv.Itoa(playerID)
	entry, ok := t[key]
	if !ok {
		entry = IntelFields{}
		t[key] = entry
	}
	changed := false
	for k, v := range updates {
		if old, exists := entry[k]; exists && reflect.DeepEqual(old, v) {
			continue
		}
		entry[k] = v
		changed = true
	}
	return changed
}
