package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

// ReviewEntry is one rejected candidate in the needs-review artifact,
// tagged with the run that produced it.
type ReviewEntry struct {
	RunID string `json:"runId"`
	Stamp string `json:"stamp"`
	model.ReviewItem
}

// ReviewStore accumulates rejected candidates across runs for manual
// follow-up. The artifact only ever grows; entries are cleared by hand.
type ReviewStore struct {
	path string
}

func NewReviewStore(path string) *ReviewStore {
	return &ReviewStore{path: path}
}

func (s *ReviewStore) Path() string { return s.path }

// Load reads the artifact; a missing file is an empty list.
func (s *ReviewStore) Load() ([]ReviewEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read review list %s: %w", s.path, err)
	}
	var entries []ReviewEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse review list %s: %w", s.path, err)
	}
	return entries, nil
}

// Append adds this run's rejections to the artifact. A no-op when items
// is empty.
func (s *ReviewStore) Append(runID, stamp string, items []model.ReviewItem) error {
	if len(items) == 0 {
		return nil
	}
	entries, err := s.Load()
	if err != nil {
		return err
	}
	for _, item := range items {
		entries = append(entries, ReviewEntry{RunID: runID, Stamp: stamp, ReviewItem: item})
	}
	return writeJSON(s.path, entries)
}
