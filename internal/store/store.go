// Package store reads and writes the durable JSON stores and run
// artifacts. Every overwrite of a durable store is preceded by a
// timestamped snapshot of the pre-mutation state.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/michaelmakaab/africa-youth-transfer-tracker/internal/model"
)

// StampLayout names backup and report artifacts: 20260208_153045.
const StampLayout = "20060102_150405"

// Stamp formats t for artifact names.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// RosterStore persists the player roster.
type RosterStore struct {
	path      string
	backupDir string
}

func NewRosterStore(path, backupDir string) *RosterStore {
	return &RosterStore{path: path, backupDir: backupDir}
}

func (s *RosterStore) Path() string { return s.path }

// Load reads the roster. A missing or unreadable roster is an error: the
// roster is seeded out-of-band and a sweep must not run without it.
func (s *RosterStore) Load() (*model.Roster, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", s.path, err)
	}
	var roster model.Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", s.path, err)
	}
	return &roster, nil
}

// Save snapshots the current file to the backup dir, then overwrites the
// store. The two steps are sequential; there is no cross-store transaction.
func (s *RosterStore) Save(roster *model.Roster, stamp string) error {
	if _, err := backupBeforeWrite(s.path, s.backupDir, stamp); err != nil {
		return err
	}
	return writeJSON(s.path, roster)
}

// IntelStore persists the per-player intel table.
type IntelStore struct {
	path      string
	backupDir string
}

func NewIntelStore(path, backupDir string) *IntelStore {
	return &IntelStore{path: path, backupDir: backupDir}
}

func (s *IntelStore) Path() string { return s.path }

// Load reads the intel table. A missing file degrades to an empty table:
// entries are created lazily on first update.
func (s *IntelStore) Load() (model.IntelTable, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.IntelTable{}, nil
		}
		return nil, fmt.Errorf("read intel %s: %w", s.path, err)
	}
	var table model.IntelTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse intel %s: %w", s.path, err)
	}
	if table == nil {
		table = model.IntelTable{}
	}
	return table, nil
}

// Save snapshots then overwrites, same contract as the roster store.
func (s *IntelStore) Save(table model.IntelTable, stamp string) error {
	if _, err := backupBeforeWrite(s.path, s.backupDir, stamp); err != nil {
		return err
	}
	return writeJSON(s.path, table)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
