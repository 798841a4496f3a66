// Package state persists build history as a JSON file under the project's
// build directory, mirroring the tool's other on-disk artifacts: small,
// human-readable, no database required.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"git.home.luguber.info/inful/ktbuild/internal/compile"
)

// maxEntries bounds how many build reports are retained.
const maxEntries = 50

// HistoryStore records build reports in a JSON file.
type HistoryStore struct {
	path string
	mu   sync.Mutex
}

// NewHistoryStore creates a store writing to <dataDir>/history.json.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &HistoryStore{path: filepath.Join(dataDir, "history.json")}, nil
}

// Append adds a report, trimming the oldest entries beyond the retention cap.
func (s *HistoryStore) Append(report *compile.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = append(entries, *report)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	return s.save(entries)
}

// List returns all retained reports, oldest first.
func (s *HistoryStore) List() ([]compile.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *HistoryStore) load() ([]compile.Report, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	var entries []compile.Report
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return entries, nil
}

func (s *HistoryStore) save(entries []compile.Report) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return os.Rename(tmp, s.path)
}
