package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"RangeTrader/internal/model"
)

// Manager persists signal journal entries with concurrency safety.
// It keeps the latest entry in one JSON file for quick inspection and
// appends every entry to a JSON-lines history file.
type Manager struct {
	mu         sync.Mutex
	latest     *model.JournalEntry
	latestPath string
	logPath    string
}

// NewManager creates a Manager, loading the latest entry from disk if present.
func NewManager(latestPath, logPath string) (*Manager, error) {
	latest, err := LoadLatest(latestPath)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return &Manager{latest: latest, latestPath: latestPath, logPath: logPath}, nil
}

// Latest returns a copy of the most recent entry, or nil if none recorded yet.
func (m *Manager) Latest() *model.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == nil {
		return nil
	}
	entry := *m.latest
	return &entry
}

// Record stamps and persists one journal entry.
func (m *Manager) Record(entry *model.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.Timestamp = time.Now()
	if err := SaveLatest(m.latestPath, entry); err != nil {
		return fmt.Errorf("save latest entry: %w", err)
	}
	if err := m.appendLog(entry); err != nil {
		return fmt.Errorf("append journal log: %w", err)
	}
	m.latest = entry
	return nil
}

func (m *Manager) appendLog(entry *model.JournalEntry) error {
	if m.logPath == "" {
		return nil
	}
	f, err := os.OpenFile(m.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
