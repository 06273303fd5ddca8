package journal

import (
	"encoding/json"
	"os"

	"RangeTrader/internal/model"
)

// LoadLatest reads the most recent journal entry from a JSON file.
// Returns nil (no error) if the file doesn't exist yet.
func LoadLatest(filePath string) (*model.JournalEntry, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entry model.JournalEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveLatest writes the journal entry to a JSON file.
func SaveLatest(filePath string, entry *model.JournalEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
