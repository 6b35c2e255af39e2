package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/voicescribe/internal/transcript"
)

// Save writes one JSON document per record. A record whose fingerprint is
// already on disk is skipped, which makes Save idempotent for unchanged
// sources.
func (s *implRecords) Save(record transcript.Record) error {
	existing, err := s.LoadAll()
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.Fingerprint == record.Fingerprint {
			s.logger.Debug(context.Background(), "Record %s already stored as %s, skipping", record.ID, r.ID)
			return nil
		}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create records dir: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %s: %w", record.ID, err)
	}

	path := filepath.Join(s.dir, record.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write record %s: %w", record.ID, err)
	}
	return nil
}

// LoadAll reads every record document under the store directory, oldest
// first. Unreadable or malformed files are skipped with a warning rather
// than failing the whole load.
func (s *implRecords) LoadAll() ([]transcript.Record, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read records dir: %w", err)
	}

	var records []transcript.Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Warn(context.Background(), "Skipping unreadable record %s: %v", entry.Name(), err)
			continue
		}
		var r transcript.Record
		if err := json.Unmarshal(data, &r); err != nil {
			s.logger.Warn(context.Background(), "Skipping malformed record %s: %v", entry.Name(), err)
			continue
		}
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes a record document. Deleting an unknown ID is a no-op.
func (s *implRecords) Delete(id string) error {
	err := os.Remove(filepath.Join(s.dir, id+".json"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
