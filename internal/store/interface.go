package store

import "github.com/nguyentantai21042004/voicescribe/internal/transcript"

// Records persists finished transcription records, one self-describing
// JSON document per record.
type Records interface {
	// Save writes the record to disk. Saving a record whose fingerprint is
	// already stored is a no-op, so re-transcribing an unchanged source
	// never produces duplicates.
	Save(record transcript.Record) error

	// LoadAll returns every stored record, oldest first.
	LoadAll() ([]transcript.Record, error)

	// Delete removes a stored record by ID. Unknown IDs are a no-op.
	Delete(id string) error
}

// Credentials stores per-service secrets such as cloud API keys.
type Credentials interface {
	// Get returns the stored secret, or "" when none is set.
	Get(service, account string) (string, error)

	// Set stores a secret. An empty secret deletes the entry.
	Set(service, account, secret string) error
}
