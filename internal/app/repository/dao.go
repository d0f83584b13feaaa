package repository

import "audio-notes/internal/app/model"

// TranscriptionDAO is the append-only transcript store. Save is the only
// write path the pipeline has: there is no update or delete. Implementations
// exist for sqlite (default, single file next to the recordings) and
// Postgres.
type TranscriptionDAO interface {
	// Save appends one record and returns its assigned id.
	Save(record *model.TranscriptRecord) (int64, error)
	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]model.TranscriptRecord, error)
	// All returns every record, oldest first, for exports.
	All() ([]model.TranscriptRecord, error)
	Close() error
}
