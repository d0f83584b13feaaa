package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"audio-notes/internal/app/model"
)

// SQLiteDAO persists transcript records in a local sqlite file.
type SQLiteDAO struct {
	db *sql.DB
}

// NewSQLiteDAO wraps an opened database handle. Tests inject a mock handle
// here; production code gets one from Open.
func NewSQLiteDAO(db *sql.DB) *SQLiteDAO {
	return &SQLiteDAO{db: db}
}

func (d *SQLiteDAO) Close() error {
	return d.db.Close()
}

// Save appends one record. The segments keep their raw text; serialization
// is a single JSON column so the schema never changes when the ASR server
// grows new optional segment fields.
func (d *SQLiteDAO) Save(record *model.TranscriptRecord) (int64, error) {
	segmentsJSON, err := json.Marshal(record.Segments)
	if err != nil {
		return 0, fmt.Errorf("marshal segments: %w", err)
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := d.db.Exec(
		`INSERT INTO transcriptions (filename, created_at, full_text, segments_json) VALUES (?, ?, ?, ?)`,
		record.Filename, createdAt, record.FullText, string(segmentsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert transcription: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit records, newest first.
func (d *SQLiteDAO) Recent(limit int) ([]model.TranscriptRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, filename, created_at, full_text, segments_json
		 FROM transcriptions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// All returns every record, oldest first.
func (d *SQLiteDAO) All() ([]model.TranscriptRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, filename, created_at, full_text, segments_json
		 FROM transcriptions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]model.TranscriptRecord, error) {
	records := make([]model.TranscriptRecord, 0)
	for rows.Next() {
		var (
			r            model.TranscriptRecord
			segmentsJSON string
		)
		if err := rows.Scan(&r.ID, &r.Filename, &r.CreatedAt, &r.FullText, &segmentsJSON); err != nil {
			return nil, fmt.Errorf("scan transcription: %w", err)
		}
		if err := json.Unmarshal([]byte(segmentsJSON), &r.Segments); err != nil {
			// Tolerate rows written by older tooling; the record is still
			// useful for its full text.
			r.Segments = nil
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
