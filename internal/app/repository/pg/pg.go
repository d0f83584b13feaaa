package pg

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"audio-notes/internal/app/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
    id BIGSERIAL PRIMARY KEY,
    filename TEXT NOT NULL,
    created_at TIMESTAMPTZ DEFAULT now(),
    full_text TEXT,
    segments_json TEXT
);`

// PostgresDAO is the Postgres-backed transcript store, for deployments
// where the dashboard and pipeline run on different hosts.
type PostgresDAO struct {
	db *sql.DB
}

// Open connects to Postgres with the given DSN and ensures the schema.
func Open(dsn string) (*PostgresDAO, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create transcriptions table: %w", err)
	}
	return &PostgresDAO{db: db}, nil
}

// NewPostgresDAO wraps an existing handle, for tests.
func NewPostgresDAO(db *sql.DB) *PostgresDAO {
	return &PostgresDAO{db: db}
}

func (d *PostgresDAO) Close() error {
	return d.db.Close()
}

func (d *PostgresDAO) Save(record *model.TranscriptRecord) (int64, error) {
	segmentsJSON, err := json.Marshal(record.Segments)
	if err != nil {
		return 0, fmt.Errorf("marshal segments: %w", err)
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var id int64
	err = d.db.QueryRow(
		`INSERT INTO transcriptions (filename, created_at, full_text, segments_json)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		record.Filename, createdAt, record.FullText, string(segmentsJSON),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transcription: %w", err)
	}
	return id, nil
}

func (d *PostgresDAO) Recent(limit int) ([]model.TranscriptRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, filename, created_at, full_text, segments_json
		 FROM transcriptions ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// All returns every record, oldest first.
func (d *PostgresDAO) All() ([]model.TranscriptRecord, error) {
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
			r.Segments = nil
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
