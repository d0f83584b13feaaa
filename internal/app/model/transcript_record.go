package model

import "time"

// TranscriptRecord is the durable unit of truth: one row in the append-only
// transcriptions store. Records are created exactly once per successfully
// transcribed file and never updated or deleted by the pipeline. A crash
// between persist and archive can produce a second record for the same
// filename on the next cycle; readers must tolerate that.
type TranscriptRecord struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
	FullText  string    `json:"full_text"`
	Segments  []Segment `json:"segments"`
}
