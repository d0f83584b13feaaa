package model

import "time"

// SourceRecording is an audio file observed in the watched directory.
// It is created externally by the recording device; the pipeline never
// renames or duplicates it except when archiving it into the processed
// directory.
type SourceRecording struct {
	Name     string
	FullPath string
	ModTime  time.Time
}
