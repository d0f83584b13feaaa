package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Segment is one time-bounded span of transcript text attributed to a
// speaker. Times are milliseconds from the start of the recording, matching
// the ASR server's wire format. SpeakerID and Emotion are optional; the
// server omits them when diarization or emotion tagging is disabled.
type Segment struct {
	StartMs   int64  `json:"start"`
	EndMs     int64  `json:"end"`
	Text      string `json:"text"`
	SpeakerID int    `json:"spk"`
	Emotion   string `json:"emotion,omitempty"`
}

// Validate checks the Segment invariants at the response boundary.
func (s *Segment) Validate() error {
	if s.StartMs < 0 {
		return fmt.Errorf("start must not be negative, got %d", s.StartMs)
	}
	if s.EndMs < s.StartMs {
		return fmt.Errorf("end %d before start %d", s.EndMs, s.StartMs)
	}
	return nil
}

// Inline control tokens emitted by the ASR engine, e.g. <|zh|>, <|HAPPY|>,
// or bare <sil> style markers. They carry no display text.
var controlTokenRe = regexp.MustCompile(`<\|[^|>]*\|>|<[^<>]*>`)

// CleanText strips inline control tokens and surrounding whitespace.
// The raw text is what gets persisted; the cleansed form is only used to
// decide whether a segment has any displayable content.
func CleanText(text string) string {
	return strings.TrimSpace(controlTokenRe.ReplaceAllString(text, ""))
}

// IsBlank reports whether the segment has no displayable text.
func (s *Segment) IsBlank() bool {
	return CleanText(s.Text) == ""
}

// TranscriptionResult is the in-memory ASR response for one recording:
// the full text plus the ordered segments. It is discarded when the remote
// call fails; only a persisted TranscriptRecord survives the attempt.
type TranscriptionResult struct {
	FullText string    `json:"full_text"`
	Segments []Segment `json:"segments"`
}
