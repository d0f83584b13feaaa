package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"audio-notes/internal/app/model"
)

// SidecarWriter writes the human-readable companion transcript, one .txt
// per source recording, named after the source's base name. Sidecars are a
// convenience artifact: their failure is logged by the caller but never
// blocks persistence or archival.
type SidecarWriter struct {
	dir string
}

// NewSidecarWriter creates a writer targeting dir.
func NewSidecarWriter(dir string) *SidecarWriter {
	return &SidecarWriter{dir: dir}
}

// Write renders the transcript grouped by speaker turns with formatted
// timestamps and writes it next to the other sidecars. Returns the written
// path.
func (w *SidecarWriter) Write(sourceName string, fullText string, segments []model.Segment) (string, error) {
	base := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	path := filepath.Join(w.dir, base+".txt")

	var b strings.Builder
	b.WriteString("=== Summary ===\n")
	b.WriteString(fullText)
	b.WriteString("\n")

	b.WriteString("\n=== Dialogue (by speaker) ===\n")
	for _, seg := range segments {
		fmt.Fprintf(&b, "\n[%s] [Speaker %d]: %s\n",
			FormatTimestamp(seg.StartMs), seg.SpeakerID, strings.TrimSpace(seg.Text))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write sidecar %s: %w", path, err)
	}
	return path, nil
}

// FormatTimestamp renders milliseconds as HH:MM:SS.
func FormatTimestamp(ms int64) string {
	secs := ms / 1000
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
