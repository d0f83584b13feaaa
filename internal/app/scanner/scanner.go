package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"audio-notes/internal/app/model"
)

// Scanner lists recordings waiting in the watched directory. It is
// stateless: every cycle re-reads the directory from scratch.
type Scanner struct {
	dir  string
	exts map[string]struct{}
}

// New creates a Scanner for dir that accepts the given extensions
// (case-insensitive, leading dot required, e.g. ".m4a").
func New(dir string, extensions []string) *Scanner {
	exts := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}
	return &Scanner{dir: dir, exts: exts}
}

// Scan returns the pending recordings ordered oldest-first by modification
// time. Temporary normalized wavs produced by an interrupted attempt carry
// a non-matching extension and are never picked up. A missing directory is
// returned as an error value; the supervisor logs it and tries again next
// cycle.
func (s *Scanner) Scan() ([]model.SourceRecording, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read source directory %s: %w", s.dir, err)
	}

	var recordings []model.SourceRecording
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := s.exts[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Raced with a concurrent rename; the file will show up (or
			// not) next cycle.
			continue
		}
		recordings = append(recordings, model.SourceRecording{
			Name:     entry.Name(),
			FullPath: filepath.Join(s.dir, entry.Name()),
			ModTime:  info.ModTime(),
		})
	}

	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].ModTime.Before(recordings[j].ModTime)
	})
	return recordings, nil
}

// PendingCount returns the number of matching files, for the status
// surface. Errors are reported as -1, mirroring what the dashboard expects.
func (s *Scanner) PendingCount() int {
	recordings, err := s.Scan()
	if err != nil {
		return -1
	}
	return len(recordings)
}
