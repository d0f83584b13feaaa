package status

import (
	"context"
	"os"
	"strings"

	"audio-notes/internal/app/scanner"
)

// tailBytes bounds how much of the log file is read for the snapshot.
const tailBytes = 16 * 1024

// Pinger probes whether the remote ASR service answers at all.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Snapshot is the on-demand health view consumed by the external
// dashboard. Nothing is pushed; every request recomputes it.
type Snapshot struct {
	ASRServer    string `json:"asr_server"`
	PendingFiles int    `json:"pending_files"`
	LastLog      string `json:"last_log"`
}

// Checker computes status snapshots.
type Checker struct {
	pinger  Pinger
	scanner *scanner.Scanner
	logFile string
}

// NewChecker creates a Checker. logFile may be empty.
func NewChecker(pinger Pinger, sc *scanner.Scanner, logFile string) *Checker {
	return &Checker{pinger: pinger, scanner: sc, logFile: logFile}
}

// Snapshot probes the ASR server, counts pending recordings and tails the
// pipeline log.
func (c *Checker) Snapshot(ctx context.Context) Snapshot {
	s := Snapshot{
		ASRServer:    "offline",
		PendingFiles: c.scanner.PendingCount(),
		LastLog:      tail(c.logFile, 10),
	}
	if err := c.pinger.Ping(ctx); err == nil {
		s.ASRServer = "online"
	}
	return s
}

// tail returns the last n lines of path, or a placeholder when the file is
// missing or unreadable.
func tail(path string, n int) string {
	if path == "" {
		return "no log file configured"
	}
	f, err := os.Open(path)
	if err != nil {
		return "log file unavailable: " + path
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "log file unavailable: " + path
	}
	offset := info.Size() - tailBytes
	if offset < 0 {
		offset = 0
	}
	buf := make([]byte, info.Size()-offset)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return "log file unavailable: " + path
	}

	lines := strings.Split(strings.TrimRight(string(buf), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
