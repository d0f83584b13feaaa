package handlers

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Recorder filename conventions seen in the field: the Sony recorder writes
// "2024-03-01_14-22-05 memo.m4a", newer firmware writes
// "recording-20240301-142205.m4a".
var (
	dashedTimeRe  = regexp.MustCompile(`^\s*(\d{4}-\d{2}-\d{2})_(\d{2})-(\d{2})-(\d{2})`)
	compactTimeRe = regexp.MustCompile(`^\s*recording-(\d{4})(\d{2})(\d{2})-(\d{2})(\d{2})(\d{2})`)
)

// ParseRecordingTime extracts the recording timestamp embedded in a source
// filename. Returns false when the name follows neither convention.
func ParseRecordingTime(filename string) (time.Time, bool) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	if m := dashedTimeRe.FindStringSubmatch(base); m != nil {
		ts, err := time.ParseInLocation("2006-01-02 15:04:05",
			m[1]+" "+m[2]+":"+m[3]+":"+m[4], time.Local)
		if err == nil {
			return ts, true
		}
	}
	if m := compactTimeRe.FindStringSubmatch(base); m != nil {
		ts, err := time.ParseInLocation("20060102 150405",
			m[1]+m[2]+m[3]+" "+m[4]+m[5]+m[6], time.Local)
		if err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
