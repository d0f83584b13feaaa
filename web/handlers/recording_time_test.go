package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordingTime(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     time.Time
		ok       bool
	}{
		{
			"dashed",
			"2024-03-01_14-22-05 memo.m4a",
			time.Date(2024, 3, 1, 14, 22, 5, 0, time.Local),
			true,
		},
		{
			"dashed_no_suffix",
			"2024-12-31_23-59-59.wav",
			time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local),
			true,
		},
		{
			"compact",
			"recording-20240301-142205.m4a",
			time.Date(2024, 3, 1, 14, 22, 5, 0, time.Local),
			true,
		},
		{"plain_name", "standup notes.m4a", time.Time{}, false},
		{"invalid_month", "2024-13-01_14-22-05.m4a", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRecordingTime(tt.filename)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}
