package transcript

import (
	"github.com/samber/lo"

	"audio-notes/internal/app/model"
)

// Filter drops segments with no displayable text: empty, whitespace-only,
// or nothing left once inline control tokens are stripped. Pure and
// order-preserving; segments are never merged or reordered, and the kept
// segments retain their raw text.
func Filter(segments []model.Segment) []model.Segment {
	return lo.Filter(segments, func(s model.Segment, _ int) bool {
		return !s.IsBlank()
	})
}
