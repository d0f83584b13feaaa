package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audio-notes/internal/app/model"
	"audio-notes/internal/app/repository"
	"audio-notes/internal/app/status"
	"audio-notes/internal/app/transcript"
)

// recentLimit caps how many records /api/data returns.
const recentLimit = 100

// APIHandler serves the dashboard-facing JSON endpoints.
type APIHandler struct {
	dao     repository.TranscriptionDAO
	checker *status.Checker
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(dao repository.TranscriptionDAO, checker *status.Checker) *APIHandler {
	return &APIHandler{dao: dao, checker: checker}
}

// Status returns the on-demand health snapshot.
func (h *APIHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.checker.Snapshot(c.Request.Context()))
}

type segmentView struct {
	model.Segment
	StartFmt string `json:"start_fmt"`
}

type recordView struct {
	ID         int64         `json:"id"`
	Filename   string        `json:"filename"`
	CreatedAt  string        `json:"created_at"`
	RecordedAt string        `json:"recorded_at,omitempty"`
	FullText   string        `json:"full_text"`
	Segments   []segmentView `json:"segments"`
}

// Data returns recent transcript records with presentation fields the
// dashboard needs: formatted segment start times and, where the recorder
// encoded one, the recording timestamp parsed from the filename.
func (h *APIHandler) Data(c *gin.Context) {
	records, err := h.dao.Recent(recentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]recordView, 0, len(records))
	for _, r := range records {
		v := recordView{
			ID:        r.ID,
			Filename:  r.Filename,
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
			FullText:  r.FullText,
			Segments:  make([]segmentView, 0, len(r.Segments)),
		}
		if ts, ok := ParseRecordingTime(r.Filename); ok {
			v.RecordedAt = ts.Format("2006-01-02 15:04:05")
		}
		for _, s := range r.Segments {
			v.Segments = append(v.Segments, segmentView{
				Segment:  s,
				StartFmt: transcript.FormatTimestamp(s.StartMs),
			})
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, views)
}
