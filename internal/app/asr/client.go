package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"audio-notes/internal/app/model"
)

// Transcriber converts a normalized audio file into a transcription result.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error)
}

// Client talks to the ASR HTTP service: one multipart upload per recording,
// with connection failures retried under the configured policy. The request
// timeout is deliberately long (transcription with diarization can take
// tens of minutes) and a timeout is never retried in-process.
type Client struct {
	endpoint string
	client   *http.Client
	policy   RetryPolicy
	log      *zap.Logger
}

// NewClient creates an ASR client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration, policy RetryPolicy, log *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		policy:   policy,
		log:      log.Named("asr"),
	}
}

// response is the ASR service wire format. FullText is a pointer so a
// missing field is distinguishable from an empty transcript; an Error field
// in the body signals an application-level failure independent of the HTTP
// status.
type response struct {
	Error    string          `json:"error,omitempty"`
	FullText *string         `json:"full_text"`
	Segments []model.Segment `json:"segments"`
}

// Transcribe uploads the audio at audioPath and returns the parsed result.
// Failures come back as *Error with the kind deciding retryability.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	var result *model.TranscriptionResult
	err := c.policy.Do(ctx, c.log, func() error {
		r, err := c.attempt(ctx, audioPath)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) attempt(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	body, contentType, err := buildMultipart(audioPath)
	if err != nil {
		return nil, malformedErr("build multipart form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, malformedErr("create request", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, serverErr(fmt.Sprintf("status %d: %s", resp.StatusCode, truncateBody(data)), nil)
	}

	return parseResponse(data)
}

// classifyTransportError separates "the server never answered in time"
// from "we could not reach the server". The former is terminal for this
// attempt, the latter is retryable.
func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutErr("no response within deadline", err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return timeoutErr("no response within deadline", err)
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return timeoutErr("no response within deadline", err)
	}
	return connectionErr("request failed", err)
}

func parseResponse(data []byte) (*model.TranscriptionResult, error) {
	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, malformedErr("decode response", err)
	}
	if r.Error != "" {
		return nil, serverErr("server reported: "+r.Error, nil)
	}
	if r.FullText == nil {
		return nil, malformedErr("response missing full_text", nil)
	}
	if r.Segments == nil {
		return nil, malformedErr("response missing segments", nil)
	}
	for i := range r.Segments {
		if err := r.Segments[i].Validate(); err != nil {
			return nil, malformedErr(fmt.Sprintf("segment %d invalid", i), err)
		}
	}
	return &model.TranscriptionResult{
		FullText: *r.FullText,
		Segments: r.Segments,
	}, nil
}

func buildMultipart(audioPath string) (*bytes.Buffer, string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("audio_file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("copy audio data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// Ping checks whether the ASR server answers at all, for the status
// surface. Any HTTP response counts as reachable; only transport errors
// mean offline.
func (c *Client) Ping(ctx context.Context) error {
	base := c.endpoint
	if u, err := url.Parse(c.endpoint); err == nil {
		u.Path = "/"
		base = u.String()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base, nil)
	if err != nil {
		return err
	}
	probe := &http.Client{Timeout: time.Second}
	resp, err := probe.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func truncateBody(data []byte) string {
	const max = 256
	if len(data) <= max {
		return string(data)
	}
	return string(data[:max]) + "..."
}
