package asr

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"audio-notes/internal/app/model"
)

// OpenAITranscriber is an alternative backend using the OpenAI Whisper API
// instead of a self-hosted ASR service. Whisper does not diarize, so every
// segment is attributed to speaker 0.
type OpenAITranscriber struct {
	client *openai.Client
}

// NewOpenAITranscriber creates a transcriber for the given API token.
func NewOpenAITranscriber(token string) *OpenAITranscriber {
	return &OpenAITranscriber{client: openai.NewClient(token)}
}

// Transcribe sends the audio to the Whisper API and maps the verbose
// response into the pipeline's result shape.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (*model.TranscriptionResult, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	segments := make([]model.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, model.Segment{
			StartMs: int64(s.Start * 1000),
			EndMs:   int64(s.End * 1000),
			Text:    s.Text,
		})
	}
	return &model.TranscriptionResult{
		FullText: resp.Text,
		Segments: segments,
	}, nil
}

func classifyOpenAIError(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return serverErr("openai api error", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutErr("openai request deadline exceeded", err)
	}
	return connectionErr("openai request failed", err)
}
