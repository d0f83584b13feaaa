package pipeline

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"audio-notes/internal/app/asr"
	"audio-notes/internal/app/audio"
	"audio-notes/internal/app/metrics"
	"audio-notes/internal/app/model"
	"audio-notes/internal/app/repository"
	"audio-notes/internal/app/scanner"
	"audio-notes/internal/app/transcript"
)

// Normalizer produces the canonical-format temp audio for one attempt.
type Normalizer interface {
	Normalize(sourcePath string) (string, error)
}

// Archiver moves a persisted source into the processed area.
type Archiver interface {
	Archive(ctx context.Context, sourcePath, filename string) error
}

// Notifier delivers best-effort status callbacks.
type Notifier interface {
	Notify(status, filename, details string)
}

// SidecarWriter writes the human-readable transcript artifact.
type SidecarWriter interface {
	Write(sourceName string, fullText string, segments []model.Segment) (string, error)
}

// Pipeline wires the per-file flow: normalize, transcribe, filter, persist,
// archive, notify. One instance processes files strictly sequentially; the
// design assumes a single pipeline per source directory.
type Pipeline struct {
	scanner     *scanner.Scanner
	normalizer  Normalizer
	transcriber asr.Transcriber
	dao         repository.TranscriptionDAO
	sidecar     SidecarWriter
	archiver    Archiver
	notifier    Notifier
	log         *zap.Logger
}

// New assembles a Pipeline from its components.
func New(
	sc *scanner.Scanner,
	normalizer Normalizer,
	transcriber asr.Transcriber,
	dao repository.TranscriptionDAO,
	sidecar SidecarWriter,
	archiver Archiver,
	notifier Notifier,
	log *zap.Logger,
) *Pipeline {
	return &Pipeline{
		scanner:     sc,
		normalizer:  normalizer,
		transcriber: transcriber,
		dao:         dao,
		sidecar:     sidecar,
		archiver:    archiver,
		notifier:    notifier,
		log:         log.Named("pipeline"),
	}
}

// RunCycle scans the watched directory and processes every pending
// recording in order. A file's failure is logged and counted, never
// propagated: the cycle always advances to the next file. The returned
// error is a scan-level failure only.
func (p *Pipeline) RunCycle(ctx context.Context) (processed int, err error) {
	recordings, err := p.scanner.Scan()
	if err != nil {
		metrics.FilesFailed.WithLabelValues(string(StageScan)).Inc()
		return 0, stageErr(StageScan, err)
	}
	metrics.PendingFiles.Set(float64(len(recordings)))
	defer metrics.CyclesTotal.Inc()

	if len(recordings) == 0 {
		return 0, nil
	}
	p.log.Info("found new recordings", zap.Int("count", len(recordings)))

	for _, rec := range recordings {
		if ctx.Err() != nil {
			return processed, nil
		}
		if err := p.ProcessFile(ctx, rec); err != nil {
			stage := StageOf(err)
			metrics.FilesFailed.WithLabelValues(string(stage)).Inc()
			p.log.Error("processing failed, file stays for next cycle",
				zap.String("file", rec.Name),
				zap.String("stage", string(stage)),
				zap.Error(err))
			continue
		}
		processed++
		metrics.FilesProcessed.Inc()
	}
	return processed, nil
}

// ProcessFile runs one recording through the whole flow. The temporary
// normalized wav is removed on every exit path. The transcript record is
// persisted before the source is archived: a crash in between leaves the
// source in place and produces a duplicate record next cycle, never a lost
// transcript.
func (p *Pipeline) ProcessFile(ctx context.Context, rec model.SourceRecording) error {
	log := p.log.With(zap.String("file", rec.Name))
	log.Info("processing recording")

	wavPath, err := p.normalizer.Normalize(rec.FullPath)
	if err != nil {
		return stageErr(StageNormalize, err)
	}
	defer os.Remove(wavPath)

	if secs, err := audio.Duration(wavPath); err == nil {
		log.Info("normalized audio ready", zap.Int("duration_sec", secs))
	}

	result, err := p.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return stageErr(StageTranscribe, err)
	}

	filtered := transcript.Filter(result.Segments)
	log.Info("transcription received",
		zap.Int("segments", len(result.Segments)),
		zap.Int("kept", len(filtered)))

	// Best-effort sidecar; never blocks persistence or archival.
	if _, err := p.sidecar.Write(rec.Name, result.FullText, filtered); err != nil {
		log.Warn("sidecar write failed", zap.Error(err))
	}

	record := &model.TranscriptRecord{
		Filename:  rec.Name,
		CreatedAt: time.Now(),
		FullText:  result.FullText,
		Segments:  filtered,
	}
	id, err := p.dao.Save(record)
	if err != nil {
		return stageErr(StagePersist, err)
	}
	log.Info("transcript persisted", zap.Int64("id", id))

	if err := p.archiver.Archive(ctx, rec.FullPath, rec.Name); err != nil {
		// The record exists but the source stays; next cycle reprocesses
		// it and appends a duplicate. Accepted at-least-once behavior.
		return stageErr(StageArchive, err)
	}

	p.notifier.Notify("success", rec.Name, headRunes(result.FullText, 100))
	log.Info("recording archived")
	return nil
}

func headRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
