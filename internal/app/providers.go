package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"audio-notes/internal/app/archive"
	"audio-notes/internal/app/asr"
	"audio-notes/internal/app/audio"
	"audio-notes/internal/app/model"
	"audio-notes/internal/app/notify"
	"audio-notes/internal/app/repository"
	"audio-notes/internal/app/repository/pg"
	"audio-notes/internal/app/repository/sqlite"
	"audio-notes/internal/app/scanner"
	"audio-notes/internal/app/transcript"
)

func provideScanner(cfg *model.PipelineConfig) *scanner.Scanner {
	return scanner.New(cfg.SourceDir, cfg.Extensions)
}

func provideNormalizer(cfg *model.PipelineConfig) *audio.Normalizer {
	return audio.NewNormalizer(cfg.FFmpegPath, cfg.SampleRate, cfg.Channels)
}

func provideTranscriber(cfg *model.PipelineConfig, log *zap.Logger) (asr.Transcriber, error) {
	switch cfg.Provider {
	case "openai":
		token := os.Getenv("OPENAI_API_KEY")
		if token == "" {
			return nil, fmt.Errorf("provider openai requires OPENAI_API_KEY")
		}
		return asr.NewOpenAITranscriber(token), nil
	default:
		return asr.NewClient(cfg.ASRURL, cfg.RequestTimeout, asr.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			Backoff:     cfg.RetryBackoff,
		}, log), nil
	}
}

func provideDAO(cfg *model.PipelineConfig) (repository.TranscriptionDAO, func(), error) {
	if cfg.DBDriver == "postgres" {
		dao, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return dao, func() { dao.Close() }, nil
	}
	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	dao := sqlite.NewSQLiteDAO(db)
	return dao, func() { dao.Close() }, nil
}

func provideSidecar(cfg *model.PipelineConfig) *transcript.SidecarWriter {
	return transcript.NewSidecarWriter(cfg.TranscriptDir)
}

func provideMirror(cfg *model.PipelineConfig) (*archive.Mirror, error) {
	if !cfg.MirrorEnabled() {
		return nil, nil
	}
	return archive.NewMirror(cfg.Mirror)
}

func provideArchiver(cfg *model.PipelineConfig, mirror *archive.Mirror, log *zap.Logger) *archive.Archiver {
	return archive.NewArchiver(cfg.ProcessedDir, mirror, log)
}

func provideNotifier(cfg *model.PipelineConfig, log *zap.Logger) *notify.Notifier {
	return notify.NewNotifier(cfg.WebhookURL, cfg.NotifyTimeout, log)
}
