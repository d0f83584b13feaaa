//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"audio-notes/internal/app/archive"
	"audio-notes/internal/app/audio"
	"audio-notes/internal/app/model"
	"audio-notes/internal/app/notify"
	"audio-notes/internal/app/pipeline"
	"audio-notes/internal/app/transcript"
)

// InitializePipeline assembles the full per-file pipeline from the
// immutable configuration. The returned cleanup closes the transcript
// store.
func InitializePipeline(cfg *model.PipelineConfig, log *zap.Logger) (*pipeline.Pipeline, func(), error) {
	wire.Build(
		provideScanner,
		provideNormalizer,
		provideTranscriber,
		provideDAO,
		provideSidecar,
		provideMirror,
		provideArchiver,
		provideNotifier,
		wire.Bind(new(pipeline.Normalizer), new(*audio.Normalizer)),
		wire.Bind(new(pipeline.Archiver), new(*archive.Archiver)),
		wire.Bind(new(pipeline.Notifier), new(*notify.Notifier)),
		wire.Bind(new(pipeline.SidecarWriter), new(*transcript.SidecarWriter)),
		pipeline.New,
	)
	return nil, nil, nil
}
