package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Archiver moves successfully persisted recordings out of the watched
// directory into the processed area. It must only be invoked after the
// transcript record is durably committed; the persist-then-archive order is
// what keeps the pipeline at-least-once instead of lossy.
type Archiver struct {
	processedDir string
	mirror       *Mirror
	log          *zap.Logger
}

// NewArchiver creates an Archiver. mirror may be nil.
func NewArchiver(processedDir string, mirror *Mirror, log *zap.Logger) *Archiver {
	return &Archiver{
		processedDir: processedDir,
		mirror:       mirror,
		log:          log.Named("archive"),
	}
}

// Archive moves sourcePath into the processed directory under its original
// filename. A same-named file at the destination is overwritten: recorder
// filenames embed timestamps, so a collision means this recording was
// already processed once (crash between persist and archive) and the source
// must not be left behind to be reprocessed forever.
func (a *Archiver) Archive(ctx context.Context, sourcePath, filename string) error {
	dest := filepath.Join(a.processedDir, filename)

	if _, err := os.Stat(dest); err == nil {
		a.log.Warn("overwriting previously archived file",
			zap.String("filename", filename))
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("remove existing archive %s: %w", dest, err)
		}
	}

	if err := os.Rename(sourcePath, dest); err != nil {
		return fmt.Errorf("move %s to processed: %w", sourcePath, err)
	}

	if a.mirror != nil {
		// Best-effort copy to object storage; the local archive is the
		// source of truth.
		if err := a.mirror.Upload(ctx, dest, filename); err != nil {
			a.log.Warn("archive mirror upload failed",
				zap.String("filename", filename), zap.Error(err))
		}
	}
	return nil
}
