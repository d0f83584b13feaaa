package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies where in the per-file flow a failure happened. Stages
// label logs and the files_failed_total metric so a stuck deployment is
// diagnosable from the dashboard alone.
type Stage string

const (
	StageScan       Stage = "scan"
	StageNormalize  Stage = "normalize"
	StageTranscribe Stage = "transcribe"
	StagePersist    Stage = "persist"
	StageArchive    Stage = "archive"
)

// StageError wraps a failure with the stage that produced it. Every
// per-file failure is one of these by the time it reaches the cycle loop;
// anything else escaping a cycle is treated as unclassified and handled at
// the supervisor boundary.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// StageOf extracts the failing stage, or "" for unclassified errors.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
