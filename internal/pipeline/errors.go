package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies one step of the processing pipeline.
type Stage string

const (
	StageResolve    Stage = "resolve"
	StageDownload   Stage = "download"
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageTranslate  Stage = "translate"
	StageAssemble   Stage = "assemble"
	StageReport     Stage = "report"
)

// ErrInvalidCredential is returned when processing is attempted after
// the transcription service rejected the configured credential.
var ErrInvalidCredential = errors.New("transcription service credential rejected")

// StageError reports which pipeline stage failed for which URL.
// Failures are terminal for the current video; nothing is retried.
type StageError struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed for %s: %v", e.Stage, e.URL, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, url string, err error) error {
	return &StageError{Stage: stage, URL: url, Err: err}
}
