package transcribe

import (
	"context"
)

// Transcriber turns an audio file into subtitle-formatted text.
type Transcriber interface {
	// Transcribe returns the transcript as SRT text in the source
	// language.
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// Close releases the underlying client. Transcribers are scoped
	// to a single processing run.
	Close() error
}

// Options for transcription.
type Options struct {
	Language string // source language of the audio, ISO code
	Model    string // speech-to-text model, default whisper-1
}
