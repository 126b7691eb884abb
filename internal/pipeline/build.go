package pipeline

import (
	"context"

	"github.com/jortega22/ytsub/internal/audio"
	"github.com/jortega22/ytsub/internal/config"
	"github.com/jortega22/ytsub/internal/logging"
	"github.com/jortega22/ytsub/internal/transcribe"
	"github.com/jortega22/ytsub/internal/translate"
	"github.com/jortega22/ytsub/internal/youtube"
)

// ffmpegExtractor adapts the audio package to the Extractor interface.
type ffmpegExtractor struct {
	opts audio.Options
}

func (e *ffmpegExtractor) Extract(ctx context.Context, videoPath, outputPath string) error {
	return audio.Extract(ctx, videoPath, outputPath, e.opts)
}

// FromConfig wires a Processor with the real yt-dlp, ffmpeg and
// API-backed dependencies.
func FromConfig(cfg *config.Config, logger *logging.Logger) *Processor {
	resolver := youtube.NewClient(cfg.YtDlpPath)
	extractor := &ffmpegExtractor{opts: audio.DefaultOptions()}

	newTranscriber := func(ctx context.Context) (transcribe.Transcriber, error) {
		return transcribe.NewOpenAITranscriber(cfg.OpenAIAPIKey, transcribe.Options{
			Language: cfg.SourceLanguage,
			Model:    cfg.WhisperModel,
		})
	}

	newTranslator := func(ctx context.Context) (translate.Translator, error) {
		return translate.Factory(
			ctx,
			translate.Provider(cfg.TranslateProvider),
			cfg.TranslateAPIKey,
			translate.Options{
				TargetLanguage: cfg.TargetLanguage,
				Model:          cfg.TranslateModel,
			},
		)
	}

	checkCredential := func(ctx context.Context) bool {
		return transcribe.ValidateCredential(ctx, cfg.OpenAIAPIKey)
	}

	return New(
		Config{OutputRoot: cfg.OutputDir},
		resolver,
		extractor,
		newTranscriber,
		newTranslator,
		checkCredential,
		logger,
	)
}
