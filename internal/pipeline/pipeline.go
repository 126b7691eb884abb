// Package pipeline sequences the per-video workflow: resolve,
// download, audio extraction, transcription, translation and artifact
// assembly. Stages run strictly in order; the first failure aborts the
// remaining stages for that URL and files already written stay in
// place.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jortega22/ytsub/internal/artifact"
	"github.com/jortega22/ytsub/internal/logging"
	"github.com/jortega22/ytsub/internal/subtitle"
	"github.com/jortega22/ytsub/internal/transcribe"
	"github.com/jortega22/ytsub/internal/translate"
	"github.com/jortega22/ytsub/internal/youtube"
)

// Resolver is the video-site adapter the pipeline downloads through.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*youtube.VideoInfo, error)
	Download(ctx context.Context, url, dir string) (*youtube.VideoInfo, string, error)
}

// Extractor produces the standalone audio track.
type Extractor interface {
	Extract(ctx context.Context, videoPath, outputPath string) error
}

// TranscriberFactory builds a transcriber scoped to one processing
// run. The pipeline closes it on every exit path.
type TranscriberFactory func(ctx context.Context) (transcribe.Transcriber, error)

// TranslatorFactory builds a translator scoped to one processing run.
type TranslatorFactory func(ctx context.Context) (translate.Translator, error)

// CredentialCheck reports whether the transcription service accepts
// the configured credential. It returns false on any failure.
type CredentialCheck func(ctx context.Context) bool

// Config holds the pipeline's filesystem settings.
type Config struct {
	OutputRoot string
}

// Processor runs the per-video pipeline. All external dependencies
// are injected; the processor itself never reads the environment.
type Processor struct {
	cfg             Config
	resolver        Resolver
	extractor       Extractor
	newTranscriber  TranscriberFactory
	newTranslator   TranslatorFactory
	checkCredential CredentialCheck
	logger          *logging.Logger
}

func New(
	cfg Config,
	resolver Resolver,
	extractor Extractor,
	newTranscriber TranscriberFactory,
	newTranslator TranslatorFactory,
	checkCredential CredentialCheck,
	logger *logging.Logger,
) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:             cfg,
		resolver:        resolver,
		extractor:       extractor,
		newTranscriber:  newTranscriber,
		newTranslator:   newTranslator,
		checkCredential: checkCredential,
		logger:          logger,
	}
}

// Result describes one completed run.
type Result struct {
	URL         string
	Title       string
	Dir         string
	Info        *youtube.VideoInfo
	ProcessedAt time.Time
}

// ValidateCredential is the pre-flight check. Callers must refuse to
// start processing when it returns false; no output directory may be
// created for a rejected credential.
func (p *Processor) ValidateCredential(ctx context.Context) bool {
	return p.checkCredential(ctx)
}

// ProcessVideo runs the full pipeline for one URL. State is local to
// the call: concurrent invocations for different URLs share nothing
// but the filesystem, where each owns its title-named directory.
func (p *Processor) ProcessVideo(ctx context.Context, url string) (*Result, error) {
	p.logger.Infow("Processing video", "url", url)

	info, err := p.resolver.Resolve(ctx, url)
	if err != nil {
		return nil, stageErr(StageResolve, url, err)
	}

	title := youtube.SanitizeTitle(info.Title)
	dir := filepath.Join(p.cfg.OutputRoot, title)
	// an existing directory for the same title is reused: reprocessing
	// overwrites in place
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, stageErr(StageResolve, url, fmt.Errorf("failed to create output directory: %w", err))
	}

	p.logger.Infow("Downloading video", "title", info.Title, "dir", dir)
	downloaded, videoPath, err := p.resolver.Download(ctx, url, dir)
	if err != nil {
		return nil, stageErr(StageDownload, url, err)
	}
	if downloaded != nil {
		info = downloaded
	}

	audioPath := filepath.Join(dir, artifact.AudioFileName)
	p.logger.Infow("Extracting audio", "video", videoPath)
	if err := p.extractor.Extract(ctx, videoPath, audioPath); err != nil {
		return nil, stageErr(StageExtract, url, err)
	}

	esText, enText, err := p.generateSubtitles(ctx, url, audioPath)
	if err != nil {
		return nil, err
	}

	processedAt := time.Now()

	p.logger.Infow("Writing artifacts", "dir", dir)
	if err := p.assemble(dir, title, url, esText, enText, processedAt); err != nil {
		return nil, stageErr(StageAssemble, url, err)
	}

	if err := artifact.WriteReport(dir, info, url, processedAt); err != nil {
		return nil, stageErr(StageReport, url, err)
	}

	p.logger.Infow("Video processed", "url", url, "title", title)

	return &Result{
		URL:         url,
		Title:       title,
		Dir:         dir,
		Info:        info,
		ProcessedAt: processedAt,
	}, nil
}

// generateSubtitles acquires the transcription and translation
// clients, uses them, and releases them before returning. The clients
// live only for this call.
func (p *Processor) generateSubtitles(ctx context.Context, url, audioPath string) (string, string, error) {
	transcriber, err := p.newTranscriber(ctx)
	if err != nil {
		return "", "", stageErr(StageTranscribe, url, err)
	}
	defer transcriber.Close()

	p.logger.Infow("Transcribing audio", "audio", audioPath)
	esText, err := transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", "", stageErr(StageTranscribe, url, err)
	}

	translator, err := p.newTranslator(ctx)
	if err != nil {
		return "", "", stageErr(StageTranslate, url, err)
	}
	defer translator.Close()

	p.logger.Infow("Translating subtitles")
	enText, err := translator.Translate(ctx, esText)
	if err != nil {
		return "", "", stageErr(StageTranslate, url, err)
	}

	return esText, enText, nil
}

func (p *Processor) assemble(dir, title, url, esText, enText string, at time.Time) error {
	if err := artifact.WriteSubtitles(dir, esText, enText); err != nil {
		return err
	}

	page := artifact.Page{
		Title:     title,
		URL:       url,
		Timestamp: at.Format(artifact.TimeLayout),
		ESText:    subtitle.PlainText(esText),
		ENText:    subtitle.PlainText(enText),
	}
	return artifact.RenderHTML(dir, page)
}

// BatchItem is the outcome of one URL inside a batch.
type BatchItem struct {
	URL    string
	Result *Result
	Err    error
}

// ProcessBatch runs the pipeline over the URLs in order. A failing
// URL is logged and skipped; the batch always runs to the end.
func (p *Processor) ProcessBatch(ctx context.Context, urls []string) []BatchItem {
	items := make([]BatchItem, 0, len(urls))

	for _, url := range urls {
		if ctx.Err() != nil {
			items = append(items, BatchItem{URL: url, Err: ctx.Err()})
			continue
		}

		result, err := p.ProcessVideo(ctx, url)
		if err != nil {
			p.logger.Errorw("Video failed", "url", url, "error", err)
		}
		items = append(items, BatchItem{URL: url, Result: result, Err: err})
	}

	return items
}
