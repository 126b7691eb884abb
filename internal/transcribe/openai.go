package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/jortega22/ytsub/internal/subtitle"
)

// OpenAITranscriber implements Transcriber using the OpenAI Audio API.
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// segment from the whisper verbose_json response
type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperVerboseResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
}

func NewOpenAITranscriber(apiKey string, opts Options) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// Transcribe streams the audio file to whisper and returns the
// transcript as SRT text in the configured source language.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return "", fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	segments, err := parseVerboseJSONResponse(resp.RawJSON())
	if err != nil {
		// fall back to a single untimed segment covering the response text
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return "", fmt.Errorf("transcription failed: %w", err)
		}
		segments = []subtitle.Segment{{
			StartTime: 0,
			EndTime:   time.Second,
			Text:      text,
		}}
	}

	return subtitle.FormatSRT(segments), nil
}

func parseVerboseJSONResponse(rawJSON string) ([]subtitle.Segment, error) {
	if rawJSON == "" {
		return nil, fmt.Errorf("empty response")
	}

	var verboseResp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &verboseResp); err != nil {
		return nil, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	if len(verboseResp.Segments) == 0 {
		if verboseResp.Text == "" {
			return nil, fmt.Errorf("no segments or text in response")
		}
		dur := time.Duration(verboseResp.Duration * float64(time.Second))
		if dur <= 0 {
			dur = time.Second
		}
		return []subtitle.Segment{{
			StartTime: 0,
			EndTime:   dur,
			Text:      strings.TrimSpace(verboseResp.Text),
		}}, nil
	}

	segments := make([]subtitle.Segment, 0, len(verboseResp.Segments))
	for _, seg := range verboseResp.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, subtitle.Segment{
			StartTime: time.Duration(seg.Start * float64(time.Second)),
			EndTime:   time.Duration(seg.End * float64(time.Second)),
			Text:      text,
		})
	}

	return segments, nil
}

func (t *OpenAITranscriber) Close() error {
	return nil
}

// ValidateCredential performs a lightweight authenticated call (model
// listing) and reports whether the key works. It never returns an
// error: connectivity and authentication failures both read as false.
func ValidateCredential(ctx context.Context, apiKey string) bool {
	if apiKey == "" {
		return false
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	if _, err := client.Models.List(ctx); err != nil {
		return false
	}
	return true
}
