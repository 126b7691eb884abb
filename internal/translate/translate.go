package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Translator renders subtitle text into the target language while
// preserving the SRT structure.
type Translator interface {
	Translate(ctx context.Context, subtitleText string) (string, error)

	// Close releases the underlying client. Translators are scoped
	// to a single processing run.
	Close() error
}

// Provider selects the translation backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// Options for translation.
type Options struct {
	TargetLanguage string // e.g. "English"
	Model          string // provider model override
}

// Factory creates a Translator for the given provider.
func Factory(ctx context.Context, provider Provider, apiKey string, opts Options) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranslator(apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// buildSystemPrompt constrains the model to a format-preserving
// translation. The whole subtitle text travels in one request; inputs
// beyond the provider's context limit fail as-is, no chunking.
func buildSystemPrompt(opts Options) string {
	var sb strings.Builder

	sb.WriteString("You are a professional subtitle translator. ")
	sb.WriteString(fmt.Sprintf(
		"Translate the subtitles you receive into %s.\n\n",
		opts.TargetLanguage,
	))
	sb.WriteString("Preserve the SRT structure exactly:\n")
	sb.WriteString("- keep every index line and timestamp line unchanged\n")
	sb.WriteString("- keep the blank line between entries\n")
	sb.WriteString("- translate only the text lines\n")
	sb.WriteString("- output the translated SRT and nothing else\n")

	return sb.String()
}

func buildUserPrompt(subtitleText string) string {
	return "Translate these subtitles:\n\n" + subtitleText
}

var codeFenceRegex = regexp.MustCompile("```[a-zA-Z]*\\s*")

// cleanResponse strips markdown code fences some models wrap their
// output in.
func cleanResponse(s string) string {
	s = codeFenceRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s) + "\n"
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
