package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings. It is built once at the edge
// (CLI or server startup) and passed down; pipeline components never
// read the environment themselves.
type Config struct {
	// OpenAI key used for whisper transcription and the credential
	// pre-flight check.
	OpenAIAPIKey string

	// Translation provider: openai, anthropic or gemini.
	TranslateProvider string
	// Key for the translation provider. Falls back to OpenAIAPIKey
	// when the provider is openai.
	TranslateAPIKey string
	TranslateModel  string

	WhisperModel   string
	SourceLanguage string // audio language, ISO code
	TargetLanguage string // translation target, human readable

	OutputDir string
	InputDir  string

	ServerAddress string

	// Path to the yt-dlp binary. Empty means look it up in PATH.
	YtDlpPath string
}

// Load reads configuration from the environment, with an optional
// .env file in the working directory.
func Load() (*Config, error) {
	// a missing .env is fine, variables may be set directly
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		TranslateProvider: getEnv("TRANSLATE_PROVIDER", "openai"),
		TranslateAPIKey:   os.Getenv("TRANSLATE_API_KEY"),
		TranslateModel:    getEnv("TRANSLATE_MODEL", ""),
		WhisperModel:      getEnv("WHISPER_MODEL", "whisper-1"),
		SourceLanguage:    getEnv("SOURCE_LANGUAGE", "es"),
		TargetLanguage:    getEnv("TARGET_LANGUAGE", "English"),
		OutputDir:         getEnv("OUTPUT_DIR", "output"),
		InputDir:          getEnv("INPUT_DIR", "input"),
		ServerAddress:     getEnv("SERVER_ADDRESS", ":5000"),
		YtDlpPath:         getEnv("YTDLP_PATH", "yt-dlp"),
	}

	if cfg.TranslateAPIKey == "" && cfg.TranslateProvider == "openai" {
		cfg.TranslateAPIKey = cfg.OpenAIAPIKey
	}

	return cfg, nil
}

// Validate checks the settings required for processing.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.TranslateAPIKey == "" {
		return fmt.Errorf(
			"TRANSLATE_API_KEY is required for provider %s",
			c.TranslateProvider,
		)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
