package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Transcription
	TranscriberProvider string // "whisper" or "hosted"
	OpenAIKey           string
	HostedSTTKey        string
	HostedSTTURL        string
	PollInterval        time.Duration
	PollTimeout         time.Duration

	// Translation
	TranslateKey string
	TranslateURL string

	// Summarization
	SummaryMode      string // "truncate" (default) or "ai"
	SummaryMaxLength int

	// Pipeline
	TempDir       string
	MaxAudioBytes int64

	// Persistence
	FavoritesFile string
	VisitLogFile  string
	DatabaseURL   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		TranscriberProvider: getEnv("TRANSCRIBER_PROVIDER", "whisper"),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		HostedSTTKey:        os.Getenv("HOSTED_STT_API_KEY"),
		HostedSTTURL:        getEnv("HOSTED_STT_URL", "https://api.assemblyai.com/v2"),
		PollInterval:        getEnvDuration("STT_POLL_INTERVAL", 3*time.Second),
		PollTimeout:         getEnvDuration("STT_POLL_TIMEOUT", 5*time.Minute),
		TranslateKey:        os.Getenv("TRANSLATE_API_KEY"),
		TranslateURL:        getEnv("TRANSLATE_API_URL", "https://translation.googleapis.com/language/translate/v2"),
		SummaryMode:         getEnv("SUMMARY_MODE", "truncate"),
		SummaryMaxLength:    getEnvInt("SUMMARY_MAX_LENGTH", 300),
		TempDir:             getEnv("TEMP_DIR", os.TempDir()),
		MaxAudioBytes:       int64(getEnvInt("MAX_AUDIO_BYTES", 25*1024*1024)),
		FavoritesFile:       os.Getenv("FAVORITES_FILE"),
		VisitLogFile:        getEnv("VISIT_LOG_FILE", "visits.jsonl"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
	}

	switch cfg.TranscriberProvider {
	case "whisper":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when TRANSCRIBER_PROVIDER=whisper. Set it in the environment or in a .env file")
		}
	case "hosted":
		if cfg.HostedSTTKey == "" {
			return nil, fmt.Errorf("HOSTED_STT_API_KEY is required when TRANSCRIBER_PROVIDER=hosted. Set it in the environment or in a .env file")
		}
	default:
		return nil, fmt.Errorf("unsupported TRANSCRIBER_PROVIDER: %s. Supported: whisper, hosted", cfg.TranscriberProvider)
	}

	if cfg.SummaryMaxLength < 1 {
		return nil, fmt.Errorf("SUMMARY_MAX_LENGTH must be positive, got %d", cfg.SummaryMaxLength)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("STT_POLL_INTERVAL must be positive")
	}
	if cfg.PollTimeout <= cfg.PollInterval {
		return nil, fmt.Errorf("STT_POLL_TIMEOUT must be longer than STT_POLL_INTERVAL")
	}

	// Translation key is optional: without it the pipeline still runs
	// and keeps the untranslated transcript with a warning.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
