package transcribe

import (
	"fmt"
	"log"

	"vidinsight/internal/config"
)

// CreateProvider creates an STT provider based on configuration
func CreateProvider(cfg *config.Config) (Provider, error) {
	switch cfg.TranscriberProvider {
	case "whisper":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		log.Printf("[STT Factory] Creating Whisper STT provider")
		return NewWhisperProvider(cfg.OpenAIKey), nil
	case "hosted":
		if cfg.HostedSTTKey == "" {
			return nil, fmt.Errorf("HOSTED_STT_API_KEY is not set")
		}
		log.Printf("[STT Factory] Creating hosted STT provider (url: %s, poll every %v, timeout %v)",
			cfg.HostedSTTURL, cfg.PollInterval, cfg.PollTimeout)
		return NewHostedProvider(cfg.HostedSTTKey, cfg.HostedSTTURL, cfg.PollInterval, cfg.PollTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: whisper, hosted", cfg.TranscriberProvider)
	}
}
