package transcribe

import "context"

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe transcribes an audio file and returns the result.
	// languageHint may be empty.
	Transcribe(ctx context.Context, audioPath string, languageHint string) (*Result, error)

	// Name returns the name of the provider (e.g., "whisper", "hosted")
	Name() string
}
