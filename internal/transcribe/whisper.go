package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// WhisperProvider implements synchronous STT using the OpenAI Whisper API
type WhisperProvider struct {
	client *openai.Client
}

// NewWhisperProvider creates a new Whisper STT provider
func NewWhisperProvider(apiKey string) *WhisperProvider {
	return &WhisperProvider{
		client: openai.NewClient(apiKey),
	}
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return "whisper"
}

// Transcribe sends the audio file to the Whisper API and blocks until
// text is returned.
func (p *WhisperProvider) Transcribe(ctx context.Context, audioPath string, languageHint string) (*Result, error) {
	startTime := time.Now()

	fi, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}
	log.Printf("[Whisper STT] Processing audio file: %s, size: %d bytes", audioPath, fi.Size())

	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	}
	if languageHint != "" {
		req.Language = languageHint
	}

	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		log.Printf("[Whisper STT] API error: %v", err)
		return nil, &ProviderError{Kind: KindRemote, Err: err}
	}

	transcript := strings.TrimSpace(resp.Text)
	if transcript == "" {
		log.Printf("[Whisper STT] Empty transcript returned")
		return &Result{Provider: p.Name()}, &ProviderError{Kind: KindRemote, Err: fmt.Errorf("no speech detected in audio")}
	}

	log.Printf("[Whisper STT] Transcription successful: length=%d, duration=%v",
		len(transcript), time.Since(startTime))

	return &Result{
		Transcript: transcript,
		Provider:   p.Name(),
	}, nil
}
