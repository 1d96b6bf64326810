package summarize

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Summarizer bounds a transcript to maxLength characters.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength int) string
}

// TruncateSummarizer is the default: Truncate with no network calls.
type TruncateSummarizer struct{}

func (TruncateSummarizer) Summarize(_ context.Context, text string, maxLength int) string {
	return Truncate(text, maxLength)
}

// AISummarizer asks a chat model for a digest and falls back to
// Truncate whenever the call fails or overruns the bound.
type AISummarizer struct {
	client *openai.Client
}

func NewAISummarizer(apiKey string) *AISummarizer {
	return &AISummarizer{client: openai.NewClient(apiKey)}
}

func (s *AISummarizer) Summarize(ctx context.Context, text string, maxLength int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	systemPrompt := "You summarize video transcripts. Reply with the summary only, no preamble."
	userPrompt := fmt.Sprintf("Summarize the following transcript in at most %d characters:\n\n%s", maxLength, text)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		log.Printf("[Summarizer] OpenAI error, falling back to truncation: %v", err)
		return Truncate(text, maxLength)
	}
	if len(resp.Choices) == 0 {
		log.Printf("[Summarizer] OpenAI returned no choices, falling back to truncation")
		return Truncate(text, maxLength)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return Truncate(text, maxLength)
	}
	// The model does not always respect the character bound.
	return Truncate(summary, maxLength)
}
