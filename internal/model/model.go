package model

import (
	"time"

	"github.com/google/uuid"
)

// VideoRequest is one user submission: the URL to analyze and the
// language the transcript should be translated into.
type VideoRequest struct {
	URL            string `json:"url"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// VideoInfo holds best-effort metadata about the source video.
// Every field is optional because the fetcher may not expose it.
type VideoInfo struct {
	Title           *string `json:"title,omitempty"`
	Author          *string `json:"author,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	ViewCount       *int64  `json:"view_count,omitempty"`
}

// AudioArtifact describes the extracted audio file handed to the
// transcriber. SizeBytes must be > 0 and the sniffed MIME type must
// start with "audio" before the pipeline moves past extraction.
type AudioArtifact struct {
	LocalPath    string `json:"local_path"`
	MIMEType     string `json:"mime_type"`
	SampleRate   int    `json:"sample_rate"`
	ChannelCount int    `json:"channel_count"`
	SizeBytes    int64  `json:"size_bytes"`
}

// Transcription status values.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// TranscriptionResult is the outcome of a speech-to-text call.
type TranscriptionResult struct {
	Text     string  `json:"text"`
	Status   string  `json:"status"`
	Provider string  `json:"provider,omitempty"`
	Language *string `json:"language,omitempty"`
}

// TranslationResult pairs translated text with the language it was
// translated into.
type TranslationResult struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
	// Skipped is true when detection showed the text was already in
	// the target language and no provider call was made.
	Skipped bool `json:"skipped,omitempty"`
	// Warning is set when translation failed and the original text
	// was kept instead.
	Warning string `json:"warning,omitempty"`
}

// Analysis is one completed pipeline run, kept so the report can be
// rendered after the fact.
type Analysis struct {
	ID          uuid.UUID          `json:"id"`
	URL         string             `json:"url"`
	Platform    string             `json:"platform"`
	VideoInfo   *VideoInfo         `json:"video_info,omitempty"`
	Transcript  string             `json:"transcript"`
	Summary     string             `json:"summary"`
	Translation *TranslationResult `json:"translation,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// FavoriteEntry is one saved analysis. Owner scopes visibility so a
// file- or DB-backed store never leaks one user's favorites into
// another's view.
type FavoriteEntry struct {
	ID             uuid.UUID `json:"id"`
	Owner          string    `json:"owner"`
	URL            string    `json:"url"`
	Summary        string    `json:"summary"`
	Translation    string    `json:"translation"`
	TargetLanguage string    `json:"target_language"`
	Title          *string   `json:"title,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// VisitRecord is one line of the append-only visit log.
type VisitRecord struct {
	User      string    `json:"user"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
}
