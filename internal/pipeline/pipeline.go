// Package pipeline runs one URL through fetch, extraction,
// transcription, summarization and translation.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vidinsight/internal/model"
	"vidinsight/internal/platform"
	"vidinsight/internal/transcribe"
	"vidinsight/internal/translate"
)

// Fetcher downloads the source video.
type Fetcher interface {
	Fetch(ctx context.Context, url, destDir string) (string, *model.VideoInfo, error)
}

// Extractor produces the normalized audio artifact.
type Extractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) (*model.AudioArtifact, error)
}

// Summarizer bounds the transcript.
type Summarizer interface {
	Summarize(ctx context.Context, text string, maxLength int) string
}

// Translator applies the translation policy; it degrades rather than
// fails (see translate.Service).
type Translator interface {
	Translate(ctx context.Context, text, targetCode string) *model.TranslationResult
}

// Runner wires the stages together. One Run per user action; stages
// are strictly sequential because each consumes the previous one's
// artifact.
type Runner struct {
	fetcher     Fetcher
	extractor   Extractor
	transcriber transcribe.Provider
	summarizer  Summarizer
	translator  Translator

	tempDir    string
	summaryMax int
}

func NewRunner(f Fetcher, x Extractor, t transcribe.Provider, s Summarizer, tr Translator, tempDir string, summaryMax int) *Runner {
	return &Runner{
		fetcher:     f,
		extractor:   x,
		transcriber: t,
		summarizer:  s,
		translator:  tr,
		tempDir:     tempDir,
		summaryMax:  summaryMax,
	}
}

// Run executes the pipeline for one request. The first stage error
// aborts the run; the returned error is stage-labeled. Working files
// live in a per-run directory that is removed on every exit path.
func (r *Runner) Run(ctx context.Context, req model.VideoRequest) (*model.Analysis, error) {
	start := time.Now()

	ok, platformOrReason := platform.Classify(req.URL)
	if !ok {
		return nil, &StageError{Stage: StageValidate, Err: &ValidationError{Reason: platformOrReason}}
	}
	if !translate.SupportedCode(req.TargetLanguage) {
		return nil, &StageError{Stage: StageValidate, Err: &ValidationError{
			Reason: "unsupported target language: " + req.TargetLanguage,
		}}
	}

	// Unique per-run path so concurrent requests never share files.
	runID := uuid.New()
	workDir := filepath.Join(r.tempDir, "vidinsight-"+runID.String())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, &StageError{Stage: StageFetch, Err: fmt.Errorf("failed to create work dir: %w", err)}
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.Printf("[Pipeline] Failed to clean up %s: %v", workDir, err)
		}
	}()

	log.Printf("[Pipeline] %s: starting run for %s (platform: %s)", runID, req.URL, platformOrReason)

	videoPath, info, err := r.fetcher.Fetch(ctx, req.URL, workDir)
	if err != nil {
		return nil, &StageError{Stage: StageFetch, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &StageError{Stage: StageFetch, Err: err}
	}

	audioPath := filepath.Join(workDir, "audio.mp3")
	artifact, err := r.extractor.Extract(ctx, videoPath, audioPath)
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}

	result, err := r.transcriber.Transcribe(ctx, artifact.LocalPath, req.SourceLanguage)
	if err != nil {
		return nil, &StageError{Stage: StageTranscribe, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &StageError{Stage: StageTranscribe, Err: err}
	}

	summary := r.summarizer.Summarize(ctx, result.Transcript, r.summaryMax)
	translation := r.translator.Translate(ctx, result.Transcript, req.TargetLanguage)

	analysis := &model.Analysis{
		ID:          runID,
		URL:         req.URL,
		Platform:    platformOrReason,
		VideoInfo:   info,
		Transcript:  result.Transcript,
		Summary:     summary,
		Translation: translation,
		CreatedAt:   time.Now().UTC(),
	}

	log.Printf("[Pipeline] %s: completed in %v (transcript: %d chars, provider: %s)",
		runID, time.Since(start), len(result.Transcript), result.Provider)
	return analysis, nil
}
