// Package audio extracts and normalizes the audio track of a
// downloaded video for speech recognition.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"vidinsight/internal/model"
	"vidinsight/pkg/executor"
)

// Post-condition violations.
var (
	ErrEmptyOutput     = errors.New("extracted audio is empty")
	ErrInvalidFormat   = errors.New("extracted file is not valid audio")
	ErrPayloadTooLarge = errors.New("extracted audio exceeds the transcription provider size limit")
)

// ExtractionError wraps a transcode failure.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("audio extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// minViableBytes guards against transcodes that technically succeed
// but produce a header-only file.
const minViableBytes = 1024

const (
	targetSampleRate = 16000
	targetChannels   = 1
)

// Extractor transcodes video containers into mono 16 kHz audio.
type Extractor struct {
	exec executor.Executor
	// maxBytes is the transcription provider's documented payload
	// ceiling; 0 disables the check.
	maxBytes int64
}

func New(exec executor.Executor, maxBytes int64) *Extractor {
	return &Extractor{exec: exec, maxBytes: maxBytes}
}

// Extract demuxes/transcodes videoPath into audioPath. Mono 16 kHz is
// used because the speech providers neither need nor reward more.
func (x *Extractor) Extract(ctx context.Context, videoPath, audioPath string) (*model.AudioArtifact, error) {
	log.Printf("[Audio] Extracting audio: %s -> %s", videoPath, audioPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", fmt.Sprintf("%d", targetSampleRate),
		"-ac", fmt.Sprintf("%d", targetChannels),
		"-y",
		audioPath,
	}

	if _, err := x.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return nil, &ExtractionError{Err: err}
	}

	return x.verify(audioPath)
}

// verify enforces the post-conditions before the artifact reaches the
// transcriber: non-empty output, an audio MIME type, and the provider
// size ceiling.
func (x *Extractor) verify(audioPath string) (*model.AudioArtifact, error) {
	fi, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyOutput, err)
	}
	if fi.Size() < minViableBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrEmptyOutput, fi.Size())
	}

	mtype, err := mimetype.DetectFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if !strings.HasPrefix(mtype.String(), "audio") {
		return nil, fmt.Errorf("%w: sniffed %s", ErrInvalidFormat, mtype.String())
	}

	if x.maxBytes > 0 && fi.Size() > x.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrPayloadTooLarge, fi.Size(), x.maxBytes)
	}

	log.Printf("[Audio] Extraction verified: %s (%d bytes, %s)", audioPath, fi.Size(), mtype.String())
	return &model.AudioArtifact{
		LocalPath:    audioPath,
		MIMEType:     mtype.String(),
		SampleRate:   targetSampleRate,
		ChannelCount: targetChannels,
		SizeBytes:    fi.Size(),
	}, nil
}
