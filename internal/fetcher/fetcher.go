// Package fetcher downloads remote videos through yt-dlp, selecting a
// stream by an ordered fallback policy.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"vidinsight/internal/model"
	"vidinsight/pkg/executor"
)

// ErrNoStreamFound means no policy branch yielded a downloadable stream.
var ErrNoStreamFound = errors.New("no downloadable stream found")

// FetchError wraps a transport/platform-side download failure
// (age-restricted, private, geo-blocked, network failure).
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StreamDescriptor is one selectable representation of a remote video.
type StreamDescriptor struct {
	FormatID  string `json:"format_id"`
	Container string `json:"ext"`
	Codec     string `json:"acodec"`
	Height    int    `json:"height"`
	AudioOnly bool   `json:"-"`
	SizeBytes int64  `json:"filesize"`
}

// Fetcher resolves and downloads video streams.
type Fetcher struct {
	exec executor.Executor
}

func New(exec executor.Executor) *Fetcher {
	return &Fetcher{exec: exec}
}

// ytdlpDump is the subset of `yt-dlp -J` output the fetcher reads.
type ytdlpDump struct {
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader"`
	Duration  float64 `json:"duration"`
	ViewCount int64   `json:"view_count"`
	Formats   []struct {
		FormatID string  `json:"format_id"`
		Ext      string  `json:"ext"`
		ACodec   string  `json:"acodec"`
		VCodec   string  `json:"vcodec"`
		Height   int     `json:"height"`
		Filesize float64 `json:"filesize"`
	} `json:"formats"`
}

// ListStreams resolves the available streams for a URL along with
// best-effort video metadata.
func (f *Fetcher) ListStreams(ctx context.Context, url string) ([]StreamDescriptor, *model.VideoInfo, error) {
	out, err := f.exec.Execute(ctx, "yt-dlp", "-J", "--no-playlist", url)
	if err != nil {
		return nil, nil, &FetchError{URL: url, Err: err}
	}

	var dump ytdlpDump
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		return nil, nil, &FetchError{URL: url, Err: fmt.Errorf("failed to parse stream listing: %w", err)}
	}

	streams := make([]StreamDescriptor, 0, len(dump.Formats))
	for _, fm := range dump.Formats {
		if fm.FormatID == "" {
			continue
		}
		streams = append(streams, StreamDescriptor{
			FormatID:  fm.FormatID,
			Container: fm.Ext,
			Codec:     fm.ACodec,
			Height:    fm.Height,
			AudioOnly: fm.ACodec != "none" && (fm.VCodec == "none" || fm.VCodec == ""),
			SizeBytes: int64(fm.Filesize),
		})
	}

	info := &model.VideoInfo{}
	if dump.Title != "" {
		info.Title = &dump.Title
	}
	if dump.Uploader != "" {
		info.Author = &dump.Uploader
	}
	if dump.Duration > 0 {
		d := int(dump.Duration)
		info.DurationSeconds = &d
	}
	if dump.ViewCount > 0 {
		v := dump.ViewCount
		info.ViewCount = &v
	}

	log.Printf("[Fetcher] Resolved %d streams for %s (title: %q)", len(streams), url, dump.Title)
	return streams, info, nil
}

// Fetch resolves, selects and downloads one stream into destDir. The
// caller owns cleanup of the returned file.
func (f *Fetcher) Fetch(ctx context.Context, url, destDir string) (string, *model.VideoInfo, error) {
	streams, info, err := f.ListStreams(ctx, url)
	if err != nil {
		return "", nil, err
	}

	stream, err := SelectStream(streams)
	if err != nil {
		return "", info, err
	}

	destPath := filepath.Join(destDir, "source."+stream.Container)
	log.Printf("[Fetcher] Downloading format %s (%s) to %s", stream.FormatID, stream.Container, destPath)

	if _, err := f.exec.Execute(ctx, "yt-dlp",
		"-f", stream.FormatID,
		"--no-playlist",
		"-o", destPath,
		url,
	); err != nil {
		os.Remove(destPath)
		return "", info, &FetchError{URL: url, Err: err}
	}

	// A failed download must not leave a partial file mistaken for a
	// complete one.
	fi, err := os.Stat(destPath)
	if err != nil {
		return "", info, &FetchError{URL: url, Err: fmt.Errorf("download produced no file: %w", err)}
	}
	if fi.Size() == 0 {
		os.Remove(destPath)
		return "", info, &FetchError{URL: url, Err: errors.New("download produced an empty file")}
	}

	log.Printf("[Fetcher] Download complete: %s (%d bytes)", destPath, fi.Size())
	return destPath, info, nil
}
