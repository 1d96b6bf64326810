package executor

import "context"

// Executor runs external media tools (yt-dlp, ffmpeg).
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
