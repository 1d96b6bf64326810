package fetcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeExecutor scripts yt-dlp behavior per subcommand.
type fakeExecutor struct {
	dumpJSON    string
	dumpErr     error
	downloadErr error
	// bytes written to the -o path on download; empty means write nothing
	payload []byte
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	for _, a := range args {
		if a == "-J" {
			return f.dumpJSON, f.dumpErr
		}
	}
	// download invocation: find -o argument
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			if len(f.payload) > 0 {
				if err := os.WriteFile(args[i+1], f.payload, 0644); err != nil {
					return "", err
				}
			} else {
				if err := os.WriteFile(args[i+1], nil, 0644); err != nil {
					return "", err
				}
			}
		}
	}
	return "", nil
}

const sampleDump = `{
	"title": "Test Video",
	"uploader": "Test Channel",
	"duration": 63.4,
	"view_count": 1200,
	"formats": [
		{"format_id": "140", "ext": "m4a", "acodec": "aac", "vcodec": "none", "filesize": 1048576},
		{"format_id": "18", "ext": "mp4", "acodec": "aac", "vcodec": "avc1", "height": 360, "filesize": 9437184}
	]
}`

func TestListStreams(t *testing.T) {
	f := New(&fakeExecutor{dumpJSON: sampleDump})

	streams, info, err := f.ListStreams(context.Background(), "https://youtu.be/abc")
	if err != nil {
		t.Fatalf("ListStreams() error = %v", err)
	}
	if len(streams) != 2 {
		t.Fatalf("ListStreams() returned %d streams, want 2", len(streams))
	}
	if !streams[0].AudioOnly {
		t.Errorf("format 140 should be audio-only")
	}
	if streams[1].AudioOnly {
		t.Errorf("format 18 should not be audio-only")
	}
	if info.Title == nil || *info.Title != "Test Video" {
		t.Errorf("Title = %v, want Test Video", info.Title)
	}
	if info.DurationSeconds == nil || *info.DurationSeconds != 63 {
		t.Errorf("DurationSeconds = %v, want 63", info.DurationSeconds)
	}
}

func TestListStreamsBadJSON(t *testing.T) {
	f := New(&fakeExecutor{dumpJSON: "not json"})

	_, _, err := f.ListStreams(context.Background(), "https://youtu.be/abc")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("ListStreams() error = %v, want *FetchError", err)
	}
}

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	f := New(&fakeExecutor{dumpJSON: sampleDump, payload: []byte("media bytes")})

	path, info, err := f.Fetch(context.Background(), "https://youtu.be/abc", dir)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Fetch() wrote outside dest dir: %s", path)
	}
	if !strings.HasSuffix(path, ".m4a") {
		t.Errorf("Fetch() should have picked the audio-only m4a stream, got %s", path)
	}
	if info == nil || info.Author == nil || *info.Author != "Test Channel" {
		t.Errorf("Fetch() metadata missing author")
	}
}

func TestFetchRejectsEmptyDownload(t *testing.T) {
	dir := t.TempDir()
	f := New(&fakeExecutor{dumpJSON: sampleDump})

	_, _, err := f.Fetch(context.Background(), "https://youtu.be/abc", dir)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want *FetchError for empty download", err)
	}

	// The partial file must not be left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("empty download left %d files in dest dir", len(entries))
	}
}

func TestFetchDownloadFailure(t *testing.T) {
	dir := t.TempDir()
	f := New(&fakeExecutor{dumpJSON: sampleDump, downloadErr: errors.New("HTTP Error 403")})

	_, _, err := f.Fetch(context.Background(), "https://youtu.be/abc", dir)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Fetch() error = %v, want *FetchError", err)
	}
}
