package fetcher

import (
	"errors"
	"testing"
)

func TestSelectStream(t *testing.T) {
	audioSmall := StreamDescriptor{FormatID: "140", Container: "m4a", Codec: "aac", AudioOnly: true, SizeBytes: 1 << 20}
	audioLarge := StreamDescriptor{FormatID: "251", Container: "webm", Codec: "opus", AudioOnly: true, SizeBytes: 4 << 20}
	prog360 := StreamDescriptor{FormatID: "18", Container: "mp4", Codec: "aac", Height: 360}
	prog720 := StreamDescriptor{FormatID: "22", Container: "mp4", Codec: "aac", Height: 720}
	videoOnly := StreamDescriptor{FormatID: "137", Container: "mp4", Codec: "none", Height: 1080}
	exotic := StreamDescriptor{FormatID: "99", Container: "flv", Codec: "none", Height: 240}

	tests := []struct {
		name    string
		streams []StreamDescriptor
		want    string
		wantErr bool
	}{
		{
			name:    "prefers smallest audio-only",
			streams: []StreamDescriptor{prog720, audioLarge, audioSmall},
			want:    "140",
		},
		{
			name:    "audio-only beats progressive",
			streams: []StreamDescriptor{prog360, audioLarge},
			want:    "251",
		},
		{
			name:    "smallest progressive when no audio-only",
			streams: []StreamDescriptor{prog720, prog360, videoOnly},
			want:    "18",
		},
		{
			name:    "video-only stream is not progressive",
			streams: []StreamDescriptor{videoOnly, prog720},
			want:    "22",
		},
		{
			name:    "falls back to any supported container",
			streams: []StreamDescriptor{videoOnly},
			want:    "137",
		},
		{
			name:    "no candidate at all",
			streams: []StreamDescriptor{exotic},
			wantErr: true,
		},
		{
			name:    "empty listing",
			streams: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectStream(tt.streams)
			if tt.wantErr {
				if !errors.Is(err, ErrNoStreamFound) {
					t.Fatalf("SelectStream() error = %v, want ErrNoStreamFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectStream() error = %v", err)
			}
			if got.FormatID != tt.want {
				t.Errorf("SelectStream() = %s, want %s", got.FormatID, tt.want)
			}
		})
	}
}

func TestSelectStreamUnknownSizes(t *testing.T) {
	// Streams without a reported filesize must not shadow ones that
	// report a size.
	known := StreamDescriptor{FormatID: "a", Container: "m4a", Codec: "aac", AudioOnly: true, SizeBytes: 2 << 20}
	unknown := StreamDescriptor{FormatID: "b", Container: "m4a", Codec: "aac", AudioOnly: true}

	got, err := SelectStream([]StreamDescriptor{unknown, known})
	if err != nil {
		t.Fatalf("SelectStream() error = %v", err)
	}
	if got.FormatID != "a" {
		t.Errorf("SelectStream() = %s, want a", got.FormatID)
	}
}
