package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// scriptedServer imitates the hosted STT API: it answers "processing"
// a fixed number of times before reporting the job complete.
type scriptedServer struct {
	processingPolls int32
	uploadStatus    int
	submitStatus    int
	finalStatus     string // "completed" or "error"
	text            string

	uploads int32
	submits int32
	polls   int32
}

func (s *scriptedServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.uploads, 1)
		if s.uploadStatus != 0 {
			http.Error(w, "upload rejected", s.uploadStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/upload/1"})
	})
	mux.HandleFunc("/transcript", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.submits, 1)
		if s.submitStatus != 0 {
			http.Error(w, "submit rejected", s.submitStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"})
	})
	mux.HandleFunc("/transcript/", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&s.polls, 1)
		job := map[string]string{"id": "job-1"}
		if n <= s.processingPolls {
			job["status"] = "processing"
		} else {
			job["status"] = s.finalStatus
			if s.finalStatus == "completed" {
				job["text"] = s.text
			} else {
				job["error"] = "audio unintelligible"
			}
		}
		json.NewEncoder(w).Encode(job)
	})
	return mux
}

func audioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(path, []byte("fake audio bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHostedTranscribe(t *testing.T) {
	srv := &scriptedServer{processingPolls: 3, finalStatus: "completed", text: "hello from the other side"}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	interval := 5 * time.Millisecond
	p := NewHostedProvider("key", ts.URL, interval, time.Second)

	start := time.Now()
	res, err := p.Transcribe(context.Background(), audioFixture(t), "en")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if res.Transcript != "hello from the other side" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if got := atomic.LoadInt32(&srv.polls); got != 4 {
		t.Errorf("polls = %d, want exactly N+1 = 4", got)
	}
	if elapsed := time.Since(start); elapsed < 3*interval {
		t.Errorf("poll loop did not sleep between polls (elapsed %v)", elapsed)
	}
}

func TestHostedTranscribeTimeout(t *testing.T) {
	// A job that never leaves "processing" must terminate with a
	// timeout rather than hanging.
	srv := &scriptedServer{processingPolls: 1 << 30, finalStatus: "completed"}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	p := NewHostedProvider("key", ts.URL, 5*time.Millisecond, 40*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := p.Transcribe(context.Background(), audioFixture(t), "")
		done <- err
	}()

	select {
	case err := <-done:
		var pe *ProviderError
		if !errors.As(err, &pe) || pe.Kind != KindTimeout {
			t.Fatalf("Transcribe() error = %v, want timeout ProviderError", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Transcribe() hung instead of timing out")
	}
}

func TestHostedTranscribeJobError(t *testing.T) {
	srv := &scriptedServer{finalStatus: "error"}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	p := NewHostedProvider("key", ts.URL, time.Millisecond, time.Second)

	_, err := p.Transcribe(context.Background(), audioFixture(t), "")
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Kind != KindRemote {
		t.Fatalf("Transcribe() error = %v, want remote ProviderError", err)
	}
	if !strings.Contains(err.Error(), "audio unintelligible") {
		t.Errorf("error should carry the provider reason, got %v", err)
	}
}

func TestHostedUploadFailureShortCircuits(t *testing.T) {
	srv := &scriptedServer{uploadStatus: http.StatusUnauthorized}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	p := NewHostedProvider("bad-key", ts.URL, time.Millisecond, time.Second)

	_, err := p.Transcribe(context.Background(), audioFixture(t), "")
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Kind != KindUpload {
		t.Fatalf("Transcribe() error = %v, want upload ProviderError", err)
	}
	if atomic.LoadInt32(&srv.submits) != 0 || atomic.LoadInt32(&srv.polls) != 0 {
		t.Error("upload failure must short-circuit before submit/poll")
	}
}

func TestHostedSubmitFailure(t *testing.T) {
	srv := &scriptedServer{submitStatus: http.StatusBadRequest}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	p := NewHostedProvider("key", ts.URL, time.Millisecond, time.Second)

	_, err := p.Transcribe(context.Background(), audioFixture(t), "")
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Kind != KindSubmit {
		t.Fatalf("Transcribe() error = %v, want submit ProviderError", err)
	}
	if atomic.LoadInt32(&srv.polls) != 0 {
		t.Error("submit failure must short-circuit before polling")
	}
}

func TestHostedTranscribeCancel(t *testing.T) {
	srv := &scriptedServer{processingPolls: 1 << 30, finalStatus: "completed"}
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	p := NewHostedProvider("key", ts.URL, 50*time.Millisecond, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Transcribe(ctx, audioFixture(t), "")
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("Transcribe() succeeded despite cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Transcribe() did not return after cancellation")
	}
}
