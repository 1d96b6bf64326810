package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// HostedProvider implements asynchronous STT against a hosted
// submit-then-poll API (AssemblyAI wire shape).
type HostedProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewHostedProvider creates a new hosted async STT provider
func NewHostedProvider(apiKey, baseURL string, pollInterval, pollTimeout time.Duration) *HostedProvider {
	return &HostedProvider{
		apiKey:       apiKey,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 90 * time.Second},
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// Name returns the provider name
func (p *HostedProvider) Name() string {
	return "hosted"
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptJob struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Transcribe uploads the audio, submits a transcription job and polls
// it to a terminal state. Polling always sleeps between attempts and
// gives up after the configured timeout.
func (p *HostedProvider) Transcribe(ctx context.Context, audioPath string, languageHint string) (*Result, error) {
	startTime := time.Now()

	uploadURL, err := p.upload(ctx, audioPath)
	if err != nil {
		return nil, &ProviderError{Kind: KindUpload, Err: err}
	}

	jobID, err := p.submit(ctx, uploadURL, languageHint)
	if err != nil {
		return nil, &ProviderError{Kind: KindSubmit, Err: err}
	}
	log.Printf("[Hosted STT] Job submitted: %s", jobID)

	job, err := p.poll(ctx, jobID)
	if err != nil {
		return nil, err
	}

	transcript := strings.TrimSpace(job.Text)
	if transcript == "" {
		return &Result{Provider: p.Name()}, &ProviderError{Kind: KindRemote, Err: fmt.Errorf("no speech detected in audio")}
	}

	log.Printf("[Hosted STT] Transcription successful: length=%d, duration=%v",
		len(transcript), time.Since(startTime))

	return &Result{
		Transcript: transcript,
		Provider:   p.Name(),
	}, nil
}

// upload sends raw audio bytes and returns the provider-side URL.
func (p *HostedProvider) upload(ctx context.Context, audioPath string) (string, error) {
	audioBytes, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}
	log.Printf("[Hosted STT] Uploading audio file: %s, size: %d bytes", audioPath, len(audioBytes))

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/upload", bytes.NewReader(audioBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("authorization", p.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload returned status %d: %s", resp.StatusCode, string(body))
	}

	var ur uploadResponse
	if err := json.Unmarshal(body, &ur); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if ur.UploadURL == "" {
		return "", fmt.Errorf("upload response missing upload_url: %s", string(body))
	}
	return ur.UploadURL, nil
}

// submit creates the transcription job and returns its id.
func (p *HostedProvider) submit(ctx context.Context, uploadURL, languageHint string) (string, error) {
	payload := map[string]string{"audio_url": uploadURL}
	if languageHint != "" {
		payload["language_code"] = languageHint
	}
	reqJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal submit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/transcript", bytes.NewReader(reqJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("authorization", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit job: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read submit response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("submit returned status %d: %s", resp.StatusCode, string(body))
	}

	var job transcriptJob
	if err := json.Unmarshal(body, &job); err != nil {
		return "", fmt.Errorf("failed to parse submit response: %w", err)
	}
	if job.ID == "" {
		return "", fmt.Errorf("submit response missing job id: %s", string(body))
	}
	return job.ID, nil
}

// poll queries the job status on a fixed interval until it leaves
// {queued, processing}. The wait between polls is interruptible via
// ctx, and the loop gives up with a timeout error after pollTimeout.
func (p *HostedProvider) poll(ctx context.Context, jobID string) (*transcriptJob, error) {
	deadline := time.Now().Add(p.pollTimeout)

	for attempt := 1; ; attempt++ {
		job, raw, err := p.pollOnce(ctx, jobID)
		if err != nil {
			return nil, &ProviderError{Kind: KindRemote, Err: err}
		}

		switch job.Status {
		case "completed":
			log.Printf("[Hosted STT] Job %s completed after %d polls", jobID, attempt)
			return job, nil
		case "error":
			return nil, &ProviderError{Kind: KindRemote, Err: fmt.Errorf("provider reported failure: %s", job.Error)}
		case "queued", "processing":
			// keep polling
		default:
			return nil, &ProviderError{Kind: KindRemote, Err: fmt.Errorf("unknown job status %q: %s", job.Status, raw)}
		}

		if time.Now().Add(p.pollInterval).After(deadline) {
			return nil, &ProviderError{Kind: KindTimeout, Err: fmt.Errorf("job %s still %s after %v", jobID, job.Status, p.pollTimeout)}
		}

		select {
		case <-ctx.Done():
			return nil, &ProviderError{Kind: KindTimeout, Err: ctx.Err()}
		case <-time.After(p.pollInterval):
		}
	}
}

func (p *HostedProvider) pollOnce(ctx context.Context, jobID string) (*transcriptJob, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"/transcript/"+jobID, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create poll request: %w", err)
	}
	req.Header.Set("authorization", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to poll job: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read poll response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("poll returned status %d: %s", resp.StatusCode, string(body))
	}

	var job transcriptJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, "", fmt.Errorf("failed to parse poll response: %w", err)
	}
	return &job, string(body), nil
}
