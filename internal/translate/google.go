// Package translate sends text to a hosted translation service.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider defines the interface for translation providers
type Provider interface {
	// Translate returns text translated into targetCode.
	Translate(ctx context.Context, text, targetCode string) (string, error)

	// Detect returns the language code of text.
	Detect(ctx context.Context, text string) (string, error)
}

// GoogleProvider implements translation using the Google Translate v2 REST API
type GoogleProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleProvider creates a new Google translation provider
func NewGoogleProvider(apiKey, baseURL string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type detectResponse struct {
	Data struct {
		Detections [][]struct {
			Language string `json:"language"`
		} `json:"detections"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Translate sends text to the translation API
func (p *GoogleProvider) Translate(ctx context.Context, text, targetCode string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("target", targetCode)
	form.Set("format", "text")

	body, err := p.post(ctx, p.baseURL, form)
	if err != nil {
		return "", err
	}

	var tr translateResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("failed to parse translation response: %w", err)
	}
	if tr.Error != nil {
		return "", fmt.Errorf("translation API error %d: %s", tr.Error.Code, tr.Error.Message)
	}
	if len(tr.Data.Translations) == 0 {
		return "", fmt.Errorf("translation API returned no translations")
	}

	return tr.Data.Translations[0].TranslatedText, nil
}

// Detect asks the API which language text is written in
func (p *GoogleProvider) Detect(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("q", text)

	body, err := p.post(ctx, p.baseURL+"/detect", form)
	if err != nil {
		return "", err
	}

	var dr detectResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return "", fmt.Errorf("failed to parse detection response: %w", err)
	}
	if dr.Error != nil {
		return "", fmt.Errorf("detection API error %d: %s", dr.Error.Code, dr.Error.Message)
	}
	if len(dr.Data.Detections) == 0 || len(dr.Data.Detections[0]) == 0 {
		return "", fmt.Errorf("detection API returned no detections")
	}

	return dr.Data.Detections[0][0].Language, nil
}

func (p *GoogleProvider) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint+"?key="+url.QueryEscape(p.apiKey),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call translation API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[Translate] API error: status %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("translation API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
