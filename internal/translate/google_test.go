package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleProviderTranslate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			http.Error(w, "missing key", http.StatusForbidden)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("target") != "el" {
			http.Error(w, "bad target", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"translations": []map[string]string{{"translatedText": "Γεια σου"}},
			},
		})
	}))
	defer ts.Close()

	p := NewGoogleProvider("test-key", ts.URL)
	got, err := p.Translate(context.Background(), "Hello", "el")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "Γεια σου" {
		t.Errorf("Translate() = %q", got)
	}
}

func TestGoogleProviderDetect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"detections": [][]map[string]any{{{"language": "en"}}},
			},
		})
	}))
	defer ts.Close()

	p := NewGoogleProvider("test-key", ts.URL)
	got, err := p.Detect(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if got != "en" {
		t.Errorf("Detect() = %q, want en", got)
	}
}

func TestGoogleProviderHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer ts.Close()

	p := NewGoogleProvider("test-key", ts.URL)
	if _, err := p.Translate(context.Background(), "Hello", "el"); err == nil {
		t.Fatal("Translate() should surface HTTP errors")
	}
}
