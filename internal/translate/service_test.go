package translate

import (
	"context"
	"errors"
	"testing"
)

// fakeProvider counts calls so tests can assert when the service
// skips the network entirely.
type fakeProvider struct {
	detectLang   string
	detectErr    error
	translated   string
	translateErr error

	detectCalls    int
	translateCalls int
}

func (f *fakeProvider) Translate(ctx context.Context, text, targetCode string) (string, error) {
	f.translateCalls++
	if f.translateErr != nil {
		return "", f.translateErr
	}
	return f.translated, nil
}

func (f *fakeProvider) Detect(ctx context.Context, text string) (string, error) {
	f.detectCalls++
	return f.detectLang, f.detectErr
}

func TestTranslateSkipsWhenAlreadyEnglish(t *testing.T) {
	fp := &fakeProvider{detectLang: "en", translated: "should not be used"}
	s := NewService(fp)

	res := s.Translate(context.Background(), "Hello world.", "en")
	if res.Text != "Hello world." {
		t.Errorf("Text = %q, want original", res.Text)
	}
	if !res.Skipped {
		t.Error("result should be marked skipped")
	}
	if fp.translateCalls != 0 {
		t.Errorf("translateCalls = %d, want 0", fp.translateCalls)
	}
	if fp.detectCalls != 1 {
		t.Errorf("detectCalls = %d, want 1", fp.detectCalls)
	}
}

func TestTranslateNonEnglishTarget(t *testing.T) {
	fp := &fakeProvider{translated: "Γεια σου κόσμε."}
	s := NewService(fp)

	res := s.Translate(context.Background(), "Hello world.", "el")
	if res.Text != "Γεια σου κόσμε." {
		t.Errorf("Text = %q", res.Text)
	}
	if res.Skipped || res.Warning != "" {
		t.Errorf("unexpected skip/warning: %+v", res)
	}
	if fp.detectCalls != 0 {
		t.Errorf("detectCalls = %d, want 0 for non-English target", fp.detectCalls)
	}
}

func TestTranslateDegradesOnProviderError(t *testing.T) {
	fp := &fakeProvider{translateErr: errors.New("quota exceeded")}
	s := NewService(fp)

	res := s.Translate(context.Background(), "Hello world.", "el")
	if res.Text != "Hello world." {
		t.Errorf("Text = %q, want original kept on failure", res.Text)
	}
	if res.Warning == "" {
		t.Error("degraded result must carry a warning")
	}
}

func TestTranslateDetectionFailureStillTranslates(t *testing.T) {
	fp := &fakeProvider{detectErr: errors.New("detect down"), translated: "Hello."}
	s := NewService(fp)

	res := s.Translate(context.Background(), "Bonjour.", "en")
	if fp.translateCalls != 1 {
		t.Errorf("translateCalls = %d, want 1", fp.translateCalls)
	}
	if res.Text != "Hello." {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestTranslateWithoutProvider(t *testing.T) {
	s := NewService(nil)

	res := s.Translate(context.Background(), "Hello.", "el")
	if res.Text != "Hello." || res.Warning == "" {
		t.Errorf("unconfigured service should keep text with warning, got %+v", res)
	}
}

func TestLanguageCatalog(t *testing.T) {
	if code := Languages["Greek"]; code != "el" {
		t.Errorf("Greek = %q, want el", code)
	}
	if !SupportedCode("el") || SupportedCode("xx") {
		t.Error("SupportedCode misbehaves")
	}
	if NameForCode("el") != "Greek" {
		t.Errorf("NameForCode(el) = %q", NameForCode("el"))
	}
	if NameForCode("xx") != "xx" {
		t.Errorf("NameForCode(xx) = %q", NameForCode("xx"))
	}
	names := LanguageNames()
	if len(names) != len(Languages) {
		t.Errorf("LanguageNames() len = %d, want %d", len(names), len(Languages))
	}
}
