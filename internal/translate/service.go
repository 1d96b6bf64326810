package translate

import (
	"context"
	"log"

	"vidinsight/internal/model"
)

// Service wraps a Provider with the pipeline's translation policy:
// skip the round-trip when the text is already in the target language,
// and degrade to the original text (with a warning) when the provider
// fails. The pipeline never aborts at the translation stage.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Translate applies the policy and always returns a usable result.
func (s *Service) Translate(ctx context.Context, text, targetCode string) *model.TranslationResult {
	if s.provider == nil {
		log.Printf("[Translate] No provider configured, keeping original text")
		return &model.TranslationResult{
			Text:           text,
			TargetLanguage: targetCode,
			Warning:        "translation not configured; original text kept",
		}
	}

	// Avoid a redundant round-trip for English targets.
	if targetCode == "en" {
		detected, err := s.provider.Detect(ctx, text)
		if err == nil && detected == "en" {
			log.Printf("[Translate] Text already in English, skipping translation")
			return &model.TranslationResult{
				Text:           text,
				TargetLanguage: targetCode,
				Skipped:        true,
			}
		}
		if err != nil {
			log.Printf("[Translate] Detection failed, proceeding with translation: %v", err)
		}
	}

	translated, err := s.provider.Translate(ctx, text, targetCode)
	if err != nil {
		log.Printf("[Translate] Translation failed, keeping original text: %v", err)
		return &model.TranslationResult{
			Text:           text,
			TargetLanguage: targetCode,
			Warning:        "translation failed; original text kept",
		}
	}

	return &model.TranslationResult{
		Text:           translated,
		TargetLanguage: targetCode,
	}
}
