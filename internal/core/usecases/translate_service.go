package usecases

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/ports"
	"github.com/smartstay/navigator/internal/pkg/metrics"
)

const translateTimeout = 10 * time.Second

// TranslateService tries an ordered chain of translation providers; each
// failure advances to the next one.
type TranslateService struct {
	providers []ports.Translator
}

// NewTranslateService creates a translation chain in the given priority order.
func NewTranslateService(providers ...ports.Translator) *TranslateService {
	return &TranslateService{providers: providers}
}

// Translation is a completed translation with its source metadata.
type Translation struct {
	TranslatedText string `json:"translated_text"`
	OriginalText   string `json:"original_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	Provider       string `json:"provider,omitempty"`
}

// Translate converts text between languages. Identical languages
// short-circuit; total chain failure is ErrTranslationUnavailable.
func (s *TranslateService) Translate(ctx context.Context, text, sourceLang, targetLang string) (*Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrTranslationUnavailable
	}

	result := &Translation{
		OriginalText: text,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
	}

	if sourceLang == targetLang {
		result.TranslatedText = text
		return result, nil
	}

	for _, p := range s.providers {
		callCtx, cancel := context.WithTimeout(ctx, translateTimeout)
		translated, err := p.Translate(callCtx, text, sourceLang, targetLang)
		cancel()

		if err != nil {
			slog.Debug("translator failed, advancing chain", "provider", p.Name(), "error", err)
			continue
		}
		if translated = strings.TrimSpace(translated); translated != "" {
			metrics.TranslationRequests.WithLabelValues(p.Name()).Inc()
			result.TranslatedText = translated
			result.Provider = p.Name()
			return result, nil
		}
	}

	metrics.TranslationRequests.WithLabelValues("none").Inc()
	return nil, domain.ErrTranslationUnavailable
}

// Detection is a language-detection result.
type Detection struct {
	Language   string  `json:"detected_language"`
	Confidence float64 `json:"confidence"`
}

// Detect identifies the language of a text through whichever chain providers
// can detect. With no working detector it guesses English at low confidence
// rather than failing; detection feeds UI defaults, not correctness.
func (s *TranslateService) Detect(ctx context.Context, text string) Detection {
	text = strings.TrimSpace(text)
	if text == "" {
		return Detection{Language: "en", Confidence: 0.5}
	}

	for _, p := range s.providers {
		d, ok := p.(ports.LanguageDetector)
		if !ok {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, translateTimeout)
		lang, confidence, err := d.Detect(callCtx, text)
		cancel()

		if err != nil || lang == "" {
			continue
		}
		return Detection{Language: lang, Confidence: confidence}
	}
	return Detection{Language: "en", Confidence: 0.5}
}
