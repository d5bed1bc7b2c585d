package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LibreTranslate is a client for a LibreTranslate instance.
type LibreTranslate struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLibreTranslate constructs a client for the given instance. The public
// instances work without a key; self-hosted ones may require one.
func NewLibreTranslate(baseURL, apiKey string) *LibreTranslate {
	if baseURL == "" {
		baseURL = "https://libretranslate.de"
	}
	return &LibreTranslate{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *LibreTranslate) Name() string { return "libretranslate" }

// Translate calls the LibreTranslate /translate endpoint.
func (t *LibreTranslate) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("source", sourceLang)
	form.Set("target", targetLang)
	form.Set("format", "text")
	if t.apiKey != "" {
		form.Set("api_key", t.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("libretranslate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("libretranslate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("libretranslate: status %d", resp.StatusCode)
	}

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("libretranslate: decode response: %w", err)
	}
	return out.TranslatedText, nil
}

// Detect calls the LibreTranslate /detect endpoint and returns the top guess.
func (t *LibreTranslate) Detect(ctx context.Context, text string) (string, float64, error) {
	form := url.Values{}
	form.Set("q", text)
	if t.apiKey != "" {
		form.Set("api_key", t.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/detect", strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("libretranslate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("libretranslate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("libretranslate: status %d", resp.StatusCode)
	}

	var guesses []struct {
		Confidence float64 `json:"confidence"`
		Language   string  `json:"language"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&guesses); err != nil {
		return "", 0, fmt.Errorf("libretranslate: decode response: %w", err)
	}
	if len(guesses) == 0 {
		return "", 0, fmt.Errorf("libretranslate: no language detected")
	}

	// LibreTranslate reports confidence as a 0-100 percentage.
	return guesses[0].Language, guesses[0].Confidence / 100, nil
}

// MyMemory is a client for the MyMemory translation API, used as the second
// link of the translation chain.
type MyMemory struct {
	baseURL    string
	httpClient *http.Client
}

// NewMyMemory constructs a MyMemory client.
func NewMyMemory(baseURL string) *MyMemory {
	if baseURL == "" {
		baseURL = "https://api.mymemory.translated.net"
	}
	return &MyMemory{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (t *MyMemory) Name() string { return "mymemory" }

// Translate calls the MyMemory /get endpoint. MyMemory reports its own status
// inside a 200 response body.
func (t *MyMemory) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", sourceLang+"|"+targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		t.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: build request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory: status %d", resp.StatusCode)
	}

	var out struct {
		ResponseStatus int `json:"responseStatus"`
		ResponseData   struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("mymemory: decode response: %w", err)
	}
	if out.ResponseStatus != 200 {
		return "", fmt.Errorf("mymemory: api status %d", out.ResponseStatus)
	}
	return out.ResponseData.TranslatedText, nil
}
