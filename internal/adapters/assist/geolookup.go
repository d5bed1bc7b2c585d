package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smartstay/navigator/internal/core/domain"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimLookup resolves coordinates to nearby-place text through the
// OpenStreetMap Nominatim API. Nominatim requires a descriptive User-Agent;
// requests without one get rejected.
type NominatimLookup struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimLookup constructs a lookup with sane defaults.
func NewNominatimLookup(userAgent string, opts ...func(*NominatimLookup)) *NominatimLookup {
	l := &NominatimLookup{
		baseURL:   defaultNominatimURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithBaseURL overrides the default Nominatim endpoint (useful for tests and
// self-hosted instances).
func WithBaseURL(u string) func(*NominatimLookup) {
	return func(l *NominatimLookup) {
		if u != "" {
			l.baseURL = u
		}
	}
}

// WithHTTPClient overrides the internal HTTP client.
func WithHTTPClient(hc *http.Client) func(*NominatimLookup) {
	return func(l *NominatimLookup) {
		l.httpClient = hc
	}
}

func (l *NominatimLookup) Name() string { return "nominatim" }

// Configured reports whether the lookup can identify itself upstream.
func (l *NominatimLookup) Configured() bool { return l.userAgent != "" }

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Type        string `json:"type"`
}

// Describe reverse-geocodes the coordinate into a short nearby-places text.
func (l *NominatimLookup) Describe(ctx context.Context, loc domain.GeoPoint) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", loc.Lat))
	q.Set("lon", fmt.Sprintf("%f", loc.Lon))
	q.Set("format", "jsonv2")
	q.Set("zoom", "16")

	endpoint := l.baseURL + "/reverse?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("nominatim: reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("nominatim: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var place nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return "", fmt.Errorf("nominatim: decode response: %w", err)
	}

	if place.DisplayName == "" {
		return "", fmt.Errorf("nominatim: no place at %.4f, %.4f", loc.Lat, loc.Lon)
	}

	// Keep the first few address components; the full display name runs to
	// country level and reads poorly in a chat answer.
	parts := strings.Split(place.DisplayName, ", ")
	if len(parts) > 4 {
		parts = parts[:4]
	}
	return strings.Join(parts, ", "), nil
}
