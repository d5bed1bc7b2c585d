package assist_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartstay/navigator/internal/adapters/assist"
	"github.com/smartstay/navigator/internal/core/domain"
)

func TestNominatimDescribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "navigator-test/1.0" {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		if r.URL.Query().Get("format") != "jsonv2" {
			t.Errorf("expected jsonv2 format, got %q", r.URL.Query().Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Malpe Beach, Malpe, Udupi taluk, Udupi district, Karnataka, 576103, India"}`))
	}))
	defer srv.Close()

	lookup := assist.NewNominatimLookup("navigator-test/1.0", assist.WithBaseURL(srv.URL))

	got, err := lookup.Describe(context.Background(), domain.GeoPoint{Lat: 13.3494, Lon: 74.7421})
	if err != nil {
		t.Fatal(err)
	}
	want := "Malpe Beach, Malpe, Udupi taluk, Udupi district"
	if got != want {
		t.Errorf("expected trimmed place text %q, got %q", want, got)
	}
}

func TestNominatimDescribe_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"rate limited", 429, "Too Many Requests"},
		{"empty place", 200, `{"display_name":""}`},
		{"bad json", 200, `{`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			lookup := assist.NewNominatimLookup("navigator-test/1.0", assist.WithBaseURL(srv.URL))
			if _, err := lookup.Describe(context.Background(), domain.GeoPoint{Lat: 13.35, Lon: 74.74}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNominatimConfigured(t *testing.T) {
	if assist.NewNominatimLookup("").Configured() {
		t.Error("lookup without a user agent must not be configured")
	}
	if !assist.NewNominatimLookup("navigator/1.0").Configured() {
		t.Error("lookup with a user agent must be configured")
	}
}
