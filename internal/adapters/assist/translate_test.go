package assist_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartstay/navigator/internal/adapters/assist"
)

func TestLibreTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.Form.Get("q") != "hello" || r.Form.Get("source") != "en" || r.Form.Get("target") != "es" {
			t.Errorf("unexpected form values: %v", r.Form)
		}
		if r.Form.Get("api_key") != "lt-key" {
			t.Errorf("expected api key forwarded, got %q", r.Form.Get("api_key"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText":"hola"}`))
	}))
	defer srv.Close()

	lt := assist.NewLibreTranslate(srv.URL, "lt-key")
	got, err := lt.Translate(context.Background(), "hello", "en", "es")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hola" {
		t.Errorf("expected hola, got %q", got)
	}
}

func TestLibreTranslate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	lt := assist.NewLibreTranslate(srv.URL, "")
	if _, err := lt.Translate(context.Background(), "hello", "en", "es"); err == nil {
		t.Error("expected an error on 500")
	}
}

func TestMyMemory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("langpair") != "en|fr" {
			t.Errorf("unexpected langpair %q", r.URL.Query().Get("langpair"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseStatus":200,"responseData":{"translatedText":"bonjour"}}`))
	}))
	defer srv.Close()

	mm := assist.NewMyMemory(srv.URL)
	got, err := mm.Translate(context.Background(), "hello", "en", "fr")
	if err != nil {
		t.Fatal(err)
	}
	if got != "bonjour" {
		t.Errorf("expected bonjour, got %q", got)
	}
}

func TestMyMemory_EmbeddedFailure(t *testing.T) {
	// MyMemory reports quota errors inside a 200 response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseStatus":403,"responseData":{"translatedText":""}}`))
	}))
	defer srv.Close()

	mm := assist.NewMyMemory(srv.URL)
	if _, err := mm.Translate(context.Background(), "hello", "en", "fr"); err == nil {
		t.Error("expected an error on embedded api failure")
	}
}
