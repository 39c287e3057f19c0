package modules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebArchive_Enumerate(t *testing.T) {
	cdx := `[["original"],
["https://www.example.com/index.html"],
["http://api.example.com:8080/v1/users"],
["https://www.example.com/about"],
["https://example.com/"],
["::not a url::"]]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "example.com" {
			t.Errorf("query url = %q, want example.com", got)
		}
		w.Write([]byte(cdx))
	}))
	defer srv.Close()

	mod := NewWebArchive("test-agent")
	mod.BaseURL = srv.URL

	hosts, err := mod.Enumerate(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		"www.example.com": true,
		"api.example.com": true,
	}
	if len(hosts) != len(want) {
		t.Fatalf("got %d hosts, want %d: %v", len(hosts), len(want), hosts)
	}
	for _, h := range hosts {
		if !want[h] {
			t.Errorf("unexpected host %q", h)
		}
	}
}

func TestWebArchive_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	mod := NewWebArchive("test-agent")
	mod.BaseURL = srv.URL

	hosts, err := mod.Enumerate(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hosts) != 0 {
		t.Errorf("got %d hosts from empty index, want 0", len(hosts))
	}
}

func TestWebArchive_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	mod := NewWebArchive("test-agent")
	mod.BaseURL = srv.URL

	if _, err := mod.Enumerate(context.Background(), "example.com"); err == nil {
		t.Fatal("expected error on 502")
	}
}
