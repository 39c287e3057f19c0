package modules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOTX_Enumerate(t *testing.T) {
	body := `{"passive_dns": [
		{"hostname": "www.example.com"},
		{"hostname": "Mail.Example.Com"},
		{"hostname": "www.example.com"},
		{"hostname": "example.com"},
		{"hostname": "unrelated.org"},
		{"hostname": ""}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/indicators/domain/example.com/passive_dns") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	mod := NewOTX("test-agent")
	mod.BaseURL = srv.URL

	hosts, err := mod.Enumerate(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		"www.example.com":  true,
		"mail.example.com": true,
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

func TestOTX_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nope"))
	}))
	defer srv.Close()

	mod := NewOTX("test-agent")
	mod.BaseURL = srv.URL

	if _, err := mod.Enumerate(context.Background(), "example.com"); err == nil {
		t.Fatal("expected parse error")
	}
}
