package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRouterServesPagesAndHealth(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"admin.html":     "<h1>admin</h1>",
		"player.html":    "<h1>player</h1>",
		"projector.html": "<h1>projector</h1>",
		"app.js":         "console.log('hi')",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	server := newTestServer(t, dir)

	cases := map[string]string{
		"/healthz":   "ok",
		"/admin":     "<h1>admin</h1>",
		"/player":    "<h1>player</h1>",
		"/projector": "<h1>projector</h1>",
		"/app.js":    "console.log('hi')",
	}
	for path, want := range cases {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		if string(body) != want {
			t.Fatalf("%s: expected %q, got %q", path, want, body)
		}
	}
}

func TestRouterRendersJoinQRCode(t *testing.T) {
	server := newTestServer(t, t.TempDir())

	resp, err := http.Get(server.URL + "/qr")
	if err != nil {
		t.Fatalf("get qr: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(body, []byte("\x89PNG")) {
		t.Fatalf("expected a PNG body")
	}
}

func TestJoinURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://quiz.local:3000/qr", nil)
	if got := joinURL("", r); got != "http://quiz.local:3000/player" {
		t.Fatalf("unexpected derived url %q", got)
	}
	r.Header.Set("X-Forwarded-Proto", "https")
	if got := joinURL("", r); got != "https://quiz.local:3000/player" {
		t.Fatalf("unexpected forwarded url %q", got)
	}
	if got := joinURL("https://quiz.example.com/", r); got != "https://quiz.example.com/player" {
		t.Fatalf("unexpected configured url %q", got)
	}
}

// Player names, options and answers come from clients; the bundled pages
// must only ever render them as text.
func TestBundledPagesRenderClientTextSafely(t *testing.T) {
	publicDir := filepath.Join("..", "..", "..", "public")
	files, err := filepath.Glob(filepath.Join(publicDir, "*"))
	if err != nil || len(files) == 0 {
		t.Fatalf("expected bundled pages in %s: %v", publicDir, err)
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		for _, sink := range []string{"innerHTML", "outerHTML", "insertAdjacentHTML", "document.write"} {
			if strings.Contains(string(data), sink) {
				t.Fatalf("%s writes markup through %s", filepath.Base(path), sink)
			}
		}
	}

	server := newTestServer(t, publicDir)
	for _, page := range []string{"/admin", "/player", "/projector", "/quiz.js"} {
		resp, err := http.Get(server.URL + page)
		if err != nil {
			t.Fatalf("get %s: %v", page, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", page, resp.StatusCode)
		}
	}
}
