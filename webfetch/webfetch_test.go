package webfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchConvertsHTMLToMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><h1>Title</h1><p>Some <strong>bold</strong> text.</p></body></html>"))
	}))
	defer server.Close()

	page, err := Fetch(context.Background(), server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(page.Markdown, "# Title") {
		t.Errorf("expected heading in markdown, got %q", page.Markdown)
	}
	if !strings.Contains(page.Markdown, "**bold**") {
		t.Errorf("expected bold text in markdown, got %q", page.Markdown)
	}
	if page.URL == "" {
		t.Error("expected final URL to be set")
	}
}

func TestFetchEmptyURL(t *testing.T) {
	if _, err := Fetch(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty URL, got nil")
	}
}

func TestFetchNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := Fetch(context.Background(), server.URL, WithHTTPClient(server.Client())); err == nil {
		t.Fatal("expected error for 404, got nil")
	}
}

func TestFetchSendsUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "custom-agent" {
			t.Errorf("expected User-Agent 'custom-agent', got %s", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("<p>ok</p>"))
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, WithHTTPClient(server.Client()), WithUserAgent("custom-agent"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchHonorsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, WithTimeout(50*time.Millisecond))
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, target.URL+"/end", http.StatusFound)
			return
		}
		w.Write([]byte("<p>landed</p>"))
	}))
	defer target.Close()

	page, err := Fetch(context.Background(), target.URL+"/start", WithHTTPClient(target.Client()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(page.URL, "/end") {
		t.Errorf("expected final URL to end with /end, got %s", page.URL)
	}
}
