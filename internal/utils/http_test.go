package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDoPostSetsStandardHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type 'application/json', got %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected Authorization 'Bearer test-key', got %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID to be set")
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	res, body, err := DoPost(context.Background(), server.Client(), server.URL, "test-key", map[string]string{"hello": "world"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.StatusCode)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", string(body))
	}
}

func TestDoPostWithoutAPIKeyOmitsAuthorization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no Authorization header, got %s", r.Header.Get("Authorization"))
		}
	}))
	defer server.Close()

	_, _, err := DoPost(context.Background(), server.Client(), server.URL, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoPostSendsMarshaledBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal("failed to decode request body: " + err.Error())
		}
		if payload["model"] != "sonar" {
			t.Errorf("expected model 'sonar', got %v", payload["model"])
		}
	}))
	defer server.Close()

	_, _, err := DoPost(context.Background(), server.Client(), server.URL, "key", map[string]string{"model": "sonar"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoPostReturnsNon2xxResponseWithoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	res, body, err := DoPost(context.Background(), server.Client(), server.URL, "key", nil)
	if err != nil {
		t.Fatalf("expected nil error for a response that arrived, got %v", err)
	}
	if res.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", res.StatusCode)
	}
	if !strings.Contains(string(body), "rate limited") {
		t.Errorf("expected body to be passed through, got %s", string(body))
	}
}

func TestDoPostTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, _, err := DoPost(context.Background(), nil, server.URL, "key", nil)
	if err == nil {
		t.Fatal("expected error for closed server, got nil")
	}
}

func TestDoPostHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := DoPost(ctx, server.Client(), server.URL, "key", nil)
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
}

func TestDoPostCustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Title") != "pplxgo" {
			t.Errorf("expected X-Title 'pplxgo', got %s", r.Header.Get("X-Title"))
		}
	}))
	defer server.Close()

	_, _, err := DoPost(context.Background(), server.Client(), server.URL, "key", nil, HeaderOption{Key: "X-Title", Value: "pplxgo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDoPostUnmarshalableBody(t *testing.T) {
	_, _, err := DoPost(context.Background(), nil, "http://127.0.0.1:0", "key", make(chan int))
	if err == nil {
		t.Fatal("expected marshal error, got nil")
	}
	if !strings.Contains(err.Error(), "marshaling") {
		t.Errorf("expected marshal error, got %v", err)
	}
}
