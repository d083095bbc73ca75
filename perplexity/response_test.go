package perplexity

import (
	"net/http"
	"strings"
	"testing"
)

func TestParseResponseType(t *testing.T) {
	for _, valid := range []string{"raw", "text", "json", "llm_response"} {
		got, err := ParseResponseType(valid)
		if err != nil {
			t.Errorf("unexpected error for %q: %v", valid, err)
		}
		if string(got) != valid {
			t.Errorf("expected %q, got %q", valid, got)
		}
	}

	_, err := ParseResponseType("bogus")
	if err == nil {
		t.Fatal("expected error for invalid response type, got nil")
	}
	if !strings.Contains(err.Error(), "valid options") {
		t.Errorf("expected error to list valid options, got %v", err)
	}
}

func TestResponseViews(t *testing.T) {
	body := `{"choices":[{"message":{"role":"assistant","content":"hello"}}],"citations":["https://example.com"]}`
	raw := &http.Response{StatusCode: http.StatusOK}
	r := newResponse(raw, []byte(body), TypeLLMResponse)

	if r.Raw() != raw {
		t.Error("expected raw view to return the transport response")
	}
	if r.Text() != body {
		t.Errorf("unexpected text view: %q", r.Text())
	}
	if r.JSON() == nil {
		t.Fatal("expected decoded JSON view")
	}
	if r.Content() != "hello" {
		t.Errorf("expected content 'hello', got %q", r.Content())
	}
	if len(r.Citations()) != 1 || r.Citations()[0] != "https://example.com" {
		t.Errorf("unexpected citations: %v", r.Citations())
	}
	if r.Value() != "hello" {
		t.Errorf("expected requested view to be the assistant text, got %v", r.Value())
	}
}

func TestResponseViewSelection(t *testing.T) {
	body := `{"choices":[{"message":{"content":"hi"}}]}`
	r := newResponse(&http.Response{}, []byte(body), TypeText)

	if r.View(TypeText) != body {
		t.Errorf("unexpected text view: %v", r.View(TypeText))
	}
	if r.View(TypeLLMResponse) != "hi" {
		t.Errorf("unexpected llm_response view: %v", r.View(TypeLLMResponse))
	}
	if r.View("bogus") != nil {
		t.Errorf("expected nil for unknown view, got %v", r.View("bogus"))
	}
	if r.Value() != body {
		t.Errorf("expected requested text view, got %v", r.Value())
	}
}

func TestResponseWithInvalidJSONBody(t *testing.T) {
	r := newResponse(&http.Response{}, []byte("not json at all"), TypeJSON)

	if r.JSON() != nil {
		t.Errorf("expected nil JSON view, got %v", r.JSON())
	}
	if r.Value() != nil {
		t.Errorf("expected nil requested view, got %v", r.Value())
	}
	if r.Content() != "" {
		t.Errorf("expected empty content, got %q", r.Content())
	}
	if r.Text() != "not json at all" {
		t.Errorf("expected text view to survive, got %q", r.Text())
	}
}

func TestResponseWithMissingContentPath(t *testing.T) {
	r := newResponse(&http.Response{}, []byte(`{"id":"resp_1","object":"chat.completion"}`), TypeLLMResponse)

	if r.Content() != "" {
		t.Errorf("expected empty content, got %q", r.Content())
	}
	if r.JSON() == nil {
		t.Error("expected JSON view for a decodable body")
	}
	if r.Value() != "" {
		t.Errorf("expected empty requested view, got %v", r.Value())
	}
}

func TestResponseUsage(t *testing.T) {
	body := `{"choices":[{"message":{"content":"x"}}],"usage":{"prompt_tokens":10,"completion_tokens":20,"total_tokens":30}}`
	r := newResponse(&http.Response{}, []byte(body), TypeLLMResponse)

	usage := r.Usage()
	if usage == nil {
		t.Fatal("expected usage to be decoded")
	}
	if usage.TotalTokens != 30 {
		t.Errorf("expected 30 total tokens, got %d", usage.TotalTokens)
	}
}
