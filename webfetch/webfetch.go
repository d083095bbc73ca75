package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"pplxgo/internal/utils"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "pplxgo-webfetch/1.0"
	// MaxBodySize is the maximum response body size (10MB)
	MaxBodySize = 10 * 1024 * 1024
	// maxRedirects caps how many HTTP redirects a fetch follows
	maxRedirects = 10
)

// Page holds a fetched web page. URL reflects the final destination after
// all redirects; Markdown is the page content converted from HTML.
type Page struct {
	URL      string
	Markdown string
}

// Option configures a [Fetch] call.
type Option func(*fetchConfig)

type fetchConfig struct {
	timeout   time.Duration
	userAgent string
	client    *http.Client
}

// WithTimeout overrides the [DefaultTimeout] for this fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *fetchConfig) {
		cfg.timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header for this fetch.
func WithUserAgent(userAgent string) Option {
	return func(cfg *fetchConfig) {
		cfg.userAgent = userAgent
	}
}

// WithHTTPClient replaces the HTTP client used for this fetch. The caller's
// client keeps its own redirect policy and timeouts.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *fetchConfig) {
		cfg.client = client
	}
}

// Fetch retrieves the page at rawURL and returns its content as Markdown.
//
// Partial URLs (e.g. "example.com") are normalised by prepending "https://".
// Up to ten redirects are followed and the final URL is reported in
// [Page.URL]. The response body is capped at [MaxBodySize] bytes, and the
// fetch fails when the URL is empty, the status is not 200 OK, the body
// exceeds the cap, the HTML cannot be converted, or the context is done.
func Fetch(ctx context.Context, rawURL string, opts ...Option) (Page, error) {
	cfg := fetchConfig{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	url := strings.TrimSpace(rawURL)
	if url == "" {
		return Page{}, fmt.Errorf("URL cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodGet, url, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.userAgent)

	client := cfg.client
	if client == nil {
		client = &http.Client{
			Timeout: cfg.timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (>%d)", maxRedirects)
				}
				return nil
			},
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctxWithTimeout.Err() != nil {
			return Page{}, fmt.Errorf("request timeout or canceled: %w", err)
		}
		return Page{}, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, resp.Status)
	}

	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return Page{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(htmlBytes) == MaxBodySize {
		return Page{}, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(htmlBytes))
	if err != nil {
		return Page{}, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return Page{
		URL:      resp.Request.URL.String(),
		Markdown: markdown,
	}, nil
}
