package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderOption is an extra header to set on an outbound request, applied
// after the standard Content-Type and Authorization headers so callers can
// override either.
type HeaderOption struct {
	Key   string
	Value string
}

// DoPost performs a synchronous HTTP POST with a JSON body and returns the
// response together with its fully-read body. Every request is tagged with a
// fresh X-Request-ID so client logs can be correlated with server-side logs.
//
// Status handling is intentionally left to the caller: any response that
// arrived, 2xx or not, is returned with a nil error so the caller can apply
// its own classification. A non-nil error means the exchange never completed
// (marshal failure, request construction failure, transport failure, or an
// unreadable body).
//
// The response body is always closed before returning; close errors are
// logged without overriding the primary result.
func DoPost(ctx context.Context, client *http.Client, url, apiKey string, body any, headers ...HeaderOption) (*http.Response, []byte, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	slog.Debug("sending request",
		"request_id", requestID,
		"url", url,
		"body_size", len(jsonBody),
	)

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	slog.Debug("received response",
		"request_id", requestID,
		"status", res.StatusCode,
		"body_size", len(respBody),
		"duration", time.Since(requestStart),
	)

	return res, respBody, nil
}

// CloseWithLog closes c, logging a warning when closing fails so the failure
// is visible without overriding whatever the caller is about to return.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}
