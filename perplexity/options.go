package perplexity

import (
	"log/slog"
	"net/http"
)

// Option configures a [Client] at construction time.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Use this when targeting a proxy or
// a local test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the HTTP client shared by every call made through
// this instance. The default client carries the fixed 60-second request
// timeout; a replacement is responsible for its own timeout and for any
// cancellation the caller needs beyond context deadlines.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger replaces the default logger ([slog.Default]) used for request
// and response logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithConfig supplies initial configuration overrides. The mapping is
// validated during [New]; an unknown key or mistyped value fails
// construction with a [*ConfigError].
func WithConfig(config map[string]any) Option {
	return func(c *Client) {
		c.initialConfig = config
	}
}

// AskOption configures a single [Client.Ask] call.
type AskOption func(*askOptions)

type askOptions struct {
	model         string
	systemRole    string
	appendHistory bool
	responseType  ResponseType
	config        map[string]any
}

// WithModel overrides the model for this call only.
func WithModel(model string) AskOption {
	return func(o *askOptions) {
		o.model = model
	}
}

// WithSystemRole overrides the system role for this call only.
func WithSystemRole(systemRole string) AskOption {
	return func(o *askOptions) {
		o.systemRole = systemRole
	}
}

// WithAppendHistory records the exchange in the client's history when the
// call succeeds with a non-empty assistant answer. Without this option Ask
// never touches history.
func WithAppendHistory() AskOption {
	return func(o *askOptions) {
		o.appendHistory = true
	}
}

// WithResponseType selects the projection [Response.Value] returns for this
// call. The type is validated before any network I/O.
func WithResponseType(t ResponseType) AskOption {
	return func(o *askOptions) {
		o.responseType = t
	}
}

// WithRequestConfig supplies configuration for this call only. Entries are
// validated like [Client.SetConfig] input and only non-default values reach
// the payload. Instance-level overrides set via SetConfig are deliberately
// NOT applied to Ask; they belong to [Client.Chat].
func WithRequestConfig(config map[string]any) AskOption {
	return func(o *askOptions) {
		o.config = config
	}
}

// ChatOption configures a single [Client.Chat] call.
type ChatOption func(*chatOptions)

type chatOptions struct {
	responseType ResponseType
}

// WithChatResponseType selects the projection [Response.Value] returns for
// this chat call. The type is validated before any network I/O.
func WithChatResponseType(t ResponseType) ChatOption {
	return func(o *chatOptions) {
		o.responseType = t
	}
}
