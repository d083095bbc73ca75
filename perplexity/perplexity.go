package perplexity

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"pplxgo/internal/utils"
)

const (
	// defaultBaseURL is the canonical base URL for the Perplexity API.
	defaultBaseURL = "https://api.perplexity.ai"

	// chatCompletionsEndpoint is the path for the chat-completions endpoint.
	chatCompletionsEndpoint = "/chat/completions"

	// requestTimeout is the fixed per-request timeout shared by every call
	// made through one client. It is not configurable per call; callers that
	// need a shorter deadline pass a context with one.
	requestTimeout = 60 * time.Second
)

// Client holds the identity triple (API key, model, system role), the stored
// configuration overrides, and the conversation history for one logical
// conversation. Construct it with [New]; the zero value is not usable.
type Client struct {
	apiKey     string
	model      string
	systemRole string

	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	overrides map[string]any
	history   []Message

	// initialConfig carries the WithConfig mapping from option application
	// to validation inside New; it is cleared once merged.
	initialConfig map[string]any
}

// New returns a [Client] ready to talk to the chat-completions API.
//
// It fails with an [*AuthError] when apiKey is empty and with a
// [*ConfigError] when model or systemRole is empty, or when a [WithConfig]
// mapping contains an unknown key or a mistyped value. The conversation
// history starts with a single system turn carrying systemRole, and the
// HTTP client created here (unless replaced via [WithHTTPClient]) is reused
// for every call until [Client.Close].
func New(apiKey, model, systemRole string, opts ...Option) (*Client, error) {
	c := &Client{
		apiKey:     apiKey,
		model:      model,
		systemRole: systemRole,
		baseURL:    defaultBaseURL,
		logger:     slog.Default(),
		overrides:  map[string]any{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.validateIdentity(c.model, c.systemRole); err != nil {
		return nil, err
	}
	if c.initialConfig != nil {
		if err := c.SetConfig(c.initialConfig); err != nil {
			return nil, err
		}
		c.initialConfig = nil
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: requestTimeout}
	}
	c.history = []Message{{Role: RoleSystem, Content: c.systemRole}}

	return c, nil
}

// Model returns the instance-level model name.
func (c *Client) Model() string { return c.model }

// SystemRole returns the instance-level system role.
func (c *Client) SystemRole() string { return c.systemRole }

// Ask sends a single stateless question: the payload contains exactly one
// system turn and one user turn, never the conversation history, and the
// instance-level configuration overrides are not applied (use
// [WithRequestConfig] for per-call configuration).
//
// With [WithAppendHistory], a successful exchange whose assistant answer is
// non-empty appends the user and assistant turns to history; in every other
// case history is left untouched. All validation — identity, response type,
// per-call config — happens before any network I/O.
func (c *Client) Ask(ctx context.Context, message string, opts ...AskOption) (*Response, error) {
	options := askOptions{responseType: TypeLLMResponse}
	for _, opt := range opts {
		opt(&options)
	}

	model := options.model
	if model == "" {
		model = c.model
	}
	systemRole := options.systemRole
	if systemRole == "" {
		systemRole = c.systemRole
	}

	if err := c.validateIdentity(model, systemRole); err != nil {
		return nil, err
	}
	if err := options.responseType.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateConfig(options.config); err != nil {
		return nil, err
	}

	messages := []Message{
		{Role: RoleSystem, Content: systemRole},
		{Role: RoleUser, Content: message},
	}

	resp, err := c.send(ctx, model, messages, filterNonDefault(options.config), options.responseType)
	if err != nil {
		return nil, err
	}

	if options.appendHistory {
		if content := resp.Content(); content != "" {
			c.history = append(c.history,
				Message{Role: RoleUser, Content: message},
				Message{Role: RoleAssistant, Content: content},
			)
		}
	}

	return resp, nil
}

// Chat sends message as the next turn of the ongoing conversation: the
// payload carries the full history plus the instance-level configuration
// overrides.
//
// The user turn is recorded before the request is sent and intentionally
// survives a failed exchange, so history keeps the unanswered question. On
// success the assistant turn is appended when its content is non-empty.
func (c *Client) Chat(ctx context.Context, message string, opts ...ChatOption) (*Response, error) {
	options := chatOptions{responseType: TypeLLMResponse}
	for _, opt := range opts {
		opt(&options)
	}

	if err := options.responseType.Validate(); err != nil {
		return nil, err
	}
	if err := c.validateIdentity(c.model, c.systemRole); err != nil {
		return nil, err
	}

	c.history = append(c.history, Message{Role: RoleUser, Content: message})

	resp, err := c.send(ctx, c.model, c.history, c.overrides, options.responseType)
	if err != nil {
		return nil, err
	}

	if content := resp.Content(); content != "" {
		c.history = append(c.history, Message{Role: RoleAssistant, Content: content})
	}

	return resp, nil
}

// History returns a copy of the conversation transcript, starting with the
// system turn seeded at construction.
func (c *Client) History() []Message {
	return append([]Message(nil), c.history...)
}

// Close releases the idle connections held by the underlying HTTP client.
// Call it when the conversation is finished; behavior of calls made after
// Close follows the underlying [http.Client].
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// validateIdentity checks the required identity triple, with model and
// systemRole already resolved to their per-call or instance values.
func (c *Client) validateIdentity(model, systemRole string) error {
	if c.apiKey == "" {
		return &AuthError{msg: "API key is required"}
	}
	if model == "" {
		return &ConfigError{msg: "model name is required"}
	}
	if systemRole == "" {
		return &ConfigError{msg: "system role is required"}
	}
	return nil
}

// send issues one POST to the chat-completions endpoint and classifies the
// outcome: transport failures become APIErrors without a status, non-2xx
// statuses go through the error taxonomy, and anything else is projected
// into a [Response].
func (c *Client) send(ctx context.Context, model string, messages []Message, config map[string]any, responseType ResponseType) (*Response, error) {
	payload := map[string]any{
		"model":    model,
		"messages": messages,
	}
	for key, value := range config {
		payload[key] = value
	}

	c.logger.Debug("perplexity request",
		"model", model,
		"messages", len(messages),
		"config_keys", len(config),
	)

	raw, body, err := utils.DoPost(ctx, c.httpClient, c.baseURL+chatCompletionsEndpoint, c.apiKey, payload)
	if err != nil {
		return nil, transportError(err)
	}
	if raw.StatusCode < 200 || raw.StatusCode >= 300 {
		return nil, errorFromStatus(raw.StatusCode, body)
	}

	return newResponse(raw, body, responseType), nil
}
