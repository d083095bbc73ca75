package perplexity

// Role identifies the author of a conversation turn; compatible with string.
type Role string

const (
	RoleSystem    Role = "system"    // System instructions/configuration
	RoleUser      Role = "user"      // End-user message
	RoleAssistant Role = "assistant" // Model response
)

// Message is a single turn in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Usage reports the token accounting the API attaches to a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// chatResponse mirrors the subset of the chat-completions response body the
// client consumes. Only choices[0].message.content is required; citations
// and usage are surfaced when present.
type chatResponse struct {
	ID        string   `json:"id"`
	Model     string   `json:"model"`
	Created   int64    `json:"created"`
	Citations []string `json:"citations"`
	Choices   []choice `json:"choices"`
	Usage     *Usage   `json:"usage"`
}

type choice struct {
	Index        int     `json:"index"`
	FinishReason string  `json:"finish_reason"`
	Message      Message `json:"message"`
}
