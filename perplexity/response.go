package perplexity

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ResponseType selects which projection of an HTTP exchange a call returns
// through [Response.Value].
type ResponseType string

const (
	TypeRaw         ResponseType = "raw"          // the transport *http.Response
	TypeText        ResponseType = "text"         // the body as a string
	TypeJSON        ResponseType = "json"         // the decoded body, nil when undecodable
	TypeLLMResponse ResponseType = "llm_response" // the extracted assistant text
)

// responseTypes lists every valid ResponseType in the order validation
// errors report them.
var responseTypes = []ResponseType{TypeRaw, TypeText, TypeJSON, TypeLLMResponse}

// ParseResponseType converts s into a [ResponseType], failing with an error
// that lists the valid options.
func ParseResponseType(s string) (ResponseType, error) {
	t := ResponseType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate reports whether t is one of the known response types.
func (t ResponseType) Validate() error {
	for _, known := range responseTypes {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("invalid response type %q: valid options are %v", string(t), responseTypes)
}

// Response is one HTTP exchange with the API, projected four ways: the
// transport response, the body text, the decoded JSON body, and the
// extracted assistant text. A 2xx body that is not JSON, or that lacks
// choices[0].message.content, is not an error; the affected views are simply
// empty and callers must handle that.
type Response struct {
	raw       *http.Response
	body      []byte
	jsonBody  map[string]any
	parsed    chatResponse
	requested ResponseType
}

// newResponse projects resp and its already-read body. Decode failures are
// absorbed rather than surfaced: they only empty the views that depend on a
// well-formed body.
func newResponse(raw *http.Response, body []byte, requested ResponseType) *Response {
	r := &Response{raw: raw, body: body, requested: requested}
	if err := json.Unmarshal(body, &r.jsonBody); err != nil {
		r.jsonBody = nil
		return r
	}
	// The generic decode succeeded, so the typed one can only trip on shape
	// mismatches; those leave the affected fields zero, which is fine.
	_ = json.Unmarshal(body, &r.parsed)
	return r
}

// Raw returns the underlying HTTP response. Its body has already been read
// and closed; use [Response.Text] for the payload.
func (r *Response) Raw() *http.Response { return r.raw }

// Text returns the response body as a string.
func (r *Response) Text() string { return string(r.body) }

// JSON returns the decoded response body, or nil when the body is not a
// JSON object.
func (r *Response) JSON() map[string]any { return r.jsonBody }

// Content returns the assistant text at choices[0].message.content, or the
// empty string when the body does not decode or carries no choices.
func (r *Response) Content() string {
	if len(r.parsed.Choices) == 0 {
		return ""
	}
	return r.parsed.Choices[0].Message.Content
}

// Citations returns the source URLs the API attached to the answer, if any.
func (r *Response) Citations() []string { return r.parsed.Citations }

// Usage returns the token accounting for the exchange, or nil when absent.
func (r *Response) Usage() *Usage { return r.parsed.Usage }

// Type returns the response type the call was made with.
func (r *Response) Type() ResponseType { return r.requested }

// View returns the projection named by t. Unknown types return nil; use
// [ResponseType.Validate] to reject them up front.
func (r *Response) View(t ResponseType) any {
	switch t {
	case TypeRaw:
		return r.raw
	case TypeText:
		return r.Text()
	case TypeJSON:
		if r.jsonBody == nil {
			return nil
		}
		return r.jsonBody
	case TypeLLMResponse:
		return r.Content()
	}
	return nil
}

// Value returns the projection selected by the response type the call was
// made with.
func (r *Response) Value() any { return r.View(r.requested) }
