package perplexity

import "pplxgo/parse"

// DecodeContent decodes the assistant text of r into T. Models often wrap a
// JSON answer in prose or markdown fences, so decoding is delegated to
// [parse.As], which strips fences and repairs near-JSON before giving up.
//
// Example:
//
//	type Answer struct {
//	    Capital string `json:"capital"`
//	}
//
//	resp, _ := client.Ask(ctx, "Reply as JSON: what is the capital of France?")
//	answer, err := perplexity.DecodeContent[Answer](resp)
func DecodeContent[T any](r *Response) (T, error) {
	return parse.As[T](r.Content())
}
