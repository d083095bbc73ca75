// Package utils contains small helpers shared across pplxgo packages:
// a JSON-over-HTTP POST helper with request-id tagging and structured
// logging, and string truncation for keeping error messages and logs
// bounded.
package utils
