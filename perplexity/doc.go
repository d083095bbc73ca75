// Package perplexity provides a client for the Perplexity chat-completions
// API. It manages authentication, request configuration, conversational
// history, and the projection of a raw HTTP exchange into the view a caller
// needs (transport response, body text, decoded JSON, or assistant text).
//
// The primary entry point is [New], which takes the API key, model, and
// system role plus functional options ([WithConfig], [WithBaseURL],
// [WithHTTPClient], [WithLogger]). Use [Client.Ask] for stateless
// single-turn questions and [Client.Chat] for stateful multi-turn
// conversations; [DecodeContent] turns a structured assistant answer into a
// Go value.
//
// A Client is meant for single-goroutine use: one instance, one logical
// conversation. The client never issues concurrent requests on its own and
// does not synchronize history mutation, so callers that want parallelism
// should create one Client per conversation. Retries, rate-limit backoff,
// and streaming are out of scope; callers own those policies.
package perplexity
