// Package webfetch retrieves web pages and converts their HTML content to
// Markdown. Its main use in pplxgo is following the citation URLs the
// Perplexity API attaches to an answer, so the cited sources can be read in
// the same plain-text form as the answer itself.
package webfetch
