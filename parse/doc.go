// Package parse extracts structured data from assistant answer text.
// Language models frequently wrap JSON in prose or markdown code fences and
// produce near-JSON (single quotes, trailing commas, unquoted keys), so the
// package strips fences, tries a strict decode, and falls back to automatic
// JSON repair before giving up with a clear error.
//
// The main entry point is the generic [As] function, which handles both
// primitive targets (string, bool, int, float) and complex targets (structs,
// maps, slices). [ExtractObject] is the untyped convenience form for callers
// that just want the decoded object.
package parse
