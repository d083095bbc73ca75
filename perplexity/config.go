package perplexity

import (
	"fmt"
	"math"
	"reflect"
	"slices"
)

// defaultConfig is the full set of request options the API accepts, mapped to
// the value the API applies when the key is absent. A nil default means the
// key has no default at all: it is omitted from payloads unless overridden,
// and overrides for it accept values of any type.
var defaultConfig = map[string]any{
	"max_tokens":               nil,
	"temperature":              0.2,
	"top_p":                    0.9,
	"search_domain_filter":     []string{},
	"return_images":            false,
	"return_related_questions": false,
	"search_recency_filter":    "month",
	"top_k":                    0,
	"stream":                   false,
	"presence_penalty":         0,
	"frequency_penalty":        1,
}

// ValidateConfig checks every key and value in config against the known
// option table. Unknown keys and values whose semantic type does not match
// the default's type yield a [*ConfigError] naming the offending key.
// Validation is usable without a live client.
func ValidateConfig(config map[string]any) error {
	for key, value := range config {
		def, ok := defaultConfig[key]
		if !ok {
			return &ConfigError{msg: fmt.Sprintf("invalid configuration key: %q", key)}
		}
		if def == nil {
			continue
		}
		if configKind(value) != configKind(def) {
			return &ConfigError{msg: fmt.Sprintf("invalid configuration value for key %q: expected %s, got %T", key, configKind(def), value)}
		}
	}
	return nil
}

// IsConfigValid reports whether [ValidateConfig] accepts config.
func IsConfigValid(config map[string]any) bool {
	return ValidateConfig(config) == nil
}

// SetConfig validates overrides and merges the accepted non-default entries
// into the client's stored configuration. Setting a key to its default value
// removes any existing override for that key, effectively resetting it.
func (c *Client) SetConfig(overrides map[string]any) error {
	if err := ValidateConfig(overrides); err != nil {
		return err
	}
	for key, value := range overrides {
		if equalsDefault(key, value) {
			delete(c.overrides, key)
		} else {
			c.overrides[key] = value
		}
	}
	return nil
}

// ResetConfig discards every stored override. Identity and conversation
// history are untouched.
func (c *Client) ResetConfig() {
	c.overrides = map[string]any{}
}

// Config returns the effective configuration: the defaults overlaid with the
// stored overrides, with unset (nil-valued) entries omitted. The returned
// map is a copy and safe to mutate.
func (c *Client) Config() map[string]any {
	out := make(map[string]any, len(defaultConfig))
	for key, value := range defaultConfig {
		if value != nil {
			out[key] = copyConfigValue(value)
		}
	}
	for key, value := range c.overrides {
		if value == nil {
			delete(out, key)
			continue
		}
		out[key] = copyConfigValue(value)
	}
	return out
}

// configKind reports the semantic category of a config value: number, bool,
// string, or string list. Categories rather than concrete Go types are
// compared so ints and floats are interchangeable for numeric options and a
// []any holding only strings passes for a string list.
func configKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case []string:
		return "string list"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if _, ok := rv.Index(i).Interface().(string); !ok {
				return "list"
			}
		}
		return "string list"
	}
	return fmt.Sprintf("%T", v)
}

// equalsDefault reports whether value is indistinguishable from the default
// for key, normalizing numeric representations and string-slice forms before
// comparing.
func equalsDefault(key string, value any) bool {
	def, ok := defaultConfig[key]
	if !ok {
		return false
	}
	if def == nil || value == nil {
		return def == nil && value == nil
	}

	defKind, valueKind := configKind(def), configKind(value)
	if defKind != valueKind {
		return false
	}
	switch defKind {
	case "number":
		return asFloat(def) == asFloat(value)
	case "string list":
		return slices.Equal(asStringSlice(def), asStringSlice(value))
	}
	return reflect.DeepEqual(def, value)
}

// filterNonDefault returns the entries of config that differ from their
// defaults. Dropping default-valued entries is what keeps stored and
// per-call configuration limited to genuine overrides.
func filterNonDefault(config map[string]any) map[string]any {
	out := make(map[string]any, len(config))
	for key, value := range config {
		if !equalsDefault(key, value) {
			out[key] = value
		}
	}
	return out
}

func copyConfigValue(v any) any {
	if s, ok := v.([]string); ok {
		return append([]string(nil), s...)
	}
	return v
}

func asFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return math.NaN()
}

func asStringSlice(v any) []string {
	if s, ok := v.([]string); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, _ := rv.Index(i).Interface().(string)
		out = append(out, s)
	}
	return out
}
