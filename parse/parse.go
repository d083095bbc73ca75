package parse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// As decodes content into the target type T.
//
// For primitive targets (string, bool, int, int64, float64) the fenced and
// trimmed content is converted directly. For complex targets the content is
// JSON-decoded; when strict decoding fails the content is repaired with
// jsonrepair and decoding is retried, so typical LLM output like
// `{name: 'John', age: 30}` still decodes.
//
// Example:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	person, err := parse.As[Person]("```json\n{\"name\":\"John\",\"age\":30}\n```")
func As[T any](content string) (T, error) {
	var result T
	trimmed := strings.TrimSpace(stripCodeFence(content))

	switch out := any(&result).(type) {
	case *string:
		*out = trimmed
		return result, nil

	case *bool:
		val, err := strconv.ParseBool(trimmed)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		*out = val
		return result, nil

	case *int:
		val, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		*out = int(val)
		return result, nil

	case *int64:
		val, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int64: %w", err)
		}
		*out = val
		return result, nil

	case *float64:
		val, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		*out = val
		return result, nil
	}

	// Structs, maps, and slices go through JSON with a repair fallback.
	strictErr := json.Unmarshal([]byte(trimmed), &result)
	if strictErr == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(trimmed)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, strictErr, repairErr)
	}

	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}
	return result, nil
}

// ExtractObject decodes content as a JSON object, applying the same fence
// stripping and repair fallback as [As].
func ExtractObject(content string) (map[string]any, error) {
	return As[map[string]any](content)
}

// stripCodeFence removes a single surrounding markdown code fence, with or
// without a language tag, leaving other content untouched.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop the language tag on the opening fence line, if present.
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine != "" && !strings.ContainsAny(firstLine, "{}[]\"") {
			trimmed = trimmed[idx+1:]
		}
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
