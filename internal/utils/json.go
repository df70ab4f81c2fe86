// Package utils holds small helpers shared across the engine.
package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractAndParseJSON extracts a single JSON value from an oracle response and
// unmarshals it. Oracles routinely wrap output in markdown fences or append
// prose after the JSON; both are tolerated. Anything beyond that fails closed:
// a response we cannot decode verbatim is a parse error, never a guess.
func ExtractAndParseJSON[T any](response string) (T, error) {
	var result T

	cleaned := stripFences(response)
	if cleaned == "" {
		return result, fmt.Errorf("empty response")
	}

	idx := strings.IndexAny(cleaned, "{[")
	if idx == -1 {
		return result, fmt.Errorf("no JSON start ({ or [) found")
	}

	// Decode exactly one JSON value and ignore trailing text, which handles
	// `{"a":1} hope this helps!` style responses.
	decoder := json.NewDecoder(strings.NewReader(cleaned[idx:]))
	if err := decoder.Decode(&result); err != nil {
		return result, fmt.Errorf("parse JSON: %w", err)
	}
	return result, nil
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
