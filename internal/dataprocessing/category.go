package dataprocessing

import (
	"encoding/json"
	"strings"
)

// UnknownCategory is the fallback label for postings whose category list is
// absent, malformed, empty, or missing a usable category field.
const UnknownCategory = "Unknown"

// CategoryResult is the outcome of extracting a posting's primary category.
// Ok is false on the fallback path; extraction itself never fails.
type CategoryResult struct {
	Category string
	Ok       bool
}

// ExtractPrimaryCategory derives the primary category from the serialized
// category list attached to a posting. The raw value is expected to be JSON
// of the form [{"category": "...", ...}, ...]; the first element's category
// field wins. Every malformed input collapses to UnknownCategory.
func ExtractPrimaryCategory(raw string) CategoryResult {
	fallback := CategoryResult{Category: UnknownCategory}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return fallback
	}
	if len(entries) == 0 {
		return fallback
	}

	value, ok := entries[0]["category"]
	if !ok || value == nil {
		return fallback
	}
	name, ok := value.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return fallback
	}

	return CategoryResult{Category: name, Ok: true}
}
