// Package parse recovers structured data from raw completion output.
// Completion text is never trusted: list recovery runs a strict parse
// first, then a bounded substring extraction, and degrades to an empty
// list when both fail. Nothing here returns an error; a response that
// cannot be parsed means "nothing was identified", which every caller
// treats as a valid outcome.
package parse

import (
	"encoding/json"
	"strings"

	"google.golang.org/genai"
)

// NameList extracts a list of names from a completion response expected
// to be a JSON array of strings. Models often wrap the array in prose
// ("Sure, here you go: [...]"); the fallback pass finds the first
// balanced [...] substring and parses that instead. Unrecoverable output
// yields an empty list.
func NameList(raw string) []string {
	trimmed := strings.TrimSpace(raw)

	if names, ok := parseStringArray(trimmed); ok {
		return names
	}

	if sub, ok := firstBalancedArray(trimmed); ok {
		if names, ok := parseStringArray(sub); ok {
			return names
		}
	}

	return []string{}
}

func parseStringArray(s string) ([]string, bool) {
	var names []string
	if err := json.Unmarshal([]byte(s), &names); err != nil {
		return nil, false
	}

	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return cleaned, true
}

// firstBalancedArray returns the first [...] substring with balanced
// brackets, ignoring brackets inside JSON string literals.
func firstBalancedArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// Text flattens a completion response into its concatenated text parts.
// A nil or malformed response yields an empty string; narrative callers
// treat the text as valid output by definition.
func Text(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "")
}
