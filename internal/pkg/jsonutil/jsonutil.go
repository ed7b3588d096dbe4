// Package jsonutil extracts and decodes JSON payloads embedded in language
// model replies, which routinely arrive wrapped in markdown fences or prose.
package jsonutil

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no JSON payload found in text")

// UnmarshalFlex decodes raw text into v with best effort:
// 1) direct unmarshal of the trimmed text
// 2) unmarshal of the first JSON document extracted from the text
func UnmarshalFlex(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	payload, err := Extract(trimmed)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(payload), v)
}

// Extract returns the first complete JSON object or array found in text.
// Markdown code fences are stripped before scanning.
func Extract(text string) (string, error) {
	text = stripFences(text)

	start := -1
	for i, r := range text {
		if r == '{' || r == '[' {
			start = i
			break
		}
	}
	if start < 0 {
		return "", ErrNoJSON
	}

	open := text[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSON
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		// Drop the language tag line (```json etc.)
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
