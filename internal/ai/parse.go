package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lgsobral/eduhub/internal/apperror"
)

// Generation is the validated structured record extracted from a model
// response. Tags are normalized: lowercase, trimmed, deduplicated, at
// most MaxGeneratedTags entries.
type Generation struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// MaxGeneratedTags caps how many tags a generation may carry. The prompt
// asks for at most 3; anything beyond that is truncated, not rejected.
const MaxGeneratedTags = 3

// rawGeneration is the untrusted shape decoded straight from the model.
// Tags are json.RawMessage because the model sometimes returns them as
// a string, a number array, or omits them entirely — and tags are
// best-effort, so a malformed tags field must not fail the whole parse.
type rawGeneration struct {
	Description string          `json:"description"`
	Tags        json.RawMessage `json:"tags"`
}

// ParseGeneration turns raw model output into a validated Generation.
//
// The model is told to answer with bare JSON, but in practice it may
// wrap the object in markdown fences or pad it with prose. The parsing
// cascade mirrors that reality:
//  1. strip code fences and try a strict parse,
//  2. failing that, scan for the first balanced {...} span and parse it,
//  3. failing that, report a parse error.
//
// A missing or empty description is a validation error — description is
// the primary signal and the caller must never receive a silently-empty
// one. Missing or malformed tags degrade to an empty list.
func ParseGeneration(text string) (*Generation, error) {
	cleaned := stripFences(text)

	var raw rawGeneration
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		span, ok := firstObjectSpan(cleaned)
		if !ok {
			return nil, apperror.GenerationParse(
				fmt.Sprintf("no JSON object found in model response: %s", truncate(text, 200)))
		}
		if err := json.Unmarshal([]byte(span), &raw); err != nil {
			return nil, apperror.GenerationParse(
				fmt.Sprintf("model response is not valid JSON: %v", err))
		}
	}

	description := strings.TrimSpace(raw.Description)
	if description == "" {
		return nil, apperror.GenerationValidation("model response is missing a description")
	}

	return &Generation{
		Description: description,
		Tags:        normalizeTags(raw.Tags),
	}, nil
}

// stripFences removes surrounding markdown code-fence markers, with or
// without a language tag ("```json"). Inner content is left untouched.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence line, if any.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first == "" || isFenceLanguage(first) {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func isFenceLanguage(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// firstObjectSpan scans text for the first balanced {...} span, tracking
// JSON string literals and escape sequences so braces inside strings
// don't confuse the depth count. An explicit scanner keeps the failure
// modes precise — "{" with no matching "}" is simply not found, instead
// of a regex guessing at the longest plausible match.
func firstObjectSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// normalizeTags decodes the untrusted tags field and normalizes it:
// lowercase, trimmed, deduplicated, truncated to MaxGeneratedTags.
// Any shape other than an array of strings degrades to an empty list.
func normalizeTags(raw json.RawMessage) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return tags
	}

	seen := make(map[string]bool, len(decoded))
	for _, tag := range decoded {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		tags = append(tags, normalized)
		if len(tags) == MaxGeneratedTags {
			break
		}
	}

	return tags
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
