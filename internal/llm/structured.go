package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Every classification/extraction site in the service follows the same
// pattern: one LLM call that is supposed to return a JSON object, followed
// by fence stripping, a greedy brace match and one cosmetic repair before
// giving up. CallForJSON is that pattern factored out once.

var unquotedLiteralRe = regexp.MustCompile(`(?m)(:\s*)(Yes|No|True|False)(\s*[,}\n])`)

// ExtractJSONObject pulls a parseable JSON object out of a raw LLM reply.
func ExtractJSONObject(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty reply")
	}

	// Strip Markdown code fences
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	if json.Valid([]byte(s)) && strings.HasPrefix(s, "{") {
		return s, nil
	}

	// Greedy brace match: first '{' through last '}'
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object found in reply")
	}
	s = s[start : end+1]

	if json.Valid([]byte(s)) {
		return s, nil
	}

	// One narrow cosmetic repair: unquoted Yes/No/True/False values, which
	// the model occasionally emits for the boolean-as-string fields.
	repaired := unquotedLiteralRe.ReplaceAllString(s, `$1"$2"$3`)
	if json.Valid([]byte(repaired)) {
		return repaired, nil
	}

	return "", fmt.Errorf("reply is not valid JSON even after repair")
}

// CallForJSON issues one prompt and decodes the reply into out. The validate
// hook, when non-nil, can reject structurally valid but semantically broken
// results.
func CallForJSON(ctx context.Context, p Provider, prompt string, cfg ModelConfig, out any, validate func() error) error {
	if p == nil {
		return fmt.Errorf("no LLM provider configured")
	}

	raw, _, err := p.Generate(ctx, []Message{{Role: "user", Content: prompt}}, cfg)
	if err != nil {
		return err
	}

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(obj), out); err != nil {
		return fmt.Errorf("failed to decode LLM JSON: %w", err)
	}

	if validate != nil {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}
