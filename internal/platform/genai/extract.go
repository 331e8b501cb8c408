package genai

import (
	"encoding/json"
	"strings"
)

// ExtractText pulls the generated text out of a raw reply body. Hosted
// model APIs have shipped several envelope shapes, so each known one is
// probed in turn. Returns "" when no text can be found.
func ExtractText(raw []byte) string {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		// Current REST shape: candidates[0].content.parts[].text
		if text := fromCandidates(envelope["candidates"]); text != "" {
			return text
		}
		// Older shapes: output[0].content[0].text, response[0].content[0].text
		if text := fromOutputList(envelope["output"]); text != "" {
			return text
		}
		if text := fromOutputList(envelope["response"]); text != "" {
			return text
		}
		// Bare {"text": "..."}
		var text string
		if err := json.Unmarshal(envelope["text"], &text); err == nil && text != "" {
			return text
		}
		return ""
	}

	// Root-level array: [{"text": "..."}]
	var list []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0].Text
	}

	// Plain string body
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	return ""
}

func fromCandidates(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &candidates); err != nil || len(candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func fromOutputList(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var list []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 || len(list[0].Content) == 0 {
		return ""
	}
	return list[0].Content[0].Text
}

// StripCodeFences removes markdown code fences that models wrap around
// JSON replies despite instructions not to.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the opening fence.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		first := strings.TrimSpace(s[:idx])
		if first != "" && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
