package remote

import (
	"strings"

	"github.com/goccy/go-json"
)

type envelope struct {
	Result   string
	Messages []string
}

// ParseResult extracts result and messages from a response body. The remote
// system answers with a JSON object, sometimes with a JSON string holding the
// object, and sometimes with text around the object; the span from the first
// '{' to the last '}' is tried last. ok is false when no result or messages
// field could be found.
func ParseResult(body string) (result string, messages []string, ok bool) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", nil, false
	}

	if env, found := decodeEnvelope([]byte(body)); found {
		return env.Result, env.Messages, true
	}

	start := strings.IndexByte(body, '{')
	end := strings.LastIndexByte(body, '}')
	if start >= 0 && end > start {
		if env, found := decodeEnvelope([]byte(body[start : end+1])); found {
			return env.Result, env.Messages, true
		}
	}

	return "", nil, false
}

func decodeEnvelope(raw []byte) (envelope, bool) {
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return envelope{}, false
		}
		return decodeEnvelope([]byte(inner))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return envelope{}, false
	}

	var env envelope
	found := false
	for key, value := range fields {
		switch strings.ToLower(key) {
		case "result":
			var s string
			if err := json.Unmarshal(value, &s); err == nil {
				env.Result = s
				found = true
			}
		case "messages":
			env.Messages = decodeMessages(value)
			found = true
		}
	}

	return env, found
}

// decodeMessages accepts a list or a single value. Non-string items keep
// their JSON text.
func decodeMessages(raw json.RawMessage) []string {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		if s := rawToString(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	messages := make([]string, 0, len(list))
	for _, item := range list {
		if s := rawToString(item); s != "" {
			messages = append(messages, s)
		}
	}
	return messages
}

func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}
