package api

import (
	"encoding/json"
	"strings"
)

// envelope is the tolerant shape of a possibly-wrapped backend response.
// The backend wraps payloads inconsistently: bare, {data: T}, or
// {success, data: {success, data: T}}.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// normalize extracts the real payload from a successful response body.
// Non-JSON bodies are wrapped as {"message": text}. Wrapping is unwrapped
// at most two levels; after that the last extracted value is returned.
//
// The heuristic is lossy for legitimate payloads carrying a top-level field
// named "data" with no discriminator; the backend contract does not let us
// tell those apart.
func normalize(body []byte, contentType string) json.RawMessage {
	if !strings.Contains(contentType, "json") {
		wrapped, _ := json.Marshal(map[string]string{"message": string(body)})
		return wrapped
	}

	cur := json.RawMessage(body)
	for i := 0; i < 2; i++ {
		var env envelope
		if err := json.Unmarshal(cur, &env); err != nil || env.Data == nil {
			return cur
		}
		cur = env.Data
	}
	return cur
}
