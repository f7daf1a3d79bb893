package webhook

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Envelope is a decoded webhook event. Data stays raw until a typed handler
// decodes it.
type Envelope struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// Decoder turns a verified raw body into an Envelope.
type Decoder func(rawBody []byte) (Envelope, error)

// DecodeEnvelope decodes the {type, data, metadata?} shape.
func DecodeEnvelope(rawBody []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(rawBody, &env); err != nil {
		return Envelope{}, DecodeError("Invalid JSON payload", err)
	}

	env.Type = strings.TrimSpace(env.Type)
	if env.Type == "" {
		return Envelope{}, DecodeError("Missing event type", nil)
	}
	if isNullJSON(env.Data) {
		return Envelope{}, DecodeError("Missing event data", nil)
	}
	return env, nil
}

// MetadataString returns metadata[key] as a string. Numbers are formatted,
// anything else yields "".
func (e Envelope) MetadataString(key string) string {
	return StringValue(e.Metadata, key)
}

// StringValue reads a string-ish value out of a decoded JSON object.
func StringValue(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// truncate shortens raw payloads for log lines.
func truncate(raw []byte, max int) string {
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "...(truncated)"
}
