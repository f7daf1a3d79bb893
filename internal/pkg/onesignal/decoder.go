package onesignal

import (
	"encoding/json"
	"strings"

	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

type header struct {
	Event     string      `json:"event"`
	AppID     string      `json:"app_id"`
	Timestamp json.Number `json:"timestamp"`
}

// Decode reads the flat OneSignal payload. event, app_id and timestamp are
// required; the whole body becomes the envelope data.
func Decode(rawBody []byte) (webhook.Envelope, error) {
	var h header
	if err := json.Unmarshal(rawBody, &h); err != nil {
		return webhook.Envelope{}, webhook.DecodeError("Invalid JSON payload", err)
	}

	event := strings.TrimSpace(h.Event)
	if event == "" || strings.TrimSpace(h.AppID) == "" || h.Timestamp == "" || h.Timestamp == "0" {
		return webhook.Envelope{}, webhook.DecodeError("Invalid webhook payload", nil)
	}

	return webhook.Envelope{
		Type: event,
		Data: json.RawMessage(rawBody),
	}, nil
}
