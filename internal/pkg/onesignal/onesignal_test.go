package onesignal

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

func TestDecode(t *testing.T) {
	body := []byte(`{"event":"notification.clicked","app_id":"app_1","timestamp":1700000000,"notification_id":"n1","player_id":"p1","url":"https://example.com"}`)
	env, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, EventNotificationClicked, env.Type)
	assert.JSONEq(t, string(body), string(env.Data))
}

func TestDecode_RequiredFields(t *testing.T) {
	cases := map[string]string{
		"invalid json":      `{"event":`,
		"missing event":     `{"app_id":"app_1","timestamp":1700000000}`,
		"missing app_id":    `{"event":"notification.clicked","timestamp":1700000000}`,
		"missing timestamp": `{"event":"notification.clicked","app_id":"app_1"}`,
		"zero timestamp":    `{"event":"notification.clicked","app_id":"app_1","timestamp":0}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(body))
			assert.True(t, errors.Is(err, webhook.ErrDecode))
		})
	}
}

func TestHandlers(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, []string{EventNotificationClicked, EventNotificationDismissed, EventNotificationDisplayed}, reg.Types())

	for _, typ := range reg.Types() {
		env, err := Decode([]byte(`{"event":"` + typ + `","app_id":"app_1","timestamp":1700000000,"notification_id":"n1","player_id":"p1"}`))
		require.NoError(t, err)

		res, err := reg.Dispatch(context.Background(), env)
		require.NoError(t, err)
		assert.Equal(t, webhook.Success("Processed "+typ), res)
	}

	env, err := Decode([]byte(`{"event":"notification.sent","app_id":"app_1","timestamp":1700000000}`))
	require.NoError(t, err)
	res, err := reg.Dispatch(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "Unhandled event: notification.sent", res.Message)
}

func TestPipelineWithHexSignature(t *testing.T) {
	p := &webhook.Pipeline{
		Registry: NewRegistry(),
		Decode:   Decode,
		Verifier: webhook.NewHexVerifier("os_secret", webhook.HeaderOneSignalSignature),
	}
	body := []byte(`{"event":"notification.displayed","app_id":"app_1","timestamp":1700000000,"notification_id":"n1","player_id":"p1"}`)

	h := http.Header{}
	h.Set(webhook.HeaderOneSignalSignature, webhook.SignHex(body, "os_secret"))
	resp := p.Process(context.Background(), body, h)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Processed notification.displayed", resp.Result.Message)

	h.Set(webhook.HeaderOneSignalSignature, webhook.SignHex(body, "wrong"))
	resp = p.Process(context.Background(), body, h)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}
