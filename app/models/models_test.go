package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolFlagRoundTrip(t *testing.T) {
	assert.Equal(t, 1, BoolToFlag(true))
	assert.Equal(t, 0, BoolToFlag(false))
	assert.True(t, FlagToBool(1))
	assert.False(t, FlagToBool(0))
	assert.True(t, FlagToBool(BoolToFlag(true)))
	assert.False(t, FlagToBool(BoolToFlag(false)))
}

func TestIsValidSubscriptionStatus(t *testing.T) {
	for _, s := range []string{"active", "canceled", "incomplete", "incomplete_expired", "past_due", "trialing", "unpaid"} {
		assert.True(t, IsValidSubscriptionStatus(s), s)
	}
	assert.False(t, IsValidSubscriptionStatus("paused"))
	assert.False(t, IsValidSubscriptionStatus(""))
}

func TestCustomerMetadata(t *testing.T) {
	c := &Customer{ID: "cus_1"}
	assert.Empty(t, c.Metadata())

	require.NoError(t, c.SetMetadata(map[string]any{"user_id": "u1"}))
	assert.Equal(t, "u1", c.Metadata()["user_id"])

	c.MetadataJSON = "{broken"
	assert.Empty(t, c.Metadata())
}

func TestWebhookEventSucceeded(t *testing.T) {
	e := &WebhookEvent{}
	assert.False(t, e.Succeeded())

	now := time.Now()
	e.ProcessedAt = &now
	assert.True(t, e.Succeeded())

	e.ProcessingError = "boom"
	assert.False(t, e.Succeeded())
}
