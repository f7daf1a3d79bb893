package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntries(t *testing.T) {
	got := entries(map[string]string{
		"order.paid|processed":       "3",
		"order.paid|failed":          "1",
		"checkout.updated|duplicate": "2",
		"broken":                     "5",
		"order.refunded|failed":      "x",
		"order.created|processed":    "0",
	})

	assert.Equal(t, []Entry{
		{EventType: "checkout.updated", Outcome: "duplicate", Count: 2},
		{EventType: "order.paid", Outcome: "failed", Count: 1},
		{EventType: "order.paid", Outcome: "processed", Count: 3},
	}, got)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "webhook:counters:polar", key("polar"))
	assert.Equal(t, "order.paid|processed", field("order.paid", "processed"))
}
