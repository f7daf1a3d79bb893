package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withEnv(t *testing.T, values map[string]string) {
	t.Helper()
	prev := Env
	Env = values
	t.Cleanup(func() { Env = prev })
}

func TestGetBool(t *testing.T) {
	withEnv(t, map[string]string{
		"A": "false",
		"B": "TRUE",
		"C": "garbage",
		"D": "0",
	})

	assert.False(t, GetBool("A", true))
	assert.True(t, GetBool("B", false))
	assert.True(t, GetBool("C", true))
	assert.False(t, GetBool("D", true))
	assert.True(t, GetBool("HOOKFOX_UNSET_KEY", true))
}

func TestGetIntAndDuration(t *testing.T) {
	withEnv(t, map[string]string{
		"LIMIT":     "42",
		"BAD":       "x",
		"TOLERANCE": "5m",
	})

	assert.Equal(t, 42, GetInt("LIMIT", 1))
	assert.Equal(t, 1, GetInt("BAD", 1))
	assert.Equal(t, 5*time.Minute, GetDuration("TOLERANCE", 0))
	assert.Equal(t, time.Second, GetDuration("BAD", time.Second))
}
