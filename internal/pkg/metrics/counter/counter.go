package counter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "webhook:counters:"

// Counter keeps per provider delivery counters in Redis hashes. Each hash
// field is "<event type>|<outcome>".
type Counter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

func key(provider string) string {
	return keyPrefix + provider
}

func field(eventType, outcome string) string {
	return eventType + "|" + outcome
}

// Record increments the counter of one delivery outcome.
func (c *Counter) Record(ctx context.Context, provider, eventType, outcome string) error {
	return c.rdb.HIncrBy(ctx, key(provider), field(eventType, outcome), 1).Err()
}

// Entry is one counter value.
type Entry struct {
	EventType string `json:"event_type"`
	Outcome   string `json:"outcome"`
	Count     int64  `json:"count"`
}

// Snapshot returns the counters of a provider sorted by event type and outcome.
func (c *Counter) Snapshot(ctx context.Context, provider string) ([]Entry, error) {
	data, err := c.rdb.HGetAll(ctx, key(provider)).Result()
	if err != nil {
		return nil, err
	}
	return entries(data), nil
}

// Drain atomically takes the counters of a provider and resets them.
// RENAME moves the hash aside so increments arriving meanwhile start a new one.
func (c *Counter) Drain(ctx context.Context, provider string) ([]Entry, error) {
	tmpKey := fmt.Sprintf("%s:tmp:%d", key(provider), time.Now().UnixNano())
	if err := c.rdb.Rename(ctx, key(provider), tmpKey).Err(); err != nil {
		// If key does not exist, nothing to drain
		if errors.Is(err, redis.Nil) || strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil, nil
		}
		return nil, err
	}
	// Ensure cleanup of tmpKey even if later steps fail
	defer c.rdb.Del(ctx, tmpKey)

	data, err := c.rdb.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return nil, err
	}
	return entries(data), nil
}

func entries(data map[string]string) []Entry {
	out := make([]Entry, 0, len(data))
	for k, v := range data {
		eventType, outcome, ok := strings.Cut(k, "|")
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n == 0 {
			continue
		}
		out = append(out, Entry{EventType: eventType, Outcome: outcome, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventType != out[j].EventType {
			return out[i].EventType < out[j].EventType
		}
		return out[i].Outcome < out[j].Outcome
	})
	return out
}
