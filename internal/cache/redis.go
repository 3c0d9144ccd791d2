package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	eventsListKey  = "events:list"
	eventKeyPrefix = "events:id:"
)

type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
	Enabled  bool
}

// Client caches event read responses as raw JSON so hits skip both the
// database and re-marshaling. Every inventory mutation invalidates, so a
// cached read is never older than the last adjustment.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.TTL}, nil
}

// GetEventsListRaw returns the cached list response, or an error on miss.
func (c *Client) GetEventsListRaw(ctx context.Context) ([]byte, error) {
	data, err := c.rdb.Get(ctx, eventsListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("events list not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

func (c *Client) SetEventsList(ctx context.Context, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, eventsListKey, payload, c.ttl)
}

func (c *Client) GetEventRaw(ctx context.Context, eventID int64) ([]byte, error) {
	data, err := c.rdb.Get(ctx, eventKey(eventID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("event %d not cached", eventID)
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

func (c *Client) SetEvent(ctx context.Context, eventID int64, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, eventKey(eventID), payload, c.ttl)
}

// Invalidate drops both the per-event entry and the list after any mutation.
func (c *Client) Invalidate(ctx context.Context, eventID int64) {
	c.rdb.Del(ctx, eventKey(eventID), eventsListKey)
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func eventKey(eventID int64) string {
	return fmt.Sprintf("%s%d", eventKeyPrefix, eventID)
}
