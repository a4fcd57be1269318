package cartmirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cahoico/storefront/internal/domain/cart"
)

// RedisMirror persists the cart snapshot in Redis under a fixed key.
// No TTL: the snapshot lives until cleared or overwritten.
type RedisMirror struct {
	client *redis.Client
	key    string
}

// NewRedisMirror creates a Redis-backed mirror
func NewRedisMirror(client *redis.Client, key string) *RedisMirror {
	return &RedisMirror{client: client, key: key}
}

// Load implements cart.Mirror
func (m *RedisMirror) Load(ctx context.Context) (cart.Cart, bool, error) {
	payload, err := m.client.Get(ctx, m.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Empty(), false, nil
	}
	if err != nil {
		return cart.Empty(), false, fmt.Errorf("load cart mirror: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return cart.Empty(), false, nil
	}
	return c, true, nil
}

// Save implements cart.Mirror
func (m *RedisMirror) Save(ctx context.Context, c cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart mirror: %w", err)
	}
	if err := m.client.Set(ctx, m.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save cart mirror: %w", err)
	}
	return nil
}

// Clear implements cart.Mirror
func (m *RedisMirror) Clear(ctx context.Context) error {
	if err := m.client.Del(ctx, m.key).Err(); err != nil {
		return fmt.Errorf("clear cart mirror: %w", err)
	}
	return nil
}
