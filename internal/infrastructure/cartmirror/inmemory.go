package cartmirror

import (
	"context"
	"sync"

	"github.com/cahoico/storefront/internal/domain/cart"
)

// InMemoryMirror keeps the cart snapshot in process memory. It is the
// fallback when no durable backend is available; a restart loses the
// snapshot, which is acceptable because the shop session is the source
// of truth anyway.
type InMemoryMirror struct {
	mu      sync.RWMutex
	cart    cart.Cart
	present bool
}

// NewInMemoryMirror creates an empty in-memory mirror
func NewInMemoryMirror() *InMemoryMirror {
	return &InMemoryMirror{}
}

// Load implements cart.Mirror
func (m *InMemoryMirror) Load(ctx context.Context) (cart.Cart, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.present {
		return cart.Empty(), false, nil
	}
	return m.cart.Clone(), true, nil
}

// Save implements cart.Mirror
func (m *InMemoryMirror) Save(ctx context.Context, c cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = c.Clone()
	m.present = true
	return nil
}

// Clear implements cart.Mirror
func (m *InMemoryMirror) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cart.Empty()
	m.present = false
	return nil
}
