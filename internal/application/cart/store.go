package cart

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/domain/shared"
)

// Store is the session-scoped cart holder. Every mutation is applied
// optimistically through the reducer, then confirmed against the shop
// API; the server payload always replaces the optimistic state. The
// mirror is written after every successful mutation, best effort.
type Store struct {
	mu      sync.Mutex
	gateway cart.OrderGateway
	mirror  cart.Mirror
	logger  *zap.Logger

	current cart.Cart
	loaded  bool
	lastErr error
}

// NewStore creates a cart store
func NewStore(gateway cart.OrderGateway, mirror cart.Mirror, logger *zap.Logger) *Store {
	return &Store{
		gateway: gateway,
		mirror:  mirror,
		logger:  logger.Named("cart"),
		current: cart.Empty(),
	}
}

// Load initializes the cart once per process. A persisted mirror
// snapshot wins over a fresh fetch; only when no snapshot exists is the
// active order queried. Calling Load again is a no-op returning the
// current snapshot.
func (s *Store) Load(ctx context.Context) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.current.Clone(), nil
	}

	if mirrored, ok, err := s.mirror.Load(ctx); err == nil && ok {
		s.current = cart.Apply(s.current, cart.ServerSynced{Cart: mirrored})
		s.loaded = true
		s.logger.Info("cart restored from mirror", zap.Int("lines", len(s.current.Items)))
		return s.current.Clone(), nil
	} else if err != nil {
		s.logger.Warn("cart mirror load failed", zap.Error(err))
	}

	server, err := s.gateway.ActiveOrder(ctx)
	if err != nil {
		s.lastErr = err
		return s.current.Clone(), err
	}
	if server != nil {
		s.current = cart.Apply(s.current, cart.ServerSynced{Cart: *server})
		s.saveMirror(ctx)
	}
	s.loaded = true
	return s.current.Clone(), nil
}

// Current returns a snapshot of the cart
func (s *Store) Current() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// LastError returns the most recent mutation error, or nil
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// AddItem validates the variant, applies the optimistic add, then
// confirms with the shop API. On a confirmed failure the optimistic
// state is rolled back to the server's view.
func (s *Store) AddItem(ctx context.Context, variant cart.Variant, quantity int) (cart.Cart, error) {
	if err := cart.ValidateVariant(variant); err != nil {
		return s.Current(), err
	}
	if quantity < 1 {
		return s.Current(), shared.NewValidationError("quantity", "Số lượng phải lớn hơn 0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = cart.Apply(s.current, cart.ItemAdded{Variant: variant, Quantity: quantity})

	server, err := s.gateway.AddItem(ctx, variant.ID, quantity)
	if err != nil {
		s.lastErr = err
		s.resync(ctx)
		return s.current.Clone(), err
	}

	s.lastErr = nil
	s.current = cart.Apply(s.current, cart.ServerSynced{Cart: *server})
	s.saveMirror(ctx)
	return s.current.Clone(), nil
}

// AdjustLine changes a line's quantity; a quantity below 1 removes the
// line entirely, mirroring the reducer's semantics on the server side.
func (s *Store) AdjustLine(ctx context.Context, lineID string, quantity int) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.FindLine(lineID) == nil {
		return s.current.Clone(), shared.ErrNotFound
	}
	return s.adjustLocked(ctx, lineID, quantity)
}

// RemoveLine removes a line. Removing a line that is not in the cart is
// a no-op, matching the reducer's ItemRemoved semantics.
func (s *Store) RemoveLine(ctx context.Context, lineID string) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.FindLine(lineID) == nil {
		return s.current.Clone(), nil
	}
	return s.adjustLocked(ctx, lineID, 0)
}

func (s *Store) adjustLocked(ctx context.Context, lineID string, quantity int) (cart.Cart, error) {
	s.current = cart.Apply(s.current, cart.QuantityChanged{LineID: lineID, Quantity: quantity})

	// Placeholder lines exist only locally; there is no server line to
	// adjust until the next sync assigns a real id.
	if isPlaceholderLine(lineID) {
		s.saveMirror(ctx)
		return s.current.Clone(), nil
	}

	var server *cart.Cart
	var err error
	if quantity < 1 {
		server, err = s.gateway.RemoveLine(ctx, lineID)
	} else {
		server, err = s.gateway.AdjustLine(ctx, lineID, quantity)
	}
	if err != nil {
		s.lastErr = err
		s.resync(ctx)
		return s.current.Clone(), err
	}

	s.lastErr = nil
	s.current = cart.Apply(s.current, cart.ServerSynced{Cart: *server})
	s.saveMirror(ctx)
	return s.current.Clone(), nil
}

// Clear drops the local cart and its mirror. The shop session's order,
// if any, is left to the backend's lifecycle; after a settled order the
// active order is gone anyway.
func (s *Store) Clear(ctx context.Context) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = cart.Apply(s.current, cart.Cleared{})
	s.lastErr = nil
	if err := s.mirror.Clear(ctx); err != nil {
		s.logger.Warn("cart mirror clear failed", zap.Error(err))
	}
	return s.current.Clone()
}

// resync replaces local state with the server's view after a failed
// mutation. Best effort: if the fetch itself fails the optimistic state
// stays and the original error is what the caller sees.
func (s *Store) resync(ctx context.Context) {
	server, err := s.gateway.ActiveOrder(ctx)
	if err != nil {
		s.logger.Warn("cart resync failed", zap.Error(err))
		return
	}
	if server == nil {
		s.current = cart.Apply(s.current, cart.Cleared{})
		return
	}
	s.current = cart.Apply(s.current, cart.ServerSynced{Cart: *server})
}

func (s *Store) saveMirror(ctx context.Context) {
	if err := s.mirror.Save(ctx, s.current); err != nil {
		s.logger.Warn("cart mirror save failed", zap.Error(err))
	}
}

func isPlaceholderLine(lineID string) bool {
	return strings.HasPrefix(lineID, "line-")
}
