package cart

import "context"

// OrderGateway is the shop-API surface the cart store depends on. Every
// mutation returns the authoritative server cart derived from the order
// payload; implementations surface typed ErrorResult payloads as
// shared.DomainError.
type OrderGateway interface {
	// ActiveOrder fetches the session's open order. Returns (nil, nil)
	// when no active order exists; that is a valid empty state, not a
	// failure.
	ActiveOrder(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, variantID string, quantity int) (*Cart, error)
	RemoveLine(ctx context.Context, lineID string) (*Cart, error)
	AdjustLine(ctx context.Context, lineID string, quantity int) (*Cart, error)
}

// Mirror is the best-effort persisted cart slot. It is read at most once at
// startup and written after every successful mutation; concurrent sessions
// may race and overwrite each other's copy.
type Mirror interface {
	// Load returns the persisted cart and whether one existed.
	Load(ctx context.Context) (Cart, bool, error)
	Save(ctx context.Context, c Cart) error
	Clear(ctx context.Context) error
}
