package cart

// Action is a tagged cart mutation. Local actions (ItemAdded,
// QuantityChanged, ItemRemoved, Cleared) apply optimistic state;
// ServerSynced carries the authoritative server order and always replaces
// the whole cart, never merges.
type Action interface {
	isAction()
}

// ItemAdded adds a variant to the cart. If a line for the same variant
// already exists, its quantity is incremented instead of duplicating the
// line. LineID is optional; a placeholder is synthesized when empty.
type ItemAdded struct {
	Variant  Variant
	Quantity int
	LineID   string
}

// QuantityChanged replaces the quantity of an existing line. A quantity
// below 1 removes the line.
type QuantityChanged struct {
	LineID   string
	Quantity int
}

// ItemRemoved removes a line by id. Removing an unknown line is a no-op.
type ItemRemoved struct {
	LineID string
}

// Cleared empties the cart.
type Cleared struct{}

// ServerSynced replaces the cart with the server-derived snapshot.
type ServerSynced struct {
	Cart Cart
}

func (ItemAdded) isAction()       {}
func (QuantityChanged) isAction() {}
func (ItemRemoved) isAction()     {}
func (Cleared) isAction()         {}
func (ServerSynced) isAction()    {}

// Apply reduces an action over the cart and returns the next cart state
// with totals recomputed. The input cart is not mutated.
func Apply(c Cart, action Action) Cart {
	next := c.Clone()

	switch a := action.(type) {
	case ItemAdded:
		if a.Quantity < 1 {
			return c
		}
		if i := next.findByVariant(a.Variant.ID); i >= 0 {
			next.Items[i].Quantity += a.Quantity
		} else {
			lineID := a.LineID
			if lineID == "" {
				lineID = NewLineID(a.Variant.ID)
			}
			next.Items = append(next.Items, LineItem{
				ID:       lineID,
				Quantity: a.Quantity,
				Variant:  a.Variant,
			})
		}

	case QuantityChanged:
		if a.Quantity < 1 {
			return Apply(c, ItemRemoved{LineID: a.LineID})
		}
		line := next.FindLine(a.LineID)
		if line == nil {
			return c
		}
		line.Quantity = a.Quantity

	case ItemRemoved:
		items := make([]LineItem, 0, len(next.Items))
		for _, item := range next.Items {
			if item.ID != a.LineID {
				items = append(items, item)
			}
		}
		next.Items = items

	case Cleared:
		return Empty()

	case ServerSynced:
		synced := a.Cart.Clone()
		serverTotal := synced.Total
		synced = synced.recompute()
		// The server total is authoritative when present: it may carry
		// charges beyond the line-item sum, such as shipping.
		if serverTotal > 0 {
			synced.Total = serverTotal
		}
		return synced
	}

	return next.recompute()
}
