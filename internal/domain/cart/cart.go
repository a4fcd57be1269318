package cart

import (
	"fmt"
	"time"

	"github.com/cahoico/storefront/internal/domain/shared"
)

// Variant identifies the purchasable product variant behind a cart line.
// PriceWithTax is in minor currency units as returned by the shop API.
type Variant struct {
	ID           string `json:"id"`
	SKU          string `json:"sku,omitempty"`
	Name         string `json:"name"`
	PriceWithTax int64  `json:"priceWithTax"`
	CurrencyCode string `json:"currencyCode"`
	Preview      string `json:"preview,omitempty"`
}

// LineItem is one cart entry. The ID is either the server-assigned order
// line id or a client-generated placeholder of the form
// "line-<variantID>-<timestamp>" until the server confirms the line.
type LineItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Variant  Variant `json:"productVariant"`
}

// Subtotal returns quantity * unit price for this line
func (l LineItem) Subtotal() int64 {
	return int64(l.Quantity) * l.Variant.PriceWithTax
}

// Cart is the session's view of the active order. TotalQuantity is always
// recomputed from Items; Total tracks the server payload when one is
// present and falls back to the line-item sum after local mutations.
type Cart struct {
	OrderID       string     `json:"orderId,omitempty"`
	Code          string     `json:"code,omitempty"`
	State         string     `json:"state,omitempty"`
	CurrencyCode  string     `json:"currencyCode,omitempty"`
	Items         []LineItem `json:"items"`
	Total         int64      `json:"total"`
	TotalQuantity int        `json:"totalQuantity"`
}

// Empty returns an empty cart
func Empty() Cart {
	return Cart{Items: []LineItem{}}
}

// IsEmpty reports whether the cart has no line items
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]LineItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// FindLine returns the line with the given id, or nil
func (c Cart) FindLine(lineID string) *LineItem {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return &c.Items[i]
		}
	}
	return nil
}

// findByVariant returns the index of the line holding the variant, or -1
func (c Cart) findByVariant(variantID string) int {
	for i := range c.Items {
		if c.Items[i].Variant.ID == variantID {
			return i
		}
	}
	return -1
}

// recompute derives Total and TotalQuantity from the line items. Lines with
// quantity below 1 are dropped, never retained.
func (c Cart) recompute() Cart {
	items := make([]LineItem, 0, len(c.Items))
	var total int64
	var qty int
	for _, item := range c.Items {
		if item.Quantity < 1 {
			continue
		}
		items = append(items, item)
		total += item.Subtotal()
		qty += item.Quantity
	}
	c.Items = items
	c.Total = total
	c.TotalQuantity = qty
	if c.CurrencyCode == "" && len(items) > 0 {
		c.CurrencyCode = items[0].Variant.CurrencyCode
	}
	return c
}

// NewLineID generates a client-side placeholder line id for a variant that
// the server has not yet confirmed.
func NewLineID(variantID string) string {
	return fmt.Sprintf("line-%s-%d", variantID, time.Now().UnixMilli())
}

// ValidateVariant checks that a variant carries everything a cart line
// needs: id, name, positive price and a currency code.
func ValidateVariant(v Variant) error {
	if v.ID == "" {
		return shared.NewValidationError("variant.id", "Thiếu ID biến thể sản phẩm")
	}
	if v.Name == "" {
		return shared.NewValidationError("variant.name", "Thiếu tên biến thể sản phẩm")
	}
	if v.PriceWithTax <= 0 {
		return shared.NewValidationError("variant.priceWithTax", "Giá sản phẩm không hợp lệ")
	}
	if v.CurrencyCode == "" {
		return shared.NewValidationError("variant.currencyCode", "Thiếu mã tiền tệ")
	}
	return nil
}
