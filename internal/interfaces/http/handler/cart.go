package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/cahoico/storefront/internal/application/cart"
	"github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/interfaces/http/dto"
)

// AddItemRequest is the payload for adding a variant to the cart. The
// client sends the variant details it rendered; the shop API confirms
// the authoritative line afterwards.
type AddItemRequest struct {
	Variant  VariantPayload `json:"productVariant" binding:"required"`
	Quantity int            `json:"quantity" binding:"required"`
}

// VariantPayload mirrors the variant fields a cart line needs
type VariantPayload struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	PriceWithTax int64  `json:"priceWithTax"`
	CurrencyCode string `json:"currencyCode"`
	Preview      string `json:"preview"`
}

// AdjustLineRequest is the payload for changing a line's quantity
type AdjustLineRequest struct {
	Quantity int `json:"quantity"`
}

// CartHandler serves the session cart
type CartHandler struct {
	BaseHandler
	store *cartapp.Store
}

// NewCartHandler creates a cart handler
func NewCartHandler(store *cartapp.Store) *CartHandler {
	return &CartHandler{store: store}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/cart")
	{
		carts.GET("", h.Get)
		carts.POST("/items", h.AddItem)
		carts.PATCH("/lines/:id", h.AdjustLine)
		carts.DELETE("/lines/:id", h.RemoveLine)
		carts.DELETE("", h.Clear)
	}
}

// Get handles GET /cart. The first call loads the persisted snapshot or
// the active order; later calls return the in-memory state.
func (h *CartHandler) Get(c *gin.Context) {
	snapshot, err := h.store.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	variant := cart.Variant{
		ID:           req.Variant.ID,
		SKU:          req.Variant.SKU,
		Name:         req.Variant.Name,
		PriceWithTax: req.Variant.PriceWithTax,
		CurrencyCode: req.Variant.CurrencyCode,
		Preview:      req.Variant.Preview,
	}
	snapshot, err := h.store.AddItem(c.Request.Context(), variant, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// AdjustLine handles PATCH /cart/lines/:id
func (h *CartHandler) AdjustLine(c *gin.Context) {
	var req AdjustLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	snapshot, err := h.store.AdjustLine(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// RemoveLine handles DELETE /cart/lines/:id
func (h *CartHandler) RemoveLine(c *gin.Context) {
	snapshot, err := h.store.RemoveLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.Success(c, h.store.Clear(c.Request.Context()))
}
