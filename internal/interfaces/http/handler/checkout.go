package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/cahoico/storefront/internal/application/checkout"
	"github.com/cahoico/storefront/internal/domain/checkout"
	"github.com/cahoico/storefront/internal/interfaces/http/dto"
)

// SubmitDetailsRequest carries the customer and address form sections
type SubmitDetailsRequest struct {
	Customer checkout.CustomerDetails `json:"customer"`
	Address  checkout.Address         `json:"address"`
}

// SelectShippingMethodRequest selects one eligible shipping method
type SelectShippingMethodRequest struct {
	ShippingMethodID string `json:"shippingMethodId" binding:"required"`
}

// SelectPaymentMethodRequest selects one eligible payment method
type SelectPaymentMethodRequest struct {
	Code string `json:"code" binding:"required"`
}

// CheckoutHandler drives the checkout flow over HTTP
type CheckoutHandler struct {
	BaseHandler
	service *checkoutapp.Service
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(service *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	co := rg.Group("/checkout")
	{
		co.GET("", h.Status)
		co.POST("/details", h.SubmitDetails)
		co.POST("/shipping-method", h.SelectShippingMethod)
		co.POST("/payment-method", h.SelectPaymentMethod)
		co.POST("/submit", h.Submit)
		co.POST("/reset", h.Reset)
	}
}

// Status handles GET /checkout
func (h *CheckoutHandler) Status(c *gin.Context) {
	h.Success(c, h.service.Status())
}

// SubmitDetails handles POST /checkout/details
func (h *CheckoutHandler) SubmitDetails(c *gin.Context) {
	var req SubmitDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	snapshot, err := h.service.SubmitDetails(c.Request.Context(), checkout.Form{
		Customer: req.Customer,
		Address:  req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// SelectShippingMethod handles POST /checkout/shipping-method
func (h *CheckoutHandler) SelectShippingMethod(c *gin.Context) {
	var req SelectShippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	snapshot, err := h.service.SelectShippingMethod(c.Request.Context(), req.ShippingMethodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// SelectPaymentMethod handles POST /checkout/payment-method
func (h *CheckoutHandler) SelectPaymentMethod(c *gin.Context) {
	var req SelectPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	snapshot, err := h.service.SelectPaymentMethod(req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// Submit handles POST /checkout/submit
func (h *CheckoutHandler) Submit(c *gin.Context) {
	snapshot, err := h.service.Submit(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// Reset handles POST /checkout/reset
func (h *CheckoutHandler) Reset(c *gin.Context) {
	h.Success(c, h.service.Reset())
}
