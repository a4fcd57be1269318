package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/cahoico/storefront/internal/application/catalog"
)

// CatalogHandler serves the read-only catalog surface
type CatalogHandler struct {
	BaseHandler
	service *catalogapp.Service
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(service *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:slug", h.GetProduct)
	rg.GET("/collections", h.ListCollections)
	rg.GET("/collections/:slug", h.GetCollection)
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct handles GET /products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.service.ProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListCollections handles GET /collections
func (h *CatalogHandler) ListCollections(c *gin.Context) {
	collections, err := h.service.Collections(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collections)
}

// GetCollection handles GET /collections/:slug
func (h *CatalogHandler) GetCollection(c *gin.Context) {
	collection, err := h.service.CollectionBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}
