package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/interfaces/http/dto"
)

func newCartEngine(t *testing.T, gw *fakeOrderGateway) *gin.Engine {
	engine := gin.New()
	h := NewCartHandler(newCartStore(t, gw))
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func serverCartFixture() *cartdomain.Cart {
	return &cartdomain.Cart{
		OrderID:      "42",
		Code:         "ABC123",
		CurrencyCode: "VND",
		Items: []cartdomain.LineItem{
			{ID: "l1", Quantity: 2, Variant: cartdomain.Variant{
				ID: "v1", Name: "Ca phe sua", PriceWithTax: 25000, CurrencyCode: "VND",
			}},
		},
	}
}

func TestCartHandler_Get(t *testing.T) {
	engine := newCartEngine(t, &fakeOrderGateway{active: serverCartFixture()})

	w := performRequest(engine, "GET", "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    cartdomain.Cart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "42", resp.Data.OrderID)
	assert.Equal(t, int64(50000), resp.Data.Total, "totals are recomputed from lines")
}

func TestCartHandler_AddItem(t *testing.T) {
	engine := newCartEngine(t, &fakeOrderGateway{result: serverCartFixture()})

	body := `{
		"productVariant": {"id":"v1","name":"Ca phe sua","priceWithTax":25000,"currencyCode":"VND"},
		"quantity": 2
	}`
	w := performRequest(engine, "POST", "/api/v1/cart/items", body)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCartHandler_AddItem_ValidationError(t *testing.T) {
	engine := newCartEngine(t, &fakeOrderGateway{})

	body := `{
		"productVariant": {"id":"v1","name":"Ca phe sua","priceWithTax":0,"currencyCode":"VND"},
		"quantity": 1
	}`
	w := performRequest(engine, "POST", "/api/v1/cart/items", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "Giá sản phẩm không hợp lệ", resp.Error.Message)
}

func TestCartHandler_AddItem_ShopRejection(t *testing.T) {
	engine := newCartEngine(t, &fakeOrderGateway{
		err: shopRejection("INSUFFICIENT_STOCK_ERROR", "Only 1 left"),
	})

	body := `{
		"productVariant": {"id":"v1","name":"Ca phe sua","priceWithTax":25000,"currencyCode":"VND"},
		"quantity": 99
	}`
	w := performRequest(engine, "POST", "/api/v1/cart/items", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeShopRejected, resp.Error.Code)
	assert.Equal(t, "Only 1 left", resp.Error.Message)
}

func TestCartHandler_AdjustUnknownLine(t *testing.T) {
	engine := newCartEngine(t, &fakeOrderGateway{})

	w := performRequest(engine, "PATCH", "/api/v1/cart/lines/nope", `{"quantity":3}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartHandler_RemoveUnknownLine(t *testing.T) {
	engine := newCartEngine(t, &fakeOrderGateway{})

	w := performRequest(engine, "DELETE", "/api/v1/cart/lines/nope", "")
	require.Equal(t, http.StatusOK, w.Code, "deleting an absent line succeeds with the unchanged cart")
}

func TestCartHandler_Clear(t *testing.T) {
	engine := newCartEngine(t, &fakeOrderGateway{result: serverCartFixture()})

	w := performRequest(engine, "DELETE", "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data cartdomain.Cart `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data.Items)
}
