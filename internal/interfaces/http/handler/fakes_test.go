package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/cahoico/storefront/internal/application/cart"
	cartdomain "github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/domain/catalog"
	"github.com/cahoico/storefront/internal/domain/checkout"
	"github.com/cahoico/storefront/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// performRequest runs one request against an engine and returns the
// recorder.
func performRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// fakeCatalogRepo backs the catalog service in handler tests
type fakeCatalogRepo struct {
	products   []catalog.Product
	product    *catalog.Product
	collection *catalog.Collection
	err        error
}

func (f *fakeCatalogRepo) Products(ctx context.Context) ([]catalog.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalogRepo) ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return f.product, f.err
}

func (f *fakeCatalogRepo) Collections(ctx context.Context) ([]catalog.Collection, error) {
	return nil, f.err
}

func (f *fakeCatalogRepo) CollectionBySlug(ctx context.Context, slug string) (*catalog.Collection, error) {
	return f.collection, f.err
}

// fakeOrderGateway backs the cart store in handler tests
type fakeOrderGateway struct {
	active *cartdomain.Cart
	result *cartdomain.Cart
	err    error
}

func (f *fakeOrderGateway) ActiveOrder(ctx context.Context) (*cartdomain.Cart, error) {
	return f.active, nil
}

func (f *fakeOrderGateway) AddItem(ctx context.Context, variantID string, quantity int) (*cartdomain.Cart, error) {
	return f.result, f.err
}

func (f *fakeOrderGateway) RemoveLine(ctx context.Context, lineID string) (*cartdomain.Cart, error) {
	return f.result, f.err
}

func (f *fakeOrderGateway) AdjustLine(ctx context.Context, lineID string, quantity int) (*cartdomain.Cart, error) {
	return f.result, f.err
}

type nopMirror struct{}

func (nopMirror) Load(ctx context.Context) (cartdomain.Cart, bool, error) {
	return cartdomain.Empty(), false, nil
}
func (nopMirror) Save(ctx context.Context, c cartdomain.Cart) error { return nil }
func (nopMirror) Clear(ctx context.Context) error                   { return nil }

func newCartStore(t *testing.T, gw *fakeOrderGateway) *cartapp.Store {
	t.Helper()
	return cartapp.NewStore(gw, nopMirror{}, zap.NewNop())
}

// fakeCheckoutGateway backs the checkout service in handler tests
type fakeCheckoutGateway struct {
	shippingMethods []checkout.ShippingMethod
	paymentMethods  []checkout.PaymentMethod
}

func (f *fakeCheckoutGateway) SetCustomer(ctx context.Context, c checkout.CustomerDetails) error {
	return nil
}

func (f *fakeCheckoutGateway) SetShippingAddress(ctx context.Context, fullName, phone string, a checkout.Address) error {
	return nil
}

func (f *fakeCheckoutGateway) EligibleShippingMethods(ctx context.Context) ([]checkout.ShippingMethod, error) {
	return f.shippingMethods, nil
}

func (f *fakeCheckoutGateway) SetShippingMethod(ctx context.Context, id string) error { return nil }

func (f *fakeCheckoutGateway) EligiblePaymentMethods(ctx context.Context) ([]checkout.PaymentMethod, error) {
	return f.paymentMethods, nil
}

func (f *fakeCheckoutGateway) AddPayment(ctx context.Context, method string, metadata map[string]string) error {
	return nil
}

func (f *fakeCheckoutGateway) TransitionOrderToState(ctx context.Context, state string) error {
	return nil
}

func shared502() error {
	return shared.NewNetworkStatusError(502)
}

func shopRejection(code, message string) error {
	return shared.NewDomainError(code, message)
}
