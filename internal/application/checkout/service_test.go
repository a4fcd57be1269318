package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/cahoico/storefront/internal/application/cart"
	cartdomain "github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/domain/checkout"
	"github.com/cahoico/storefront/internal/domain/shared"
)

// fakeShopGateway records the order of shop-API calls and returns
// scripted results.
type fakeShopGateway struct {
	calls []string

	shippingMethods []checkout.ShippingMethod
	shippingErr     error
	paymentMethods  []checkout.PaymentMethod

	setCustomerErr  error
	addPaymentErr   error
	transitionErrBy map[string]error

	// When set, SetCustomer signals entry and parks until released, so
	// tests can observe a pass while it is on the wire.
	customerEntered chan struct{}
	blockOnCustomer chan struct{}
}

func (f *fakeShopGateway) SetCustomer(ctx context.Context, c checkout.CustomerDetails) error {
	f.calls = append(f.calls, "setCustomer")
	if f.customerEntered != nil {
		close(f.customerEntered)
	}
	if f.blockOnCustomer != nil {
		<-f.blockOnCustomer
	}
	return f.setCustomerErr
}

func (f *fakeShopGateway) SetShippingAddress(ctx context.Context, fullName, phone string, a checkout.Address) error {
	f.calls = append(f.calls, "setShippingAddress")
	return nil
}

func (f *fakeShopGateway) EligibleShippingMethods(ctx context.Context) ([]checkout.ShippingMethod, error) {
	f.calls = append(f.calls, "eligibleShippingMethods")
	return f.shippingMethods, f.shippingErr
}

func (f *fakeShopGateway) SetShippingMethod(ctx context.Context, id string) error {
	f.calls = append(f.calls, "setShippingMethod:"+id)
	return nil
}

func (f *fakeShopGateway) EligiblePaymentMethods(ctx context.Context) ([]checkout.PaymentMethod, error) {
	f.calls = append(f.calls, "eligiblePaymentMethods")
	return f.paymentMethods, nil
}

func (f *fakeShopGateway) AddPayment(ctx context.Context, method string, metadata map[string]string) error {
	f.calls = append(f.calls, "addPayment:"+method)
	return f.addPaymentErr
}

func (f *fakeShopGateway) TransitionOrderToState(ctx context.Context, state string) error {
	f.calls = append(f.calls, "transition:"+state)
	if f.transitionErrBy != nil {
		return f.transitionErrBy[state]
	}
	return nil
}

// stubOrderGateway backs the cart store with a fixed active order.
type stubOrderGateway struct {
	active *cartdomain.Cart
}

func (g *stubOrderGateway) ActiveOrder(ctx context.Context) (*cartdomain.Cart, error) {
	return g.active, nil
}

func (g *stubOrderGateway) AddItem(ctx context.Context, variantID string, quantity int) (*cartdomain.Cart, error) {
	return g.active, nil
}

func (g *stubOrderGateway) RemoveLine(ctx context.Context, lineID string) (*cartdomain.Cart, error) {
	return g.active, nil
}

func (g *stubOrderGateway) AdjustLine(ctx context.Context, lineID string, quantity int) (*cartdomain.Cart, error) {
	return g.active, nil
}

type nopMirror struct{}

func (nopMirror) Load(ctx context.Context) (cartdomain.Cart, bool, error) {
	return cartdomain.Empty(), false, nil
}
func (nopMirror) Save(ctx context.Context, c cartdomain.Cart) error { return nil }
func (nopMirror) Clear(ctx context.Context) error                   { return nil }

func filledCartStore(t *testing.T) *cartapp.Store {
	t.Helper()
	order := &cartdomain.Cart{
		OrderID:      "42",
		Code:         "ABC123",
		CurrencyCode: "VND",
		Items: []cartdomain.LineItem{
			{ID: "l1", Quantity: 2, Variant: cartdomain.Variant{
				ID: "v1", Name: "Ca phe sua", PriceWithTax: 25000, CurrencyCode: "VND",
			}},
		},
	}
	store := cartapp.NewStore(&stubOrderGateway{active: order}, nopMirror{}, zap.NewNop())
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	return store
}

func emptyCartStore(t *testing.T) *cartapp.Store {
	t.Helper()
	store := cartapp.NewStore(&stubOrderGateway{}, nopMirror{}, zap.NewNop())
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	return store
}

func validForm() checkout.Form {
	return checkout.Form{
		Customer: checkout.CustomerDetails{FirstName: "An", LastName: "Nguyen", PhoneNumber: "0900000000"},
		Address:  checkout.Address{StreetLine1: "1 Le Loi", City: "Da Lat", Province: "Lam Dong", CountryCode: "VN"},
	}
}

func oneShippingOnePayment() *fakeShopGateway {
	return &fakeShopGateway{
		shippingMethods: []checkout.ShippingMethod{
			{ID: "SM1", Code: "standard", Name: "Giao tieu chuan", PriceWithTax: 20000},
		},
		paymentMethods: []checkout.PaymentMethod{
			{ID: "PM1", Code: "cash-on-delivery", Name: "COD", IsEligible: true},
		},
	}
}

func TestSubmitDetails_InvalidFormBlocks(t *testing.T) {
	gw := oneShippingOnePayment()
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	form := validForm()
	form.Customer.FirstName = ""
	snap, err := svc.SubmitDetails(context.Background(), form)

	var vErr *shared.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, checkout.StateCollectingCustomerInfo, snap.State)
	assert.Empty(t, gw.calls, "validation failures must not reach the network")
}

func TestSubmitDetails_EmptyCartBlocks(t *testing.T) {
	gw := oneShippingOnePayment()
	svc := NewService(gw, emptyCartStore(t), zap.NewNop())

	snap, err := svc.SubmitDetails(context.Background(), validForm())

	require.Error(t, err)
	assert.Equal(t, "Giỏ hàng trống", snap.Error)
	assert.Equal(t, checkout.StateCollectingCustomerInfo, snap.State)
	assert.Empty(t, gw.calls)
}

func TestSubmitDetails_AutoSelectsSingleOptions(t *testing.T) {
	gw := oneShippingOnePayment()
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	snap, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, checkout.StateReadyToSubmit, snap.State)
	assert.Equal(t, "SM1", snap.SelectedShipping)
	assert.Equal(t, int64(20000), snap.ShippingFee)
	assert.Equal(t, "cash-on-delivery", snap.SelectedPayment)
	assert.Empty(t, snap.Error)

	assert.Equal(t, []string{
		"transition:ArrangingPayment",
		"setCustomer",
		"setShippingAddress",
		"eligibleShippingMethods",
		"setShippingMethod:SM1",
		"eligiblePaymentMethods",
	}, gw.calls)
}

func TestSubmitDetails_NoShippingMethods(t *testing.T) {
	gw := &fakeShopGateway{shippingMethods: nil}
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	snap, err := svc.SubmitDetails(context.Background(), validForm())

	require.Error(t, err)
	assert.Equal(t, "Không có phương thức vận chuyển nào khả dụng cho địa chỉ này", snap.Error)
	assert.NotEqual(t, checkout.StateAwaitingPaymentOptions, snap.State)
	assert.Empty(t, snap.SelectedShipping)
}

func TestSubmitDetails_GatewayRejection(t *testing.T) {
	gw := oneShippingOnePayment()
	gw.setCustomerErr = shared.NewDomainError("EMAIL_ADDRESS_CONFLICT_ERROR", "taken")
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	snap, err := svc.SubmitDetails(context.Background(), validForm())

	require.Error(t, err)
	assert.Equal(t, checkout.StateCollectingAddress, snap.State, "prepare failure requires a re-trigger")
}

func TestSubmitDetails_TransitionRejection(t *testing.T) {
	gw := oneShippingOnePayment()
	gw.transitionErrBy = map[string]error{
		checkout.OrderStateArrangingPayment: shared.NewDomainError("ORDER_STATE_TRANSITION_ERROR", "cannot transition"),
	}
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	snap, err := svc.SubmitDetails(context.Background(), validForm())

	require.Error(t, err)
	assert.Equal(t, checkout.StateCollectingAddress, snap.State)
	assert.Equal(t, []string{"transition:ArrangingPayment"}, gw.calls, "rejection stops the pass before customer details are sent")
}

func TestSelectShippingMethod_ManualFlow(t *testing.T) {
	gw := &fakeShopGateway{
		shippingMethods: []checkout.ShippingMethod{
			{ID: "SM1", Code: "standard", PriceWithTax: 20000},
			{ID: "SM2", Code: "express", PriceWithTax: 40000},
		},
		paymentMethods: []checkout.PaymentMethod{
			{ID: "PM1", Code: "cash-on-delivery", IsEligible: true},
			{ID: "PM2", Code: "bank-transfer", IsEligible: true},
		},
	}
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	snap, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, checkout.StateAwaitingShippingOptions, snap.State, "multiple methods need an explicit choice")

	snap, err = svc.SelectShippingMethod(context.Background(), "SM2")
	require.NoError(t, err)
	assert.Equal(t, checkout.StateAwaitingPaymentOptions, snap.State)
	assert.Equal(t, int64(40000), snap.ShippingFee)

	snap, err = svc.SelectPaymentMethod("bank-transfer")
	require.NoError(t, err)
	assert.Equal(t, checkout.StateReadyToSubmit, snap.State)
	assert.Equal(t, "bank-transfer", snap.SelectedPayment)
}

func TestSelectShippingMethod_UnknownID(t *testing.T) {
	gw := &fakeShopGateway{
		shippingMethods: []checkout.ShippingMethod{
			{ID: "SM1", PriceWithTax: 20000},
			{ID: "SM2", PriceWithTax: 40000},
		},
	}
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	_, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)

	_, err = svc.SelectShippingMethod(context.Background(), "SM9")
	var vErr *shared.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSelectShippingMethod_IneligiblePaymentsFiltered(t *testing.T) {
	gw := oneShippingOnePayment()
	gw.paymentMethods = []checkout.PaymentMethod{
		{ID: "PM1", Code: "cash-on-delivery", IsEligible: false},
	}
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	snap, err := svc.SubmitDetails(context.Background(), validForm())

	require.Error(t, err)
	assert.Equal(t, "Không có phương thức thanh toán nào khả dụng", snap.Error)
	assert.NotEqual(t, checkout.StateReadyToSubmit, snap.State)
}

func TestSubmit_HappyPath(t *testing.T) {
	gw := oneShippingOnePayment()
	cartStore := filledCartStore(t)
	svc := NewService(gw, cartStore, zap.NewNop())

	_, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)

	gw.calls = nil
	snap, err := svc.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, checkout.StateCompleted, snap.State)
	assert.Equal(t, "ABC123", snap.OrderCode)
	assert.True(t, cartStore.Current().IsEmpty(), "completed checkout clears the cart")

	assert.Equal(t, []string{
		"setCustomer",
		"setShippingAddress",
		"setShippingMethod:SM1",
		"transition:ArrangingPayment",
		"addPayment:cash-on-delivery",
		"transition:PaymentSettled",
	}, gw.calls, "submit steps run strictly in order")
}

func TestSubmit_PaymentRejectionReturnsToReady(t *testing.T) {
	gw := oneShippingOnePayment()
	gw.addPaymentErr = shared.NewDomainError("PAYMENT_DECLINED_ERROR", "Thẻ bị từ chối")
	cartStore := filledCartStore(t)
	svc := NewService(gw, cartStore, zap.NewNop())

	_, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)

	snap, err := svc.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, checkout.StateReadyToSubmit, snap.State, "never Completed on a rejected payment")
	assert.Equal(t, "Thẻ bị từ chối", snap.Error)
	assert.False(t, cartStore.Current().IsEmpty(), "cart survives a failed submit")

	// The settle transition must never have been attempted
	for _, call := range gw.calls {
		assert.NotEqual(t, "transition:PaymentSettled", call)
	}
}

func TestSubmitDetails_ConcurrentTriggerDropped(t *testing.T) {
	gw := oneShippingOnePayment()
	gw.customerEntered = make(chan struct{})
	gw.blockOnCustomer = make(chan struct{})
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, err := svc.SubmitDetails(context.Background(), validForm())
		assert.NoError(t, err)
	}()
	<-gw.customerEntered

	// The pass is parked inside the gateway; a second trigger must be
	// dropped immediately, without queueing or issuing calls.
	snap, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)
	assert.True(t, snap.InFlight)

	close(gw.blockOnCustomer)
	<-firstDone

	assert.Equal(t, []string{
		"transition:ArrangingPayment",
		"setCustomer",
		"setShippingAddress",
		"eligibleShippingMethods",
		"setShippingMethod:SM1",
		"eligiblePaymentMethods",
	}, gw.calls, "the dropped trigger added nothing to the sequence")
	assert.Equal(t, checkout.StateReadyToSubmit, svc.Status().State)
}

func TestSubmit_ConcurrentTriggerDropped(t *testing.T) {
	gw := oneShippingOnePayment()
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	_, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)

	gw.calls = nil
	gw.customerEntered = make(chan struct{})
	gw.blockOnCustomer = make(chan struct{})

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, err := svc.Submit(context.Background())
		assert.NoError(t, err)
	}()
	<-gw.customerEntered

	snap, err := svc.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkout.StateSubmitting, snap.State)
	assert.True(t, snap.InFlight)

	close(gw.blockOnCustomer)
	<-firstDone

	assert.Equal(t, []string{
		"setCustomer",
		"setShippingAddress",
		"setShippingMethod:SM1",
		"transition:ArrangingPayment",
		"addPayment:cash-on-delivery",
		"transition:PaymentSettled",
	}, gw.calls, "the submit steps ran exactly once")
	assert.Equal(t, checkout.StateCompleted, svc.Status().State)
}

func TestSubmit_RequiresReadyState(t *testing.T) {
	gw := oneShippingOnePayment()
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	_, err := svc.Submit(context.Background())
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Empty(t, gw.calls)
}

func TestReset_StartsFreshFlow(t *testing.T) {
	gw := oneShippingOnePayment()
	svc := NewService(gw, filledCartStore(t), zap.NewNop())

	_, err := svc.SubmitDetails(context.Background(), validForm())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background())
	require.NoError(t, err)

	snap := svc.Reset()
	assert.Equal(t, checkout.StateCollectingCustomerInfo, snap.State)
	assert.Empty(t, snap.OrderCode)
	assert.Empty(t, snap.ShippingMethods)
}
