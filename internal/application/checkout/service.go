package checkout

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	cartapp "github.com/cahoico/storefront/internal/application/cart"
	"github.com/cahoico/storefront/internal/domain/checkout"
	"github.com/cahoico/storefront/internal/domain/shared"
)

// Vietnamese storefront messages surfaced to the shopper. Backend
// messages pass through untranslated.
const (
	msgEmptyCart         = "Giỏ hàng trống"
	msgNoShippingMethods = "Không có phương thức vận chuyển nào khả dụng cho địa chỉ này"
	msgNoPaymentMethods  = "Không có phương thức thanh toán nào khả dụng"
	msgUnknownMethod     = "Phương thức đã chọn không hợp lệ"
	msgSubmitFailed      = "Đặt hàng không thành công, vui lòng thử lại"
	paymentMetadataNote  = "Thanh toán đơn hàng"
	paymentMetadataKey   = "note"
)

// Snapshot is the read model of the checkout flow, rendered by the
// presentation layer.
type Snapshot struct {
	State            checkout.State            `json:"state"`
	Form             checkout.Form             `json:"form"`
	ShippingMethods  []checkout.ShippingMethod `json:"shippingMethods"`
	PaymentMethods   []checkout.PaymentMethod  `json:"paymentMethods"`
	SelectedShipping string                    `json:"selectedShippingMethod,omitempty"`
	SelectedPayment  string                    `json:"selectedPaymentMethod,omitempty"`
	ShippingFee      int64                     `json:"shippingFee"`
	OrderCode        string                    `json:"orderCode,omitempty"`
	Error            string                    `json:"error,omitempty"`
	InFlight         bool                      `json:"inFlight"`
}

// Service drives the checkout state machine. The in-flight guard
// serializes orchestration passes: at most one runs at a time and a
// trigger arriving while one is running is dropped, not queued. The
// mutex only guards field access, so Status stays responsive while a
// pass is waiting on the network.
type Service struct {
	mu       sync.Mutex
	inFlight atomic.Bool

	gateway checkout.Gateway
	cart    *cartapp.Store
	logger  *zap.Logger

	state            checkout.State
	form             checkout.Form
	shippingMethods  []checkout.ShippingMethod
	paymentMethods   []checkout.PaymentMethod
	selectedShipping string
	selectedPayment  string
	shippingFee      int64
	orderCode        string
	lastErr          string
}

// NewService creates a checkout service in its initial state
func NewService(gateway checkout.Gateway, cartStore *cartapp.Store, logger *zap.Logger) *Service {
	return &Service{
		gateway: gateway,
		cart:    cartStore,
		logger:  logger.Named("checkout"),
		state:   checkout.StateCollectingCustomerInfo,
	}
}

// Status returns the current checkout read model
func (s *Service) Status() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	return Snapshot{
		State:            s.state,
		Form:             s.form,
		ShippingMethods:  s.shippingMethods,
		PaymentMethods:   s.paymentMethods,
		SelectedShipping: s.selectedShipping,
		SelectedPayment:  s.selectedPayment,
		ShippingFee:      s.shippingFee,
		OrderCode:        s.orderCode,
		Error:            s.lastErr,
		InFlight:         s.inFlight.Load(),
	}
}

// SubmitDetails accepts the customer and address sections together and,
// when both validate, runs the prepare pass: transition the order to
// ArrangingPayment, set customer, set address, fetch eligible shipping
// methods. A single eligible method is selected automatically.
func (s *Service) SubmitDetails(ctx context.Context, form checkout.Form) (Snapshot, error) {
	if err := form.Validate(); err != nil {
		s.setError(err.Error())
		return s.Status(), err
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		// A pass is already running; this trigger is dropped.
		return s.Status(), nil
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	if s.state.IsTerminal() {
		s.lastErr = shared.ErrInvalidState.Message
		s.mu.Unlock()
		return s.Status(), shared.ErrInvalidState
	}
	s.mu.Unlock()

	if s.cart.Current().IsEmpty() {
		err := shared.NewValidationError("cart", msgEmptyCart)
		s.setError(err.Message)
		return s.Status(), err
	}

	s.mu.Lock()
	s.form = form
	s.state = checkout.StateCollectingAddress
	s.mu.Unlock()

	if err := s.gateway.TransitionOrderToState(ctx, checkout.OrderStateArrangingPayment); err != nil {
		return s.prepareFailed(err)
	}
	if err := s.gateway.SetCustomer(ctx, form.Customer); err != nil {
		return s.prepareFailed(err)
	}
	if err := s.gateway.SetShippingAddress(ctx, form.FullName(), form.Customer.PhoneNumber, form.Address); err != nil {
		return s.prepareFailed(err)
	}

	methods, err := s.gateway.EligibleShippingMethods(ctx)
	if err != nil {
		return s.prepareFailed(err)
	}
	if len(methods) == 0 {
		err := shared.NewValidationError("shippingMethods", msgNoShippingMethods)
		s.setError(err.Message)
		return s.Status(), err
	}

	s.mu.Lock()
	s.shippingMethods = methods
	s.state = checkout.StateAwaitingShippingOptions
	s.lastErr = ""
	s.mu.Unlock()

	if len(methods) == 1 {
		if err := s.selectShipping(ctx, methods[0].ID); err != nil {
			return s.Status(), err
		}
	}
	return s.Status(), nil
}

// SelectShippingMethod submits the chosen shipping method and fetches
// eligible payment methods. A single eligible payment method is
// selected automatically.
func (s *Service) SelectShippingMethod(ctx context.Context, shippingMethodID string) (Snapshot, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return s.Status(), nil
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if state != checkout.StateAwaitingShippingOptions {
		s.setError(shared.ErrInvalidState.Message)
		return s.Status(), shared.ErrInvalidState
	}

	if err := s.selectShipping(ctx, shippingMethodID); err != nil {
		return s.Status(), err
	}
	return s.Status(), nil
}

// selectShipping runs inside an already-claimed orchestration pass
func (s *Service) selectShipping(ctx context.Context, shippingMethodID string) error {
	s.mu.Lock()
	method := s.findShippingMethodLocked(shippingMethodID)
	s.mu.Unlock()
	if method == nil {
		err := shared.NewValidationError("shippingMethodId", msgUnknownMethod)
		s.setError(err.Message)
		return err
	}

	if err := s.gateway.SetShippingMethod(ctx, method.ID); err != nil {
		s.setError(err.Error())
		return err
	}

	s.mu.Lock()
	s.selectedShipping = method.ID
	s.shippingFee = method.PriceWithTax
	s.mu.Unlock()

	payments, err := s.gateway.EligiblePaymentMethods(ctx)
	if err != nil {
		s.setError(err.Error())
		return err
	}

	eligible := make([]checkout.PaymentMethod, 0, len(payments))
	for _, p := range payments {
		if p.IsEligible {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		err := shared.NewValidationError("paymentMethods", msgNoPaymentMethods)
		s.setError(err.Message)
		return err
	}

	s.mu.Lock()
	s.paymentMethods = eligible
	s.state = checkout.StateAwaitingPaymentOptions
	s.lastErr = ""
	if len(eligible) == 1 {
		s.selectedPayment = eligible[0].Code
		s.state = checkout.StateReadyToSubmit
	}
	s.mu.Unlock()
	return nil
}

// SelectPaymentMethod records the chosen payment method locally and
// advances to ReadyToSubmit. No network call is made; the payment is
// added at submit time.
func (s *Service) SelectPaymentMethod(code string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != checkout.StateAwaitingPaymentOptions && s.state != checkout.StateReadyToSubmit {
		s.lastErr = shared.ErrInvalidState.Message
		return s.snapshotLocked(), shared.ErrInvalidState
	}

	for _, p := range s.paymentMethods {
		if p.Code == code {
			s.selectedPayment = code
			s.state = checkout.StateReadyToSubmit
			s.lastErr = ""
			return s.snapshotLocked(), nil
		}
	}

	err := shared.NewValidationError("paymentMethodCode", msgUnknownMethod)
	s.lastErr = err.Message
	return s.snapshotLocked(), err
}

// Submit runs the final ordered sequence: set customer, set address,
// set shipping method, transition to ArrangingPayment, add payment,
// transition to PaymentSettled. Any step failure returns the flow to
// ReadyToSubmit with the error surfaced; steps already applied on the
// backend are not compensated.
func (s *Service) Submit(ctx context.Context) (Snapshot, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return s.Status(), nil
	}
	defer s.inFlight.Store(false)

	s.mu.Lock()
	if s.state != checkout.StateReadyToSubmit {
		s.lastErr = shared.ErrInvalidState.Message
		s.mu.Unlock()
		return s.Status(), shared.ErrInvalidState
	}
	form := s.form
	shipping := s.selectedShipping
	payment := s.selectedPayment
	s.state = checkout.StateSubmitting
	s.lastErr = ""
	s.mu.Unlock()

	steps := []func() error{
		func() error { return s.gateway.SetCustomer(ctx, form.Customer) },
		func() error {
			return s.gateway.SetShippingAddress(ctx, form.FullName(), form.Customer.PhoneNumber, form.Address)
		},
		func() error { return s.gateway.SetShippingMethod(ctx, shipping) },
		func() error { return s.gateway.TransitionOrderToState(ctx, checkout.OrderStateArrangingPayment) },
		func() error {
			return s.gateway.AddPayment(ctx, payment, map[string]string{paymentMetadataKey: paymentMetadataNote})
		},
		func() error { return s.gateway.TransitionOrderToState(ctx, checkout.OrderStatePaymentSettled) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			s.mu.Lock()
			s.state = checkout.StateReadyToSubmit
			s.lastErr = submitErrorMessage(err)
			s.mu.Unlock()
			s.logger.Warn("checkout submit failed", zap.Error(err))
			return s.Status(), err
		}
	}

	code := s.cart.Current().Code
	s.cart.Clear(ctx)

	s.mu.Lock()
	s.orderCode = code
	s.state = checkout.StateCompleted
	s.mu.Unlock()

	s.logger.Info("order placed", zap.String("code", code))
	return s.Status(), nil
}

// Reset returns the flow to its initial state so a fresh checkout can
// begin after a completed order. The cart is untouched.
func (s *Service) Reset() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = checkout.StateCollectingCustomerInfo
	s.form = checkout.Form{}
	s.shippingMethods = nil
	s.paymentMethods = nil
	s.selectedShipping = ""
	s.selectedPayment = ""
	s.shippingFee = 0
	s.orderCode = ""
	s.lastErr = ""
	return s.snapshotLocked()
}

func (s *Service) findShippingMethodLocked(id string) *checkout.ShippingMethod {
	for i := range s.shippingMethods {
		if s.shippingMethods[i].ID == id {
			return &s.shippingMethods[i]
		}
	}
	return nil
}

// prepareFailed reverts a failed prepare pass so the shopper can
// correct the form and re-trigger.
func (s *Service) prepareFailed(err error) (Snapshot, error) {
	s.mu.Lock()
	s.state = checkout.StateCollectingAddress
	s.lastErr = err.Error()
	s.mu.Unlock()
	s.logger.Warn("checkout prepare failed", zap.Error(err))
	return s.Status(), err
}

func (s *Service) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// submitErrorMessage keeps backend-provided messages and falls back to
// a generic storefront message for transport failures.
func submitErrorMessage(err error) string {
	switch e := err.(type) {
	case *shared.DomainError:
		return e.Message
	case *shared.BackendError:
		return e.Message
	default:
		return msgSubmitFailed
	}
}
