package checkout

// State represents the checkout sequence position. States are strictly
// ordered; there is no skipping backward once advanced except a full
// restart.
type State string

const (
	StateCollectingCustomerInfo  State = "COLLECTING_CUSTOMER_INFO"
	StateCollectingAddress       State = "COLLECTING_ADDRESS"
	StateAwaitingShippingOptions State = "AWAITING_SHIPPING_OPTIONS"
	StateAwaitingPaymentOptions  State = "AWAITING_PAYMENT_OPTIONS"
	StateReadyToSubmit           State = "READY_TO_SUBMIT"
	StateSubmitting              State = "SUBMITTING"
	StateCompleted               State = "COMPLETED"
)

// IsValid checks if the state is a known checkout state
func (s State) IsValid() bool {
	switch s {
	case StateCollectingCustomerInfo, StateCollectingAddress,
		StateAwaitingShippingOptions, StateAwaitingPaymentOptions,
		StateReadyToSubmit, StateSubmitting, StateCompleted:
		return true
	}
	return false
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether the state is terminal
func (s State) IsTerminal() bool {
	return s == StateCompleted
}

// CanTransitionTo checks if the state can transition to the target state.
// Forward moves follow the checkout order; failed passes fall back to the
// collecting states, and a failed submit returns to ReadyToSubmit.
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StateCollectingCustomerInfo:
		return target == StateCollectingAddress
	case StateCollectingAddress:
		return target == StateAwaitingShippingOptions || target == StateCollectingCustomerInfo
	case StateAwaitingShippingOptions:
		return target == StateAwaitingPaymentOptions || target == StateCollectingAddress
	case StateAwaitingPaymentOptions:
		return target == StateReadyToSubmit || target == StateCollectingAddress
	case StateReadyToSubmit:
		return target == StateSubmitting
	case StateSubmitting:
		return target == StateCompleted || target == StateReadyToSubmit
	case StateCompleted:
		return false // terminal
	}
	return false
}

// Vendure order states driven by the checkout sequence
const (
	OrderStateArrangingPayment = "ArrangingPayment"
	OrderStatePaymentSettled   = "PaymentSettled"
)
