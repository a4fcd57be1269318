package checkout

import "context"

// ShippingMethod is a read-only option the backend computed as valid for
// the current order contents and address. Prices are minor currency units.
type ShippingMethod struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	PriceWithTax int64  `json:"priceWithTax"`
}

// PaymentMethod is a read-only payment option for the current order
type PaymentMethod struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	IsEligible bool   `json:"isEligible"`
}

// Gateway is the shop-API surface the checkout orchestrator depends on.
// Implementations surface typed ErrorResult payloads as shared.DomainError;
// the orchestrator treats those as step failures even though the transport
// succeeded.
type Gateway interface {
	SetCustomer(ctx context.Context, customer CustomerDetails) error
	SetShippingAddress(ctx context.Context, fullName, phone string, addr Address) error
	EligibleShippingMethods(ctx context.Context) ([]ShippingMethod, error)
	SetShippingMethod(ctx context.Context, shippingMethodID string) error
	EligiblePaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	AddPayment(ctx context.Context, method string, metadata map[string]string) error
	TransitionOrderToState(ctx context.Context, state string) error
}
