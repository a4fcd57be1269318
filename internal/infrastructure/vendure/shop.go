package vendure

import (
	"context"

	"go.uber.org/zap"

	"github.com/cahoico/storefront/internal/domain/cart"
	"github.com/cahoico/storefront/internal/domain/catalog"
	"github.com/cahoico/storefront/internal/domain/checkout"
)

// Shop exposes the shop API as the domain gateway interfaces. All order
// operations run against the session held by the underlying client.
type Shop struct {
	client *Client
	logger *zap.Logger
}

// NewShop creates the shop facade over a client
func NewShop(client *Client, logger *zap.Logger) *Shop {
	return &Shop{
		client: client,
		logger: logger.Named("shop"),
	}
}

var (
	_ cart.OrderGateway  = (*Shop)(nil)
	_ checkout.Gateway   = (*Shop)(nil)
	_ catalog.Repository = (*Shop)(nil)
)

// ActiveOrder implements cart.OrderGateway. A session without an open
// order yields (nil, nil).
func (s *Shop) ActiveOrder(ctx context.Context) (*cart.Cart, error) {
	var data struct {
		ActiveOrder *wireOrder `json:"activeOrder"`
	}
	if err := s.client.Execute(ctx, activeOrderQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.ActiveOrder == nil {
		return nil, nil
	}
	c := toCart(*data.ActiveOrder)
	return &c, nil
}

// AddItem implements cart.OrderGateway
func (s *Shop) AddItem(ctx context.Context, variantID string, quantity int) (*cart.Cart, error) {
	var data struct {
		AddItemToOrder orderResult `json:"addItemToOrder"`
	}
	err := s.client.Execute(ctx, addItemToOrderMutation, map[string]any{
		"productVariantId": variantID,
		"quantity":         quantity,
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.AddItemToOrder.asCart()
}

// RemoveLine implements cart.OrderGateway
func (s *Shop) RemoveLine(ctx context.Context, lineID string) (*cart.Cart, error) {
	var data struct {
		RemoveOrderLine orderResult `json:"removeOrderLine"`
	}
	err := s.client.Execute(ctx, removeOrderLineMutation, map[string]any{
		"orderLineId": lineID,
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.RemoveOrderLine.asCart()
}

// AdjustLine implements cart.OrderGateway
func (s *Shop) AdjustLine(ctx context.Context, lineID string, quantity int) (*cart.Cart, error) {
	var data struct {
		AdjustOrderLine orderResult `json:"adjustOrderLine"`
	}
	err := s.client.Execute(ctx, adjustOrderLineMutation, map[string]any{
		"orderLineId": lineID,
		"quantity":    quantity,
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.AdjustOrderLine.asCart()
}

// SetCustomer implements checkout.Gateway
func (s *Shop) SetCustomer(ctx context.Context, customer checkout.CustomerDetails) error {
	var data struct {
		SetCustomerForOrder orderResult `json:"setCustomerForOrder"`
	}
	err := s.client.Execute(ctx, setCustomerForOrderMutation, map[string]any{
		"input": map[string]any{
			"firstName":    customer.FirstName,
			"lastName":     customer.LastName,
			"emailAddress": customer.EmailAddress,
			"phoneNumber":  customer.PhoneNumber,
		},
	}, &data)
	if err != nil {
		return err
	}
	return data.SetCustomerForOrder.asError()
}

// SetShippingAddress implements checkout.Gateway
func (s *Shop) SetShippingAddress(ctx context.Context, fullName, phone string, addr checkout.Address) error {
	var data struct {
		SetOrderShippingAddress orderResult `json:"setOrderShippingAddress"`
	}
	err := s.client.Execute(ctx, setOrderShippingAddressMutation, map[string]any{
		"input": map[string]any{
			"fullName":    fullName,
			"phoneNumber": phone,
			"streetLine1": addr.StreetLine1,
			"streetLine2": addr.StreetLine2,
			"city":        addr.City,
			"province":    addr.Province,
			"postalCode":  addr.PostalCode,
			"countryCode": addr.CountryCode,
		},
	}, &data)
	if err != nil {
		return err
	}
	return data.SetOrderShippingAddress.asError()
}

// EligibleShippingMethods implements checkout.Gateway
func (s *Shop) EligibleShippingMethods(ctx context.Context) ([]checkout.ShippingMethod, error) {
	var data struct {
		EligibleShippingMethods []checkout.ShippingMethod `json:"eligibleShippingMethods"`
	}
	if err := s.client.Execute(ctx, eligibleShippingMethodsQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.EligibleShippingMethods, nil
}

// SetShippingMethod implements checkout.Gateway
func (s *Shop) SetShippingMethod(ctx context.Context, shippingMethodID string) error {
	var data struct {
		SetOrderShippingMethod orderResult `json:"setOrderShippingMethod"`
	}
	err := s.client.Execute(ctx, setOrderShippingMethodMutation, map[string]any{
		"shippingMethodId": []string{shippingMethodID},
	}, &data)
	if err != nil {
		return err
	}
	return data.SetOrderShippingMethod.asError()
}

// EligiblePaymentMethods implements checkout.Gateway
func (s *Shop) EligiblePaymentMethods(ctx context.Context) ([]checkout.PaymentMethod, error) {
	var data struct {
		EligiblePaymentMethods []checkout.PaymentMethod `json:"eligiblePaymentMethods"`
	}
	if err := s.client.Execute(ctx, eligiblePaymentMethodsQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.EligiblePaymentMethods, nil
}

// AddPayment implements checkout.Gateway
func (s *Shop) AddPayment(ctx context.Context, method string, metadata map[string]string) error {
	if metadata == nil {
		metadata = map[string]string{}
	}
	var data struct {
		AddPaymentToOrder orderResult `json:"addPaymentToOrder"`
	}
	err := s.client.Execute(ctx, addPaymentToOrderMutation, map[string]any{
		"input": map[string]any{
			"method":   method,
			"metadata": metadata,
		},
	}, &data)
	if err != nil {
		return err
	}
	return data.AddPaymentToOrder.asError()
}

// TransitionOrderToState implements checkout.Gateway. Transition
// rejections arrive as OrderStateTransitionError and surface as
// shared.DomainError.
func (s *Shop) TransitionOrderToState(ctx context.Context, state string) error {
	var data struct {
		TransitionOrderToState orderResult `json:"transitionOrderToState"`
	}
	err := s.client.Execute(ctx, transitionOrderToStateMutation, map[string]any{
		"state": state,
	}, &data)
	if err != nil {
		return err
	}
	return data.TransitionOrderToState.asError()
}

// Products implements catalog.Repository
func (s *Shop) Products(ctx context.Context) ([]catalog.Product, error) {
	var data struct {
		Products struct {
			Items []wireProduct `json:"items"`
		} `json:"products"`
	}
	if err := s.client.Execute(ctx, productsQuery, nil, &data); err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(data.Products.Items))
	for _, p := range data.Products.Items {
		products = append(products, toCatalogProduct(p))
	}
	return products, nil
}

// ProductBySlug implements catalog.Repository. Unknown slugs yield
// (nil, nil).
func (s *Shop) ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var data struct {
		Product *wireProduct `json:"product"`
	}
	err := s.client.Execute(ctx, productBySlugQuery, map[string]any{"slug": slug}, &data)
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}
	p := toCatalogProduct(*data.Product)
	return &p, nil
}

// Collections implements catalog.Repository
func (s *Shop) Collections(ctx context.Context) ([]catalog.Collection, error) {
	var data struct {
		Collections struct {
			Items []wireCollection `json:"items"`
		} `json:"collections"`
	}
	if err := s.client.Execute(ctx, collectionsQuery, nil, &data); err != nil {
		return nil, err
	}
	collections := make([]catalog.Collection, 0, len(data.Collections.Items))
	for _, c := range data.Collections.Items {
		collections = append(collections, toCatalogCollection(c))
	}
	return collections, nil
}

// CollectionBySlug implements catalog.Repository. Unknown slugs yield
// (nil, nil).
func (s *Shop) CollectionBySlug(ctx context.Context, slug string) (*catalog.Collection, error) {
	var data struct {
		Collection *wireCollection `json:"collection"`
	}
	err := s.client.Execute(ctx, collectionBySlugQuery, map[string]any{"slug": slug}, &data)
	if err != nil {
		return nil, err
	}
	if data.Collection == nil {
		return nil, nil
	}
	c := toCatalogCollection(*data.Collection)
	return &c, nil
}
