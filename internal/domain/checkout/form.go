package checkout

import (
	"github.com/cahoico/storefront/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CustomerDetails holds the customer section of the checkout form.
// Email is optional; Vendure derives a contact address from the phone
// number when it is absent.
type CustomerDetails struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"omitempty,email"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
}

// Address holds the shipping address section of the checkout form
type Address struct {
	StreetLine1 string `json:"streetLine1" validate:"required"`
	StreetLine2 string `json:"streetLine2"`
	City        string `json:"city" validate:"required"`
	Province    string `json:"province" validate:"required"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode" validate:"required"`
}

// Form is the complete checkout form. Each section is validated
// client-side before its dependent step issues any network call.
type Form struct {
	Customer CustomerDetails `json:"customer"`
	Address  Address         `json:"address"`
}

// FullName returns the shipping recipient name
func (f Form) FullName() string {
	return f.Customer.FirstName + " " + f.Customer.LastName
}

// Validate checks the customer section for required fields
func (c CustomerDetails) Validate() error {
	if err := validate.Struct(c); err != nil {
		return shared.NewValidationError("customer", "Vui lòng điền đầy đủ thông tin khách hàng")
	}
	return nil
}

// Validate checks the address section for required fields
func (a Address) Validate() error {
	if err := validate.Struct(a); err != nil {
		return shared.NewValidationError("address", "Vui lòng điền đầy đủ địa chỉ giao hàng")
	}
	return nil
}

// Validate checks both form sections in order
func (f Form) Validate() error {
	if err := f.Customer.Validate(); err != nil {
		return err
	}
	return f.Address.Validate()
}
