package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		state   State
		isValid bool
	}{
		{StateCollectingCustomerInfo, true},
		{StateCollectingAddress, true},
		{StateAwaitingShippingOptions, true},
		{StateAwaitingPaymentOptions, true},
		{StateReadyToSubmit, true},
		{StateSubmitting, true},
		{StateCompleted, true},
		{State("INVALID"), false},
		{State(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.state.IsValid())
		})
	}
}

func TestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     State
		to       State
		canTrans bool
	}{
		{StateCollectingCustomerInfo, StateCollectingAddress, true},
		{StateCollectingCustomerInfo, StateReadyToSubmit, false},
		{StateCollectingAddress, StateAwaitingShippingOptions, true},
		{StateCollectingAddress, StateCollectingCustomerInfo, true},
		{StateAwaitingShippingOptions, StateAwaitingPaymentOptions, true},
		{StateAwaitingShippingOptions, StateCollectingAddress, true},
		{StateAwaitingShippingOptions, StateReadyToSubmit, false},
		{StateAwaitingPaymentOptions, StateReadyToSubmit, true},
		{StateAwaitingPaymentOptions, StateCollectingAddress, true},
		{StateReadyToSubmit, StateSubmitting, true},
		{StateReadyToSubmit, StateCompleted, false},
		{StateSubmitting, StateCompleted, true},
		{StateSubmitting, StateReadyToSubmit, true},
		// Completed is terminal
		{StateCompleted, StateCollectingCustomerInfo, false},
		{StateCompleted, StateSubmitting, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestState_IsTerminal(t *testing.T) {
	assert.True(t, StateCompleted.IsTerminal())
	assert.False(t, StateSubmitting.IsTerminal())
	assert.False(t, StateCollectingCustomerInfo.IsTerminal())
}

func TestCustomerDetails_Validate(t *testing.T) {
	valid := CustomerDetails{FirstName: "An", LastName: "Nguyen", PhoneNumber: "0900000000"}
	assert.NoError(t, valid.Validate())

	// email is optional but must be well-formed when present
	valid.EmailAddress = "an@example.com"
	assert.NoError(t, valid.Validate())
	valid.EmailAddress = "not-an-email"
	assert.Error(t, valid.Validate())

	tests := []struct {
		name     string
		customer CustomerDetails
	}{
		{"missing first name", CustomerDetails{LastName: "Nguyen", PhoneNumber: "0900000000"}},
		{"missing last name", CustomerDetails{FirstName: "An", PhoneNumber: "0900000000"}},
		{"missing phone", CustomerDetails{FirstName: "An", LastName: "Nguyen"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.customer.Validate())
		})
	}
}

func TestAddress_Validate(t *testing.T) {
	valid := Address{StreetLine1: "1 Le Loi", City: "Da Lat", Province: "Lam Dong", CountryCode: "VN"}
	assert.NoError(t, valid.Validate())

	// postal code and street line 2 are optional
	valid.PostalCode = ""
	valid.StreetLine2 = ""
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		addr Address
	}{
		{"missing street", Address{City: "Da Lat", Province: "Lam Dong", CountryCode: "VN"}},
		{"missing city", Address{StreetLine1: "1 Le Loi", Province: "Lam Dong", CountryCode: "VN"}},
		{"missing province", Address{StreetLine1: "1 Le Loi", City: "Da Lat", CountryCode: "VN"}},
		{"missing country", Address{StreetLine1: "1 Le Loi", City: "Da Lat", Province: "Lam Dong"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.addr.Validate())
		})
	}
}

func TestForm_FullName(t *testing.T) {
	f := Form{Customer: CustomerDetails{FirstName: "An", LastName: "Nguyen"}}
	assert.Equal(t, "An Nguyen", f.FullName())
}
