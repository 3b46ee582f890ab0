package order

import (
	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/errs"
)

// Recipient is a value object holding the delivery contact of an order.
// Intake rejects submissions with missing contact data before they reach the
// ledger, so a constructed Recipient is always complete.
type Recipient struct {
	name       string
	phone      string
	address    string
	postalCode kernel.PostalCode
}

// NewRecipient creates a validated recipient. Name, phone and address are
// required; the postal code must be a constructed kernel.PostalCode.
func NewRecipient(name, phone, address string, postalCode kernel.PostalCode) (Recipient, error) {
	if name == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient name")
	}
	if phone == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient phone")
	}
	if address == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient address")
	}
	if err := postalCode.Validate(); err != nil {
		return Recipient{}, err
	}

	return Recipient{
		name:       name,
		phone:      phone,
		address:    address,
		postalCode: postalCode,
	}, nil
}

// Name returns the recipient's full name.
func (r Recipient) Name() string {
	return r.name
}

// Phone returns the recipient's phone number.
func (r Recipient) Phone() string {
	return r.phone
}

// Address returns the free-form delivery address.
func (r Recipient) Address() string {
	return r.address
}

// PostalCode returns the destination postal index.
func (r Recipient) PostalCode() kernel.PostalCode {
	return r.postalCode
}

// Validate ensures the recipient was created via NewRecipient.
func (r Recipient) Validate() error {
	if r.name == "" {
		return errs.NewValueIsRequiredError("recipient must be created via NewRecipient")
	}
	return r.postalCode.Validate()
}
