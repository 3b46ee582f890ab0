package commands

import (
	"errors"

	"ostrov/internal/core/domain/model/kernel"
	"ostrov/internal/pkg/errs"
	"ostrov/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// SubmitOrderItem is one item of an intake submission.
type SubmitOrderItem struct {
	Name         string
	Quantity     int
	PriceKopecks int64
	WeightGrams  int
}

// SubmitOrderCommand represents an intake request: an external system
// submits a new parcel with recipient and item data. Malformed submissions
// are rejected here, before anything reaches the ledger.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	externalID          string
	recipientName       string
	recipientPhone      string
	recipientAddress    string
	recipientPostalCode kernel.PostalCode
	items               []SubmitOrderItem

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a validated intake command. The postal code
// must parse as a six-digit index and the item list must not be empty; item
// values are validated in depth by the order aggregate.
func NewSubmitOrderCommand(orderID kernel.UUID, externalID, recipientName,
	recipientPhone, recipientAddress, recipientPostalCode string,
	items []SubmitOrderItem) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setExternalID(externalID),
		cmd.setRecipient(recipientName, recipientPhone, recipientAddress, recipientPostalCode),
		cmd.setItems(items),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// OrderID returns the identifier minted for the new order.
func (c SubmitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ExternalID returns the storefront's own order number.
func (c SubmitOrderCommand) ExternalID() string {
	return c.externalID
}

// RecipientName returns the recipient's full name.
func (c SubmitOrderCommand) RecipientName() string {
	return c.recipientName
}

// RecipientPhone returns the recipient's phone number.
func (c SubmitOrderCommand) RecipientPhone() string {
	return c.recipientPhone
}

// RecipientAddress returns the free-form delivery address.
func (c SubmitOrderCommand) RecipientAddress() string {
	return c.recipientAddress
}

// RecipientPostalCode returns the parsed destination index.
func (c SubmitOrderCommand) RecipientPostalCode() kernel.PostalCode {
	return c.recipientPostalCode
}

// Items returns the submitted item list.
func (c SubmitOrderCommand) Items() []SubmitOrderItem {
	return c.items
}

func (c *SubmitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitOrderCommand) setExternalID(externalID string) error {
	if externalID == "" {
		return errs.NewValueIsRequiredError("external order number")
	}

	c.externalID = externalID
	return nil
}

func (c *SubmitOrderCommand) setRecipient(name, phone, address, postalCode string) error {
	code, err := kernel.NewPostalCode(postalCode)
	if err != nil {
		return err
	}

	c.recipientName = name
	c.recipientPhone = phone
	c.recipientAddress = address
	c.recipientPostalCode = code
	return nil
}

func (c *SubmitOrderCommand) setItems(items []SubmitOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}
