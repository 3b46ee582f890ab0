package order

import (
	"fmt"

	"ostrov/internal/pkg/errs"
)

// Item is a value object describing one position of an order: a product
// name, quantity, unit price and unit weight. Order totals are always
// derived from the item list, never stored independently.
type Item struct {
	name          string
	quantity      int
	priceKopecks  int64
	weightGrams   int
	isConstructed bool
}

// NewItem creates a validated order item. Quantity and unit weight must be
// positive; unit price must not be negative.
func NewItem(name string, quantity int, priceKopecks int64, weightGrams int) (Item, error) {
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if priceKopecks < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item price",
			fmt.Errorf("%d kopecks is negative", priceKopecks))
	}
	if weightGrams <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("item weight",
			fmt.Errorf("%d grams is not greater than 0", weightGrams))
	}

	return Item{
		name:          name,
		quantity:      quantity,
		priceKopecks:  priceKopecks,
		weightGrams:   weightGrams,
		isConstructed: true,
	}, nil
}

// Name returns the product name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the number of units.
func (i Item) Quantity() int {
	return i.quantity
}

// PriceKopecks returns the unit price in kopecks.
func (i Item) PriceKopecks() int64 {
	return i.priceKopecks
}

// WeightGrams returns the unit weight in grams.
func (i Item) WeightGrams() int {
	return i.weightGrams
}

// TotalPriceKopecks returns quantity × unit price.
func (i Item) TotalPriceKopecks() int64 {
	return i.priceKopecks * int64(i.quantity)
}

// TotalWeightGrams returns quantity × unit weight.
func (i Item) TotalWeightGrams() int {
	return i.weightGrams * i.quantity
}

// Validate ensures the item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("item must be created via NewItem")
	}
	return nil
}
