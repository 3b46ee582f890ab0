package kernel

import (
	"fmt"
	"strconv"

	"ostrov/internal/pkg/errs"
)

// ErrPostalCodeIsNotConstructed indicates that a PostalCode was not created
// via NewPostalCode.
var ErrPostalCodeIsNotConstructed = errs.NewValueIsRequiredError("PostalCode must be created via NewPostalCode")

const postalCodeLength = 6

// PostalCode is a validated six-digit Russian postal index. It identifies the
// sender and recipient ends of a route for tariff calculation and drives hub
// routing through its region prefix.
//
// The zero value is invalid; construct with NewPostalCode.
type PostalCode struct {
	value string
}

// NewPostalCode creates a PostalCode from its string form. The index must be
// exactly six ASCII digits.
func NewPostalCode(value string) (PostalCode, error) {
	if value == "" {
		return PostalCode{}, errs.NewValueIsRequiredError("postalCode")
	}
	if len(value) != postalCodeLength {
		return PostalCode{}, errs.NewValueIsInvalidErrorWithCause("postalCode",
			fmt.Errorf("%q is not a %d-digit index", value, postalCodeLength))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return PostalCode{}, errs.NewValueIsInvalidErrorWithCause("postalCode",
				fmt.Errorf("%q contains a non-digit character", value))
		}
	}
	return PostalCode{value: value}, nil
}

// String returns the six-digit index.
func (p PostalCode) String() string {
	return p.value
}

// RegionPrefix returns the first three digits of the index as an integer.
// The prefix identifies the destination region and is the key of the hub
// routing registry.
func (p PostalCode) RegionPrefix() int {
	if p.value == "" {
		return 0
	}
	prefix, _ := strconv.Atoi(p.value[:3])
	return prefix
}

// IsEqual compares two postal codes by value.
func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.value == other.value
}

// Validate returns ErrPostalCodeIsNotConstructed for the zero value.
func (p PostalCode) Validate() error {
	if p.value == "" {
		return ErrPostalCodeIsNotConstructed
	}
	return nil
}
